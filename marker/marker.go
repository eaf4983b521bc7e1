// Package marker defines the declarative markers that drive generation and
// the comment directive syntax used to attach them in Go source:
//
//	// +notify:<name>[=<value>][:<key>=<value>]...
package marker

import (
	"go/token"
	"strconv"
	"strings"

	"github.com/teranos/notifygen/errors"
)

// Prefix introduces every directive.
const Prefix = "+notify:"

// Kind identifies a marker type.
type Kind int

const (
	KindObservable Kind = iota + 1
	KindIgnore
	KindRename
	KindAlsoNotify
	KindRefreshCommand
	KindSetter
	KindSuppressable
)

var kindNames = map[Kind]string{
	KindObservable:     "observable",
	KindIgnore:         "ignore",
	KindRename:         "rename",
	KindAlsoNotify:     "alsoNotify",
	KindRefreshCommand: "refreshCommand",
	KindSetter:         "setter",
	KindSuppressable:   "suppressable",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Marker is one parsed directive.
type Marker interface {
	Kind() Kind
	// Directive renders the marker back to its canonical comment text.
	Directive() string
}

// Observable marks a type for generation.
type Observable struct {
	ImplementChanging bool
}

func (Observable) Kind() Kind { return KindObservable }

func (m Observable) Directive() string {
	if m.ImplementChanging {
		return Prefix + "observable:implementChanging=true"
	}
	return Prefix + "observable"
}

// Ignore excludes a field that would otherwise be eligible.
type Ignore struct{}

func (Ignore) Kind() Kind { return KindIgnore }

func (Ignore) Directive() string { return Prefix + "ignore" }

// Rename overrides the derived accessor name.
type Rename struct {
	name string
}

// NewRename rejects a name that is not a Go identifier.
func NewRename(name string) (Rename, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Rename{}, errors.NewInvalidMarkerError("rename requires a non-empty name")
	}
	if !token.IsIdentifier(name) {
		return Rename{}, errors.NewInvalidMarkerError("rename: %q is not a Go identifier", name)
	}
	return Rename{name: name}, nil
}

// checkTarget accepts an empty target, which is ignored, or a Go identifier.
func checkTarget(kind Kind, target string) error {
	if target != "" && !token.IsIdentifier(target) {
		return errors.NewInvalidMarkerError("%s: %q is not a Go identifier", kind, target)
	}
	return nil
}

func (Rename) Kind() Kind { return KindRename }

func (m Rename) Directive() string { return Prefix + "rename=" + m.name }

// Name returns the accessor name.
func (m Rename) Name() string { return m.name }

// AlsoNotify names a dependent accessor to signal after the field changes.
type AlsoNotify struct {
	Target string
}

// NewAlsoNotify rejects a target that is not a Go identifier.
func NewAlsoNotify(target string) (AlsoNotify, error) {
	target = strings.TrimSpace(target)
	if err := checkTarget(KindAlsoNotify, target); err != nil {
		return AlsoNotify{}, err
	}
	return AlsoNotify{Target: target}, nil
}

func (AlsoNotify) Kind() Kind { return KindAlsoNotify }

func (m AlsoNotify) Directive() string { return Prefix + "alsoNotify=" + m.Target }

// RefreshCommand names a command member to refresh after the field changes.
type RefreshCommand struct {
	Target string
}

// NewRefreshCommand rejects a target that is not a Go identifier.
func NewRefreshCommand(target string) (RefreshCommand, error) {
	target = strings.TrimSpace(target)
	if err := checkTarget(KindRefreshCommand, target); err != nil {
		return RefreshCommand{}, err
	}
	return RefreshCommand{Target: target}, nil
}

func (RefreshCommand) Kind() Kind { return KindRefreshCommand }

func (m RefreshCommand) Directive() string { return Prefix + "refreshCommand=" + m.Target }

// SetterVisibility restricts the generated setter.
type SetterVisibility struct {
	Level Level
}

func (SetterVisibility) Kind() Kind { return KindSetter }

func (m SetterVisibility) Directive() string { return Prefix + "setter=" + m.Level.String() }

// Suppressable enables batched notification with optional exemptions.
type Suppressable struct {
	AlwaysNotify []string
}

// NewSuppressable rejects exemptions that are not Go identifiers. Empty
// entries are dropped.
func NewSuppressable(alwaysNotify ...string) (Suppressable, error) {
	var m Suppressable
	for _, name := range alwaysNotify {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if !token.IsIdentifier(name) {
			return Suppressable{}, errors.NewInvalidMarkerError("alwaysNotify: %q is not a Go identifier", name)
		}
		m.AlwaysNotify = append(m.AlwaysNotify, name)
	}
	return m, nil
}

func (Suppressable) Kind() Kind { return KindSuppressable }

func (m Suppressable) Directive() string {
	if len(m.AlwaysNotify) == 0 {
		return Prefix + "suppressable"
	}
	return Prefix + "suppressable:alwaysNotify=" + strings.Join(m.AlwaysNotify, ",")
}

// Level is a setter access level.
type Level int

const (
	LevelPublic Level = iota
	LevelProtected
	LevelInternal
	LevelPrivate
	LevelProtectedOrInternal
	LevelProtectedAndInternal
)

var levelNames = []string{
	LevelPublic:               "public",
	LevelProtected:            "protected",
	LevelInternal:             "internal",
	LevelPrivate:              "private",
	LevelProtectedOrInternal:  "protectedOrInternal",
	LevelProtectedAndInternal: "protectedAndInternal",
}

func (l Level) String() string {
	if l >= 0 && int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "Level(" + strconv.Itoa(int(l)) + ")"
}

// ParseLevel accepts level names case-insensitively.
func ParseLevel(s string) (Level, error) {
	for i, n := range levelNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return Level(i), nil
		}
	}
	return 0, errors.NewInvalidMarkerError("unknown setter level %q", s)
}
