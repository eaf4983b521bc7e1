// Package model holds the immutable declarations the emitter renders from.
// Values are built once by the extractor and compared structurally by the
// incremental cache.
package model

import (
	"slices"
	"strconv"
	"strings"
)

// Import is a package referenced from a type descriptor.
type Import struct {
	Path string `yaml:"path"`
	// Name is the identifier used for the package inside descriptors.
	Name string `yaml:"name"`
}

// TypeParam is one type parameter of a generic type.
type TypeParam struct {
	Name       string   `yaml:"name"`
	Constraint string   `yaml:"constraint"`
	Imports    []Import `yaml:"imports,omitempty"`
}

func (p TypeParam) equal(o TypeParam) bool {
	return p.Name == o.Name && p.Constraint == o.Constraint && slices.Equal(p.Imports, o.Imports)
}

// Visibility is the declared visibility of a type.
type Visibility int

const (
	Unexported Visibility = iota
	Exported
)

func (v Visibility) String() string {
	if v == Exported {
		return "exported"
	}
	return "unexported"
}

// SetterVisibility restricts a generated setter. SetterDefault means no
// override.
type SetterVisibility int

const (
	SetterDefault SetterVisibility = iota
	SetterProtected
	SetterInternal
	SetterPrivate
	SetterProtectedOrInternal
	SetterProtectedAndInternal
)

var setterNames = [...]string{
	SetterDefault:              "default",
	SetterProtected:            "protected",
	SetterInternal:             "internal",
	SetterPrivate:              "private",
	SetterProtectedOrInternal:  "protectedOrInternal",
	SetterProtectedAndInternal: "protectedAndInternal",
}

func (s SetterVisibility) String() string {
	if s >= 0 && int(s) < len(setterNames) {
		return setterNames[s]
	}
	return "SetterVisibility(" + strconv.Itoa(int(s)) + ")"
}

// Restricted reports whether the setter is narrower than the accessor.
func (s SetterVisibility) Restricted() bool {
	return s != SetterDefault
}

// Field is one eligible storage field and everything derived from it.
type Field struct {
	StorageName  string
	AccessorName string
	// Type is the canonical display text of the declared type.
	Type    string
	Imports []Import
	// Nullable is true for optional-wrapped types.
	Nullable bool
	// Primitive selects the == equality guard.
	Primitive       bool
	AlsoNotify      []string
	RefreshCommands []string
	Setter          SetterVisibility
}

// Equal is structural and order-sensitive.
func (f Field) Equal(o Field) bool {
	return f.StorageName == o.StorageName &&
		f.AccessorName == o.AccessorName &&
		f.Type == o.Type &&
		slices.Equal(f.Imports, o.Imports) &&
		f.Nullable == o.Nullable &&
		f.Primitive == o.Primitive &&
		slices.Equal(f.AlsoNotify, o.AlsoNotify) &&
		slices.Equal(f.RefreshCommands, o.RefreshCommands) &&
		f.Setter == o.Setter
}

// ObservableType is the declaration of one type to generate for.
type ObservableType struct {
	Scope             []string
	PackageName       string
	Name              string
	TypeParams        []TypeParam
	Visibility        Visibility
	ProvidesNotifier  bool
	ProvidesChanging  bool
	ImplementChanging bool
	Suppressable      bool
	AlwaysNotify      []string
	Fields            []Field
}

// Equal is structural over every attribute, including field order.
func (t ObservableType) Equal(o ObservableType) bool {
	return slices.Equal(t.Scope, o.Scope) &&
		t.PackageName == o.PackageName &&
		t.Name == o.Name &&
		slices.EqualFunc(t.TypeParams, o.TypeParams, TypeParam.equal) &&
		t.Visibility == o.Visibility &&
		t.ProvidesNotifier == o.ProvidesNotifier &&
		t.ProvidesChanging == o.ProvidesChanging &&
		t.ImplementChanging == o.ImplementChanging &&
		t.Suppressable == o.Suppressable &&
		slices.Equal(t.AlwaysNotify, o.AlwaysNotify) &&
		slices.EqualFunc(t.Fields, o.Fields, Field.Equal)
}

// Identity is the cache key and unit name of the type.
func (t ObservableType) Identity() string {
	id := QualifiedName(t.Scope, t.Name)
	if n := len(t.TypeParams); n > 0 {
		id += "[" + strconv.Itoa(n) + "]"
	}
	return id
}

// ChangingActive reports whether setters raise the pre-change signal,
// either because it was requested or because the type already provides it.
func (t ObservableType) ChangingActive() bool {
	return t.ImplementChanging || t.ProvidesChanging
}

// GeneratesChanging reports whether the pre-change surface is emitted.
func (t ObservableType) GeneratesChanging() bool {
	return t.ImplementChanging && !t.ProvidesChanging
}

// Accessors returns the generated accessor names in field order.
func (t ObservableType) Accessors() []string {
	out := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		out[i] = f.AccessorName
	}
	return out
}

// QualifiedName joins scope and name with dots.
func QualifiedName(scope []string, name string) string {
	if len(scope) == 0 {
		return name
	}
	return strings.Join(scope, ".") + "." + name
}
