package host

import (
	"go/token"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/marker"
	"github.com/teranos/notifygen/model"
)

// Snapshot documents keep markers as directive strings so they read the same
// as the comments they came from.

type snapshotDoc struct {
	Types []typeDoc `yaml:"types"`
}

type typeDoc struct {
	Scope            []string          `yaml:"scope,omitempty"`
	Package          string            `yaml:"package,omitempty"`
	Name             string            `yaml:"name"`
	TypeParams       []model.TypeParam `yaml:"typeParams,omitempty"`
	Exported         bool              `yaml:"exported"`
	Extensible       bool              `yaml:"extensible"`
	ProvidesNotifier bool              `yaml:"providesNotifier,omitempty"`
	ProvidesChanging bool              `yaml:"providesChanging,omitempty"`
	Markers          []string          `yaml:"markers,omitempty"`
	Members          []string          `yaml:"members,omitempty"`
	Pos              *posDoc           `yaml:"pos,omitempty"`
	Fields           []fieldDoc        `yaml:"fields,omitempty"`
}

type fieldDoc struct {
	Name          string   `yaml:"name"`
	Accessibility string   `yaml:"accessibility,omitempty"`
	Static        bool     `yaml:"static,omitempty"`
	Const         bool     `yaml:"const,omitempty"`
	ReadOnly      bool     `yaml:"readOnly,omitempty"`
	Type          typeInfo `yaml:"type"`
	Markers       []string `yaml:"markers,omitempty"`
	Pos           *posDoc  `yaml:"pos,omitempty"`
}

type typeInfo struct {
	Display  string         `yaml:"display"`
	Kind     string         `yaml:"kind,omitempty"`
	Nullable bool           `yaml:"nullable,omitempty"`
	Imports  []model.Import `yaml:"imports,omitempty"`
}

type posDoc struct {
	File   string `yaml:"file"`
	Line   int    `yaml:"line,omitempty"`
	Column int    `yaml:"column,omitempty"`
	Offset int    `yaml:"offset,omitempty"`
}

// Decode reads a YAML snapshot. Unknown keys and malformed directives are
// rejected.
func Decode(r io.Reader) (*Snapshot, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc snapshotDoc
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Snapshot{}, nil
		}
		return nil, errors.Wrap(errors.Wrap(ErrInvalidSnapshot, err.Error()), "failed to decode snapshot")
	}

	snap := &Snapshot{Types: make([]Type, 0, len(doc.Types))}
	for _, td := range doc.Types {
		t, err := td.toType()
		if err != nil {
			return nil, errors.Wrapf(err, "type %s", model.QualifiedName(td.Scope, td.Name))
		}
		snap.Types = append(snap.Types, t)
	}
	return snap, nil
}

// ErrInvalidSnapshot is returned for documents that cannot be decoded.
var ErrInvalidSnapshot = errors.ErrInvalidSnapshot

func (td typeDoc) toType() (Type, error) {
	if td.Name == "" {
		return Type{}, errors.Wrap(ErrInvalidSnapshot, "type without name")
	}
	if !token.IsIdentifier(td.Name) {
		return Type{}, errors.Wrapf(ErrInvalidSnapshot, "type name %q is not a Go identifier", td.Name)
	}
	for _, tp := range td.TypeParams {
		if !token.IsIdentifier(tp.Name) {
			return Type{}, errors.Wrapf(ErrInvalidSnapshot, "type parameter %q is not a Go identifier", tp.Name)
		}
	}
	markers, err := marker.ParseAll(td.Markers)
	if err != nil {
		return Type{}, err
	}
	t := Type{
		Scope:            td.Scope,
		PackageName:      td.Package,
		Name:             td.Name,
		TypeParams:       td.TypeParams,
		Exported:         td.Exported,
		Extensible:       td.Extensible,
		ProvidesNotifier: td.ProvidesNotifier,
		ProvidesChanging: td.ProvidesChanging,
		Markers:          markers,
		Members:          td.Members,
		Pos:              td.Pos.toPosition(),
	}
	for _, fd := range td.Fields {
		f, err := fd.toField()
		if err != nil {
			return Type{}, errors.Wrapf(err, "field %s", fd.Name)
		}
		t.Fields = append(t.Fields, f)
	}
	return t, nil
}

func (fd fieldDoc) toField() (Field, error) {
	if !token.IsIdentifier(fd.Name) {
		return Field{}, errors.Wrapf(ErrInvalidSnapshot, "field name %q is not a Go identifier", fd.Name)
	}
	markers, err := marker.ParseAll(fd.Markers)
	if err != nil {
		return Field{}, err
	}

	var access Accessibility
	switch fd.Accessibility {
	case "", "private":
		access = Private
	case "public":
		access = Public
	default:
		return Field{}, errors.Wrapf(ErrInvalidSnapshot, "unknown accessibility %q", fd.Accessibility)
	}

	kind := KindOther
	if fd.Type.Kind != "" {
		k, ok := ParseKind(fd.Type.Kind)
		if !ok {
			return Field{}, errors.Wrapf(ErrInvalidSnapshot, "unknown kind %q", fd.Type.Kind)
		}
		kind = k
	}

	return Field{
		Name:          fd.Name,
		Accessibility: access,
		Static:        fd.Static,
		Const:         fd.Const,
		ReadOnly:      fd.ReadOnly,
		Type: TypeInfo{
			Display:  fd.Type.Display,
			Imports:  fd.Type.Imports,
			Nullable: fd.Type.Nullable,
			Kind:     kind,
		},
		Markers: markers,
		Pos:     fd.Pos.toPosition(),
	}, nil
}

func (p *posDoc) toPosition() Position {
	if p == nil {
		return Position{}
	}
	return Position{File: p.File, Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func fromPosition(p Position) *posDoc {
	if !p.IsValid() {
		return nil
	}
	return &posDoc{File: p.File, Line: p.Line, Column: p.Column, Offset: p.Offset}
}

// Encode writes snap as YAML.
func Encode(w io.Writer, snap *Snapshot) error {
	doc := snapshotDoc{Types: make([]typeDoc, 0, len(snap.Types))}
	for _, t := range snap.Types {
		td := typeDoc{
			Scope:            t.Scope,
			Package:          t.PackageName,
			Name:             t.Name,
			TypeParams:       t.TypeParams,
			Exported:         t.Exported,
			Extensible:       t.Extensible,
			ProvidesNotifier: t.ProvidesNotifier,
			ProvidesChanging: t.ProvidesChanging,
			Markers:          t.Markers.Directives(),
			Members:          t.Members,
			Pos:              fromPosition(t.Pos),
		}
		for _, f := range t.Fields {
			kind := ""
			if f.Type.Kind != KindOther {
				kind = f.Type.Kind.String()
			}
			td.Fields = append(td.Fields, fieldDoc{
				Name:          f.Name,
				Accessibility: f.Accessibility.String(),
				Static:        f.Static,
				Const:         f.Const,
				ReadOnly:      f.ReadOnly,
				Type: typeInfo{
					Display:  f.Type.Display,
					Kind:     kind,
					Nullable: f.Type.Nullable,
					Imports:  f.Type.Imports,
				},
				Markers: f.Markers.Directives(),
				Pos:     fromPosition(f.Pos),
			})
		}
		doc.Types = append(doc.Types, td)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(err, "failed to encode snapshot")
	}
	return errors.Wrap(enc.Close(), "failed to encode snapshot")
}
