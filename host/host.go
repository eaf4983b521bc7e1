// Package host describes the immutable view of the compilation that one
// generation pass works on. A Snapshot is produced by the Go loader or
// decoded from YAML, and nothing in it changes during the pass.
package host

import (
	"fmt"

	"github.com/teranos/notifygen/marker"
	"github.com/teranos/notifygen/model"
)

// Snapshot is the input of one generation pass.
type Snapshot struct {
	Types []Type
}

// Position locates a declaration in source.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int
}

func (p Position) String() string {
	if p.File == "" {
		return "-"
	}
	if p.Line == 0 {
		return p.File
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsValid reports whether the position names a file.
func (p Position) IsValid() bool {
	return p.File != ""
}

// Type is a candidate type declaration.
type Type struct {
	Scope       []string
	PackageName string
	Name        string
	TypeParams  []model.TypeParam
	Exported    bool
	// Extensible is true when generated members can be added to the type.
	Extensible bool
	// ProvidesNotifier and ProvidesChanging report hand-written capabilities.
	ProvidesNotifier bool
	ProvidesChanging bool
	Markers          marker.Set
	Fields           []Field
	// Members lists hand-written methods and fields by name.
	Members []string
	Pos     Position
}

// QualifiedName is the scope-qualified type name used in diagnostics.
func (t Type) QualifiedName() string {
	return model.QualifiedName(t.Scope, t.Name)
}

// HasMember reports whether name is a hand-written member.
func (t Type) HasMember(name string) bool {
	for _, m := range t.Members {
		if m == name {
			return true
		}
	}
	return false
}

// Accessibility is the declared visibility of a field.
type Accessibility int

const (
	Private Accessibility = iota
	Public
)

func (a Accessibility) String() string {
	if a == Public {
		return "public"
	}
	return "private"
}

// Field is a candidate storage field.
type Field struct {
	Name          string
	Accessibility Accessibility
	Static        bool
	Const         bool
	ReadOnly      bool
	Type          TypeInfo
	Markers       marker.Set
	Pos           Position
}

// TypeInfo is what the host knows about a field's declared type.
type TypeInfo struct {
	// Display is the canonical type text relative to the declaring package.
	Display string
	// Imports lists the packages Display refers to.
	Imports []model.Import
	// Nullable is true for optional-wrapped types.
	Nullable bool
	// Kind classifies the type after unwrapping the optional wrapper.
	Kind Kind
}

// Kind classifies a field type for equality-guard selection.
type Kind int

const (
	KindOther Kind = iota
	KindBool
	KindChar
	KindInt
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindUintptr
	KindFloat32
	KindFloat64
	KindComplex64
	KindComplex128
	KindDecimal
	KindString
)

var kindNames = [...]string{
	KindOther:      "other",
	KindBool:       "bool",
	KindChar:       "char",
	KindInt:        "int",
	KindInt8:       "int8",
	KindInt16:      "int16",
	KindInt32:      "int32",
	KindInt64:      "int64",
	KindUint:       "uint",
	KindUint8:      "uint8",
	KindUint16:     "uint16",
	KindUint32:     "uint32",
	KindUint64:     "uint64",
	KindUintptr:    "uintptr",
	KindFloat32:    "float32",
	KindFloat64:    "float64",
	KindComplex64:  "complex64",
	KindComplex128: "complex128",
	KindDecimal:    "decimal",
	KindString:     "string",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), true
		}
	}
	return KindOther, false
}

// Primitive reports whether values of this kind are compared with ==.
// Decimal and string kinds go through the generic equality facility.
func (k Kind) Primitive() bool {
	return k >= KindBool && k <= KindComplex128
}
