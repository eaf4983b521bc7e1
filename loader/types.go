package loader

import (
	"go/types"
	"slices"
	"strconv"
	"strings"

	"github.com/teranos/notifygen/host"
	"github.com/teranos/notifygen/model"
)

// qualifier renders types relative to one package and assigns each foreign
// package a name that is unique within the declaring type, so every field
// of a type agrees on the imports of its generated file.
type qualifier struct {
	self   *types.Package
	byPath map[string]string
	byName map[string]string
	used   map[string]bool
}

func newQualifier(self *types.Package) *qualifier {
	return &qualifier{
		self:   self,
		byPath: make(map[string]string),
		byName: make(map[string]string),
	}
}

func (q *qualifier) qualify(p *types.Package) string {
	if p == q.self {
		return ""
	}
	name, ok := q.byPath[p.Path()]
	if !ok {
		name = p.Name()
		for i := 2; q.byName[name] != ""; i++ {
			name = p.Name() + strconv.Itoa(i)
		}
		q.byPath[p.Path()] = name
		q.byName[name] = p.Path()
	}
	q.used[p.Path()] = true
	return name
}

// typeString renders t and returns the imports it refers to, sorted by path.
func (q *qualifier) typeString(t types.Type) (string, []model.Import) {
	q.used = make(map[string]bool)
	s := types.TypeString(t, q.qualify)

	var imports []model.Import
	for p := range q.used {
		imports = append(imports, model.Import{Path: p, Name: q.byPath[p]})
	}
	slices.SortFunc(imports, func(a, b model.Import) int {
		return strings.Compare(a.Path, b.Path)
	})
	return s, imports
}

func (q *qualifier) typeInfo(t types.Type) host.TypeInfo {
	display, imports := q.typeString(t)
	inner, nullable := unwrapOptional(t)
	return host.TypeInfo{
		Display:  display,
		Imports:  imports,
		Nullable: nullable,
		Kind:     kindOf(inner),
	}
}

// sqlNullKinds maps the database/sql wrappers to the kind they carry.
var sqlNullKinds = map[string]host.Kind{
	"NullBool":    host.KindBool,
	"NullByte":    host.KindUint8,
	"NullFloat64": host.KindFloat64,
	"NullInt16":   host.KindInt16,
	"NullInt32":   host.KindInt32,
	"NullInt64":   host.KindInt64,
	"NullString":  host.KindString,
	"NullTime":    host.KindOther,
}

// unwrapOptional strips one pointer or database/sql Null wrapper.
func unwrapOptional(t types.Type) (types.Type, bool) {
	if p, ok := t.(*types.Pointer); ok {
		return p.Elem(), true
	}
	if n, ok := types.Unalias(t).(*types.Named); ok && isPackage(n, "database/sql") {
		if n.Obj().Name() == "Null" && n.TypeArgs().Len() == 1 {
			return n.TypeArgs().At(0), true
		}
		if _, ok := sqlNullKinds[n.Obj().Name()]; ok {
			return t, true
		}
	}
	return t, false
}

var decimalTypes = map[string][]string{
	"github.com/shopspring/decimal": {"Decimal", "NullDecimal"},
	"math/big":                      {"Int", "Float", "Rat"},
}

func kindOf(t types.Type) host.Kind {
	t = types.Unalias(t)
	if n, ok := t.(*types.Named); ok {
		if pkg := n.Obj().Pkg(); pkg != nil {
			if slices.Contains(decimalTypes[pkg.Path()], n.Obj().Name()) {
				return host.KindDecimal
			}
			if pkg.Path() == "database/sql" {
				if k, ok := sqlNullKinds[n.Obj().Name()]; ok {
					return k
				}
			}
		}
	}
	if p, ok := t.(*types.Pointer); ok {
		if kindOf(p.Elem()) == host.KindDecimal {
			return host.KindDecimal
		}
		return host.KindOther
	}

	b, ok := t.Underlying().(*types.Basic)
	if !ok {
		return host.KindOther
	}
	if b.Name() == "rune" {
		return host.KindChar
	}
	switch b.Kind() {
	case types.Bool:
		return host.KindBool
	case types.Int:
		return host.KindInt
	case types.Int8:
		return host.KindInt8
	case types.Int16:
		return host.KindInt16
	case types.Int32:
		return host.KindInt32
	case types.Int64:
		return host.KindInt64
	case types.Uint:
		return host.KindUint
	case types.Uint8:
		return host.KindUint8
	case types.Uint16:
		return host.KindUint16
	case types.Uint32:
		return host.KindUint32
	case types.Uint64:
		return host.KindUint64
	case types.Uintptr:
		return host.KindUintptr
	case types.Float32:
		return host.KindFloat32
	case types.Float64:
		return host.KindFloat64
	case types.Complex64:
		return host.KindComplex64
	case types.Complex128:
		return host.KindComplex128
	case types.String:
		return host.KindString
	}
	return host.KindOther
}

func isPackage(n *types.Named, path string) bool {
	return n.Obj().Pkg() != nil && n.Obj().Pkg().Path() == path
}
