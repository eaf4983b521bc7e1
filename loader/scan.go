package loader

import (
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"github.com/teranos/notifygen/emit"
	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/host"
	"github.com/teranos/notifygen/marker"
	"github.com/teranos/notifygen/model"
)

var (
	notifierMethods = []string{"PropertyChanged", "OnPropertyChanged"}
	changingMethods = []string{"PropertyChanging", "OnPropertyChanging"}
)

// Scan collects the directive-carrying type declarations of one type-checked
// package. Files whose base name starts with generatedPrefix are skipped, and
// methods they declare do not count as hand-written capabilities.
func Scan(fset *token.FileSet, files []*ast.File, pkg *types.Package, info *types.Info, generatedPrefix string) ([]host.Type, error) {
	s := &scanner{fset: fset, pkg: pkg, info: info, prefix: generatedPrefix}

	var out []host.Type
	for _, file := range files {
		if s.generated(file.Pos()) {
			continue
		}
		for _, decl := range file.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}
			for _, spec := range gen.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}
				markers, err := s.markers(doc)
				if err != nil {
					return nil, err
				}
				if len(markers) == 0 {
					continue
				}
				t, err := s.typeOf(ts, markers)
				if err != nil {
					return nil, err
				}
				out = append(out, t)
			}
		}
	}
	return out, nil
}

type scanner struct {
	fset   *token.FileSet
	pkg    *types.Package
	info   *types.Info
	prefix string
}

func (s *scanner) position(pos token.Pos) host.Position {
	p := s.fset.Position(pos)
	return host.Position{File: p.Filename, Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func (s *scanner) generated(pos token.Pos) bool {
	if s.prefix == "" || !pos.IsValid() {
		return false
	}
	return strings.HasPrefix(filepath.Base(s.fset.Position(pos).Filename), s.prefix)
}

// markers parses the notify directives among the comment groups.
func (s *scanner) markers(groups ...*ast.CommentGroup) (marker.Set, error) {
	var set marker.Set
	for _, g := range groups {
		if g == nil {
			continue
		}
		for _, c := range g.List {
			m, ok, err := marker.Parse(c.Text)
			if err != nil {
				return nil, errors.Wrapf(err, "%s", s.position(c.Slash))
			}
			if ok {
				set = append(set, m)
			}
		}
	}
	return set, nil
}

func (s *scanner) typeOf(ts *ast.TypeSpec, markers marker.Set) (host.Type, error) {
	t := host.Type{
		Scope:       []string{s.pkg.Path()},
		PackageName: s.pkg.Name(),
		Name:        ts.Name.Name,
		Exported:    ts.Name.IsExported(),
		Markers:     markers,
		Pos:         s.position(ts.Name.Pos()),
	}

	obj, ok := s.info.Defs[ts.Name].(*types.TypeName)
	if !ok || ts.Assign.IsValid() {
		return t, nil
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return t, nil
	}
	q := newQualifier(s.pkg)

	for i := 0; i < named.TypeParams().Len(); i++ {
		tp := named.TypeParams().At(i)
		constraint, imports := q.typeString(tp.Constraint())
		t.TypeParams = append(t.TypeParams, model.TypeParam{
			Name:       tp.Obj().Name(),
			Constraint: constraint,
			Imports:    imports,
		})
	}

	ptr := types.NewPointer(named)
	methods := types.NewMethodSet(ptr)
	for i := 0; i < methods.Len(); i++ {
		fn := methods.At(i).Obj()
		if !s.generated(fn.Pos()) {
			t.Members = append(t.Members, fn.Name())
		}
	}
	t.ProvidesNotifier = s.provides(ptr, methods, "Notifier", notifierMethods)
	t.ProvidesChanging = s.provides(ptr, methods, "ChangingNotifier", changingMethods)

	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return t, nil
	}
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			if s.isExtension(f.Type) {
				t.Extensible = true
			}
			continue
		}
		markers, err := s.markers(f.Doc, f.Comment)
		if err != nil {
			return host.Type{}, err
		}
		for _, name := range f.Names {
			t.Members = append(t.Members, name.Name)
			v, ok := s.info.Defs[name].(*types.Var)
			if !ok {
				continue
			}
			access := host.Private
			if name.IsExported() {
				access = host.Public
			}
			t.Fields = append(t.Fields, host.Field{
				Name:          name.Name,
				Accessibility: access,
				Type:          q.typeInfo(v.Type()),
				Markers:       markers,
				Pos:           s.position(name.Pos()),
			})
		}
	}
	return t, nil
}

// provides reports whether the hand-written methods of ptr satisfy the named
// runtime interface.
func (s *scanner) provides(ptr types.Type, methods *types.MethodSet, iface string, names []string) bool {
	for _, name := range names {
		sel := methods.Lookup(s.pkg, name)
		if sel == nil || s.generated(sel.Obj().Pos()) {
			return false
		}
	}
	if it := s.runtimeInterface(iface); it != nil {
		return types.Implements(ptr, it)
	}
	return true
}

// runtimeInterface finds an interface of the runtime package among the
// package's imports.
func (s *scanner) runtimeInterface(name string) *types.Interface {
	for _, imp := range s.pkg.Imports() {
		if imp.Path() != emit.RuntimePath {
			continue
		}
		if obj, ok := imp.Scope().Lookup(name).(*types.TypeName); ok {
			if it, ok := obj.Type().Underlying().(*types.Interface); ok {
				return it
			}
		}
	}
	return nil
}

// isExtension reports whether an embedded field is the runtime Extension.
func (s *scanner) isExtension(expr ast.Expr) bool {
	tv, ok := s.info.Types[expr]
	if !ok {
		return false
	}
	named, ok := tv.Type.(*types.Named)
	if !ok {
		return false
	}
	obj := named.Obj()
	return obj.Pkg() != nil && obj.Pkg().Path() == emit.RuntimePath && obj.Name() == "Extension"
}
