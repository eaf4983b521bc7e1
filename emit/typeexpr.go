package emit

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"

	"github.com/dave/jennifer/jen"

	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/model"
)

// typeCode rebuilds a type descriptor as jennifer code. Package selectors
// that name one of imports become qualified references, so jennifer adds
// the import; anything else is rendered as written.
func typeCode(display string, imports []model.Import) (jen.Code, error) {
	expr, err := parser.ParseExpr(display)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid type descriptor %q", display)
	}
	byName := make(map[string]string, len(imports))
	for _, imp := range imports {
		byName[imp.Name] = imp.Path
	}
	c := converter{imports: byName}
	return c.expr(expr), nil
}

type converter struct {
	imports map[string]string
}

func (c converter) expr(e ast.Expr) *jen.Statement {
	switch e := e.(type) {
	case *ast.Ident:
		return jen.Id(e.Name)
	case *ast.SelectorExpr:
		if x, ok := e.X.(*ast.Ident); ok {
			if path, ok := c.imports[x.Name]; ok {
				return jen.Qual(path, e.Sel.Name)
			}
		}
		return c.expr(e.X).Dot(e.Sel.Name)
	case *ast.StarExpr:
		return jen.Op("*").Add(c.expr(e.X))
	case *ast.ArrayType:
		if e.Len == nil {
			return jen.Index().Add(c.expr(e.Elt))
		}
		return jen.Index(c.expr(e.Len)).Add(c.expr(e.Elt))
	case *ast.MapType:
		return jen.Map(c.expr(e.Key)).Add(c.expr(e.Value))
	case *ast.ChanType:
		switch e.Dir {
		case ast.SEND:
			return jen.Chan().Op("<-").Add(c.expr(e.Value))
		case ast.RECV:
			return jen.Op("<-").Chan().Add(c.expr(e.Value))
		default:
			return jen.Chan().Add(c.expr(e.Value))
		}
	case *ast.IndexExpr:
		return c.expr(e.X).Types(c.expr(e.Index))
	case *ast.IndexListExpr:
		args := make([]jen.Code, len(e.Indices))
		for i, idx := range e.Indices {
			args[i] = c.expr(idx)
		}
		return c.expr(e.X).Types(args...)
	case *ast.Ellipsis:
		return jen.Op("...").Add(c.expr(e.Elt))
	case *ast.ParenExpr:
		return jen.Parens(c.expr(e.X))
	case *ast.UnaryExpr:
		if e.Op == token.TILDE {
			return jen.Op("~").Add(c.expr(e.X))
		}
	case *ast.BinaryExpr:
		if e.Op == token.OR {
			return c.expr(e.X).Op("|").Add(c.expr(e.Y))
		}
	case *ast.FuncType:
		sig := jen.Func().Params(c.fields(e.Params)...)
		if e.Results == nil || len(e.Results.List) == 0 {
			return sig
		}
		if r := e.Results; r != nil && len(r.List) == 1 && len(r.List[0].Names) == 0 {
			return sig.Add(c.expr(r.List[0].Type))
		}
		return sig.Params(c.fields(e.Results)...)
	case *ast.InterfaceType:
		if e.Methods == nil || len(e.Methods.List) == 0 {
			return jen.Interface()
		}
	case *ast.StructType:
		if e.Fields == nil || len(e.Fields.List) == 0 {
			return jen.Struct()
		}
	case *ast.BasicLit:
		return jen.Id(e.Value)
	}
	// Anything else (struct and interface literals with members) is
	// reproduced verbatim.
	return jen.Id(types.ExprString(e))
}

func (c converter) fields(list *ast.FieldList) []jen.Code {
	if list == nil {
		return nil
	}
	var out []jen.Code
	for _, f := range list.List {
		if len(f.Names) == 0 {
			out = append(out, c.expr(f.Type))
			continue
		}
		names := make([]jen.Code, len(f.Names))
		for i, n := range f.Names {
			names[i] = jen.Id(n.Name)
		}
		out = append(out, jen.List(names...).Add(c.expr(f.Type)))
	}
	return out
}
