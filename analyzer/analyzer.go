// Package analyzer reports notifygen diagnostics as a go/analysis pass, so
// editors and vet drivers show them without running the generator.
package analyzer

import (
	"context"
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"

	"github.com/teranos/notifygen/diag"
	"github.com/teranos/notifygen/emit"
	"github.com/teranos/notifygen/extract"
	"github.com/teranos/notifygen/host"
	"github.com/teranos/notifygen/loader"
	"github.com/teranos/notifygen/marker"
)

const doc = `check change-notification directives

Reports the NOTIFY001-NOTIFY005 diagnostics of notifygen for types marked
with // +notify:observable. NOTIFY001 carries a fix that embeds
notify.Extension.`

// Analyzer is the notifyvet analysis pass.
var Analyzer = &analysis.Analyzer{
	Name: "notifyvet",
	Doc:  doc,
	Run:  run,
}

var generatedPrefix = emit.DefaultFilePrefix

func init() {
	Analyzer.Flags.StringVar(&generatedPrefix, "prefix", emit.DefaultFilePrefix, "file name prefix of generated files")
}

func run(pass *analysis.Pass) (interface{}, error) {
	found, err := loader.Scan(pass.Fset, pass.Files, pass.Pkg, pass.TypesInfo, generatedPrefix)
	if err != nil {
		return nil, err
	}
	for _, t := range found {
		if !t.Markers.Has(marker.KindObservable) {
			continue
		}
		eligible, err := extract.Classify(context.Background(), t.Fields)
		if err != nil {
			return nil, err
		}
		ds, _ := diag.Check(t, eligible)
		for _, d := range ds {
			pos := tokenPos(pass, d.Pos)
			if !pos.IsValid() {
				continue
			}
			report := analysis.Diagnostic{
				Pos:      pos,
				Category: string(d.Code),
				Message:  string(d.Code) + ": " + d.Message,
			}
			if d.Code == diag.CodeNotExtensible {
				if fix, ok := extensionFix(pass, t, pos); ok {
					report.SuggestedFixes = []analysis.SuggestedFix{fix}
				}
			}
			pass.Report(report)
		}
	}
	return nil, nil
}

// tokenPos maps a host position back into the pass's file set.
func tokenPos(pass *analysis.Pass, p host.Position) token.Pos {
	for _, f := range pass.Files {
		tf := pass.Fset.File(f.Pos())
		if tf == nil || tf.Name() != p.File {
			continue
		}
		if p.Offset < 0 || p.Offset > tf.Size() {
			return token.NoPos
		}
		return tf.Pos(p.Offset)
	}
	return token.NoPos
}

// extensionFix embeds notify.Extension as the first field of the struct
// declared at pos, importing the runtime package when needed.
func extensionFix(pass *analysis.Pass, t host.Type, pos token.Pos) (analysis.SuggestedFix, bool) {
	file, spec := typeSpecAt(pass.Files, pos)
	if spec == nil || spec.Assign.IsValid() {
		return analysis.SuggestedFix{}, false
	}
	st, ok := spec.Type.(*ast.StructType)
	if !ok {
		return analysis.SuggestedFix{}, false
	}

	name, imported := importName(file)
	field := name + ".Extension"

	var edits []analysis.TextEdit
	if len(st.Fields.List) == 0 {
		edits = append(edits, analysis.TextEdit{
			Pos:     st.Fields.Opening,
			End:     st.Fields.Closing + 1,
			NewText: []byte("{\n\t" + field + "\n}"),
		})
	} else {
		first := st.Fields.List[0]
		at := first.Pos()
		if first.Doc != nil {
			at = first.Doc.Pos()
		}
		indent := strings.Repeat("\t", max(pass.Fset.Position(at).Column-1, 0))
		edits = append(edits, analysis.TextEdit{
			Pos:     at,
			End:     at,
			NewText: []byte(field + "\n\n" + indent),
		})
	}
	if !imported {
		edits = append(edits, importEdit(file))
	}

	return analysis.SuggestedFix{
		Message:   "Embed " + field + " in " + t.Name,
		TextEdits: edits,
	}, true
}

func typeSpecAt(files []*ast.File, pos token.Pos) (*ast.File, *ast.TypeSpec) {
	for _, f := range files {
		if pos < f.Pos() || pos > f.End() {
			continue
		}
		var found *ast.TypeSpec
		ast.Inspect(f, func(n ast.Node) bool {
			if ts, ok := n.(*ast.TypeSpec); ok && ts.Name.Pos() == pos {
				found = ts
			}
			return found == nil
		})
		return f, found
	}
	return nil, nil
}

// importName returns the name the file uses for the runtime package.
func importName(f *ast.File) (string, bool) {
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != emit.RuntimePath {
			continue
		}
		if imp.Name == nil {
			return "notify", true
		}
		// blank and dot imports give the file no name to qualify with
		if imp.Name.Name != "_" && imp.Name.Name != "." {
			return imp.Name.Name, true
		}
	}
	return "notify", false
}

func importEdit(f *ast.File) analysis.TextEdit {
	quoted := strconv.Quote(emit.RuntimePath)
	for _, decl := range f.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.IMPORT {
			continue
		}
		if gen.Lparen.IsValid() {
			return analysis.TextEdit{Pos: gen.Rparen, End: gen.Rparen, NewText: []byte("\t" + quoted + "\n")}
		}
		return analysis.TextEdit{Pos: gen.End(), End: gen.End(), NewText: []byte("\nimport " + quoted)}
	}
	return analysis.TextEdit{Pos: f.Name.End(), End: f.Name.End(), NewText: []byte("\n\nimport " + quoted)}
}
