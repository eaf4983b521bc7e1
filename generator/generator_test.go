package generator

import (
	"context"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/notifygen/diag"
	"github.com/teranos/notifygen/emit"
	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/host"
	"github.com/teranos/notifygen/writer"
)

const snapshotYAML = `
types:
  - scope: [example.com/app]
    package: app
    name: Person
    exported: true
    extensible: true
    markers: ["+notify:observable"]
    members: [Greeting]
    pos: {file: app/person.go, line: 10, column: 6}
    fields:
      - name: _name
        type: {display: string, kind: string}
        markers: ["+notify:alsoNotify=Greeting", "+notify:alsoNotify=Missing"]
        pos: {file: app/person.go, line: 12, column: 2}
      - name: _age
        type: {display: int, kind: int}
      - name: _id
        readOnly: true
        type: {display: int, kind: int}
        pos: {file: app/person.go, line: 14, column: 2}
  - scope: [example.com/app]
    package: app
    name: Sealed
    extensible: false
    markers: ["+notify:observable"]
    pos: {file: app/sealed.go, line: 3, column: 6}
    fields:
      - name: _value
        type: {display: int, kind: int}
  - scope: [example.com/app]
    package: app
    name: Empty
    extensible: true
    markers: ["+notify:observable"]
    pos: {file: app/empty.go, line: 5, column: 6}
    fields:
      - name: Value
        accessibility: public
        type: {display: int, kind: int}
  - scope: [example.com/app]
    package: app
    name: Plain
    extensible: true
    fields:
      - name: _value
        type: {display: int, kind: int}
  - scope: [example.com/app]
    package: app
    name: Account
    exported: true
    extensible: true
    markers: ["+notify:observable", "+notify:suppressable:alwaysNotify=Balance"]
    fields:
      - name: _balance
        type: {display: int64, kind: int64}
`

func decode(t *testing.T, doc string) *host.Snapshot {
	t.Helper()
	snap, err := host.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	return snap
}

func codes(ds []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, len(ds))
	for i, d := range ds {
		out[i] = d.Code
	}
	return out
}

func identities(units []emit.Unit) []string {
	out := make([]string, len(units))
	for i, u := range units {
		out[i] = u.Identity
	}
	return out
}

func TestRun(t *testing.T) {
	g, err := New(WithWorkers(2))
	require.NoError(t, err)

	res, err := g.Run(context.Background(), decode(t, snapshotYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"example.com/app.Account", "example.com/app.Person"}, identities(res.Units))
	assert.Equal(t, []diag.Code{
		diag.CodeNoEligibleFields,
		diag.CodeUnknownDependent,
		diag.CodeReadOnlyField,
		diag.CodeNotExtensible,
	}, codes(res.Diagnostics))
	assert.True(t, res.HasErrors())

	assert.Equal(t, 5, res.Stats.Types)
	assert.Equal(t, 4, res.Stats.Observable)
	assert.Equal(t, 2, res.Stats.Units)
	assert.Equal(t, 0, res.Stats.Hits)
	assert.Equal(t, 2, res.Stats.Misses)

	missing := res.Diagnostics[1]
	assert.Contains(t, missing.Message, `"Missing"`)
	assert.Equal(t, "_name", missing.Field)
	assert.Equal(t, "app/person.go:12:2", missing.Pos.String())
}

func TestRunNotExtensible(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	snap := decode(t, `
types:
  - scope: [example.com/app]
    package: app
    name: Sealed
    markers: ["+notify:observable"]
    fields:
      - name: _value
        type: {display: int, kind: int}
`)
	res, err := g.Run(context.Background(), snap)
	require.NoError(t, err)

	assert.Empty(t, res.Units)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.CodeNotExtensible, res.Diagnostics[0].Code)
	assert.Equal(t, diag.SeverityError, res.Diagnostics[0].Severity)
}

func TestRunNoEligibleFields(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	snap := decode(t, `
types:
  - scope: [example.com/app]
    package: app
    name: Counter
    extensible: true
    markers: ["+notify:observable"]
    fields:
      - name: _count
        static: true
        type: {display: int, kind: int}
      - name: _skipped
        markers: ["+notify:ignore"]
        type: {display: int, kind: int}
`)
	res, err := g.Run(context.Background(), snap)
	require.NoError(t, err)

	assert.Empty(t, res.Units)
	assert.Equal(t, []diag.Code{diag.CodeStaticField, diag.CodeNoEligibleFields}, codes(res.Diagnostics))
	assert.False(t, res.HasErrors())
}

func TestRunReusesCache(t *testing.T) {
	g, err := New()
	require.NoError(t, err)
	snap := decode(t, snapshotYAML)

	first, err := g.Run(context.Background(), snap)
	require.NoError(t, err)
	second, err := g.Run(context.Background(), snap)
	require.NoError(t, err)

	assert.Equal(t, 2, second.Stats.Hits)
	assert.Equal(t, 0, second.Stats.Misses)
	require.Len(t, second.Units, len(first.Units))
	for i := range first.Units {
		assert.Equal(t, first.Units[i].Source, second.Units[i].Source)
	}

	// A changed declaration misses; the unchanged one still hits.
	snap.Types[4].Fields[0].Type.Display = "uint64"
	third, err := g.Run(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, 1, third.Stats.Hits)
	assert.Equal(t, 1, third.Stats.Misses)
	assert.Contains(t, string(third.Units[0].Source), "Balance() uint64")
}

func TestRunCancelled(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := g.Run(ctx, decode(t, snapshotYAML))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, res)
	assert.Equal(t, 0, g.Cache().Len())
}

func TestRunEmptySnapshot(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	res, err := g.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Units)
	assert.Empty(t, res.Diagnostics)
}

func TestRunDeterministic(t *testing.T) {
	snap := decode(t, snapshotYAML)
	var want []string
	for i := 0; i < 5; i++ {
		g, err := New(WithWorkers(i + 1))
		require.NoError(t, err)
		res, err := g.Run(context.Background(), snap)
		require.NoError(t, err)

		var got []string
		for _, u := range res.Units {
			got = append(got, string(u.Source))
		}
		for _, d := range res.Diagnostics {
			got = append(got, diag.Plain(d))
		}
		if want == nil {
			want = got
			continue
		}
		assert.Equal(t, want, got)
	}
}

func TestMalformedRenameRejectedBeforeGeneration(t *testing.T) {
	const good = `
  - scope: [example.com/app]
    package: app
    name: Good
    extensible: true
    markers: ["+notify:observable"]
    fields:
      - name: _value
        type: {display: int, kind: int}
        markers: ["+notify:rename=Amount"]
`
	const bad = `
  - scope: [example.com/app]
    package: app
    name: Bad
    extensible: true
    markers: ["+notify:observable"]
    fields:
      - name: _value
        type: {display: int, kind: int}
        markers: ["+notify:rename=Full Name"]
`
	_, err := host.Decode(strings.NewReader("types:" + good + bad))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidMarker(err))
	assert.Contains(t, err.Error(), "type example.com/app.Bad")

	g, err := New()
	require.NoError(t, err)
	res, err := g.Run(context.Background(), decode(t, "types:"+good))
	require.NoError(t, err)
	require.Len(t, res.Units, 1)
	assert.Contains(t, string(res.Units[0].Source), "func (g *Good) Amount() int")
}

func TestRunTypesDifferingOnlyInCase(t *testing.T) {
	const doc = `
types:
  - scope: [example.com/app]
    package: app
    name: Person
    exported: true
    extensible: true
    markers: ["+notify:observable:implementChanging=true", "+notify:suppressable:alwaysNotify=Value"]
    fields:
      - name: _value
        type: {display: int, kind: int}
  - scope: [example.com/app]
    package: app
    name: person
    extensible: true
    markers: ["+notify:observable:implementChanging=true", "+notify:suppressable:alwaysNotify=Value"]
    fields:
      - name: _value
        type: {display: int, kind: int}
`
	g, err := New()
	require.NoError(t, err)
	res, err := g.Run(context.Background(), decode(t, doc))
	require.NoError(t, err)
	require.Len(t, res.Units, 2)

	names := map[string]string{}
	for _, u := range res.Units {
		file, err := parser.ParseFile(token.NewFileSet(), u.FileName, u.Source, 0)
		require.NoError(t, err)
		for _, d := range file.Decls {
			gen, ok := d.(*ast.GenDecl)
			if !ok || gen.Tok == token.IMPORT {
				continue
			}
			for _, spec := range gen.Specs {
				var name string
				switch spec := spec.(type) {
				case *ast.TypeSpec:
					name = spec.Name.Name
				case *ast.ValueSpec:
					name = spec.Names[0].Name
				}
				prev, dup := names[name]
				assert.False(t, dup, "%s declared by %s and %s", name, prev, u.Identity)
				names[name] = u.Identity
			}
		}
	}
	assert.Contains(t, names, "personAlwaysNotify")
	assert.Contains(t, names, "_personAlwaysNotify")

	assert.NotEqual(t, strings.ToLower(res.Units[0].FileName), strings.ToLower(res.Units[1].FileName))
	changes, err := writer.New(afero.NewMemMapFs(), "").Plan(res.Units, map[string]string{"example.com/app": "/work/app"})
	require.NoError(t, err)
	assert.Len(t, changes, 2)
}
