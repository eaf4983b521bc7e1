package fixture

import (
	"context"
	"go/scanner"
	"go/token"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/notifygen/generator"
	"github.com/teranos/notifygen/loader"
)

// tokens lists the tokens of src, comments included. Layout and the
// semicolons implied by line breaks are left out.
func tokens(t *testing.T, src []byte) []string {
	t.Helper()
	fset := token.NewFileSet()
	file := fset.AddFile("unit.go", -1, len(src))

	var s scanner.Scanner
	s.Init(file, src, func(pos token.Position, msg string) {
		t.Errorf("%s: %s", pos, msg)
	}, scanner.ScanComments)

	var out []string
	for {
		_, tok, lit := s.Scan()
		switch {
		case tok == token.EOF:
			return out
		case tok == token.SEMICOLON && lit == "\n":
			continue
		}
		out = append(out, tok.String()+" "+lit)
	}
}

func TestGeneratedCodeIsCurrent(t *testing.T) {
	if testing.Short() {
		t.Skip("loads this package with the go command")
	}
	ctx := context.Background()

	loaded, err := loader.Load(ctx, loader.Config{Dir: "."}, ".")
	require.NoError(t, err)
	require.Len(t, loaded.Snapshot.Types, 1)

	g, err := generator.New()
	require.NoError(t, err)
	res, err := g.Run(ctx, loaded.Snapshot)
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
	require.Len(t, res.Units, 1)

	unit := res.Units[0]
	require.Equal(t, "zz_generated.notify.person.go", unit.FileName)
	onDisk, err := os.ReadFile(unit.FileName)
	require.NoError(t, err)
	assert.Equal(t, tokens(t, unit.Source), tokens(t, onDisk),
		"%s is out of date, run go generate ./internal/fixture", unit.FileName)
}
