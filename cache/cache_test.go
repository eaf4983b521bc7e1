package cache

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/notifygen/emit"
	"github.com/teranos/notifygen/model"
)

func decl(name string) model.ObservableType {
	return model.ObservableType{
		Scope:       []string{"example.com/app"},
		PackageName: "app",
		Name:        name,
		Fields: []model.Field{
			{StorageName: "_a", AccessorName: "A", Type: "int", Primitive: true},
			{StorageName: "_b", AccessorName: "B", Type: "string"},
		},
	}
}

func unit(d model.ObservableType, src string) emit.Unit {
	return emit.Unit{Identity: d.Identity(), FileName: "zz_generated.notify.x.go", Source: []byte(src)}
}

func TestLookupAfterCommit(t *testing.T) {
	c, err := New(8)
	require.NoError(t, err)

	d := decl("Person")
	_, ok := c.Lookup(d)
	assert.False(t, ok)

	b := c.Begin()
	b.Stage(d, unit(d, "v1"))

	// staged entries are invisible until commit
	_, ok = c.Lookup(d)
	assert.False(t, ok)

	assert.Equal(t, 1, b.Commit())
	got, ok := c.Lookup(d)
	require.True(t, ok)
	assert.Equal(t, "v1", string(got.Source))
	assert.Equal(t, 1, c.Len())

	assert.Equal(t, 0, b.Commit())
}

func TestLookupRequiresEquality(t *testing.T) {
	c, err := New(8)
	require.NoError(t, err)

	d := decl("Person")
	b := c.Begin()
	b.Stage(d, unit(d, "v1"))
	b.Commit()

	// Same identity, same hash (only the first field feeds it), different
	// declaration: must not be reused.
	changed := decl("Person")
	changed.Fields[1].Type = "[]byte"
	require.Equal(t, d.Hash(), changed.Hash())

	before := testutil.ToFloat64(lookupsTotal.WithLabelValues("stale"))
	_, ok := c.Lookup(changed)
	assert.False(t, ok)
	assert.Equal(t, before+1, testutil.ToFloat64(lookupsTotal.WithLabelValues("stale")))

	// Equal declaration built separately is reused.
	_, ok = c.Lookup(decl("Person"))
	assert.True(t, ok)
}

func TestDiscardKeepsLastKnownGood(t *testing.T) {
	c, err := New(8)
	require.NoError(t, err)

	d := decl("Person")
	first := c.Begin()
	first.Stage(d, unit(d, "v1"))
	first.Commit()

	changed := decl("Person")
	changed.Fields = changed.Fields[:1]
	second := c.Begin()
	second.Stage(changed, unit(changed, "v2"))
	second.Discard()
	second.Discard()
	assert.Equal(t, 0, second.Commit())

	_, ok := c.Lookup(changed)
	assert.False(t, ok)
	got, ok := c.Lookup(d)
	require.True(t, ok)
	assert.Equal(t, "v1", string(got.Source))
}

func TestCommitReplacesEntry(t *testing.T) {
	c, err := New(8)
	require.NoError(t, err)

	d := decl("Person")
	b := c.Begin()
	b.Stage(d, unit(d, "v1"))
	b.Commit()

	changed := decl("Person")
	changed.ImplementChanging = true
	b = c.Begin()
	b.Stage(changed, unit(changed, "v2"))
	b.Commit()

	_, ok := c.Lookup(d)
	assert.False(t, ok)
	got, ok := c.Lookup(changed)
	require.True(t, ok)
	assert.Equal(t, "v2", string(got.Source))
	assert.Equal(t, 1, c.Len())
}

func TestEviction(t *testing.T) {
	c, err := New(2)
	require.NoError(t, err)

	b := c.Begin()
	for _, name := range []string{"A", "B", "C"} {
		d := decl(name)
		b.Stage(d, unit(d, name))
	}
	b.Commit()

	assert.Equal(t, 2, c.Len())
	_, ok := c.Lookup(decl("A"))
	assert.False(t, ok)
	_, ok = c.Lookup(decl("C"))
	assert.True(t, ok)

	c.Purge()
	assert.Equal(t, 0, c.Len())
}

func TestConcurrentStage(t *testing.T) {
	c, err := New(0)
	require.NoError(t, err)

	b := c.Begin()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := decl(string(rune('A' + i%26)))
			d.Scope = []string{"example.com/app", string(rune('a' + i/26))}
			b.Stage(d, unit(d, "x"))
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, b.Commit())
	assert.Equal(t, 50, c.Len())
}
