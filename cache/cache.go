// Package cache keeps the last emitted unit per observable type so that
// unchanged declarations are not rendered again.
//
// Reuse requires equal hashes and structural equality; a hash match alone
// is never trusted. Entries produced by a pass are staged in a Batch and
// become visible only when the pass commits, so an abandoned pass leaves the
// cache at its last-known-good state.
package cache

import (
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/teranos/notifygen/emit"
	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/model"
)

// DefaultSize bounds the number of remembered types.
const DefaultSize = 4096

var (
	lookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifygen_cache_lookups_total",
		Help: "Incremental cache lookups by result",
	}, []string{"result"})

	commitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifygen_cache_committed_entries_total",
		Help: "Entries committed at the end of successful passes",
	})

	discardsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifygen_cache_discarded_entries_total",
		Help: "Staged entries dropped because their pass did not complete",
	})
)

// Entry is the remembered output for one declaration.
type Entry struct {
	Decl model.ObservableType
	Hash uint64
	Unit emit.Unit
}

// Cache maps type identity to the last committed entry. Safe for concurrent
// lookups from the workers of one pass.
type Cache struct {
	entries *lru.Cache[string, Entry]
}

// New returns a cache holding at most size entries.
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, Entry](size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create incremental cache")
	}
	return &Cache{entries: entries}, nil
}

// Lookup returns the cached unit for decl if the entry under its identity
// was produced from an equal declaration.
func (c *Cache) Lookup(decl model.ObservableType) (emit.Unit, bool) {
	entry, ok := c.entries.Get(decl.Identity())
	if !ok {
		lookupsTotal.WithLabelValues("miss").Inc()
		return emit.Unit{}, false
	}
	if entry.Hash != decl.Hash() || !entry.Decl.Equal(decl) {
		lookupsTotal.WithLabelValues("stale").Inc()
		return emit.Unit{}, false
	}
	lookupsTotal.WithLabelValues("hit").Inc()
	return entry.Unit, true
}

// Len reports the number of committed entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.entries.Purge()
}

// Begin starts staging entries for one pass.
func (c *Cache) Begin() *Batch {
	return &Batch{cache: c}
}

// Batch collects the entries of one pass. Stage is safe for concurrent use.
type Batch struct {
	cache *Cache

	mu      sync.Mutex
	entries []Entry
	done    bool
}

// Stage records the unit emitted for decl.
func (b *Batch) Stage(decl model.ObservableType, unit emit.Unit) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done {
		return
	}
	b.entries = append(b.entries, Entry{Decl: decl, Hash: decl.Hash(), Unit: unit})
}

// Commit publishes the staged entries and returns how many there were.
// Later calls do nothing.
func (b *Batch) Commit() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done {
		return 0
	}
	b.done = true
	for _, e := range b.entries {
		b.cache.entries.Add(e.Decl.Identity(), e)
	}
	n := len(b.entries)
	b.entries = nil
	commitsTotal.Add(float64(n))
	return n
}

// Discard drops the staged entries. Later calls do nothing.
func (b *Batch) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.done {
		return
	}
	b.done = true
	discardsTotal.Add(float64(len(b.entries)))
	b.entries = nil
}
