// Package generator runs one generation pass: from a host snapshot to
// output units and diagnostics.
//
// A pass is a pure function of its snapshot apart from the incremental
// cache, which only changes when the pass completes.
package generator

import (
	"cmp"
	"context"
	"runtime"
	"slices"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/notifygen/cache"
	"github.com/teranos/notifygen/diag"
	"github.com/teranos/notifygen/emit"
	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/extract"
	"github.com/teranos/notifygen/host"
	"github.com/teranos/notifygen/logger"
	"github.com/teranos/notifygen/marker"
)

// Stats summarises a pass.
type Stats struct {
	Types      int
	Observable int
	Units      int
	Hits       int
	Misses     int
	Duration   time.Duration
}

// Result is the output of a pass.
type Result struct {
	// Units are sorted by identity.
	Units []emit.Unit
	// Diagnostics are sorted by position, then code.
	Diagnostics []diag.Diagnostic
	Stats       Stats
}

// HasErrors reports whether any error diagnostic was produced.
func (r *Result) HasErrors() bool {
	return diag.HasErrors(r.Diagnostics)
}

// Generator holds what persists between passes.
type Generator struct {
	emitter *emit.Emitter
	cache   *cache.Cache
	workers int
	logger  *zap.SugaredLogger
	passes  atomic.Int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithEmitter replaces the default emitter.
func WithEmitter(e *emit.Emitter) Option {
	return func(g *Generator) {
		g.emitter = e
	}
}

// WithCache shares an incremental cache across generators.
func WithCache(c *cache.Cache) Option {
	return func(g *Generator) {
		g.cache = c
	}
}

// WithWorkers bounds the number of types processed concurrently.
// Zero or less means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.workers = n
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(g *Generator) {
		g.logger = l
	}
}

// New returns a Generator with a fresh cache unless one is supplied.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	if g.emitter == nil {
		g.emitter = emit.New()
	}
	if g.cache == nil {
		c, err := cache.New(cache.DefaultSize)
		if err != nil {
			return nil, err
		}
		g.cache = c
	}
	if g.workers <= 0 {
		g.workers = runtime.GOMAXPROCS(0)
	}
	if g.logger == nil {
		g.logger = logger.ComponentLogger("generator")
	}
	return g, nil
}

// Emitter returns the emitter used for units.
func (g *Generator) Emitter() *emit.Emitter {
	return g.emitter
}

// Cache returns the incremental cache.
func (g *Generator) Cache() *cache.Cache {
	return g.cache
}

// outcome is what processing one type produced.
type outcome struct {
	unit        *emit.Unit
	diagnostics []diag.Diagnostic
	observable  bool
	hit         bool
}

// Run executes one pass over snap. On cancellation it returns ctx.Err() and
// leaves the cache untouched.
func (g *Generator) Run(ctx context.Context, snap *host.Snapshot) (*Result, error) {
	if snap == nil {
		snap = &host.Snapshot{}
	}
	start := time.Now()
	pass := int(g.passes.Add(1))
	ctx = logger.WithPass(ctx, pass)
	log := g.logger.With(logger.FieldsFromContext(ctx)...)

	batch := g.cache.Begin()
	outcomes := make([]outcome, len(snap.Types))

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(g.workers)
	for i := range snap.Types {
		group.Go(func() error {
			out, err := g.process(gctx, snap.Types[i], batch)
			if err != nil {
				return err
			}
			outcomes[i] = out
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		batch.Discard()
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Debugw("Pass cancelled", logger.FieldError, ctxErr)
			return nil, ctxErr
		}
		return nil, errors.Wrap(err, "generation pass failed")
	}
	if err := ctx.Err(); err != nil {
		batch.Discard()
		return nil, err
	}

	res := &Result{Stats: Stats{Types: len(snap.Types)}}
	for _, out := range outcomes {
		res.Diagnostics = append(res.Diagnostics, out.diagnostics...)
		if out.observable {
			res.Stats.Observable++
		}
		if out.unit == nil {
			continue
		}
		res.Units = append(res.Units, *out.unit)
		if out.hit {
			res.Stats.Hits++
		} else {
			res.Stats.Misses++
		}
	}
	slices.SortFunc(res.Units, func(a, b emit.Unit) int {
		return cmp.Compare(a.Identity, b.Identity)
	})
	diag.Sort(res.Diagnostics)
	res.Stats.Units = len(res.Units)

	batch.Commit()
	res.Stats.Duration = time.Since(start)

	log.Infow("Generation pass complete",
		logger.FieldCount, res.Stats.Observable,
		logger.FieldUnits, res.Stats.Units,
		logger.FieldHits, res.Stats.Hits,
		logger.FieldMisses, res.Stats.Misses,
		logger.FieldDurationMS, res.Stats.Duration.Milliseconds())
	return res, nil
}

// process handles one candidate type. Only cancellation and render
// failures are errors; everything else is a diagnostic.
func (g *Generator) process(ctx context.Context, t host.Type, batch *cache.Batch) (outcome, error) {
	if err := ctx.Err(); err != nil {
		return outcome{}, err
	}
	if !t.Markers.Has(marker.KindObservable) {
		return outcome{}, nil
	}
	out := outcome{observable: true}

	eligible, err := extract.Classify(ctx, t.Fields)
	if err != nil {
		return outcome{}, err
	}

	ds, ok := diag.Check(t, eligible)
	out.diagnostics = ds
	for _, d := range ds {
		g.logger.Debugw("Diagnostic",
			logger.FieldCode, d.Code,
			logger.FieldType, d.Type,
			logger.FieldField, d.Field)
	}
	if !ok {
		return out, nil
	}

	decl, err := extract.Build(ctx, t, eligible)
	if err != nil {
		return outcome{}, err
	}

	unit, hit := g.cache.Lookup(decl)
	if !hit {
		unit, err = g.emitter.Emit(ctx, decl)
		if err != nil {
			return outcome{}, errors.Wrapf(err, "failed to emit %s", decl.Identity())
		}
	}
	batch.Stage(decl, unit)

	out.unit = &unit
	out.hit = hit
	return out, nil
}
