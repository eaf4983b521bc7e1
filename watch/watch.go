// Package watch reruns generation when Go sources change.
//
// Bursts of file events are debounced into one pass. A pass that is still
// running when the next burst settles is cancelled, and the new pass starts
// once it has returned, so passes never overlap.
package watch

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/romdo/go-debounce"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/notifygen/config"
	"github.com/teranos/notifygen/emit"
	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/logger"
)

var passesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "notifygen_watch_passes_total",
	Help: "Generation passes started by file changes, by outcome",
}, []string{"result"})

// RunFunc performs one generation pass. It must return promptly once ctx
// is cancelled.
type RunFunc func(ctx context.Context) error

// Options configures a Watcher.
type Options struct {
	Root            string
	Debounce        time.Duration
	MaxWait         time.Duration
	Exclude         []string
	GeneratedPrefix string
	// MaxPassesPerMinute delays passes beyond this rate; 0 means unlimited.
	MaxPassesPerMinute int
	// MetricsAddr serves /metrics when set.
	MetricsAddr string
}

// DefaultOptions returns sensible defaults for root.
func DefaultOptions(root string) Options {
	return Options{
		Root:            root,
		Debounce:        200 * time.Millisecond,
		MaxWait:         2 * time.Second,
		GeneratedPrefix: emit.DefaultFilePrefix,
	}
}

// Watcher triggers passes from file system events.
type Watcher struct {
	opts    Options
	run     RunFunc
	fsw     *fsnotify.Watcher
	logger  *zap.SugaredLogger
	trigger func()
	stop    func()
	limiter *rate.Limiter

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a watcher. Nothing is watched until Run.
func New(opts Options, run RunFunc) (*Watcher, error) {
	if opts.Root == "" {
		return nil, errors.New("watch root cannot be empty")
	}
	if opts.GeneratedPrefix == "" {
		opts.GeneratedPrefix = emit.DefaultFilePrefix
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	w := &Watcher{
		opts:   opts,
		run:    run,
		fsw:    fsw,
		logger: logger.ComponentLogger("watch"),
	}
	if opts.MaxWait > 0 {
		w.trigger, w.stop = debounce.NewWithMaxWait(opts.Debounce, opts.MaxWait, w.startPass)
	} else {
		w.trigger, w.stop = debounce.New(opts.Debounce, w.startPass)
	}
	if opts.MaxPassesPerMinute > 0 {
		w.limiter = rate.NewLimiter(rate.Limit(float64(opts.MaxPassesPerMinute)/60.0), 1)
	}
	return w, nil
}

// Run watches until ctx is cancelled. One pass runs immediately.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()
	defer w.stop()

	w.mu.Lock()
	w.ctx = ctx
	w.mu.Unlock()

	if err := w.addRecursive(w.opts.Root); err != nil {
		return err
	}
	if w.opts.MetricsAddr != "" {
		srv := w.serveMetrics()
		defer shutdown(srv)
	}

	w.logger.Infow("Watching for changes", logger.FieldDir, w.opts.Root)
	w.startPass()

	for {
		select {
		case <-ctx.Done():
			w.wait()
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				w.wait()
				return nil
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := w.addRecursive(event.Name); err != nil {
					w.logger.Warnw("Failed to watch new directory", logger.FieldDir, event.Name, logger.FieldError, err)
				}
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debugw("Change detected", logger.FieldFile, event.Name, "op", event.Op.String())
			w.trigger()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				w.wait()
				return nil
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

// Trigger schedules a pass as if a file had changed.
func (w *Watcher) Trigger() {
	w.trigger()
}

// startPass cancels the running pass, if any, and starts a new one after it
// has returned.
func (w *Watcher) startPass() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.ctx == nil || w.ctx.Err() != nil {
		return
	}

	prevCancel, prevDone := w.cancel, w.done
	if prevCancel != nil {
		prevCancel()
	}

	ctx, cancel := context.WithCancel(w.ctx)
	done := make(chan struct{})
	w.cancel, w.done = cancel, done

	go func() {
		defer close(done)
		defer cancel()
		if prevDone != nil {
			<-prevDone
		}
		if w.limiter != nil {
			if err := w.limiter.Wait(ctx); err != nil {
				passesTotal.WithLabelValues("cancelled").Inc()
				return
			}
		}
		if ctx.Err() != nil {
			passesTotal.WithLabelValues("cancelled").Inc()
			return
		}
		err := w.run(ctx)
		switch {
		case err == nil:
			passesTotal.WithLabelValues("ok").Inc()
		case errors.Is(err, context.Canceled):
			passesTotal.WithLabelValues("cancelled").Inc()
			w.logger.Debugw("Pass superseded")
		default:
			passesTotal.WithLabelValues("error").Inc()
			w.logger.Errorw("Pass failed", logger.FieldError, err)
		}
	}()
}

// wait blocks until the latest pass has returned.
func (w *Watcher) wait() {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

// relevant reports whether an event can change generation input.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(event.Name)
	if base == config.FileName {
		return true
	}
	if !strings.HasSuffix(base, ".go") || strings.HasPrefix(base, w.opts.GeneratedPrefix) {
		return false
	}
	return !w.excluded(filepath.Dir(event.Name))
}

func (w *Watcher) excluded(dir string) bool {
	rel, err := filepath.Rel(w.opts.Root, dir)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, p := range w.opts.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// addRecursive watches dir and its subdirectories, skipping hidden and
// excluded ones.
func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if path != w.opts.Root && w.excluded(path) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (w *Watcher) serveMetrics() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{
		Addr:              w.opts.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			w.logger.Errorw("Metrics server failed", logger.FieldAddress, w.opts.MetricsAddr, logger.FieldError, err)
		}
	}()
	w.logger.Infow("Serving metrics", logger.FieldAddress, w.opts.MetricsAddr)
	return srv
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
}
