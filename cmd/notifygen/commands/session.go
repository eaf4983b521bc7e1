package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/teranos/notifygen/cache"
	"github.com/teranos/notifygen/config"
	"github.com/teranos/notifygen/diag"
	"github.com/teranos/notifygen/emit"
	"github.com/teranos/notifygen/errors"
	"github.com/teranos/notifygen/generator"
	"github.com/teranos/notifygen/host"
	"github.com/teranos/notifygen/loader"
	"github.com/teranos/notifygen/logger"
	"github.com/teranos/notifygen/writer"
)

// session holds what one command invocation shares between passes.
type session struct {
	dir    string
	cfg    *config.Config
	gen    *generator.Generator
	writer *writer.Writer
}

// configLocation resolves the --dir and --config flags.
func configLocation(cmd *cobra.Command) (dir, path string, err error) {
	dir, _ = cmd.Flags().GetString("dir")
	path, _ = cmd.Flags().GetString("config")
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", "", errors.Wrap(err, "failed to resolve working directory")
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", "", errors.Wrapf(err, "failed to resolve %s", dir)
	}
	return abs, path, nil
}

func newSession(cmd *cobra.Command) (*session, error) {
	dir, configPath, err := configLocation(cmd)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(dir, configPath)
	if err != nil {
		return nil, errors.WithHint(err, "check notifygen.toml and NOTIFYGEN_* environment variables")
	}
	if cfg.Log.Theme != "" && os.Getenv("NOTIFYGEN_LOG_THEME") == "" {
		logger.SetTheme(cfg.Log.Theme)
	}

	c, err := cache.New(cfg.Cache.Size)
	if err != nil {
		return nil, err
	}
	gen, err := generator.New(
		generator.WithEmitter(emit.New(emit.WithFilePrefix(cfg.Generate.FilePrefix))),
		generator.WithCache(c),
		generator.WithWorkers(cfg.Generate.Workers),
	)
	if err != nil {
		return nil, err
	}

	return &session{
		dir:    dir,
		cfg:    cfg,
		gen:    gen,
		writer: writer.New(afero.NewOsFs(), cfg.Generate.FilePrefix),
	}, nil
}

func (s *session) loaderConfig() loader.Config {
	return loader.Config{
		Dir:             s.dir,
		BuildTags:       s.cfg.Generate.BuildTags,
		Exclude:         s.cfg.Generate.Exclude,
		GeneratedPrefix: s.cfg.Generate.FilePrefix,
	}
}

// passResult is the outcome of loading and generating once.
type passResult struct {
	result *generator.Result
	// dirs maps scanned package paths to directories; nil for snapshot input.
	dirs map[string]string
}

// pass loads the packages matching patterns, or decodes snapshotPath when
// set, and runs the generator.
func (s *session) pass(ctx context.Context, snapshotPath string, patterns []string) (*passResult, error) {
	var (
		snap *host.Snapshot
		dirs map[string]string
	)
	if snapshotPath != "" {
		decoded, err := readSnapshot(snapshotPath)
		if err != nil {
			return nil, err
		}
		snap = decoded
	} else {
		loaded, err := loader.Load(ctx, s.loaderConfig(), patterns...)
		if err != nil {
			return nil, err
		}
		snap = loaded.Snapshot
		dirs = make(map[string]string, len(loaded.Packages))
		for path, pkg := range loaded.Packages {
			dirs[path] = pkg.Dir
		}
	}

	res, err := s.gen.Run(ctx, snap)
	if err != nil {
		return nil, err
	}
	return &passResult{result: res, dirs: dirs}, nil
}

func readSnapshot(path string) (*host.Snapshot, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open snapshot %s", path)
		}
		defer f.Close()
		r = f
	}
	snap, err := host.Decode(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read snapshot %s", path)
	}
	return snap, nil
}

// relative shortens positions below the session directory.
func (s *session) relative(d diag.Diagnostic) diag.Diagnostic {
	if rel, err := filepath.Rel(s.dir, d.Pos.File); err == nil && filepath.IsAbs(d.Pos.File) {
		d.Pos.File = rel
	}
	return d
}

// printDiagnostics writes diagnostics to w and returns an error when any of
// them is an error.
func (s *session) printDiagnostics(w io.Writer, ds []diag.Diagnostic) error {
	for _, d := range ds {
		d = s.relative(d)
		if logger.JSONOutput {
			fmt.Fprintln(w, diag.Plain(d))
			continue
		}
		fmt.Fprintln(w, diag.Format(d))
	}
	counts := diag.Count(ds)
	if n := counts[diag.SeverityError]; n > 0 {
		return errors.Newf("generation reported %d error(s)", n)
	}
	return nil
}

func summary(w io.Writer, stats generator.Stats, touched int) {
	pterm.Success.WithWriter(w).Printfln("%d observable type(s), %d unit(s) (%d reused), %d file(s) changed in %s",
		stats.Observable, stats.Units, stats.Hits, touched, stats.Duration.Round(time.Millisecond))
}
