package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/notifygen/logger"
	"github.com/teranos/notifygen/watch"
	"github.com/teranos/notifygen/writer"
)

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch [packages...]",
	Short: "Regenerate whenever sources change",
	Long: `Generate once, then watch package directories and regenerate after
changes settle. A change during a pass cancels it and starts over. The
incremental cache is kept between passes, so unchanged types are not
rendered again.

Settings:
  watch.debounce_ms   quiet period before a pass (default 200)
  watch.max_wait_ms   longest delay under continuous changes (default 2000)
  watch.max_passes_per_minute  cap on the pass rate (default 0, unlimited)
  watch.metrics_addr  serve Prometheus metrics, e.g. ":9464"

Examples:
  notifygen watch ./...
  NOTIFYGEN_WATCH_METRICS_ADDR=:9464 notifygen watch`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	log := logger.ComponentLogger("watch")

	run := func(ctx context.Context) error {
		p, err := s.pass(ctx, "", args)
		if err != nil {
			return err
		}
		if err := s.printDiagnostics(cmd.ErrOrStderr(), p.result.Diagnostics); err != nil {
			log.Warnw("Pass reported errors", logger.FieldError, err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		changes, err := s.writer.Write(p.result.Units, p.dirs)
		if err != nil {
			return err
		}
		summary(cmd.ErrOrStderr(), p.result.Stats, len(writer.Pending(changes)))
		return nil
	}

	opts := watch.DefaultOptions(s.dir)
	opts.Debounce = s.cfg.Watch.Debounce()
	opts.MaxWait = s.cfg.Watch.MaxWait()
	opts.Exclude = s.cfg.Generate.Exclude
	opts.GeneratedPrefix = s.cfg.Generate.FilePrefix
	opts.MaxPassesPerMinute = s.cfg.Watch.MaxPassesPerMinute
	opts.MetricsAddr = s.cfg.Watch.MetricsAddr

	w, err := watch.New(opts, run)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return w.Run(ctx)
}
