package config

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/teranos/notifygen/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Workers: 0 = GOMAXPROCS, negative = invalid
	if c.Generate.Workers < 0 {
		return errors.Newf("generate.workers must be >= 0, got %d", c.Generate.Workers)
	}

	// Generated files must stay recognisable as Go sources of the package
	if c.Generate.FilePrefix == "" {
		return errors.New("generate.file_prefix cannot be empty")
	}
	if strings.ContainsAny(c.Generate.FilePrefix, `/\`) {
		return errors.Newf("generate.file_prefix must be a file name prefix, got %q", c.Generate.FilePrefix)
	}

	for _, p := range c.Generate.Exclude {
		if !doublestar.ValidatePattern(p) {
			return errors.Newf("generate.exclude: invalid pattern %q", p)
		}
	}

	if c.Cache.Size <= 0 {
		return errors.Newf("cache.size must be > 0, got %d", c.Cache.Size)
	}

	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	// Max wait: 0 = disabled, otherwise it cannot undercut the debounce
	if c.Watch.MaxWaitMS < 0 {
		return errors.Newf("watch.max_wait_ms must be >= 0, got %d", c.Watch.MaxWaitMS)
	}
	if c.Watch.MaxWaitMS > 0 && c.Watch.MaxWaitMS < c.Watch.DebounceMS {
		return errors.Newf("watch.max_wait_ms (%d) must be >= watch.debounce_ms (%d)", c.Watch.MaxWaitMS, c.Watch.DebounceMS)
	}
	if c.Watch.MaxPassesPerMinute < 0 {
		return errors.Newf("watch.max_passes_per_minute must be >= 0, got %d", c.Watch.MaxPassesPerMinute)
	}

	return nil
}
