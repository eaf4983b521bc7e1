// Package config holds notifygen settings. Values come from defaults, a
// notifygen.toml found by searching upward from the working directory, and
// NOTIFYGEN_* environment variables, in increasing precedence.
package config

import "time"

// Config is the complete notifygen configuration.
type Config struct {
	Generate GenerateConfig `mapstructure:"generate" toml:"generate" json:"generate" yaml:"generate"`
	Cache    CacheConfig    `mapstructure:"cache" toml:"cache" json:"cache" yaml:"cache"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch" json:"watch" yaml:"watch"`
	Log      LogConfig      `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// GenerateConfig controls a generation pass.
type GenerateConfig struct {
	// Workers bounds concurrent type processing; 0 means GOMAXPROCS.
	Workers int `mapstructure:"workers" toml:"workers" json:"workers" yaml:"workers"`
	// FilePrefix starts the name of every generated file.
	FilePrefix string `mapstructure:"file_prefix" toml:"file_prefix" json:"file_prefix" yaml:"file_prefix"`
	// BuildTags are passed to the Go build system while loading.
	BuildTags []string `mapstructure:"build_tags" toml:"build_tags" json:"build_tags" yaml:"build_tags"`
	// Exclude holds doublestar patterns of package directories to skip.
	Exclude []string `mapstructure:"exclude" toml:"exclude" json:"exclude" yaml:"exclude"`
}

// CacheConfig sizes the incremental cache.
type CacheConfig struct {
	Size int `mapstructure:"size" toml:"size" json:"size" yaml:"size"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" json:"debounce_ms" yaml:"debounce_ms"`
	// MaxWaitMS forces a pass during continuous changes; 0 disables it.
	MaxWaitMS int `mapstructure:"max_wait_ms" toml:"max_wait_ms" json:"max_wait_ms" yaml:"max_wait_ms"`
	// MaxPassesPerMinute caps the pass rate; 0 means unlimited.
	MaxPassesPerMinute int `mapstructure:"max_passes_per_minute" toml:"max_passes_per_minute" json:"max_passes_per_minute" yaml:"max_passes_per_minute"`
	// MetricsAddr serves Prometheus metrics when set, e.g. ":9464".
	MetricsAddr string `mapstructure:"metrics_addr" toml:"metrics_addr" json:"metrics_addr" yaml:"metrics_addr"`
}

// Debounce returns the quiet period before a pass starts.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// MaxWait returns the longest a pass is delayed by continuous changes.
func (w WatchConfig) MaxWait() time.Duration {
	return time.Duration(w.MaxWaitMS) * time.Millisecond
}

// LogConfig controls log output.
type LogConfig struct {
	JSON  bool   `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Theme string `mapstructure:"theme" toml:"theme" json:"theme" yaml:"theme"`
}
