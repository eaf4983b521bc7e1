package config

import (
	"github.com/spf13/viper"

	"github.com/teranos/notifygen/cache"
	"github.com/teranos/notifygen/emit"
)

// FileName is the project configuration file searched for.
const FileName = "notifygen.toml"

// EnvPrefix prefixes environment overrides, e.g. NOTIFYGEN_CACHE_SIZE.
const EnvPrefix = "NOTIFYGEN"

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("generate.workers", 0) // GOMAXPROCS
	v.SetDefault("generate.file_prefix", emit.DefaultFilePrefix)
	v.SetDefault("generate.build_tags", []string{})
	v.SetDefault("generate.exclude", []string{"**/testdata/**", "vendor/**"})

	v.SetDefault("cache.size", cache.DefaultSize)

	v.SetDefault("watch.debounce_ms", 200)
	v.SetDefault("watch.max_wait_ms", 2000)
	v.SetDefault("watch.max_passes_per_minute", 0)
	v.SetDefault("watch.metrics_addr", "")

	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", "everforest")
}
