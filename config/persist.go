package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/teranos/notifygen/errors"
)

// Default returns the configuration used when no file or environment
// override is present.
func Default() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	return LoadWithViper(v)
}

// Marshal renders cfg as toml, json or yaml.
func Marshal(cfg *Config, format string) ([]byte, error) {
	switch format {
	case "toml":
		data, err := toml.Marshal(cfg)
		return data, errors.Wrap(err, "failed to marshal config to TOML")
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config to JSON")
		}
		return append(data, '\n'), nil
	case "yaml":
		data, err := yaml.Marshal(cfg)
		return data, errors.Wrap(err, "failed to marshal config to YAML")
	}
	return nil, errors.WithHint(errors.Newf("unsupported format: %s", format),
		"supported formats: toml, json, yaml")
}

// WriteDefault writes the default configuration to dir/notifygen.toml and
// returns the path. An existing file is only replaced when force is set.
func WriteDefault(dir string, force bool) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return "", errors.WithHint(errors.Newf("%s already exists", path),
			"use --force to overwrite it")
	}

	cfg, err := Default()
	if err != nil {
		return "", err
	}
	data, err := Marshal(cfg, "toml")
	if err != nil {
		return "", err
	}
	header := []byte("# notifygen configuration\n# Environment variables NOTIFYGEN_<SECTION>_<KEY> override these values.\n\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write %s", path)
	}
	return path, nil
}
