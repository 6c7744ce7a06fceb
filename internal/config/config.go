// Package config loads the optional `.sansscript.yaml` project config the
// CLI reads from the current working directory: REPL prompt text, a
// prefer_diacritic flag (parsed and stored; no command reads it), and a
// default search path for `dhavayati`/`run` script includes.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the shape of `.sansscript.yaml`. All fields are optional;
// zero values fall back to the CLI's built-in defaults.
type Config struct {
	Prompt          string   `yaml:"prompt"`
	PreferDiacritic bool     `yaml:"prefer_diacritic"`
	IncludePaths    []string `yaml:"include_paths"`
}

// Default returns the configuration used when no `.sansscript.yaml` is
// present.
func Default() Config {
	return Config{Prompt: "sansscript> "}
}

// Load reads and parses path. A missing file is not an error: it
// returns Default() unchanged, since `.sansscript.yaml` is optional.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "sansscript> "
	}
	return cfg, nil
}
