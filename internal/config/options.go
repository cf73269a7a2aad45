package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options are the user-facing knobs of a compilation run, loaded from an
// optional yaml file. Zero values mean defaults.
type Options struct {
	// Report is the path of the sqlite compilation report; empty disables it.
	Report string `yaml:"report"`
	// Verbose prints every applied rewrite to stdout.
	Verbose bool `yaml:"verbose"`
	// MaxPasses overrides MaxRewritePasses when positive.
	MaxPasses int `yaml:"max_passes"`
}

// RewriteBudget returns the effective per-expression pass bound.
func (o Options) RewriteBudget() int {
	if o.MaxPasses > 0 {
		return o.MaxPasses
	}
	return MaxRewritePasses
}

// LoadOptions reads options from a yaml file.
func LoadOptions(path string) (Options, error) {
	var opts Options
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, fmt.Errorf("cannot read options file: %w", err)
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("invalid options file %s: %w", path, err)
	}
	return opts, nil
}
