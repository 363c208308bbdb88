// Package config loads project-level settings from symgraph.yml.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from symgraph.yml.
// Zero values mean "use the built-in default".
type ProjectConfig struct {
	Languages        []string `yaml:"languages,omitempty"`
	ExcludeDirs      []string `yaml:"excludeDirs,omitempty"`
	Strict           bool     `yaml:"strict,omitempty"`
	CollapseParallel bool     `yaml:"collapseParallel,omitempty"`
	DBPath           string   `yaml:"dbPath,omitempty"`
	Verbose          bool     `yaml:"verbose,omitempty"`
}

// Load attempts to read symgraph.yml or symgraph.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"symgraph.yml", "symgraph.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
