package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds greenspectre configuration loaded from .greenspectre.yaml.
type Config struct {
	Profile  string  `yaml:"profile"`
	Region   string  `yaml:"region"`
	SkipCost bool    `yaml:"skip_cost"`
	Format   string  `yaml:"format"`
	NoColor  bool    `yaml:"no_color"`
	Exclude  Exclude `yaml:"exclude"`
}

// Exclude defines instances to leave out of the utilization analysis.
type Exclude struct {
	InstanceIDs []string `yaml:"instance_ids"`
	Tags        []string `yaml:"tags"`
}

// ParseTags converts tag strings ("Key=Value" or "Key") into a map.
// Key-only entries have an empty string value, meaning "match any value".
func (e Exclude) ParseTags() map[string]string {
	if len(e.Tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(e.Tags))
	for _, s := range e.Tags {
		if k, v, ok := strings.Cut(s, "="); ok {
			m[k] = v
		} else {
			m[s] = ""
		}
	}
	return m
}

// Matches reports whether an instance with the given id and tags is excluded.
func (e Exclude) Matches(id string, tags map[string]string) bool {
	for _, excluded := range e.InstanceIDs {
		if excluded == id {
			return true
		}
	}
	for k, v := range e.ParseTags() {
		got, ok := tags[k]
		if !ok {
			continue
		}
		if v == "" || got == v {
			return true
		}
	}
	return false
}

// Empty reports whether no exclusion rule is configured.
func (e Exclude) Empty() bool {
	return len(e.InstanceIDs) == 0 && len(e.Tags) == 0
}

// Load searches for .greenspectre.yaml or .greenspectre.yml in the given directory
// and returns the parsed config. Returns an empty Config if no file is found.
func Load(dir string) (Config, error) {
	candidates := []string{
		filepath.Join(dir, ".greenspectre.yaml"),
		filepath.Join(dir, ".greenspectre.yml"),
	}

	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}

		var cfg Config
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
		return cfg, nil
	}

	return Config{}, nil
}
