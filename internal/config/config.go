// Package config loads compiler settings from an optional YAML file.
// Every field has a working default; a missing file is not an error.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings holds run configuration.
type Settings struct {
	// OutputDir is where compiled documents are written.
	OutputDir string `yaml:"output_dir"`

	// HistoryDB is the path of the run history database.
	HistoryDB string `yaml:"history_db"`

	// MinHealthScore is the gate applied in CI mode: a compiled overall
	// health score below it fails the run.
	MinHealthScore float64 `yaml:"min_health_score"`

	// Benchmarks overrides the built-in per-dimension peer benchmarks,
	// keyed by dimension code on the 1-5 scale.
	Benchmarks map[string]float64 `yaml:"benchmarks"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		OutputDir:      "output/phase4",
		HistoryDB:      "output/history.db",
		MinHealthScore: 0,
	}
}

// Load reads settings from path. A missing file yields the defaults; an
// empty path skips loading entirely.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	if s.OutputDir == "" {
		s.OutputDir = Default().OutputDir
	}
	if s.HistoryDB == "" {
		s.HistoryDB = Default().HistoryDB
	}
	return s, nil
}

// BenchmarkOverride returns the configured benchmark for a dimension code,
// if any. Safe to call on zero-value Settings.
func (s Settings) BenchmarkOverride(code string) (float64, bool) {
	b, ok := s.Benchmarks[code]
	return b, ok
}
