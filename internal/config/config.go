// Package config reads and writes the fatura.yaml project file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fatura-dev/fatura/internal/statement"
)

// Config represents the top-level fatura.yaml configuration.
type Config struct {
	Files FilesConfig `yaml:"files"`
	Year  YearConfig  `yaml:"year"`
}

// FilesConfig names the statement files relative to the workspace.
type FilesConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// YearConfig controls how bare day/month dates are completed. Rows
// whose source file name contains Marker get MarkerYear; everything
// else gets DefaultYear.
type YearConfig struct {
	Marker      string `yaml:"marker"`
	MarkerYear  int    `yaml:"marker_year"`
	DefaultYear int    `yaml:"default_year"`
}

// Load reads a fatura.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default() *Config {
	rule := statement.DefaultYearRule()
	return &Config{
		Files: FilesConfig{
			Input:  "gastos_consolidados.csv",
			Output: "gastos_consolidados_final.csv",
		},
		Year: YearConfig{
			Marker:      rule.Marker,
			MarkerYear:  rule.MarkerYear,
			DefaultYear: rule.DefaultYear,
		},
	}
}

// YearRule converts the year section to the form the enrichment
// pipeline consumes.
func (c *Config) YearRule() statement.YearRule {
	return statement.YearRule{
		Marker:      c.Year.Marker,
		MarkerYear:  c.Year.MarkerYear,
		DefaultYear: c.Year.DefaultYear,
	}
}
