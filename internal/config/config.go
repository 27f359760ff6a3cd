// Package config loads the strata.yaml settings of the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/strata/pkg/column"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "strata.yaml"

// Config is the structure of a configuration file.
type Config struct {
	Dataset   string    `yaml:"dataset" json:"dataset"`
	LogLevel  string    `yaml:"log_level" json:"log_level"`
	Geometry  Service   `yaml:"geometry" json:"geometry"`
	Transform Service   `yaml:"transform" json:"transform"`
	Cache     Cache     `yaml:"cache" json:"cache"`
	Column    ColumnCfg `yaml:"column" json:"column"`
}

// Service locates an external HTTP service.
type Service struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	Timeout string `yaml:"timeout" json:"timeout"`
}

// Cache configures the depth-conversion cache: redis when an address is set,
// else JSON files under Dir when set, else in-memory.
type Cache struct {
	Dir   string `yaml:"dir" json:"dir"`
	Redis struct {
		Addr     string `yaml:"addr" json:"addr"`
		Password string `yaml:"password" json:"password"`
		DB       int    `yaml:"db" json:"db"`
	} `yaml:"redis" json:"redis"`
	TTL string `yaml:"ttl" json:"ttl"`
}

// ColumnCfg holds the column-building policies.
type ColumnCfg struct {
	Inheritance string  `yaml:"inheritance" json:"inheritance"`
	TieBreak    string  `yaml:"tie_break" json:"tie_break"`
	Tolerance   float64 `yaml:"tolerance" json:"tolerance"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		Dataset:   ".",
		LogLevel:  "info",
		Geometry:  Service{Timeout: "10s"},
		Transform: Service{BaseURL: "https://geodesy.geo.admin.ch", Timeout: "10s"},
		Column:    ColumnCfg{Inheritance: "preceding", TieBreak: "input"},
	}
}

// Load reads a configuration file (YAML or JSON) over the defaults.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if _, err := cfg.ColumnOptions(); err != nil {
		return cfg, err
	}
	for _, d := range []string{cfg.Geometry.Timeout, cfg.Transform.Timeout, cfg.Cache.TTL} {
		if _, err := parseDuration(d); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// ColumnOptions turns the column section into column options.
func (c Config) ColumnOptions() ([]column.Option, error) {
	var opts []column.Option
	if c.Column.Inheritance != "" {
		p, err := column.ParseInheritance(c.Column.Inheritance)
		if err != nil {
			return nil, fmt.Errorf("column.inheritance: %w", err)
		}
		opts = append(opts, column.WithInheritance(p))
	}
	if c.Column.TieBreak != "" {
		tb, err := column.ParseTieBreak(c.Column.TieBreak)
		if err != nil {
			return nil, fmt.Errorf("column.tie_break: %w", err)
		}
		opts = append(opts, column.WithTieBreak(tb))
	}
	if c.Column.Tolerance < 0 {
		return nil, fmt.Errorf("column.tolerance must not be negative")
	}
	if c.Column.Tolerance > 0 {
		opts = append(opts, column.WithTolerance(c.Column.Tolerance))
	}
	return opts, nil
}

// TimeoutDuration returns the parsed timeout (zero when unset).
func (s Service) TimeoutDuration() time.Duration {
	d, _ := parseDuration(s.Timeout)
	return d
}

// TTLDuration returns the parsed cache TTL (zero means no expiry).
func (c Cache) TTLDuration() time.Duration {
	d, _ := parseDuration(c.TTL)
	return d
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	return d, nil
}
