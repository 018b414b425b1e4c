// Package config loads and validates the search configuration. Values come
// from built-in defaults, an optional YAML file and command-line flags, in
// that order of precedence.
package config

import (
	"fmt"
	"math"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
	"github.com/Amr-9/SegwitHunter/pkg/generator/bitcoin"
)

const (
	// MaxWorkers bounds the thread count.
	MaxWorkers = 1024

	DefaultStatsInterval = 5 * time.Second
	DefaultOutput        = "wallet.txt"
)

// Config is the full CLI configuration.
type Config struct {
	Prefix        string   `yaml:"prefix"`
	Suffix        string   `yaml:"suffix"`
	Threads       int      `yaml:"threads"`
	StatsInterval Interval `yaml:"stats_interval"`
	Output        string   `yaml:"output"` // empty disables the result file
	LogLevel      string   `yaml:"log_level"`
	LogFormat     string   `yaml:"log_format"`
	MetricsAddr   string   `yaml:"metrics_addr"` // empty disables /metrics
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Threads:       runtime.NumCPU(),
		StatsInterval: Interval(DefaultStatsInterval),
		Output:        DefaultOutput,
		LogLevel:      "info",
		LogFormat:     "console",
	}
}

// Load reads a YAML file over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: read %s: %w", generator.ErrConfig, path, err)
	}
	if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.DisallowUnknownField()); err != nil {
		return cfg, fmt.Errorf("%w: parse %s: %w", generator.ErrConfig, path, err)
	}
	return cfg, nil
}

// Validate checks every field and returns the search configuration with
// patterns folded to lowercase.
func (c *Config) Validate() (*generator.Config, error) {
	prefix, suffix, err := bitcoin.ValidatePatterns(c.Prefix, c.Suffix)
	if err != nil {
		return nil, err
	}
	if c.Threads < 1 || c.Threads > MaxWorkers {
		return nil, fmt.Errorf("%w: threads must be between 1 and %d, got %d",
			generator.ErrConfig, MaxWorkers, c.Threads)
	}
	if c.StatsInterval <= 0 {
		return nil, fmt.Errorf("%w: stats interval must be positive, got %s",
			generator.ErrConfig, time.Duration(c.StatsInterval))
	}
	return &generator.Config{
		Prefix:        prefix,
		Suffix:        suffix,
		Workers:       c.Threads,
		StatsInterval: time.Duration(c.StatsInterval),
	}, nil
}

// Interval is a duration that also accepts a bare number of seconds.
type Interval time.Duration

// ParseInterval parses "5", "1.5" (seconds) or a Go duration such as "500ms".
func ParseInterval(s string) (Interval, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(secs) && !math.IsInf(secs, 0) {
		return Interval(secs * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: stats interval %q: want seconds or a duration like 5s",
			generator.ErrConfig, s)
	}
	return Interval(d), nil
}

// UnmarshalYAML accepts a YAML number of seconds or a duration string.
func (i *Interval) UnmarshalYAML(b []byte) error {
	var raw any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case int:
		*i = Interval(time.Duration(v) * time.Second)
	case uint64:
		*i = Interval(time.Duration(v) * time.Second)
	case int64:
		*i = Interval(time.Duration(v) * time.Second)
	case float64:
		*i = Interval(v * float64(time.Second))
	case string:
		parsed, err := ParseInterval(v)
		if err != nil {
			return err
		}
		*i = parsed
	default:
		return fmt.Errorf("%w: stats interval: unsupported value %v", generator.ErrConfig, raw)
	}
	return nil
}

// String implements pflag.Value.
func (i *Interval) String() string {
	return time.Duration(*i).String()
}

// Set implements pflag.Value.
func (i *Interval) Set(s string) error {
	parsed, err := ParseInterval(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Type implements pflag.Value.
func (i *Interval) Type() string {
	return "interval"
}
