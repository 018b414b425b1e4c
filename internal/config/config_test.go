package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/SegwitHunter/pkg/generator"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "segwithunter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
prefix: C0F
suffix: ee
threads: 4
stats_interval: 250ms
output: ""
log_format: json
metrics_addr: 127.0.0.1:9108
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "C0F", cfg.Prefix)
	assert.Equal(t, "ee", cfg.Suffix)
	assert.Equal(t, 4, cfg.Threads)
	assert.Equal(t, Interval(250*time.Millisecond), cfg.StatsInterval)
	assert.Empty(t, cfg.Output)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel, "unset keys keep defaults")
	assert.Equal(t, "127.0.0.1:9108", cfg.MetricsAddr)
}

func TestLoad_BareSeconds(t *testing.T) {
	cfg, err := Load(writeFile(t, "prefix: a\nstats_interval: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, Interval(2*time.Second), cfg.StatsInterval)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, generator.ErrConfig)

	_, err = Load(writeFile(t, "prefix: a\nnetwork: eth\n"))
	assert.ErrorIs(t, err, generator.ErrConfig)

	_, err = Load(writeFile(t, "prefix: a\nstats_interval: soon\n"))
	assert.ErrorIs(t, err, generator.ErrConfig)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Prefix = "C0F"
	cfg.Suffix = "EE"
	cfg.Threads = 2

	search, err := cfg.Validate()
	require.NoError(t, err)
	assert.Equal(t, &generator.Config{
		Prefix:        "c0f",
		Suffix:        "ee",
		Workers:       2,
		StatsInterval: DefaultStatsInterval,
	}, search)
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no pattern", func(c *Config) {}, "must specify prefix or suffix"},
		{"bad prefix char", func(c *Config) { c.Prefix = "c0b" }, "'b' at position 2"},
		{"letter o", func(c *Config) { c.Prefix = "cof"; c.Suffix = "ee" }, "'o' at position 1"},
		{"bad suffix char", func(c *Config) { c.Prefix = "a"; c.Suffix = "1" }, "'1' at position 0"},
		{"prefix too long", func(c *Config) { c.Prefix = strings.Repeat("q", 39) }, "at most 38"},
		{"inconsistent overlap", func(c *Config) {
			c.Prefix = strings.Repeat("q", 30)
			c.Suffix = strings.Repeat("p", 10)
		}, "overlap"},
		{"zero threads", func(c *Config) { c.Prefix = "a"; c.Threads = 0 }, "threads"},
		{"too many threads", func(c *Config) { c.Prefix = "a"; c.Threads = MaxWorkers + 1 }, "threads"},
		{"zero interval", func(c *Config) { c.Prefix = "a"; c.StatsInterval = 0 }, "stats interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			search, err := cfg.Validate()
			require.Nil(t, search)
			require.ErrorIs(t, err, generator.ErrConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseInterval(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"5", 5 * time.Second},
		{" 1.5 ", 1500 * time.Millisecond},
		{"500ms", 500 * time.Millisecond},
		{"1m", time.Minute},
	}
	for _, tt := range tests {
		got, err := ParseInterval(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, Interval(tt.want), got, tt.in)
	}

	_, err := ParseInterval("fast")
	assert.ErrorIs(t, err, generator.ErrConfig)
}

func TestInterval_FlagValue(t *testing.T) {
	var i Interval
	require.NoError(t, i.Set("3"))
	assert.Equal(t, "3s", i.String())
	assert.Equal(t, "interval", i.Type())
	assert.Error(t, i.Set("x"))
}
