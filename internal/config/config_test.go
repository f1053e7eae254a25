package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.oecd.org/els/family/HM1-3-Housing-tenures.xlsx", cfg.Source.URL)
	assert.Equal(t, 60*time.Second, cfg.Source.Timeout)
	assert.Equal(t, "HM1-3-Housing-tenures.xlsx", cfg.Source.Filename)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "both", cfg.Logging.Output)
	assert.Equal(t, 4, cfg.Charts.NetworkWorkers)
	assert.InDelta(t, 0.2, cfg.Charts.EdgeThreshold, 1e-9)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TENURE_LOGGING_LEVEL", "debug")
	t.Setenv("TENURE_CHARTS_NETWORK_WORKERS", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 8, cfg.Charts.NetworkWorkers)
}

func TestLoadRejectsInvalidEnv(t *testing.T) {
	t.Setenv("TENURE_LOGGING_LEVEL", "verbose")

	_, err := Load()
	assert.Error(t, err)
}

func TestMergeConfigs(t *testing.T) {
	tests := []struct {
		name string
		file Config
		env  Config
		want Config
	}{
		{
			name: "file fills unset env fields",
			file: Config{
				Source:  SourceConfig{URL: "https://mirror.example/tenures.xlsx"},
				Logging: LoggingConfig{Level: "warn"},
			},
			env: Config{
				Source: SourceConfig{Timeout: 30 * time.Second},
			},
			want: Config{
				Source:  SourceConfig{URL: "https://mirror.example/tenures.xlsx", Timeout: 30 * time.Second},
				Logging: LoggingConfig{Level: "warn"},
			},
		},
		{
			name: "env wins when the variable is set",
			file: Config{
				Charts: ChartsConfig{NetworkWorkers: 16, EdgeThreshold: 0.5},
			},
			env: Config{
				Charts: ChartsConfig{NetworkWorkers: 2},
			},
			want: Config{
				Charts: ChartsConfig{NetworkWorkers: 2, EdgeThreshold: 0.5},
			},
		},
		{
			name: "zero file values never clobber",
			file: Config{},
			env: Config{
				Logging: LoggingConfig{Output: "console"},
			},
			want: Config{
				Logging: LoggingConfig{Output: "console"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.name == "env wins when the variable is set" {
				t.Setenv("TENURE_CHARTS_NETWORK_WORKERS", "2")
			}
			got := mergeConfigs(tt.file, tt.env)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing URL",
			mutate:  func(c *Config) { c.Source.URL = "" },
			wantErr: true,
		},
		{
			name:    "malformed URL",
			mutate:  func(c *Config) { c.Source.URL = "not-a-url" },
			wantErr: true,
		},
		{
			name:    "unknown log output",
			mutate:  func(c *Config) { c.Logging.Output = "syslog" },
			wantErr: true,
		},
		{
			name:    "zero workers",
			mutate:  func(c *Config) { c.Charts.NetworkWorkers = 0 },
			wantErr: true,
		},
		{
			name:    "threshold above one",
			mutate:  func(c *Config) { c.Charts.EdgeThreshold = 1.5 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
