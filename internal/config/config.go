package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete pipeline configuration. Every field has a
// default, so a bare run needs no environment variables or config file.
type Config struct {
	Source  SourceConfig  `yaml:"source" envconfig:"SOURCE"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Charts  ChartsConfig  `yaml:"charts" envconfig:"CHARTS"`
}

// SourceConfig pins the remote workbook and how it is fetched.
type SourceConfig struct {
	URL      string        `yaml:"url" envconfig:"URL" default:"https://www.oecd.org/els/family/HM1-3-Housing-tenures.xlsx" validate:"required,url"`
	Timeout  time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"60s" validate:"required,min=1s"`
	Filename string        `yaml:"filename" envconfig:"FILENAME" default:"HM1-3-Housing-tenures.xlsx" validate:"required"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"both" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/tenure.log" validate:"required"`
}

// ChartsConfig tunes chart rendering.
type ChartsConfig struct {
	// NetworkWorkers bounds the parallel rendering of per-group network
	// diagrams. Groups are independent and write disjoint files.
	NetworkWorkers int `yaml:"network_workers" envconfig:"NETWORK_WORKERS" default:"4" validate:"min=1"`
	// EdgeThreshold is the minimum |r| for an edge to appear in a network
	// diagram.
	EdgeThreshold float64 `yaml:"edge_threshold" envconfig:"EDGE_THRESHOLD" default:"0.2" validate:"min=0,max=1"`
}

// Load loads configuration from environment variables (prefix TENURE) layered
// over an optional YAML file next to the executable.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TENURE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges a file config under an env config: explicit file values
// win only where the env side is unset or still at its zero value.
func mergeConfigs(fileConfig, envConfig Config) Config {
	merged := envConfig

	if fileConfig.Source.URL != "" && os.Getenv("TENURE_SOURCE_URL") == "" {
		merged.Source.URL = fileConfig.Source.URL
	}
	if fileConfig.Source.Timeout != 0 && os.Getenv("TENURE_SOURCE_TIMEOUT") == "" {
		merged.Source.Timeout = fileConfig.Source.Timeout
	}
	if fileConfig.Source.Filename != "" && os.Getenv("TENURE_SOURCE_FILENAME") == "" {
		merged.Source.Filename = fileConfig.Source.Filename
	}
	if fileConfig.Logging.Level != "" && os.Getenv("TENURE_LOGGING_LEVEL") == "" {
		merged.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Output != "" && os.Getenv("TENURE_LOGGING_OUTPUT") == "" {
		merged.Logging.Output = fileConfig.Logging.Output
	}
	if fileConfig.Logging.FilePath != "" && os.Getenv("TENURE_LOGGING_FILE_PATH") == "" {
		merged.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if fileConfig.Charts.NetworkWorkers != 0 && os.Getenv("TENURE_CHARTS_NETWORK_WORKERS") == "" {
		merged.Charts.NetworkWorkers = fileConfig.Charts.NetworkWorkers
	}
	if fileConfig.Charts.EdgeThreshold != 0 && os.Getenv("TENURE_CHARTS_EDGE_THRESHOLD") == "" {
		merged.Charts.EdgeThreshold = fileConfig.Charts.EdgeThreshold
	}

	return merged
}

// validate checks the configuration via struct tags.
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// getConfigFilePath returns the expected config file location, next to the
// executable.
func getConfigFilePath() string {
	paths, err := GetPaths()
	if err != nil {
		return "tenure-config.yml"
	}
	return paths.ConfigFile
}
