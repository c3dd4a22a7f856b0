package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigLocation = "~/.cloudbytes.yaml"
	ConfigEnvVar          = "CLOUDBYTES_CONFIG"
	LoggingEnvVar         = "CLOUDBYTES_LOGGING"
)

type Config struct {
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`

	S3 struct {
		DefaultRegion string `yaml:"default_region"`
	} `yaml:"s3"`

	HTTP struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"http"`
}

func Default() *Config {
	cfg := &Config{}
	cfg.Logging.Level = "ERROR"
	cfg.Logging.Format = "text"
	cfg.S3.DefaultRegion = "us-east-1"
	cfg.HTTP.Timeout = 5 * time.Minute
	return cfg
}

// Load reads the config file named by CLOUDBYTES_CONFIG, or ~/.cloudbytes.yaml.
// A missing file yields the defaults. CLOUDBYTES_LOGGING overrides the log level.
func Load() (*Config, error) {
	configLocation := DefaultConfigLocation
	if fromEnv := os.Getenv(ConfigEnvVar); fromEnv != "" {
		configLocation = fromEnv
	}
	configPath, err := homedir.Expand(configLocation)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("could not parse %s: %w", configPath, err)
		}
	}
	if level := os.Getenv(LoggingEnvVar); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.Logging.Level))); err != nil {
		return slog.LevelError
	}
	return level
}
