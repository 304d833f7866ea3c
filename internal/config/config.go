package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Dataset DatasetConfig `mapstructure:"dataset"`
	GCP     GCPConfig     `mapstructure:"gcp"`
	AWS     AWSConfig     `mapstructure:"aws"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host  string `mapstructure:"host"`
	Port  int    `mapstructure:"port"`
	Debug bool   `mapstructure:"debug"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatasetConfig describes where the product table comes from.
// Source is a local path or a gs://, s3://, http:// or https:// URL.
type DatasetConfig struct {
	Source   string `mapstructure:"source"`
	Encoding string `mapstructure:"encoding"`
	Sheet    string `mapstructure:"sheet"`
	Timeout  int    `mapstructure:"timeout"`
}

// FetchTimeout is the deadline for fetching a remote dataset.
func (d DatasetConfig) FetchTimeout() time.Duration {
	return time.Duration(d.Timeout) * time.Second
}

// GCPConfig holds credentials for gs:// dataset sources
type GCPConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
}

// AWSConfig holds settings for s3:// dataset sources
type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads an optional config.yaml from the working directory and applies
// environment variable overrides (dataset.source -> DATASET_SOURCE).
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Dataset.Source == "" {
		return fmt.Errorf("dataset.source must be set")
	}
	switch strings.ToLower(c.Dataset.Encoding) {
	case "latin1", "iso-8859-1", "utf8", "utf-8":
	default:
		return fmt.Errorf("unsupported dataset.encoding %q", c.Dataset.Encoding)
	}
	if c.Dataset.Timeout <= 0 {
		return fmt.Errorf("dataset.timeout must be positive")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.debug", true)

	v.SetDefault("dataset.source", "brands_data.csv")
	v.SetDefault("dataset.encoding", "latin1")
	v.SetDefault("dataset.sheet", "")
	v.SetDefault("dataset.timeout", 30)

	v.SetDefault("gcp.credentials_file", "")
	v.SetDefault("aws.region", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}
