// Package config loads application configuration from an optional YAML file
// with environment variable overrides. Environment always wins so deployments
// can keep secrets out of the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig controls the relational store connection.
type DatabaseConfig struct {
	Driver          string `yaml:"driver"`
	DSN             string `yaml:"dsn"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
	FilePrefix string `yaml:"file_prefix"`
}

// AuthConfig controls bearer token verification.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

// TextGenConfig points at the external text-generation collaborator.
type TextGenConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// BlobStoreConfig points at the external blob-storage collaborator.
type BlobStoreConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// TranscriberConfig points at the external audio-transcription collaborator.
type TranscriberConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

// Config is the full application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Logging     LoggingConfig     `yaml:"logging"`
	Auth        AuthConfig        `yaml:"auth"`
	TextGen     TextGenConfig     `yaml:"textgen"`
	BlobStore   BlobStoreConfig   `yaml:"blobstore"`
	Transcriber TranscriberConfig `yaml:"transcriber"`
}

// Load reads config.yaml when present, then applies environment overrides.
func Load() (*Config, error) {
	return LoadFromPath(os.Getenv("CONFIG_PATH"))
}

// LoadFromPath loads configuration from a specific file. An empty path falls
// back to "config.yaml"; a missing file is not an error.
func LoadFromPath(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("server port %d out of range", cfg.Server.Port)
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server:   ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database: DatabaseConfig{Driver: "postgres", MaxOpenConns: 10, MaxIdleConns: 5, ConnMaxLifetime: 300},
		Logging:  LoggingConfig{Level: "info", Format: "text", Output: "stderr"},
	}
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "SERVER_PORT")

	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_URL")
	setInt(&cfg.Database.MaxOpenConns, "DATABASE_MAX_OPEN_CONNS")
	setInt(&cfg.Database.MaxIdleConns, "DATABASE_MAX_IDLE_CONNS")

	setString(&cfg.Logging.Level, "LOG_LEVEL")
	setString(&cfg.Logging.Format, "LOG_FORMAT")
	setString(&cfg.Logging.Output, "LOG_OUTPUT")

	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")

	setString(&cfg.TextGen.URL, "TEXTGEN_URL")
	setString(&cfg.TextGen.APIKey, "TEXTGEN_API_KEY")
	setString(&cfg.TextGen.Model, "TEXTGEN_MODEL")

	setString(&cfg.BlobStore.URL, "BLOBSTORE_URL")
	setString(&cfg.BlobStore.APIKey, "BLOBSTORE_API_KEY")

	setString(&cfg.Transcriber.URL, "TRANSCRIBER_URL")
	setString(&cfg.Transcriber.APIKey, "TRANSCRIBER_API_KEY")
}

func setString(dst *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
