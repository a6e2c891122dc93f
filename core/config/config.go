package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	XMP            bool   `yaml:"xmp" json:"xmp"`
	JSON           bool   `yaml:"json" json:"json"`
	Listen         string `yaml:"listen" json:"listen"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes" json:"max_upload_bytes"`
	LogLevel       string `yaml:"log_level" json:"log_level"`
}

const (
	DefaultListen         = "127.0.0.1:8080"
	DefaultMaxUploadBytes = 32 << 20
)

func DefaultConfig() *Config {
	return &Config{
		XMP:            false,
		JSON:           false,
		Listen:         DefaultListen,
		MaxUploadBytes: DefaultMaxUploadBytes,
		LogLevel:       "info",
	}
}

func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.MaxUploadBytes < 0 {
		return &ValidationError{Field: "max_upload_bytes", Message: "must not be negative"}
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &ValidationError{Field: "log_level", Message: "unknown level " + c.LogLevel}
	}

	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	return nil
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
