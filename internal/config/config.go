// Package config loads the YAML configuration shared by the CLI and the HTTP server.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/arloliu/potency/assay"
	"github.com/arloliu/potency/format"
)

// Config is the root configuration document.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Export   ExportConfig   `yaml:"export"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Addr         string        `yaml:"addr" validate:"required"`
	ReadTimeout  time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gt=0"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" validate:"gt=0"`
	// RateLimit is the sustained request rate per second; 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`
	RateBurst int     `yaml:"rate_burst" validate:"gte=1"`
}

// AnalysisConfig holds estimator and reader defaults.
type AnalysisConfig struct {
	SlopeTolerance      float64 `yaml:"slope_tolerance" validate:"gte=0"`
	IgnoreUnknownGroups bool    `yaml:"ignore_unknown_groups"`
}

// ExportConfig holds report export defaults.
type ExportConfig struct {
	Compression string `yaml:"compression" validate:"oneof=none zstd s2 lz4"`
	Image       string `yaml:"image" validate:"oneof=png svg"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "text"},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 8 << 20,
			RateLimit:    50,
			RateBurst:    100,
		},
		Analysis: AnalysisConfig{SlopeTolerance: assay.DefaultSlopeTolerance},
		Export:   ExportConfig{Compression: "none", Image: "png"},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads the file at path over the defaults. An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every field constraint.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// CompressionType returns the parsed export compression.
func (c *Config) CompressionType() format.CompressionType {
	ct, err := format.ParseCompressionType(c.Export.Compression)
	if err != nil {
		return format.CompressionNone
	}

	return ct
}

// ImageFormat returns the parsed plot image format.
func (c *Config) ImageFormat() format.ImageFormat {
	img, err := format.ParseImageFormat(c.Export.Image)
	if err != nil {
		return format.ImagePNG
	}

	return img
}
