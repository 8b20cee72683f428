package types

import (
	"fmt"
	"strings"
)

// Config represents the application configuration that can be loaded from a file
// and overridden by environment variables.
type Config struct {
	Storage          StorageConfig `json:"storage" yaml:"storage" toml:"storage"`
	CloudName        string        `json:"cloud_name" yaml:"cloud_name" toml:"cloud_name"`
	ExpirationDays   int           `json:"expiration_days" yaml:"expiration_days" toml:"expiration_days"`
	OutputDir        string        `json:"output_dir" yaml:"output_dir" toml:"output_dir"`
	DefaultInitiator string        `json:"default_initiator" yaml:"default_initiator" toml:"default_initiator"`
	LogLevel         string        `json:"log_level" yaml:"log_level" toml:"log_level"`
}

// StorageConfig holds the S3-compatible object store settings.
type StorageConfig struct {
	ServerURL          string `json:"server_url" yaml:"server_url" toml:"server_url"`
	AccessKey          string `json:"access_key" yaml:"access_key" toml:"access_key"`
	SecretKey          string `json:"secret_key" yaml:"secret_key" toml:"secret_key"`
	Region             string `json:"region" yaml:"region" toml:"region"`
	Bucket             string `json:"bucket" yaml:"bucket" toml:"bucket"`
	InsecureSkipVerify *bool  `json:"insecure_skip_verify,omitempty" yaml:"insecure_skip_verify,omitempty" toml:"insecure_skip_verify,omitempty"`
}

const (
	DefaultRegion    = "us-east-1"
	DefaultOutputDir = "out"
	DefaultInitiator = "envchecker"
)

// SkipVerify reports whether TLS verification against the store is disabled.
// Unset means disabled, matching how the checker has always talked to its storage.
func (s StorageConfig) SkipVerify() bool {
	if s.InsecureSkipVerify == nil {
		return true
	}
	return *s.InsecureSkipVerify
}

// ExpirationPrefix is the object prefix the bucket expiration rule applies to.
func (c *Config) ExpirationPrefix() string {
	return c.CloudName + "/"
}

// ApplyDefaults fills in values that have a sensible default.
func (c *Config) ApplyDefaults() {
	if c.Storage.Region == "" {
		c.Storage.Region = DefaultRegion
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.DefaultInitiator == "" {
		c.DefaultInitiator = DefaultInitiator
	}
	c.Storage.ServerURL = strings.TrimRight(c.Storage.ServerURL, "/")
}

// Validate checks that everything needed to talk to the store is present.
func (c *Config) Validate() error {
	var missing []string
	if c.Storage.ServerURL == "" {
		missing = append(missing, "STORAGE_SERVER_URL")
	}
	if c.Storage.AccessKey == "" {
		missing = append(missing, "STORAGE_USERNAME")
	}
	if c.Storage.SecretKey == "" {
		missing = append(missing, "STORAGE_PASSWORD")
	}
	if c.Storage.Bucket == "" {
		missing = append(missing, "ENVCHECKER_STORAGE_BUCKET")
	}
	if c.CloudName == "" {
		missing = append(missing, "ENVIRONMENT_CHECKER_CLOUD_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	if c.ExpirationDays <= 0 {
		return fmt.Errorf("%w: expiration days must be positive, got %d", ErrInvalidConfig, c.ExpirationDays)
	}
	return nil
}
