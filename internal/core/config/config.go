// Package config handles configuration loading and validation for autocommit.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CredentialVar is the environment variable holding the summarization API key.
const CredentialVar = "OPENAI_API_KEY"

// ErrMissingCredential is returned when an operation requires the
// summarization API key and none is configured.
var ErrMissingCredential = errors.New("missing credential: " + CredentialVar + " is not set")

// Config holds the application configuration.
type Config struct {
	GitPath   string          `yaml:"git_path"`
	Remote    string          `yaml:"remote"`
	SSHKey    string          `yaml:"ssh_key"`
	Author    Author          `yaml:"author"`
	Summarize SummarizeConfig `yaml:"summarize"`
	Cron      CronConfig      `yaml:"cron"`

	// DataDir is set by the caller, not from the config file.
	DataDir string `yaml:"-"`

	// Credential is the summarization API key, read from the environment by
	// the entry point. It is never read from the config file so the key does
	// not end up on disk twice.
	Credential string `yaml:"-"`
}

// Author is an optional commit identity override. When empty, git falls back
// to the repository or global user configuration.
type Author struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// SummarizeConfig bounds the commit message synthesis.
type SummarizeConfig struct {
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
	DiffLimit int    `yaml:"diff_limit"`
	ChunkSize int    `yaml:"chunk_size"`
	MaxChunks int    `yaml:"max_chunks"`
}

// CronConfig controls how registry entries are recognized in the crontab.
type CronConfig struct {
	// Marker is the substring identifying crontab lines owned by this tool.
	Marker string `yaml:"marker"`
}

// Default returns the configuration defaults applied before loading.
func Default() *Config {
	return &Config{
		GitPath: "git",
		Remote:  "origin",
		Summarize: SummarizeConfig{
			BaseURL:   "https://api.openai.com/v1",
			Model:     "gpt-4o-mini",
			DiffLimit: 1000,
			ChunkSize: 5000,
			MaxChunks: 6,
		},
		Cron: CronConfig{
			Marker: "autocommit",
		},
	}
}

// Load reads the config file at path, applies defaults, and validates the
// result. A missing config file is not an error; defaults are used.
func Load(path, dataDir string) (*Config, error) {
	cfg := Default()
	cfg.DataDir = dataDir

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file, defaults apply.
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.GitPath == "" {
		return errors.New("git_path must not be empty")
	}
	if c.Remote == "" {
		return errors.New("remote must not be empty")
	}
	if c.Summarize.DiffLimit <= 0 {
		return fmt.Errorf("summarize.diff_limit must be positive, got %d", c.Summarize.DiffLimit)
	}
	if c.Summarize.ChunkSize <= 0 {
		return fmt.Errorf("summarize.chunk_size must be positive, got %d", c.Summarize.ChunkSize)
	}
	if c.Summarize.MaxChunks <= 0 {
		return fmt.Errorf("summarize.max_chunks must be positive, got %d", c.Summarize.MaxChunks)
	}
	if c.Cron.Marker == "" {
		return errors.New("cron.marker must not be empty")
	}
	return nil
}
