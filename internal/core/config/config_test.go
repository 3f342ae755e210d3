package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "/data")
	require.NoError(t, err)

	assert.Equal(t, "git", cfg.GitPath)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, 1000, cfg.Summarize.DiffLimit)
	assert.Equal(t, 5000, cfg.Summarize.ChunkSize)
	assert.Equal(t, 6, cfg.Summarize.MaxChunks)
	assert.Equal(t, "autocommit", cfg.Cron.Marker)
	assert.Equal(t, "/data", cfg.DataDir)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
remote: upstream
ssh_key: /home/u/.ssh/id_ed25519
author:
  name: Auto Committer
  email: auto@example.com
summarize:
  model: gpt-4o
  diff_limit: 2000
  chunk_size: 4000
  max_chunks: 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path, "/data")
	require.NoError(t, err)

	assert.Equal(t, "upstream", cfg.Remote)
	assert.Equal(t, "/home/u/.ssh/id_ed25519", cfg.SSHKey)
	assert.Equal(t, "Auto Committer", cfg.Author.Name)
	assert.Equal(t, "gpt-4o", cfg.Summarize.Model)
	assert.Equal(t, 2000, cfg.Summarize.DiffLimit)
	assert.Equal(t, 4000, cfg.Summarize.ChunkSize)
	assert.Equal(t, 3, cfg.Summarize.MaxChunks)

	// Unset fields keep their defaults.
	assert.Equal(t, "git", cfg.GitPath)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Summarize.BaseURL)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("remote: [unclosed"), 0o644))

	_, err := Load(path, "/data")
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty git path",
			mutate:  func(c *Config) { c.GitPath = "" },
			wantErr: "git_path",
		},
		{
			name:    "empty remote",
			mutate:  func(c *Config) { c.Remote = "" },
			wantErr: "remote",
		},
		{
			name:    "zero diff limit",
			mutate:  func(c *Config) { c.Summarize.DiffLimit = 0 },
			wantErr: "diff_limit",
		},
		{
			name:    "negative chunk size",
			mutate:  func(c *Config) { c.Summarize.ChunkSize = -1 },
			wantErr: "chunk_size",
		},
		{
			name:    "zero max chunks",
			mutate:  func(c *Config) { c.Summarize.MaxChunks = 0 },
			wantErr: "max_chunks",
		},
		{
			name:    "empty marker",
			mutate:  func(c *Config) { c.Cron.Marker = "" },
			wantErr: "marker",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
