// Package commands implements the autocommit CLI subcommands.
package commands

import (
	"os"
	"path/filepath"

	"github.com/commitbot/autocommit/internal/autocommit"
	"github.com/commitbot/autocommit/internal/core/config"
	"github.com/commitbot/autocommit/internal/core/schedule"
)

// Flags carries global flag values and the collaborators built in the Before
// hook, shared by all commands.
type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string

	// Config is loaded in the Before hook and available to all commands.
	Config *config.Config

	// Service runs the commit pipeline.
	Service *autocommit.Service

	// Registry manages the crontab entries owned by this tool.
	Registry *schedule.Registry
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "autocommit", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "autocommit")
}
