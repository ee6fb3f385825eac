package commands

import (
	"os"
	"path/filepath"

	"speakbox/internal/core/config"
	"speakbox/internal/core/history"
	"speakbox/internal/core/speak"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	DataDir    string
	APIKey     string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// History is the synthesis history store
	History history.Store

	// Client is the synthesis backend client
	Client *speak.Client
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "speakbox", "config.yaml")
}

// DefaultDataDir returns the default data directory using XDG_DATA_HOME.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "speakbox")
}
