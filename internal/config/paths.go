package config

import (
	"os"
	"path/filepath"
)

// Environment variables naming files and directories.
const (
	EnvConfigFile  = "TPA_SEED_CONFIG"
	EnvTemplateDir = "TPA_SEED_TEMPLATE_DIR"
	EnvInstallCmd  = "TPA_SEED_INSTALL_COMMAND"
)

// Paths contains standard filesystem paths for tpa-seed.
type Paths struct {
	// ConfigFile is the path to the config file (~/.tpa-seed/config.yaml).
	ConfigFile string

	// HomeDir is the tpa-seed home directory (~/.tpa-seed).
	HomeDir string
}

// DefaultPaths returns the default paths for tpa-seed.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".tpa-seed")

	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		HomeDir:    home,
	}, nil
}

// GetConfigFile returns the config file path.
// If TPA_SEED_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv(EnvConfigFile); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
