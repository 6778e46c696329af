// Package paths resolves the configuration and data directory locations
// for the partsbin CLI.
package paths

import (
	"os"
	"path/filepath"
)

// CWD-relative directory names. Partsbin keeps a workshop's configuration
// and inventory data next to where the tool is run.
const (
	DefaultConfigDirName = ".partsbin"
	DefaultDataDirName   = ".partsbin-db"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "PARTSBIN_CONFIG_DIR"
	EnvDataDir   = "PARTSBIN_DATA_DIR"
)

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > PARTSBIN_CONFIG_DIR env > $(CWD)/.partsbin.
// Relative overrides are made absolute.
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return defaultDir(DefaultConfigDirName)
}

// ResolveDataDir returns the data directory following the precedence
// chain: flag > config.yaml value > PARTSBIN_DATA_DIR env >
// $(CWD)/.partsbin-db.
func ResolveDataDir(flag, configYAMLValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configYAMLValue != "" {
		return filepath.Abs(configYAMLValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return defaultDir(DefaultDataDirName)
}

func defaultDir(name string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, name), nil
}
