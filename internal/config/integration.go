package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// configFileName is the config file looked up in the config directory.
const configFileName = "config.yaml"

var (
	globalConfig   *Config      //nolint:gochecknoglobals // Singleton pattern for configuration
	globalConfigMu sync.RWMutex //nolint:gochecknoglobals // Protects globalConfig
)

// SetGlobalConfig replaces the global configuration.
func SetGlobalConfig(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the global configuration, initializing it to the
// defaults if nothing has been loaded.
func GetGlobalConfig() *Config {
	globalConfigMu.RLock()
	cfg := globalConfig
	globalConfigMu.RUnlock()
	if cfg != nil {
		return cfg
	}

	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	if globalConfig == nil {
		globalConfig = New()
	}
	return globalConfig
}

// ResetGlobalConfigForTest clears the global config for testing purposes.
func ResetGlobalConfigForTest() {
	SetGlobalConfig(nil)
}

// GetConfigDir returns the datagrid configuration directory: $DATAGRID_HOME
// when set, otherwise ~/.datagrid.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".datagrid"), nil
}

// ResolvePath picks the config file to load. It checks (in order):
//  1. flagValue (--config)
//  2. DATAGRID_CONFIG
//  3. config.yaml in the config directory, when it exists
//
// An empty result means no config file applies and defaults are used.
// Explicit paths are returned even when the file is missing so Load can report it.
func ResolvePath(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, nil
	}

	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, configFileName)
	if _, err = os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("checking config %s: %w", path, err)
	}
	return path, nil
}

// LoadGlobal resolves, loads and installs the global configuration.
func LoadGlobal(flagValue string) (*Config, error) {
	path, err := ResolvePath(flagValue)
	if err != nil {
		return nil, err
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	SetGlobalConfig(cfg)
	return cfg, nil
}
