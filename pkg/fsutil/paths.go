package fsutil

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the name of the application used in paths.
	AppName = "srcstash"
)

// GetCacheDir returns the platform-specific cache directory for the application.
// On Linux: ~/.cache/srcstash/
// On macOS: ~/Library/Caches/srcstash/
// On Windows: %LOCALAPPDATA%\srcstash\
func GetCacheDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, AppName), nil
}

// GetStoreDir returns the default root directory for cached package sources.
// Format: <cache_dir>/store/
func GetStoreDir() (string, error) {
	cacheDir, err := GetCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "store"), nil
}

// GetConfigDir returns the platform-specific configuration directory for the
// application.
// On Linux: ~/.config/srcstash/
// On macOS: ~/Library/Application Support/srcstash/
// On Windows: %APPDATA%\srcstash\
func GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// GetDefaultConfigPath returns the default location of the configuration file.
// Format: <config_dir>/config.yaml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.yaml"), nil
}
