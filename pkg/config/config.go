// Package config loads and saves the application configuration. The settings
// cover the store root, network behavior, the registry override, the git
// binary and output/logging preferences; every component receives its values
// explicitly from here, nothing reads ambient state.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/srcstash/srcstash/pkg/errors"
	"github.com/srcstash/srcstash/pkg/fsutil"
)

// Config represents the application configuration.
type Config struct {
	Settings Settings `yaml:"settings"`
}

// Settings represents general application settings.
type Settings struct {
	// StoreDir is the root directory for cached package sources.
	StoreDir string `yaml:"store_dir,omitempty"`

	// Registry overrides the registry base URL. Empty falls back to the
	// .npmrc chain and finally the public registry.
	Registry string `yaml:"registry,omitempty"`

	// GitBinary names the git executable; empty means "git" from PATH.
	GitBinary string `yaml:"git_binary,omitempty"`

	// Network settings.
	HTTPTimeout   time.Duration `yaml:"http_timeout"`
	MaxConcurrent int           `yaml:"max_concurrent_fetches"`

	// Output settings.
	OutputFormat string `yaml:"output_format"` // text, json
	LogLevel     string `yaml:"log_level"`     // error, warn, info, debug
}

// Default configuration values.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// DefaultMaxConcurrent is the default maximum number of parallel
	// acquisitions.
	DefaultMaxConcurrent = 5

	// YAMLIndent is the number of spaces to use for YAML indentation.
	YAMLIndent = 2
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	storeDir, err := fsutil.GetStoreDir()
	if err != nil {
		// Last resort when no user cache dir can be determined.
		storeDir = filepath.Join(".", "srcstash-store")
	}

	return &Config{
		Settings: Settings{
			StoreDir:      storeDir,
			HTTPTimeout:   DefaultHTTPTimeout,
			MaxConcurrent: DefaultMaxConcurrent,
			OutputFormat:  "text",
			LogLevel:      "info",
		},
	}
}

// LoadConfig loads configuration from a file. A missing file yields the
// defaults, not an error.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	file, err := os.Open(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrapf(err, "failed to open config file: %s", path)
	}
	defer func() { _ = file.Close() }()

	return LoadConfigFromReader(file)
}

// LoadConfigFromReader loads configuration from an io.Reader.
func LoadConfigFromReader(reader io.Reader) (*Config, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config data")
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.Wrap(errors.ErrConfigParse, err.Error())
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrConfigValidation, err.Error())
	}

	return &config, nil
}

// applyDefaults fills unset values with their defaults.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Settings.StoreDir == "" {
		c.Settings.StoreDir = defaults.Settings.StoreDir
	}
	if c.Settings.HTTPTimeout == 0 {
		c.Settings.HTTPTimeout = defaults.Settings.HTTPTimeout
	}
	if c.Settings.MaxConcurrent == 0 {
		c.Settings.MaxConcurrent = defaults.Settings.MaxConcurrent
	}
	if c.Settings.OutputFormat == "" {
		c.Settings.OutputFormat = defaults.Settings.OutputFormat
	}
	if c.Settings.LogLevel == "" {
		c.Settings.LogLevel = defaults.Settings.LogLevel
	}
}

// SaveConfig saves configuration to a file, replacing it atomically.
func (c *Config) SaveConfig(path string) error {
	if path == "" {
		return errors.ErrEmptyConfigPath
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidConfigPath, err.Error())
	}

	if err := os.MkdirAll(filepath.Dir(absPath), fsutil.DirModeDefault); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	tempPath := absPath + ".tmp"
	file, err := os.OpenFile(tempPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fsutil.FileModeDefault)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(YAMLIndent)

	if err := encoder.Encode(c); err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return errors.Wrap(err, "failed to encode config")
	}

	_ = encoder.Close()
	_ = file.Close()

	if err := os.Rename(tempPath, absPath); err != nil {
		_ = os.Remove(tempPath)
		return errors.Wrap(err, "failed to replace config file")
	}

	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.ErrConfigValidation
	}
	if c.Settings.HTTPTimeout < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "http_timeout cannot be negative")
	}
	if c.Settings.MaxConcurrent < 0 {
		return errors.Wrap(errors.ErrConfigValidation, "max_concurrent_fetches cannot be negative")
	}
	switch c.Settings.OutputFormat {
	case "", "text", "json":
	default:
		return errors.Wrapf(errors.ErrConfigValidation, "unknown output format %q", c.Settings.OutputFormat)
	}
	return nil
}

// ToMap flattens the settings for display.
func (c *Config) ToMap() map[string]string {
	return map[string]string{
		"store_dir":              c.Settings.StoreDir,
		"registry":               c.Settings.Registry,
		"git_binary":             c.Settings.GitBinary,
		"http_timeout":           c.Settings.HTTPTimeout.String(),
		"max_concurrent_fetches": strconv.Itoa(c.Settings.MaxConcurrent),
		"output_format":          c.Settings.OutputFormat,
		"log_level":              c.Settings.LogLevel,
	}
}

// Keys returns the settable configuration keys in stable order.
func (c *Config) Keys() []string {
	m := c.ToMap()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetValue sets a configuration value by key.
func (c *Config) SetValue(key, value string) error {
	switch key {
	case "store_dir":
		c.Settings.StoreDir = value
	case "registry":
		c.Settings.Registry = value
	case "git_binary":
		c.Settings.GitBinary = value
	case "http_timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %s", key, value)
		}
		c.Settings.HTTPTimeout = d
	case "max_concurrent_fetches":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %s", key, value)
		}
		c.Settings.MaxConcurrent = n
	case "output_format":
		c.Settings.OutputFormat = value
	case "log_level":
		c.Settings.LogLevel = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return c.Validate()
}

// GetValue returns a configuration value by key.
func (c *Config) GetValue(key string) (string, error) {
	value, ok := c.ToMap()[key]
	if !ok {
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
	return value, nil
}

// GetDefaultConfigPath returns the default location of the configuration file.
func GetDefaultConfigPath() (string, error) {
	return fsutil.GetDefaultConfigPath()
}
