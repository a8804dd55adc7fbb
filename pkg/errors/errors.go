package errors

import "fmt"

// Common error types.
var (
	// Config errors.
	ErrEmptyConfigPath   = fmt.Errorf("config file path cannot be empty")
	ErrInvalidConfigPath = fmt.Errorf("invalid config file path")
	ErrConfigParse       = fmt.Errorf("failed to parse config")
	ErrConfigValidation  = fmt.Errorf("invalid configuration")

	// Store errors.
	ErrStoreDirectory = fmt.Errorf("store directory cannot be empty")
	ErrNotCached      = fmt.Errorf("entry not cached")
	ErrInvalidRef     = fmt.Errorf("invalid package reference")

	// Resolution errors.
	ErrRegistryLookup  = fmt.Errorf("registry lookup failed")
	ErrVersionNotFound = fmt.Errorf("version not found in registry")

	// Project errors.
	ErrNoManifest   = fmt.Errorf("project has no manifest")
	ErrNotInstalled = fmt.Errorf("package not installed in project")

	// Acquisition errors.
	ErrStrategiesExhausted = fmt.Errorf("all download strategies failed")
	ErrSparseCheckoutEmpty = fmt.Errorf("sparse checkout produced no files")
	ErrGitFailed           = fmt.Errorf("git command failed")
)

// Wrap wraps an error with additional context.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
