package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a merged
// configuration cannot be used.
var (
	// ErrInvalidStorageConfigs indicates an unknown driver or a missing path
	// or DSN for the selected driver.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAutosaveConfigs indicates a negative debounce interval.
	ErrInvalidAutosaveConfigs = errors.New("invalid autosave configuration")
	// ErrInvalidUIConfigs indicates non-positive preview limits.
	ErrInvalidUIConfigs = errors.New("invalid ui configuration")
	// ErrInvalidLogConfigs indicates an unknown log level.
	ErrInvalidLogConfigs = errors.New("invalid log configuration")
	// ErrInvalidEnvConfigs indicates an environment variable that cannot be
	// converted to its field type.
	ErrInvalidEnvConfigs = errors.New("invalid environment configuration")
)
