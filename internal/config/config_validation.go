// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or one of the ErrInvalid*
// errors wrapped with the offending value otherwise.
func (cfg *StructuredConfig) validate() error {
	switch cfg.Storage.Driver {
	case DriverJSON:
		if strings.TrimSpace(cfg.Storage.Files.NotesPath) == "" {
			return fmt.Errorf("%w: empty notes path", ErrInvalidStorageConfigs)
		}
	case DriverSQLite:
		if strings.TrimSpace(cfg.Storage.DB.DSN) == "" {
			return fmt.Errorf("%w: empty dsn", ErrInvalidStorageConfigs)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.Driver)
	}

	if cfg.Autosave.Debounce < 0 {
		return fmt.Errorf("%w: negative debounce %s", ErrInvalidAutosaveConfigs, cfg.Autosave.Debounce)
	}

	if cfg.UI.PreviewLines <= 0 || cfg.UI.PreviewWidth <= 0 {
		return ErrInvalidUIConfigs
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLogConfigs, err)
	}

	return nil
}

// SaveDebounce returns the effective debounce interval: zero when saves are
// synchronous.
func (cfg *StructuredConfig) SaveDebounce() time.Duration {
	if cfg.Autosave.Sync {
		return 0
	}
	return cfg.Autosave.Debounce
}

// WatchEnabled reports whether the notes file watcher should run.
func (cfg *StructuredConfig) WatchEnabled() bool {
	return !cfg.Watch.Disabled && cfg.Storage.Driver == DriverJSON
}
