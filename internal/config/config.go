// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Storage drivers accepted by [Storage.Driver].
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// StructuredConfig is the top-level configuration container for the
// stickynotes application. It is populated by merging values from
// environment variables, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Storage selects and configures the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Autosave controls when mutations are flushed to the store.
	Autosave Autosave `envPrefix:"AUTOSAVE_"`

	// Watch controls external change detection on the notes file.
	Watch Watch `envPrefix:"WATCH_"`

	// UI holds presentation settings for the toolbar.
	UI UI `envPrefix:"UI_"`

	// Log configures the file logger.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable.
	JSONFilePath string `env:"CONFIG"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// Driver is one of "json", "sqlite" or "memory".
	// Env: STORAGE_DRIVER
	Driver string `env:"DRIVER"`

	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the JSON document settings.
	Files Files `envPrefix:"FILES_"`
}

// DB holds connection settings for the SQLite backend.
type DB struct {
	// DSN is the SQLite file path or DSN (e.g. "sticky_notes.db").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Files holds settings for the JSON document backend.
type Files struct {
	// NotesPath is the location of the JSON document. Relative paths are
	// resolved against the working directory.
	// Env: STORAGE_FILES_NOTES_PATH
	NotesPath string `env:"NOTES_PATH"`
}

// Autosave controls how mutations reach the store.
type Autosave struct {
	// Debounce is the idle time after the last edit before a content or
	// geometry change is written. Create and delete are always written
	// immediately.
	// Env: AUTOSAVE_DEBOUNCE
	Debounce time.Duration `env:"DEBOUNCE"`

	// Sync forces every mutation to be written before the call returns,
	// ignoring Debounce.
	// Env: AUTOSAVE_SYNC
	Sync bool `env:"SYNC"`
}

// Watch controls the notes file watcher.
type Watch struct {
	// Disabled turns the watcher off. The watcher only runs for the json
	// driver.
	// Env: WATCH_DISABLED
	Disabled bool `env:"DISABLED"`
}

// UI holds toolbar presentation settings.
type UI struct {
	// PreviewLines is the number of plain-text lines used for titles and
	// previews.
	// Env: UI_PREVIEW_LINES
	PreviewLines int `env:"PREVIEW_LINES"`

	// PreviewWidth caps a preview at this many terminal cells.
	// Env: UI_PREVIEW_WIDTH
	PreviewWidth int `env:"PREVIEW_WIDTH"`
}

// Log configures the file logger. The terminal belongs to the UI, so logs
// never go to stdout.
type Log struct {
	// Path of the log file.
	// Env: LOG_PATH
	Path string `env:"PATH"`

	// Level is a zerolog level name ("debug", "info", ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`
}

// Defaults returns the configuration used for every field no other source
// sets.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Storage: Storage{
			Driver: DriverJSON,
			DB:     DB{DSN: "sticky_notes.db"},
			Files:  Files{NotesPath: "sticky_notes_data.json"},
		},
		Autosave: Autosave{Debounce: 500 * time.Millisecond},
		UI:       UI{PreviewLines: 5, PreviewWidth: 120},
		Log:      Log{Path: "stickynotes.log", Level: "info"},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (earlier sources win for non-zero fields):
//  1. Environment variables
//  2. JSON file (path resolved from the CONFIG environment variable)
//  3. Built-in defaults
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withJSON().
		withDefaults().
		build()
}
