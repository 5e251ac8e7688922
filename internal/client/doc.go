// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It opens the configured note store, resolves startup problems with the
// user (an unreachable store, a corrupt notes file), wires the registry and
// the notes file watcher, and runs the terminal UI until exit. Pending
// changes are flushed before the store is closed.
package client
