// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-sticky-notes/internal/service"
	"github.com/MKhiriev/go-sticky-notes/internal/tui"
)

// Client defines the minimal lifecycle contract for runnable client
// applications.
type Client interface {
	// Run starts the client application and blocks until exit.
	Run(ctx context.Context) error
}

// UI is the terminal front end driven by [App].
type UI interface {
	// Confirm asks a yes/no question before the desk starts.
	Confirm(ctx context.Context, title, question string) (bool, error)

	// Run shows the notes until the user quits.
	Run(ctx context.Context, registry service.NoteRegistry, session tui.Session) error
}
