// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"

	"github.com/MKhiriev/go-sticky-notes/internal/app"
	"github.com/MKhiriev/go-sticky-notes/internal/service"
	"github.com/MKhiriev/go-sticky-notes/internal/store"
)

// humanizeStoreError turns registry and store errors into a status line.
func humanizeStoreError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, store.ErrSaveFailed):
		return app.PrefixSaveFailed + err.Error()
	case errors.Is(err, store.ErrCorruptStore):
		return app.PrefixCorrupt + err.Error()
	case errors.Is(err, store.ErrStoreUnavailable):
		return app.PrefixUnavailable + err.Error()
	case errors.Is(err, service.ErrNoteNotFound):
		return app.MsgNoteNotFound
	}
	return err.Error()
}
