// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"strings"

	"github.com/MKhiriev/go-sticky-notes/models"
)

func renderBuildInfoWindow(info models.AppBuildInfo, storePath string) string {
	var b strings.Builder

	b.WriteString("Application: Sticky Notes\n")
	b.WriteString("Version: ")
	b.WriteString(info.BuildVersion())
	b.WriteString("\n")
	b.WriteString("Date: ")
	b.WriteString(info.BuildDate())
	b.WriteString("\n")
	b.WriteString("Commit: ")
	b.WriteString(info.BuildCommit())
	b.WriteString("\n")
	b.WriteString("Notes: ")
	b.WriteString(valueOrNA(storePath))

	return renderPage("ABOUT", b.String(), "esc: back")
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return models.NotAvailable
	}
	return v
}
