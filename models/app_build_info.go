// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// NotAvailable replaces build metadata that was not injected at link time.
const NotAvailable = "N/A"

// AppBuildInfo carries immutable build-time metadata embedded into binaries.
//
// Values are injected with -ldflags "-X main.buildVersion=..." and shown on
// start and in the about page of the desk.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
// Blank values are reported as [NotAvailable].
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: orNotAvailable(buildVersion),
		buildDate:    orNotAvailable(buildDate),
		buildCommit:  orNotAvailable(buildCommit),
	}
}

func (a AppBuildInfo) BuildVersion() string {
	return orNotAvailable(a.buildVersion)
}

func (a AppBuildInfo) BuildDate() string {
	return orNotAvailable(a.buildDate)
}

func (a AppBuildInfo) BuildCommit() string {
	return orNotAvailable(a.buildCommit)
}

// Lines returns the "Label: value" lines printed on start.
func (a AppBuildInfo) Lines() []string {
	return []string{
		fmt.Sprintf("Build version: %s", a.BuildVersion()),
		fmt.Sprintf("Build date: %s", a.BuildDate()),
		fmt.Sprintf("Build commit: %s", a.BuildCommit()),
	}
}

func (a AppBuildInfo) String() string {
	return fmt.Sprintf("stickynotes %s (%s, %s)", a.BuildVersion(), a.BuildCommit(), a.BuildDate())
}

func orNotAvailable(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return NotAvailable
	}
	return v
}
