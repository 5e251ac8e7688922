package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppBuildInfo(t *testing.T) {
	tests := []struct {
		name        string
		info        AppBuildInfo
		wantVersion string
		wantDate    string
		wantCommit  string
	}{
		{
			name:        "all values set",
			info:        NewAppBuildInfo("v1.0.0", "2026-01-02", "abc123"),
			wantVersion: "v1.0.0",
			wantDate:    "2026-01-02",
			wantCommit:  "abc123",
		},
		{
			name:        "blank values",
			info:        NewAppBuildInfo("", "  ", ""),
			wantVersion: NotAvailable,
			wantDate:    NotAvailable,
			wantCommit:  NotAvailable,
		},
		{
			name:        "zero value",
			info:        AppBuildInfo{},
			wantVersion: NotAvailable,
			wantDate:    NotAvailable,
			wantCommit:  NotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantVersion, tt.info.BuildVersion())
			assert.Equal(t, tt.wantDate, tt.info.BuildDate())
			assert.Equal(t, tt.wantCommit, tt.info.BuildCommit())
			assert.Equal(t, []string{
				"Build version: " + tt.wantVersion,
				"Build date: " + tt.wantDate,
				"Build commit: " + tt.wantCommit,
			}, tt.info.Lines())
		})
	}
}

func TestAppBuildInfo_String(t *testing.T) {
	info := NewAppBuildInfo("v1.0.0", "", "abc123")
	assert.Equal(t, "stickynotes v1.0.0 (abc123, N/A)", info.String())
}
