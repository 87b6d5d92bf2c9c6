// SPDX-License-Identifier: MPL-2.0

package build

import (
	"runtime/debug"
	"testing"
	"time"
)

func TestFillFromSettings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		info       Info
		settings   []debug.BuildSetting
		wantCommit string
		wantTime   time.Time
	}{
		{
			name: "fills blank commit and timestamp",
			info: Info{},
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "abc1234"},
				{Key: "vcs.time", Value: "2026-03-01T12:30:00Z"},
			},
			wantCommit: "abc1234",
			wantTime:   time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name: "linker values win",
			info: Info{Commit: "linked", Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
			settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "other"},
				{Key: "vcs.time", Value: "2026-03-01T12:30:00Z"},
			},
			wantCommit: "linked",
			wantTime:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "malformed vcs time is ignored",
			info: Info{},
			settings: []debug.BuildSetting{
				{Key: "vcs.time", Value: "yesterday-ish"},
			},
			wantCommit: "",
			wantTime:   time.Time{},
		},
		{
			name:       "unrelated settings are skipped",
			info:       Info{},
			settings:   []debug.BuildSetting{{Key: "CGO_ENABLED", Value: "0"}},
			wantCommit: "",
			wantTime:   time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			info := tt.info
			fillFromSettings(&info, tt.settings)

			if info.Commit != tt.wantCommit {
				t.Errorf("Commit = %q, want %q", info.Commit, tt.wantCommit)
			}
			if !info.Timestamp.Equal(tt.wantTime) {
				t.Errorf("Timestamp = %v, want %v", info.Timestamp, tt.wantTime)
			}
		})
	}
}

func TestResolveDefaults(t *testing.T) {
	// Not parallel: reads the package-level linker variables.
	info := Resolve()

	if info.Version == "" {
		t.Error("Resolve() returned empty Version")
	}
	if info.BuildNum != BuildNum {
		t.Errorf("BuildNum = %q, want %q", info.BuildNum, BuildNum)
	}
}
