// SPDX-License-Identifier: MPL-2.0

package build

import (
	"runtime/debug"
	"time"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// BuildNum is the monotonic build counter (set via -ldflags).
	BuildNum = "0"
	// Commit is the git commit hash (set via -ldflags).
	Commit = ""
	// Date is the build timestamp in RFC 3339 form (set via -ldflags).
	Date = ""
)

// Info is a resolved snapshot of the binary's build identity. The zero
// Timestamp means no build time could be determined.
type Info struct {
	Version   string
	BuildNum  string
	Commit    string
	Timestamp time.Time
}

// Resolve combines the ldflags variables with debug.ReadBuildInfo. Linker
// values win; build-info VCS settings fill whatever the linker left blank,
// which covers `go install` and plain `go build` binaries.
func Resolve() Info {
	info := Info{Version: Version, BuildNum: BuildNum, Commit: Commit}
	if t, err := time.Parse(time.RFC3339, Date); err == nil {
		info.Timestamp = t.UTC()
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	fillFromSettings(&info, bi.Settings)

	return info
}

// fillFromSettings copies VCS facts from build settings into unset Info fields.
func fillFromSettings(info *Info, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Timestamp.IsZero() {
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					info.Timestamp = t.UTC()
				}
			}
		}
	}
}
