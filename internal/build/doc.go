// SPDX-License-Identifier: MPL-2.0

// Package build exposes the version, build number, commit, and build
// timestamp stamped into the binary at link time, with a debug.ReadBuildInfo
// fallback for `go install` and source builds.
package build
