// SPDX-License-Identifier: MPL-2.0

// Package release queries the release hub for published pipewalk versions.
//
// The hub speaks the GitHub releases API shape, so the client works against
// github.com as well as self-hosted mirrors configured through hub.endpoint.
// The package only reads release metadata; it never downloads or installs
// anything.
package release
