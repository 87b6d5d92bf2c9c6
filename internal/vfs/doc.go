// SPDX-License-Identifier: MPL-2.0

// Package vfs manages filesystem providers addressed by URL scheme.
//
// Providers are registered in a Registry that preserves registration order;
// the diagnostics report renders the scheme list exactly as registered. The
// default registry carries the built-in file, http, and https providers.
package vfs
