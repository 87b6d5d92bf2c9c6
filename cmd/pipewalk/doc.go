// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for pipewalk.
//
// This package implements the Cobra command hierarchy for the pipewalk CLI,
// including the root command, the diagnostics reporter behind `pipewalk info`,
// pipeline listing, and configuration management. Command handlers delegate
// business logic through the service interfaces wired into App.
package cmd
