// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/pipewalk/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/pipewalk/config.cue on macOS, %APPDATA%\pipewalk\config.cue
// on Windows), with a config.cue in the working directory as a fallback. The package covers
// the assets root, release hub access, and UI settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
