// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pipewalk/pipewalk/internal/testutil"
	"github.com/pipewalk/pipewalk/pkg/types"
)

// writeConfigFile writes content as config.cue inside dir and returns its path.
func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName+"."+ConfigFileExt)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Parallel()
	cfg, resolved, err := LoadWithPath(context.Background(), LoadOptions{
		ConfigDirPath: types.FilesystemPath(t.TempDir()),
	})
	if err != nil {
		t.Fatalf("LoadWithPath() error = %v", err)
	}
	if resolved != "" {
		t.Errorf("resolved path = %q, want empty when no file exists", resolved)
	}

	want := DefaultConfig()
	if cfg.UI.ColorScheme != want.UI.ColorScheme {
		t.Errorf("ColorScheme = %q, want %q", cfg.UI.ColorScheme, want.UI.ColorScheme)
	}
	if cfg.UI.Verbose != want.UI.Verbose {
		t.Errorf("Verbose = %v, want %v", cfg.UI.Verbose, want.UI.Verbose)
	}
	if cfg.Assets.Dir != "" || cfg.Hub.Endpoint != "" || cfg.Hub.Token != "" {
		t.Errorf("optional fields should default to empty, got %+v", cfg)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()
	path := writeConfigFile(t, t.TempDir(), `assets: {
	dir: "/srv/pipelines"
}

hub: {
	endpoint: "https://hub.example.com"
	token:    "s3cret"
}

ui: {
	color_scheme: "dark"
	verbose:      true
}
`)

	cfg, resolved, err := LoadWithPath(context.Background(), LoadOptions{
		ConfigFilePath: types.FilesystemPath(path),
	})
	if err != nil {
		t.Fatalf("LoadWithPath() error = %v", err)
	}
	if resolved != path {
		t.Errorf("resolved path = %q, want %q", resolved, path)
	}
	if got := cfg.Assets.Dir.String(); got != "/srv/pipelines" {
		t.Errorf("Assets.Dir = %q, want %q", got, "/srv/pipelines")
	}
	if got := cfg.Hub.Endpoint.String(); got != "https://hub.example.com" {
		t.Errorf("Hub.Endpoint = %q, want %q", got, "https://hub.example.com")
	}
	if cfg.Hub.Token != "s3cret" {
		t.Error("Hub.Token did not round-trip from the config file")
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("UI.ColorScheme = %q, want %q", cfg.UI.ColorScheme, ColorSchemeDark)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true")
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeConfigFile(t, dir, `hub: {
	endpoint: "http://localhost:8080"
}
`)

	cfg, resolved, err := LoadWithPath(context.Background(), LoadOptions{
		ConfigDirPath: types.FilesystemPath(dir),
	})
	if err != nil {
		t.Fatalf("LoadWithPath() error = %v", err)
	}
	if resolved != filepath.Join(dir, "config.cue") {
		t.Errorf("resolved path = %q, want file inside config dir", resolved)
	}
	if got := cfg.Hub.Endpoint.String(); got != "http://localhost:8080" {
		t.Errorf("Hub.Endpoint = %q, want %q", got, "http://localhost:8080")
	}
	// Fields absent from the file keep their defaults.
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("UI.ColorScheme = %q, want default %q", cfg.UI.ColorScheme, ColorSchemeAuto)
	}
	if cfg.Assets.Dir != "" {
		t.Errorf("Assets.Dir = %q, want empty default", cfg.Assets.Dir)
	}
}

func TestLoad_CurrentDirFallback(t *testing.T) {
	workDir := t.TempDir()
	writeConfigFile(t, workDir, `ui: {
	verbose: true
}
`)
	restore := testutil.MustChdir(t, workDir)
	defer restore()

	// The config dir holds no file, so the loader falls back to ./config.cue.
	cfg, resolved, err := LoadWithPath(context.Background(), LoadOptions{
		ConfigDirPath: types.FilesystemPath(t.TempDir()),
	})
	if err != nil {
		t.Fatalf("LoadWithPath() error = %v", err)
	}
	if resolved != "config.cue" {
		t.Errorf("resolved path = %q, want %q", resolved, "config.cue")
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true from ./config.cue")
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()
	missing := filepath.Join(t.TempDir(), "nope.cue")

	_, _, err := LoadWithPath(context.Background(), LoadOptions{
		ConfigFilePath: types.FilesystemPath(missing),
	})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("error = %v, want mention of the missing file", err)
	}
}

func TestLoad_InvalidCUESyntax(t *testing.T) {
	t.Parallel()
	path := writeConfigFile(t, t.TempDir(), "ui: {\n")

	_, _, err := LoadWithPath(context.Background(), LoadOptions{
		ConfigFilePath: types.FilesystemPath(path),
	})
	if err == nil {
		t.Fatal("expected error for malformed CUE")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error = %v, want mention of %q", err, path)
	}
}

func TestLoad_RejectsUnknownColorScheme(t *testing.T) {
	t.Parallel()
	path := writeConfigFile(t, t.TempDir(), `ui: {
	color_scheme: "purple"
}
`)

	_, _, err := LoadWithPath(context.Background(), LoadOptions{
		ConfigFilePath: types.FilesystemPath(path),
	})
	if err == nil {
		t.Fatal("expected schema violation for unknown color scheme")
	}
	if !strings.Contains(err.Error(), "color_scheme") {
		t.Errorf("error = %v, want mention of the offending field", err)
	}
}

func TestLoad_RejectsUnknownField(t *testing.T) {
	t.Parallel()
	path := writeConfigFile(t, t.TempDir(), `pipelines: "oops"
`)

	_, _, err := LoadWithPath(context.Background(), LoadOptions{
		ConfigFilePath: types.FilesystemPath(path),
	})
	if err == nil {
		t.Fatal("expected schema violation for unknown top-level field")
	}
	if !strings.Contains(err.Error(), "pipelines") {
		t.Errorf("error = %v, want mention of the offending field", err)
	}
}

func TestLoad_RejectsMalformedEndpoint(t *testing.T) {
	t.Parallel()
	// Passes the CUE schema (non-empty string) but fails Go-side URL validation.
	path := writeConfigFile(t, t.TempDir(), `hub: {
	endpoint: "not-a-url"
}
`)

	_, _, err := LoadWithPath(context.Background(), LoadOptions{
		ConfigFilePath: types.FilesystemPath(path),
	})
	if err == nil {
		t.Fatal("expected validation error for malformed endpoint")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error should wrap ErrInvalidConfig, got: %v", err)
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := LoadWithPath(ctx, LoadOptions{})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestGenerateCUE_AllFields(t *testing.T) {
	t.Parallel()
	cfg := &Config{
		Assets: AssetsConfig{Dir: "/data/pipelines"},
		Hub:    HubConfig{Endpoint: "https://hub.example.com", Token: "tok"},
		UI:     UIConfig{ColorScheme: ColorSchemeLight, Verbose: true},
	}

	out := GenerateCUE(cfg)
	for _, want := range []string{
		`dir: "/data/pipelines"`,
		`endpoint: "https://hub.example.com"`,
		`token: "tok"`,
		`color_scheme: "light"`,
		`verbose: true`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("GenerateCUE() missing %q in:\n%s", want, out)
		}
	}
}

func TestGenerateCUE_DefaultsOmitEmptyBlocks(t *testing.T) {
	t.Parallel()
	out := GenerateCUE(DefaultConfig())

	if strings.Contains(out, "assets:") {
		t.Errorf("GenerateCUE() should omit empty assets block:\n%s", out)
	}
	if strings.Contains(out, "hub:") {
		t.Errorf("GenerateCUE() should omit empty hub block:\n%s", out)
	}
	if !strings.Contains(out, `color_scheme: "auto"`) {
		t.Errorf("GenerateCUE() should always write ui block:\n%s", out)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	saved := &Config{
		Hub: HubConfig{Endpoint: "https://hub.example.com"},
		UI:  UIConfig{ColorScheme: ColorSchemeDark, Verbose: true},
	}
	if err := Save(saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	cfg, resolved, err := LoadWithPath(context.Background(), LoadOptions{})
	if err != nil {
		t.Fatalf("LoadWithPath() error = %v", err)
	}
	if resolved != filepath.Join(dir, "config.cue") {
		t.Errorf("resolved path = %q, want saved file", resolved)
	}
	if cfg.Hub.Endpoint != saved.Hub.Endpoint {
		t.Errorf("Hub.Endpoint = %q, want %q", cfg.Hub.Endpoint, saved.Hub.Endpoint)
	}
	if cfg.UI.ColorScheme != saved.UI.ColorScheme {
		t.Errorf("UI.ColorScheme = %q, want %q", cfg.UI.ColorScheme, saved.UI.ColorScheme)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true")
	}
}

func TestCreateDefaultConfig_Idempotent(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() error = %v", err)
	}
	path := filepath.Join(dir, "config.cue")
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default config file not written: %v", err)
	}

	// Mutate the file, then confirm a second call leaves it alone.
	if err := os.WriteFile(path, append(first, []byte("// edited\n")...), 0o644); err != nil {
		t.Fatalf("failed to edit config file: %v", err)
	}
	if err := CreateDefaultConfig(); err != nil {
		t.Fatalf("CreateDefaultConfig() second call error = %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to re-read config file: %v", err)
	}
	if !strings.Contains(string(second), "// edited") {
		t.Error("CreateDefaultConfig() overwrote an existing config file")
	}
}

func TestDefaultConfigFilePath_UsesOverride(t *testing.T) {
	dir := t.TempDir()
	SetConfigDirOverride(dir)
	t.Cleanup(Reset)

	path, err := DefaultConfigFilePath()
	if err != nil {
		t.Fatalf("DefaultConfigFilePath() error = %v", err)
	}
	if path != filepath.Join(dir, "config.cue") {
		t.Errorf("DefaultConfigFilePath() = %q, want under %q", path, dir)
	}
}

func TestFileExists(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	file := filepath.Join(dir, "present.cue")
	if err := os.WriteFile(file, []byte("ui: {}\n"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if !fileExists(file) {
		t.Error("fileExists() = false for an existing file")
	}
	if fileExists(dir) {
		t.Error("fileExists() = true for a directory")
	}
	if fileExists(filepath.Join(dir, "absent.cue")) {
		t.Error("fileExists() = true for a missing path")
	}
}
