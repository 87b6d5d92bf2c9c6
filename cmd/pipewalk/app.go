// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/pipewalk/pipewalk/internal/assets"
	"github.com/pipewalk/pipewalk/internal/build"
	"github.com/pipewalk/pipewalk/internal/config"
	"github.com/pipewalk/pipewalk/internal/diagnostics"
	"github.com/pipewalk/pipewalk/internal/release"
)

// hubTokenEnv supplies a hub token when the config file carries none.
// Useful in CI where writing a config file is inconvenient.
const hubTokenEnv = "PIPEWALK_HUB_TOKEN"

type (
	// App wires CLI services and shared dependencies. It is the composition root
	// for the CLI layer — all Cobra command handlers receive an App reference and
	// delegate business logic through its service interfaces.
	App struct {
		Config   ConfigProvider
		Assets   AssetService
		Releases ReleaseService
		Reporter DiagnosticsService
		stdout   io.Writer
		stderr   io.Writer
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp. Tests can supply mock implementations
	// to isolate specific service behavior.
	Dependencies struct {
		Config   ConfigProvider
		Assets   AssetService
		Releases ReleaseService
		Reporter DiagnosticsService
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// AssetService resolves pipeline references and lists installed pipelines.
	// Resolve accepts a local name or a remote manifest reference.
	AssetService interface {
		Resolve(ctx context.Context, ref string) (*assets.Project, error)
		List(ctx context.Context) ([]string, error)
	}

	// ReleaseService compares the running version against the release hub.
	ReleaseService interface {
		Check(ctx context.Context, current string) (*release.Update, error)
	}

	// DiagnosticsService renders runtime diagnostics reports.
	DiagnosticsService interface {
		Report(ctx context.Context, level diagnostics.Level, withProcess bool) string
	}

	// appAssetService implements AssetService against the on-disk assets root.
	// The root is resolved per request from configuration so that an edited
	// config file takes effect without restarting.
	appAssetService struct {
		config ConfigProvider
	}

	// appReleaseService implements ReleaseService with a hub client built
	// per request from configuration.
	appReleaseService struct {
		config ConfigProvider
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Assets == nil {
		deps.Assets = &appAssetService{config: deps.Config}
	}
	if deps.Releases == nil {
		deps.Releases = &appReleaseService{config: deps.Config}
	}
	if deps.Reporter == nil {
		deps.Reporter = diagnostics.NewCollector(diagnostics.Deps{})
	}

	return &App{
		Config:   deps.Config,
		Assets:   deps.Assets,
		Releases: deps.Releases,
		Reporter: deps.Reporter,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}, nil
}

// loadConfigOrDefaults loads configuration via the provider, falling back to
// defaults so asset and release lookups stay operational. Root command
// initialization already surfaces load failures to the user; services only
// record the fallback at debug level.
func loadConfigOrDefaults(ctx context.Context, provider ConfigProvider) *config.Config {
	cfg, err := provider.Load(ctx, loadOptions())
	if err != nil {
		slog.Debug("config load failed, using defaults", "error", err)
		return config.DefaultConfig()
	}
	return cfg
}

// manager builds an assets.Manager rooted at the configured assets directory,
// or at the per-user default root when the configuration leaves it unset.
func (s *appAssetService) manager(ctx context.Context) (*assets.Manager, error) {
	cfg := loadConfigOrDefaults(ctx, s.config)
	root := cfg.Assets.Dir.String()
	if root == "" {
		var err error
		if root, err = assets.DefaultRoot(); err != nil {
			return nil, err
		}
	}
	return assets.NewManager(root), nil
}

// Resolve resolves a pipeline reference against the configured assets root.
func (s *appAssetService) Resolve(ctx context.Context, ref string) (*assets.Project, error) {
	m, err := s.manager(ctx)
	if err != nil {
		return nil, err
	}
	return m.Resolve(ctx, ref)
}

// List lists installed pipeline names under the configured assets root.
func (s *appAssetService) List(ctx context.Context) ([]string, error) {
	m, err := s.manager(ctx)
	if err != nil {
		return nil, err
	}
	return m.List(ctx)
}

// Check queries the release hub for a version newer than current. The hub
// endpoint and token come from configuration, with PIPEWALK_HUB_TOKEN as an
// environment fallback for the token (higher rate limits when set).
func (s *appReleaseService) Check(ctx context.Context, current string) (*release.Update, error) {
	cfg := loadConfigOrDefaults(ctx, s.config)

	opts := []release.HubOption{
		release.WithUserAgent("pipewalk/" + build.Resolve().Version),
	}
	if cfg.Hub.Endpoint != "" {
		opts = append(opts, release.WithEndpoint(cfg.Hub.Endpoint.String()))
	}

	token := string(cfg.Hub.Token)
	if token == "" {
		token = os.Getenv(hubTokenEnv)
	}
	if token != "" {
		opts = append(opts, release.WithToken(token))
	}

	return release.NewHubClient(opts...).Check(ctx, current)
}
