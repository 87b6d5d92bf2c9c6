// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pipewalk/pipewalk/internal/build"
	"github.com/pipewalk/pipewalk/internal/config"
	"github.com/pipewalk/pipewalk/internal/issue"
	"github.com/pipewalk/pipewalk/pkg/types"
)

var (
	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// app is the shared composition root for all command handlers.
	app *App

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "pipewalk",
		Short: "Inspect pipeline installations and their runtime surroundings",
		Long: TitleStyle.Render("pipewalk") + SubtitleStyle.Render(" - Inspect pipeline installations and their runtime surroundings") + `

pipewalk reports what a pipeline process actually sees at runtime:
its version and host system, launch arguments, environment, file
system roots, and installed pipeline projects. Reports are plain
text so they can be attached to tickets or diffed across hosts.

Pipelines are described by 'pipeline' manifests (TOML, YAML, or CUE)
stored under the assets root, locally or behind a remote reference.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run 'pipewalk info' for a first-level diagnostics report
  2. Repeat -d to widen the report: -d adds file systems and
     environment, -dd adds every runtime property
  3. Point it at a pipeline with: pipewalk info <name>

` + SubtitleStyle.Render("Examples:") + `
  pipewalk info             Basic runtime report
  pipewalk info -dd         Full runtime report
  pipewalk info rnaseq      Describe the installed 'rnaseq' pipeline
  pipewalk info -u          Report and check for a newer release
  pipewalk list             List installed pipelines
  pipewalk config show      Show current configuration`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/pipewalk/config.cue)")

	var err error
	app, err = NewApp(Dependencies{})
	cobra.CheckErr(err)

	// Add subcommands
	rootCmd.AddCommand(newInfoCommand(app))
	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newCompletionCommand())
}

// getVersionString returns a formatted version string for display.
// It folds in VCS metadata for release builds; source builds stay terse.
func getVersionString() string {
	info := build.Resolve()
	if info.Version == "dev" {
		return "dev (built from source)"
	}
	if info.Commit == "" {
		return fmt.Sprintf("%s build %s", info.Version, info.BuildNum)
	}
	return fmt.Sprintf("%s build %s (commit: %s)", info.Version, info.BuildNum, info.Commit)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	// Load configuration through the shared provider so the --config flag
	// and the per-service loads agree on the source.
	cfg, err := app.Config.Load(context.Background(), loadOptions())
	if err != nil {
		// Always surface config loading errors; commands continue on defaults.
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
	}

	// Apply verbose from config if not set via flag
	if cfg != nil && !verbose {
		verbose = cfg.UI.Verbose
	}

	setupLogging()
}

// setupLogging routes log/slog through a charm logger so service-layer
// warnings match the styled CLI output. Verbose mode lowers the level
// to debug.
func setupLogging() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	slog.SetDefault(slog.New(logger))
}

// loadOptions resolves provider options from the persistent --config flag.
func loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: types.FilesystemPath(cfgFile)}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
