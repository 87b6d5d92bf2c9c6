// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pipewalk/pipewalk/internal/assets"
	"github.com/pipewalk/pipewalk/internal/build"
	"github.com/pipewalk/pipewalk/internal/diagnostics"
	"github.com/pipewalk/pipewalk/internal/issue"
	"github.com/pipewalk/pipewalk/internal/release"
)

// infoParams bundles the dependencies and flags for the info command,
// enabling the core logic in runInfo to be tested without a real Cobra
// command or live hub calls.
type infoParams struct {
	stdout   io.Writer
	stderr   io.Writer
	app      *App
	level    diagnostics.Level
	pipeline string // positional pipeline reference (empty = runtime report)
	update   bool   // --check-updates: also query the release hub
}

// newInfoCommand creates the `pipewalk info` command, which prints a runtime
// diagnostics report or, given a pipeline reference, describes that pipeline.
func newInfoCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info [pipeline]",
		Short: "Report runtime diagnostics or describe an installed pipeline",
		Long: `Report runtime diagnostics or describe an installed pipeline.

Without arguments, info prints a plain-text report of the running
process: version and build, host system, launch arguments, environment,
file system roots, and runtime properties. Repeat -d to widen it:

  (none)  version, host, runtime, and process identity
  -d      adds file systems, launch options, and the environment
  -dd     adds every runtime property and the module path

With a pipeline name or remote manifest reference, info describes that
pipeline instead: repository, entry script, and declared revisions.`,
		Example: `  # First-level runtime report
  pipewalk info

  # Full runtime report
  pipewalk info -dd

  # Describe the installed 'rnaseq' pipeline
  pipewalk info rnaseq

  # Describe a remote pipeline manifest
  pipewalk info https://hub.example.com/rnaseq/pipeline.toml

  # Report and check the release hub for a newer version
  pipewalk info --check-updates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceErrors = true
			cmd.SilenceUsage = true

			detail, _ := cmd.Flags().GetCount("detail")
			update, _ := cmd.Flags().GetBool("check-updates")

			var pipeline string
			if len(args) > 0 {
				pipeline = args[0]
			}

			p := infoParams{
				stdout:   cmd.OutOrStdout(),
				stderr:   cmd.ErrOrStderr(),
				app:      app,
				level:    diagnostics.LevelFromCount(detail),
				pipeline: pipeline,
				update:   update,
			}

			return runInfo(cmd.Context(), p)
		},
	}

	cmd.Flags().CountP("detail", "d", "widen the report (repeat for full detail)")
	cmd.Flags().BoolP("check-updates", "u", false, "also check the release hub for a newer version")

	return cmd
}

// runInfo is the core info logic, separated from Cobra for testability.
// All user-facing output goes through p.stdout and p.stderr.
//
// Flow:
//  1. With a pipeline reference, describe that pipeline; the runtime
//     report is skipped entirely.
//  2. Otherwise print the runtime diagnostics report at the requested level.
//  3. With --check-updates, query the release hub afterwards. Hub failures
//     degrade to a warning so a successful report never turns into a
//     failed command.
func runInfo(ctx context.Context, p infoParams) error {
	if p.pipeline != "" {
		if err := describePipeline(ctx, p); err != nil {
			return err
		}
	} else {
		fmt.Fprint(p.stdout, p.app.Reporter.Report(ctx, p.level, true))
	}

	if p.update {
		checkForUpdate(ctx, p)
	}

	return nil
}

// describePipeline resolves the reference and prints the pipeline facts.
// Resolution failures render a styled error with the matching issue catalog
// entry and map to exit code 1.
func describePipeline(ctx context.Context, p infoParams) error {
	proj, err := p.app.Assets.Resolve(ctx, p.pipeline)
	if err != nil {
		renderServiceError(p.stderr, resolveServiceError(p.pipeline, err))
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Fprint(p.stdout, diagnostics.RenderFacts(projectFacts(proj)))
	return nil
}

// resolveServiceError maps a pipeline resolution failure to a ServiceError
// carrying the matching issue catalog entry. Remote references that cannot
// be read get the remote-manifest entry; local misses get the unknown
// pipeline entry.
func resolveServiceError(ref string, err error) *ServiceError {
	styled := ErrorStyle.Render("Error: ") + formatErrorForDisplay(err, GetVerbose()) + "\n"

	switch {
	case errors.Is(err, assets.ErrUnknownPipeline) && strings.Contains(ref, "://"):
		return newServiceError(err, issue.RemoteManifestUnreachableId, styled)
	case errors.Is(err, assets.ErrUnknownPipeline):
		return newServiceError(err, issue.UnknownPipelineId, styled)
	case errors.Is(err, assets.ErrManifestInvalid):
		return newServiceError(err, issue.ManifestInvalidId, styled)
	default:
		return newServiceError(err, 0, styled)
	}
}

// projectFacts converts a resolved project into renderable facts, in the
// same grammar the runtime report uses. Empty fields are dropped so remote
// references (which carry no local path) render cleanly.
func projectFacts(proj *assets.Project) []diagnostics.Fact {
	facts := []diagnostics.Fact{
		{Key: "Name", Value: diagnostics.ScalarValue(proj.Name)},
		{Key: "Repository", Value: diagnostics.ScalarValue(proj.Repository)},
	}
	if proj.LocalPath != "" {
		facts = append(facts, diagnostics.Fact{Key: "Local path", Value: diagnostics.ScalarValue(proj.LocalPath)})
	}
	facts = append(facts, diagnostics.Fact{Key: "Main script", Value: diagnostics.ScalarValue(proj.MainScript)})
	if proj.Description != "" {
		facts = append(facts, diagnostics.Fact{Key: "Description", Value: diagnostics.ScalarValue(string(proj.Description))})
	}
	if len(proj.Revisions) > 0 {
		facts = append(facts, diagnostics.Fact{Key: "Revisions", Value: diagnostics.SequenceValue(markRevisions(proj)...)})
	}
	return facts
}

// markRevisions prefixes the default revision with an asterisk, keeping the
// remaining revisions aligned.
func markRevisions(proj *assets.Project) []string {
	marked := make([]string, len(proj.Revisions))
	for i, rev := range proj.Revisions {
		if rev == proj.DefaultRevision {
			marked[i] = "* " + rev
		} else {
			marked[i] = "  " + rev
		}
	}
	return marked
}

// checkForUpdate queries the release hub and reports the outcome. It never
// returns an error: hub failures print a warning, development builds print
// a notice, and everything else reports the comparison result.
func checkForUpdate(ctx context.Context, p infoParams) {
	update, err := p.app.Releases.Check(ctx, build.Resolve().Version)
	if err != nil {
		if errors.Is(err, release.ErrDevelopmentBuild) {
			fmt.Fprintln(p.stdout, "Skipping update check for development build.")
			return
		}
		fmt.Fprintln(p.stderr, WarningStyle.Render("Warning: ")+"update check failed: "+formatUpdateError(err))
		if GetVerbose() {
			renderServiceError(p.stderr, newServiceError(err, issue.UpdateCheckFailedId, ""))
		}
		return
	}

	if !update.Newer {
		fmt.Fprintf(p.stdout, "pipewalk %s is up to date.\n", update.Current)
		return
	}

	line := fmt.Sprintf("Update available: %s → %s", update.Current, update.Latest)
	if isTerminal(p.stdout) {
		line = SuccessStyle.Render(line)
	}
	fmt.Fprintln(p.stdout, line)
	if update.URL != "" {
		fmt.Fprintf(p.stdout, "Download: %s\n", update.URL)
	}
}

// formatUpdateError produces a user-friendly message for hub failures,
// with remediation guidance for rate limiting.
func formatUpdateError(err error) string {
	var rateLimitErr *release.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return fmt.Sprintf("%s\nSet %s for authenticated access and a higher limit.", rateLimitErr.Error(), hubTokenEnv)
	}
	return err.Error()
}
