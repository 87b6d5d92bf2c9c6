// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// listParams bundles the dependencies for the list command so runList can be
// tested without a real Cobra command.
type listParams struct {
	stdout io.Writer
	app    *App
}

// newListCommand creates the `pipewalk list` command, which prints the
// installed pipeline names one per line.
func newListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List installed pipelines",
		Long: `List installed pipelines.

Prints the name of every pipeline found under the assets root, one per
line in lexical order. Use 'pipewalk info <name>' to describe one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), listParams{
				stdout: cmd.OutOrStdout(),
				app:    app,
			})
		},
	}
}

// runList prints installed pipeline names, or a muted placeholder when the
// assets root holds none.
func runList(ctx context.Context, p listParams) error {
	names, err := p.app.Assets.List(ctx)
	if err != nil {
		return fmt.Errorf("listing pipelines: %w", err)
	}

	if len(names) == 0 {
		fmt.Fprintln(p.stdout, SubtitleStyle.Render("(no pipelines installed)"))
		return nil
	}

	for _, name := range names {
		fmt.Fprintln(p.stdout, name)
	}

	return nil
}
