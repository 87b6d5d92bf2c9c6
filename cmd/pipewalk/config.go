// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pipewalk/pipewalk/internal/assets"
	"github.com/pipewalk/pipewalk/internal/config"
	"github.com/pipewalk/pipewalk/internal/issue"
)

// newConfigCommand creates the `pipewalk config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pipewalk configuration",
		Long: `Manage pipewalk configuration.

Configuration is stored in:
  - Linux: ~/.config/pipewalk/config.cue
  - macOS: ~/Library/Application Support/pipewalk/config.cue
  - Windows: %APPDATA%\pipewalk\config.cue`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app)
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath()
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output raw configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), loadOptions())
			if err != nil {
				return err
			}

			fmt.Print(config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App) error {
	cfg, err := app.Config.Load(ctx, loadOptions())
	if err != nil {
		rendered, _ := issue.Get(issue.ConfigLoadFailedId).Render("dark")
		fmt.Fprint(os.Stderr, rendered)
		return err
	}

	// Style definitions using shared color palette
	headerStyle := TitleStyle
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Println(headerStyle.Render("Current Configuration"))
	fmt.Println()

	// Derive the config file path from the standard location; the provider
	// does not cache resolved paths.
	cfgPath, pathErr := config.DefaultConfigFilePath()
	if pathErr == nil && fileExistsCheck(cfgPath) {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), cfgPath)
	} else {
		fmt.Printf("%s: %s\n", keyStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
	}
	fmt.Println()

	fmt.Printf("%s:\n", keyStyle.Render("assets"))
	if cfg.Assets.Dir == "" {
		fmt.Printf("  dir: %s\n", SubtitleStyle.Render("(per-user default root)"))
	} else {
		fmt.Printf("  dir: %s\n", valueStyle.Render(cfg.Assets.Dir.String()))
	}

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("hub"))
	if cfg.Hub.Endpoint == "" {
		fmt.Printf("  endpoint: %s\n", SubtitleStyle.Render("(canonical hub)"))
	} else {
		fmt.Printf("  endpoint: %s\n", valueStyle.Render(cfg.Hub.Endpoint.String()))
	}
	// HubToken.String() redacts, printing only whether a token is set.
	fmt.Printf("  token: %s\n", valueStyle.Render(cfg.Hub.Token.String()))

	fmt.Println()
	fmt.Printf("%s:\n", keyStyle.Render("ui"))
	fmt.Printf("  color_scheme: %s\n", valueStyle.Render(cfg.UI.ColorScheme.String()))
	fmt.Printf("  verbose: %s\n", valueStyle.Render(fmt.Sprintf("%v", cfg.UI.Verbose)))

	return nil
}

func initConfig() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	if err = config.CreateDefaultConfig(); err != nil {
		return fmt.Errorf("failed to create config: %w", err)
	}

	fmt.Printf("%s Created default configuration at %s/config.cue\n", SuccessStyle.Render("✓"), cfgDir)

	// Also create the assets root so `pipewalk list` works out of the box
	assetsRoot, err := assets.DefaultRoot()
	if err == nil {
		if mkdirErr := os.MkdirAll(assetsRoot, 0o755); mkdirErr != nil {
			slog.Warn("failed to create assets root", "path", assetsRoot, "error", mkdirErr)
		} else {
			fmt.Printf("%s Created assets root at %s\n", SuccessStyle.Render("✓"), assetsRoot)
		}
	} else {
		slog.Warn("failed to determine assets root", "error", err)
	}

	return nil
}

func showConfigPath() error {
	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}

	fmt.Printf("Config directory: %s\n", cfgDir)
	fmt.Printf("Config file: %s/config.cue\n", cfgDir)

	assetsRoot, err := assets.DefaultRoot()
	if err == nil {
		fmt.Printf("Assets root: %s\n", assetsRoot)
	}

	return nil
}

// fileExistsCheck checks if a file exists and is not a directory.
func fileExistsCheck(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
