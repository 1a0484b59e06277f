// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/DamianRyse/OpenEsoUI-MM/internal/config"
	"github.com/DamianRyse/OpenEsoUI-MM/internal/issue"
)

// newConfigCommand creates the `openesoui-mm config` command tree.
func newConfigCommand(app *App, opts *rootOptions) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage openesoui-mm configuration",
		Long: `Manage openesoui-mm configuration.

Configuration is stored in:
  - Linux: ~/.config/openesoui-mm/config.cue
  - macOS: ~/Library/Application Support/openesoui-mm/config.cue
  - Windows: Documents\openesoui-mm\config.cue

Any key can be overridden with an OPENESOUI_ environment variable, e.g.
OPENESOUI_TARGET_DIRECTORY or OPENESOUI_ADDON_IDS=4063,3501.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd.Context(), app, opts, config.Format(format))
		},
	}
	showCmd.Flags().StringVarP(&format, "format", "f", string(config.FormatCUE), "output format: cue, json or toml")
	cfgCmd.AddCommand(showCmd)

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(app, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config.cue")
	cfgCmd.AddCommand(initCmd)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfigPath(app, opts)
		},
	})

	return cfgCmd
}

func showConfig(ctx context.Context, app *App, opts *rootOptions, format config.Format) error {
	loaded, err := app.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: opts.configPath,
		ConfigDirPath:  app.configDir,
	})
	if err != nil {
		if opts.verbose {
			if guide, renderErr := issue.Get(issue.ConfigLoadFailedId).Render(app.guideStyle); renderErr == nil {
				fmt.Fprint(app.stderr, guide)
			}
		}
		return &ExitError{Code: exitUsage, Err: err}
	}

	rendered, err := config.Render(loaded.Config, format)
	if err != nil {
		return &ExitError{Code: exitUsage, Err: err}
	}

	source := loaded.Path
	if source == "" {
		source = "(using defaults)"
	}
	fmt.Fprintf(app.stderr, "%s: %s\n", CmdStyle.Render("Config file"), source)
	fmt.Fprint(app.stdout, rendered)
	return nil
}

func initConfig(app *App, force bool) error {
	if force {
		path, err := config.ConfigPath(app.configDir)
		if err != nil {
			return err
		}
		if err := config.WriteConfig(path, config.DefaultConfig(filepath.Dir(path))); err != nil {
			return err
		}
		fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Wrote default configuration to"), path)
		return nil
	}

	path, created, err := config.CreateDefaultConfig(app.configDir)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(app.stdout, "Configuration already exists at %s (use --force to overwrite)\n", path)
		return nil
	}
	fmt.Fprintf(app.stdout, "%s %s\n", SuccessStyle.Render("Created default configuration at"), path)
	return nil
}

func showConfigPath(app *App, opts *rootOptions) error {
	if opts.configPath != "" {
		fmt.Fprintln(app.stdout, opts.configPath)
		return nil
	}

	path, err := config.ConfigPath(app.configDir)
	if err != nil {
		return err
	}
	if legacy := filepath.Join(filepath.Dir(path), config.LegacyFileName); !fileExists(path) && fileExists(legacy) {
		path = legacy
	}
	fmt.Fprintln(app.stdout, path)
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
