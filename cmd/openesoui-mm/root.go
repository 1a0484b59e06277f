// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/DamianRyse/OpenEsoUI-MM/internal/issue"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootOptions holds the flag values of one root command instance.
type rootOptions struct {
	download   string
	target     string
	configPath string
	verbose    bool
}

// NewRootCommand builds the command tree around app.
func NewRootCommand(app *App) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "openesoui-mm",
		Short: "Download and update Elder Scrolls Online addons from esoui.com",
		Long: TitleStyle.Render("openesoui-mm") + SubtitleStyle.Render(" - ESOUI addon downloader") + `

Downloads the addons listed in the configuration (or given with --download)
from esoui.com and extracts them into the game's AddOns directory.

` + SubtitleStyle.Render("Examples:") + `
  openesoui-mm                        Update every configured addon
  openesoui-mm -d 4063,3501           Update only these addon ids
  openesoui-mm -t ~/eso/live/AddOns   Extract into another directory
  openesoui-mm config show            Show the effective configuration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd.Context(), app, opts)
		},
	}

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: exitUsage, Err: err}
	})

	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default is the platform config directory)")
	rootCmd.Flags().StringVarP(&opts.download, "download", "d", "", "comma-separated addon ids to update instead of the configured ones")
	rootCmd.Flags().StringVarP(&opts.target, "target", "t", "", "directory to extract into instead of the configured one")

	rootCmd.AddCommand(newConfigCommand(app, opts))
	rootCmd.AddCommand(newGuideCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// userAgent identifies this build to esoui.com.
func userAgent() string {
	return "openesoui-mm/" + Version
}

// Execute runs the CLI and exits with the code carried by an ExitError, 1 for
// any other error. This is called by main.main().
func Execute() {
	app := NewApp(Dependencies{})
	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
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
