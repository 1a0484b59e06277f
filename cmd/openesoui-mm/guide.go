// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/DamianRyse/OpenEsoUI-MM/internal/issue"
)

// newGuideCommand creates `openesoui-mm guide [id]`, which lists the
// troubleshooting guides or prints one of them.
func newGuideCommand(app *App) *cobra.Command {
	var raw bool
	guideCmd := &cobra.Command{
		Use:   "guide [id]",
		Short: "Show troubleshooting guides for failed installs",
		Long: `Show troubleshooting guides for failed installs.

Without an argument every guide is listed with its id. With an id the guide
is rendered; --raw prints its Markdown source instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				listGuides(app)
				return nil
			}
			return showGuide(app, args[0], raw)
		},
	}
	guideCmd.Flags().BoolVar(&raw, "raw", false, "print the Markdown source")
	return guideCmd
}

func listGuides(app *App) {
	for _, is := range issue.Values() {
		fmt.Fprintf(app.stdout, "  %s  %s\n", CmdStyle.Render(strconv.Itoa(int(is.Id()))), is.Title())
	}
}

func showGuide(app *App, arg string, raw bool) error {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("invalid guide id %q", arg)}
	}
	is := issue.Get(issue.Id(n))
	if is == nil {
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("no guide with id %d (run 'openesoui-mm guide' to list them)", n)}
	}

	if raw {
		fmt.Fprintln(app.stdout, string(is.MarkdownMsg()))
		return nil
	}
	out, err := is.Render(app.guideStyle)
	if err != nil {
		return fmt.Errorf("rendering guide %d: %w", n, err)
	}
	fmt.Fprint(app.stdout, out)
	return nil
}
