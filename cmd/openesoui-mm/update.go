// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/DamianRyse/OpenEsoUI-MM/internal/config"
	"github.com/DamianRyse/OpenEsoUI-MM/internal/esoui"
	"github.com/DamianRyse/OpenEsoUI-MM/internal/issue"
	"github.com/DamianRyse/OpenEsoUI-MM/internal/pipeline"
)

// runUpdate loads the configuration, applies the flag overrides and installs
// every selected addon. It returns an ExitError with code 1 when at least one
// addon failed and code 2 for configuration or usage errors.
func runUpdate(ctx context.Context, app *App, opts *rootOptions) error {
	loaded, err := app.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: opts.configPath,
		ConfigDirPath:  app.configDir,
	})
	if err != nil {
		return &ExitError{Code: exitUsage, Err: err}
	}
	if loaded.Path == "" && opts.configPath == "" {
		announceDefaultConfig(app)
	}

	cfg := loaded.Config
	verbose := opts.verbose || cfg.UI.Verbose
	logger := app.newLogger(verbose)

	ids := cfg.AddonIDList()
	if opts.download != "" {
		if ids, err = esoui.ParseAddonIDs(opts.download); err != nil {
			return &ExitError{Code: exitUsage, Err: fmt.Errorf("--download: %w", err)}
		}
	}

	target := cfg.TargetDirectory
	if opts.target != "" {
		if target, err = config.ExpandPath(opts.target); err != nil {
			return &ExitError{Code: exitUsage, Err: fmt.Errorf("--target: %w", err)}
		}
	}

	out := app.stdout
	fmt.Fprintln(out, TitleStyle.Render("OpenEsoUI-MM")+SubtitleStyle.Render(" - Starting..."))
	fmt.Fprintf(out, "  ESO addon directory: %s\n", CmdStyle.Render(target))
	fmt.Fprintf(out, "Addon IDs: %v\n", ids)
	fmt.Fprintln(out)

	client := esoui.NewClient(
		esoui.WithHTTPClient(app.httpClient),
		esoui.WithBaseURL(cfg.BaseURL),
		esoui.WithUserAgent(firstNonEmpty(cfg.UserAgent, userAgent())),
		esoui.WithTimeouts(cfg.Timeout, cfg.DownloadTimeout),
		esoui.WithTempDir(app.tempDir),
		esoui.WithLogger(logger.WithPrefix("esoui")),
	)
	observer := &consoleObserver{
		out:        out,
		errOut:     app.stderr,
		verbose:    verbose,
		guideStyle: app.guideStyle,
	}
	runner := pipeline.New(client, client,
		pipeline.WithObserver(observer),
		pipeline.WithLogger(logger),
	)

	report, err := runner.Run(ctx, ids, target)
	if err != nil {
		return &ExitError{Code: exitFailures, Err: issue.NewErrorContext().
			WithOperation("prepare target directory").
			WithResource(target).
			WithSuggestion("Check that the path is writable and not an existing file").
			WithSuggestion("Set target_directory in the config file or pass --target").
			Wrap(err).
			BuildError()}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, SuccessStyle.Render("Completed!"))

	if failed := report.Failed(); failed > 0 {
		return &ExitError{Code: exitFailures, Err: fmt.Errorf("%d of %d addons failed", failed, len(report.Results))}
	}
	return nil
}

// announceDefaultConfig writes a default config file on first run and tells
// the user where it is. Failing to write it is not fatal since the defaults
// are already in effect.
func announceDefaultConfig(app *App) {
	path, created, err := config.CreateDefaultConfig(app.configDir)
	if err != nil {
		fmt.Fprintln(app.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(issue.WrapWithContext(err, "create default configuration", app.configDir), false))
		return
	}
	if created {
		fmt.Fprintf(app.stdout, "Created default configuration at: %s\n", CmdStyle.Render(path))
		fmt.Fprintln(app.stdout, "Please edit the configuration file to set your desired file IDs and target directory.")
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
