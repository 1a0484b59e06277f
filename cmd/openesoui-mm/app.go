// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"

	"github.com/DamianRyse/OpenEsoUI-MM/internal/config"
)

type (
	// App wires CLI services and shared dependencies. All Cobra handlers
	// receive an App and write through its streams.
	App struct {
		Config config.Provider

		configDir  string
		tempDir    string
		httpClient *http.Client
		guideStyle string
		stdout     io.Writer
		stderr     io.Writer
	}

	// Dependencies defines the injection points for building an App. Zero
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config config.Provider
		// ConfigDir overrides the platform config directory.
		ConfigDir string
		// TempDir is the parent directory for downloaded archives.
		TempDir string
		// HTTPClient replaces http.DefaultClient.
		HTTPClient *http.Client
		// GuideStyle is the glamour style for troubleshooting guides.
		GuideStyle string
		Stdout     io.Writer
		Stderr     io.Writer
	}
)

// NewApp creates an App from deps.
func NewApp(deps Dependencies) *App {
	app := &App{
		Config:     deps.Config,
		configDir:  deps.ConfigDir,
		tempDir:    deps.TempDir,
		httpClient: deps.HTTPClient,
		guideStyle: deps.GuideStyle,
		stdout:     deps.Stdout,
		stderr:     deps.Stderr,
	}
	if app.Config == nil {
		app.Config = config.NewProvider()
	}
	if app.httpClient == nil {
		app.httpClient = http.DefaultClient
	}
	if app.guideStyle == "" {
		app.guideStyle = "dark"
	}
	if app.stdout == nil {
		app.stdout = os.Stdout
	}
	if app.stderr == nil {
		app.stderr = os.Stderr
	}
	return app
}

// newLogger returns the stderr logger; verbose lowers the level to Debug.
func (a *App) newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(a.stderr, log.Options{
		Prefix: config.AppName,
		Level:  level,
	})
}
