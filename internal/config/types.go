// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"mvdan.cc/sh/v3/shell"

	"github.com/DamianRyse/OpenEsoUI-MM/internal/esoui"
)

// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
var ErrInvalidConfig = errors.New("invalid config")

// DefaultAddonIDs are written into a freshly created config: Simple Skyshards
// and BindAll.
var DefaultAddonIDs = []uint16{4063, 3501}

type (
	// Config holds the effective configuration after file, environment and
	// defaults have been merged.
	Config struct {
		// TargetDirectory is where archives are extracted.
		TargetDirectory string `json:"target_directory" mapstructure:"target_directory"`
		// AddonIDs lists the addons processed when no ids are given on the command line.
		AddonIDs []uint16 `json:"addon_ids" mapstructure:"addon_ids"`
		BaseURL  string   `json:"base_url" mapstructure:"base_url"`
		// UserAgent is sent with every request; empty selects the built-in one.
		UserAgent       string        `json:"user_agent,omitempty" mapstructure:"user_agent"`
		Timeout         time.Duration `json:"timeout" mapstructure:"timeout"`
		DownloadTimeout time.Duration `json:"download_timeout" mapstructure:"download_timeout"`
		UI              UIConfig      `json:"ui" mapstructure:"ui"`
	}

	// UIConfig holds terminal output settings.
	UIConfig struct {
		// Verbose enables debug logging and rendered troubleshooting guides.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}

	// InvalidConfigError is returned when a value passed the file schema (or
	// bypassed it through the environment or a legacy JSON file) but cannot be used.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		Field  string
		Reason string
	}
)

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// DefaultConfig returns the configuration used for keys the file does not set.
// The target directory defaults to dir, the config directory itself, so a
// fresh install never writes outside a location the user already owns.
func DefaultConfig(dir string) *Config {
	return &Config{
		TargetDirectory: dir,
		AddonIDs:        append([]uint16(nil), DefaultAddonIDs...),
		BaseURL:         esoui.DefaultBaseURL,
		Timeout:         esoui.DefaultPageTimeout,
		DownloadTimeout: esoui.DefaultDownloadTimeout,
	}
}

// Validate checks the constraints the CUE schema cannot enforce for values
// that arrive through the environment or a legacy JSON file.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TargetDirectory) == "" {
		return &InvalidConfigError{Field: "target_directory", Reason: "must not be empty"}
	}
	for i, id := range c.AddonIDs {
		if id == 0 {
			return &InvalidConfigError{Field: fmt.Sprintf("addon_ids[%d]", i), Reason: "addon id must be greater than 0"}
		}
	}
	if c.Timeout <= 0 {
		return &InvalidConfigError{Field: "timeout", Reason: "must be positive"}
	}
	if c.DownloadTimeout <= 0 {
		return &InvalidConfigError{Field: "download_timeout", Reason: "must be positive"}
	}
	return nil
}

// AddonIDList converts the configured ids to esoui.AddonID values.
func (c *Config) AddonIDList() []esoui.AddonID {
	ids := make([]esoui.AddonID, len(c.AddonIDs))
	for i, id := range c.AddonIDs {
		ids[i] = esoui.AddonID(id)
	}
	return ids
}

// ExpandPath resolves a leading ~ to the home directory and expands $VAR and
// ${VAR} references. Referencing an unset variable is an error.
func ExpandPath(p string) (string, error) {
	if p == "~" || strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		p = filepath.Join(home, p[1:])
	}
	if !strings.Contains(p, "$") {
		return p, nil
	}

	var unset []string
	expanded, err := shell.Expand(p, func(name string) string {
		v, ok := os.LookupEnv(name)
		if !ok {
			unset = append(unset, name)
		}
		return v
	})
	if err != nil {
		return "", fmt.Errorf("expanding %q: %w", p, err)
	}
	if len(unset) > 0 {
		return "", fmt.Errorf("expanding %q: environment variable %s is not set", p, unset[0])
	}
	return expanded, nil
}
