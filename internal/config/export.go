// SPDX-License-Identifier: MPL-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// FormatCUE renders the config file format.
	FormatCUE Format = "cue"
	// FormatJSON renders the legacy JSON layout plus the newer keys.
	FormatJSON Format = "json"
	// FormatTOML renders TOML, handy for pasting into bug reports.
	FormatTOML Format = "toml"
)

// ErrUnknownFormat is returned by Render for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

type (
	// Format selects the Render output syntax.
	Format string

	// fileView is Config with durations as strings, the way they are written
	// in files.
	fileView struct {
		TargetDirectory string   `json:"target_directory" toml:"target_directory"`
		AddonIDs        []uint16 `json:"addon_ids" toml:"addon_ids"`
		BaseURL         string   `json:"base_url" toml:"base_url"`
		UserAgent       string   `json:"user_agent,omitempty" toml:"user_agent,omitempty"`
		Timeout         string   `json:"timeout" toml:"timeout"`
		DownloadTimeout string   `json:"download_timeout" toml:"download_timeout"`
		UI              struct {
			Verbose bool `json:"verbose" toml:"verbose"`
		} `json:"ui" toml:"ui"`
	}
)

func (c *Config) view() fileView {
	v := fileView{
		TargetDirectory: c.TargetDirectory,
		AddonIDs:        c.AddonIDs,
		BaseURL:         c.BaseURL,
		UserAgent:       c.UserAgent,
		Timeout:         c.Timeout.String(),
		DownloadTimeout: c.DownloadTimeout.String(),
	}
	v.UI.Verbose = c.UI.Verbose
	return v
}

// Render returns cfg in the given format.
func Render(cfg *Config, format Format) (string, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatCUE, "":
		return GenerateCUE(cfg), nil
	case FormatJSON:
		data, err := json.MarshalIndent(cfg.view(), "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding config as JSON: %w", err)
		}
		return string(data) + "\n", nil
	case FormatTOML:
		data, err := toml.Marshal(cfg.view())
		if err != nil {
			return "", fmt.Errorf("encoding config as TOML: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w %q (want cue, json or toml)", ErrUnknownFormat, format)
	}
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// openesoui-mm configuration\n")
	sb.WriteString("// Addon ids are the numbers in https://www.esoui.com/downloads/info<id>.\n\n")

	sb.WriteString(fmt.Sprintf("target_directory: %q\n", cfg.TargetDirectory))

	ids := make([]string, len(cfg.AddonIDs))
	for i, id := range cfg.AddonIDs {
		ids[i] = fmt.Sprint(id)
	}
	sb.WriteString(fmt.Sprintf("addon_ids: [%s]\n", strings.Join(ids, ", ")))

	sb.WriteString(fmt.Sprintf("\nbase_url: %q\n", cfg.BaseURL))
	if cfg.UserAgent != "" {
		sb.WriteString(fmt.Sprintf("user_agent: %q\n", cfg.UserAgent))
	}
	sb.WriteString(fmt.Sprintf("timeout: %q\n", cfg.Timeout.String()))
	sb.WriteString(fmt.Sprintf("download_timeout: %q\n", cfg.DownloadTimeout.String()))

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}
