// SPDX-License-Identifier: MPL-2.0

package cmd

import "github.com/charmbracelet/lipgloss"

// Update output colors. Hex values read well on dark terminals; lipgloss
// downgrades them on limited terminals and drops them when output is piped.
const (
	ColorPrimary   = lipgloss.Color("#7C3AED") // banner, "## Addon (ID: n)" headers
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorSuccess   = lipgloss.Color("#10B981") // "Completed!"
	ColorError     = lipgloss.Color("#EF4444") // failed addon marker
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorHighlight = lipgloss.Color("#3B82F6") // paths and guide ids
)

var (
	// TitleStyle renders the startup banner and the per-addon header line.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	// SubtitleStyle renders the banner tagline and help section labels.
	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().Foreground(ColorSuccess)

	// ErrorStyle prefixes the actionable error printed for a failed addon.
	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorError)

	// WarningStyle marks problems that do not stop the run, such as a default
	// config that could not be written.
	WarningStyle = lipgloss.NewStyle().Foreground(ColorWarning)

	// CmdStyle highlights the AddOns directory, config file paths and guide ids.
	CmdStyle = lipgloss.NewStyle().Foreground(ColorHighlight)
)
