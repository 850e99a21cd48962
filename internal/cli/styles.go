// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// styles.go - Shared styles for non-interactive command output.
//
// Colours are disabled for piped output and when NO_COLOR is set.

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatconsole/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

var (
	// TitleStyle is used for command titles and headers
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Cyan)

	// SectionStyle is used for config sections
	SectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Purple)

	// LabelStyle is used for setting names
	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	// ValueStyle is used for setting values
	ValueStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	// ErrorStyle is used for error messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)

	// SuccessStyle is used for confirmations
	SuccessStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald).
			Bold(true)

	// DimStyle is used for hints and secondary text
	DimStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)
