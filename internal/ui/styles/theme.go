// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the console.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// CHAT AREA STYLES
	// ==========================================================================

	Text    lipgloss.Style
	System  lipgloss.Style
	Weblink lipgloss.Style

	// ==========================================================================
	// PROMPT STYLES
	// ==========================================================================

	PromptPrefix lipgloss.Style
	PromptText   lipgloss.Style
	Cursor       lipgloss.Style
	Selection    lipgloss.Style

	// ==========================================================================
	// HUD AND STATUS STYLES
	// ==========================================================================

	HUDBox       lipgloss.Style
	HUDTitle     lipgloss.Style
	StatusBar    lipgloss.Style
	StatusKey    lipgloss.Style
	StatusDesc   lipgloss.Style
	ScrollNotice lipgloss.Style
	Separator    lipgloss.Style
	FlashMessage lipgloss.Style
}

// NewTheme creates a theme. mode is "dark", "light" or "auto"; auto asks the
// terminal for its background.
func NewTheme(mode string) *Theme {
	colorProfile := termenv.ColorProfile()

	var isDark bool
	switch strings.ToLower(mode) {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		isDark = termenv.HasDarkBackground()
	}
	lipgloss.SetHasDarkBackground(isDark)

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	t.Text = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.System = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Weblink = lipgloss.NewStyle().
		Foreground(LinkColor).
		Underline(true)

	t.PromptPrefix = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.PromptText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Cursor = lipgloss.NewStyle().
		Reverse(true)

	t.Selection = lipgloss.NewStyle().
		Background(SelectionBg).
		Foreground(TextPrimary)

	t.HUDBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.HUDTitle = lipgloss.NewStyle().
		Foreground(Purple).
		Bold(true)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary)

	t.StatusKey = lipgloss.NewStyle().
		Foreground(Cyan).
		Bold(true)

	t.StatusDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ScrollNotice = lipgloss.NewStyle().
		Foreground(Amber).
		Bold(true)

	t.Separator = lipgloss.NewStyle().
		Foreground(Overlay)

	t.FlashMessage = lipgloss.NewStyle().
		Foreground(Emerald)
}

// Name returns the style for a sender's name.
func (t *Theme) Name(name string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(NickColor(name)).
		Bold(true)
}

// WeblinkColored returns the link style in a configured hex color. An empty
// color keeps the theme default.
func (t *Theme) WeblinkColored(hex string) lipgloss.Style {
	if hex == "" {
		return t.Weblink
	}
	return t.Weblink.Foreground(lipgloss.Color(hex))
}
