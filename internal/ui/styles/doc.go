// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the chatconsole TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection. The theme mode can be forced with the ui.theme setting.

# Color System (colors.go)

  - Purple, Cyan, Emerald, Rose, Amber: accents
  - TextPrimary, TextSecondary, TextMuted: chat, system and hint text
  - SelectionBg: prompt selection
  - NickColor: a stable per-nickname color derived from a hash of the name

# Theme (theme.go)

	theme := styles.NewTheme(cfg.UI.Theme)
	row := theme.Name("alice").Render("<alice>") + " " + theme.Text.Render("hi")

Status helpers (RenderSuccess, RenderError, RenderWarning, RenderInfo)
prefix messages with ASCII shape indicators for colorblind users.
*/
package styles
