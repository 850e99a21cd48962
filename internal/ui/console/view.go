// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/chatconsole/internal/chat"
	"github.com/jeranaias/chatconsole/internal/util"
)

// View renders the chat area, the prompt row and the status bar.
func (m *Model) View() string {
	if m.quitting || m.width <= 0 || m.height <= 0 {
		return ""
	}

	var rows []string
	if m.showHUD {
		rows = m.hudRows()
	} else {
		rows = m.consoleRows()
	}
	if m.height > 1 {
		rows = append(rows, m.promptRow())
	}
	rows = append(rows, m.statusRow())

	return strings.Join(rows, "\n")
}

// =============================================================================
// CHAT AREA
// =============================================================================

func (m *Model) consoleRows() []string {
	buf := m.backend.ConsoleBuffer()
	rows := make([]string, m.chatRows())
	for i := range rows {
		rows[i] = m.renderLine(buf.FormattedLine(i), m.width)
	}
	return rows
}

// renderLine styles one formatted row and fits it to width cells.
func (m *Model) renderLine(fl chat.FormattedLine, width int) string {
	var sb strings.Builder
	used := 0
	col := 0

	nameIndex := -1
	if fl.First && len(fl.Fragments) >= 3 &&
		fl.Fragments[0].Column == 0 && fl.Fragments[0].Text == "<" &&
		strings.HasPrefix(fl.Fragments[2].Text, ">") {
		nameIndex = 1
	}

	for i, frag := range fl.Fragments {
		if used >= width {
			break
		}
		if gap := min(frag.Column-col, width-used); gap > 0 {
			sb.WriteString(strings.Repeat(" ", gap))
			used += gap
		}
		text := util.TruncateWidth(frag.Text, width-used)
		used += util.StringWidth(text)
		col = frag.Column + frag.Len()

		switch {
		case frag.Weblink != "":
			sb.WriteString(m.theme.WeblinkColored(frag.Color).Render(text))
		case i == nameIndex:
			sb.WriteString(m.theme.Name(frag.Text).Render(text))
		case nameIndex < 0 && fl.First && strings.HasPrefix(fl.Text(), "-!- "):
			sb.WriteString(m.theme.System.Render(text))
		default:
			sb.WriteString(m.theme.Text.Render(text))
		}
	}
	if used < width {
		sb.WriteString(strings.Repeat(" ", width-used))
	}
	return sb.String()
}

// hudRows shows the recent messages in a box anchored to the bottom of the
// chat area.
func (m *Model) hudRows() []string {
	area := m.chatRows()
	rows := make([]string, 0, area)

	// Border and padding take two cells on each side.
	inner := m.width - 4
	var lines []string
	recent := m.backend.RecentBuffer()
	if inner > 0 {
		for i := 0; i < recent.LineCount(); i++ {
			for _, fl := range recent.Format(recent.Line(i), inner) {
				lines = append(lines, m.renderLine(fl, inner))
			}
		}
	}
	keep := area - 2
	if keep <= 0 {
		lines = nil
	} else if len(lines) > keep {
		lines = lines[len(lines)-keep:]
	}

	if len(lines) > 0 {
		box := m.theme.HUDBox.Width(m.width - 2).Render(strings.Join(lines, "\n"))
		boxRows := strings.Split(box, "\n")
		for len(rows)+len(boxRows) < area {
			rows = append(rows, strings.Repeat(" ", m.width))
		}
		rows = append(rows, boxRows...)
	}
	for len(rows) < area {
		rows = append(rows, strings.Repeat(" ", m.width))
	}
	return rows[:area]
}

// =============================================================================
// PROMPT
// =============================================================================

// promptRow renders the visible part of the edit line with the caret and
// selection highlighted.
func (m *Model) promptRow() string {
	prompt := m.backend.Prompt()
	prefix := prompt.PromptPrefix()
	visible := []rune(prompt.VisiblePortion())
	prefixLen := len([]rune(prefix))
	if prefixLen > len(visible) {
		prefixLen = len(visible)
	}

	caret := prompt.VisibleCursorPosition()
	selStart := caret
	selEnd := caret + prompt.CursorLength()

	var sb strings.Builder
	used := 0
	write := func(style lipgloss.Style, s string) {
		if used >= m.width || s == "" {
			return
		}
		s = util.TruncateWidth(s, m.width-used)
		used += util.StringWidth(s)
		sb.WriteString(style.Render(s))
	}

	write(m.theme.PromptPrefix, string(visible[:prefixLen]))

	// Group the rest into runs of the same highlight.
	classOf := func(i int) int {
		switch {
		case i == caret:
			return 2
		case i >= selStart && i < selEnd:
			return 1
		default:
			return 0
		}
	}
	styleOf := []lipgloss.Style{m.theme.PromptText, m.theme.Selection, m.theme.Cursor}

	start := prefixLen
	for i := prefixLen; i <= len(visible); i++ {
		if i == len(visible) || classOf(i) != classOf(start) {
			write(styleOf[classOf(start)], string(visible[start:i]))
			start = i
		}
	}
	if caret >= len(visible) && caret >= prefixLen {
		write(m.theme.Cursor, " ")
	}

	if used < m.width {
		sb.WriteString(strings.Repeat(" ", m.width-used))
	}
	return sb.String()
}

// =============================================================================
// STATUS BAR
// =============================================================================

func (m *Model) statusRow() string {
	mode := "[console]"
	if m.showHUD {
		mode = "[hud]"
	}

	left := mode + " " + m.nick
	if !m.showHUD && !m.backend.ConsoleBuffer().AtBottom() {
		left += "  " + m.theme.ScrollNotice.Render("-- more below --")
	}
	if m.flash != "" {
		left += "  " + m.theme.FlashMessage.Render(m.flash)
	}

	var hints []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, m.theme.StatusKey.Render(h.Key)+" "+m.theme.StatusDesc.Render(h.Desc))
	}
	right := strings.Join(hints, "  ")

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		right = ""
		gap = max(m.width-lipgloss.Width(left), 0)
	}
	bar := left + strings.Repeat(" ", gap) + right
	return m.theme.StatusBar.MaxWidth(m.width).Render(bar)
}
