// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatconsole/internal/chat"
	"github.com/jeranaias/chatconsole/internal/commands"
	"github.com/jeranaias/chatconsole/internal/util"
)

// Update handles terminal events and drives the backend.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.backend.Reformat(m.width, m.chatRows())
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() && now.After(m.lastTick) {
			m.backend.Step(now.Sub(m.lastTick).Seconds())
		}
		m.lastTick = now
		return m, m.tickCmd()

	case IncomingMsg:
		m.backend.AddUnparsedMessage(msg.Text)
		return m, nil

	case ConfigChangedMsg:
		m.applyConfig(msg.Config)
		m.backend.ApplySettings(msg.Config.Chat.RecentMessages)
		m.flash = "Config reloaded"
		return m, nil

	case urlOpenedMsg:
		if msg.Err != nil {
			m.flash = fmt.Sprintf("Could not open %s: %v", msg.URL, msg.Err)
		} else {
			m.flash = "Opened " + msg.URL
		}
		return m, nil

	case clipboardMsg:
		if msg.Err != nil {
			m.flash = "Clipboard error: " + msg.Err.Error()
		} else {
			m.flash = "Copied " + msg.What
		}
		return m, nil

	case pasteMsg:
		if msg.Err != nil {
			m.flash = "Clipboard error: " + msg.Err.Error()
			return m, nil
		}
		m.insert(firstLine(msg.Text))
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prompt := m.backend.Prompt()
	m.flash = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleHUD):
		m.showHUD = !m.showHUD

	case key.Matches(msg, m.keys.PageUp):
		m.backend.ScrollPageUp()
	case key.Matches(msg, m.keys.PageDown):
		m.backend.ScrollPageDown()

	case key.Matches(msg, m.keys.Submit):
		return m, m.submit(prompt.Submit())
	case key.Matches(msg, m.keys.HistoryPrev):
		prompt.HistoryPrev()
	case key.Matches(msg, m.keys.HistoryNext):
		prompt.HistoryNext()

	case key.Matches(msg, m.keys.Left):
		prompt.CursorOperation(chat.OpMove, chat.DirLeft, chat.ScopeCharacter)
	case key.Matches(msg, m.keys.Right):
		prompt.CursorOperation(chat.OpMove, chat.DirRight, chat.ScopeCharacter)
	case key.Matches(msg, m.keys.WordLeft):
		prompt.CursorOperation(chat.OpMove, chat.DirLeft, chat.ScopeWord)
	case key.Matches(msg, m.keys.WordRight):
		prompt.CursorOperation(chat.OpMove, chat.DirRight, chat.ScopeWord)
	case key.Matches(msg, m.keys.Home):
		prompt.CursorOperation(chat.OpMove, chat.DirLeft, chat.ScopeLine)
	case key.Matches(msg, m.keys.End):
		prompt.CursorOperation(chat.OpMove, chat.DirRight, chat.ScopeLine)

	case key.Matches(msg, m.keys.SelectLeft):
		prompt.CursorOperation(chat.OpSelect, chat.DirLeft, chat.ScopeCharacter)
	case key.Matches(msg, m.keys.SelectRight):
		prompt.CursorOperation(chat.OpSelect, chat.DirRight, chat.ScopeCharacter)
	case key.Matches(msg, m.keys.SelectWordLeft):
		prompt.CursorOperation(chat.OpSelect, chat.DirLeft, chat.ScopeWord)
	case key.Matches(msg, m.keys.SelectWordRight):
		prompt.CursorOperation(chat.OpSelect, chat.DirRight, chat.ScopeWord)
	case key.Matches(msg, m.keys.SelectHome):
		for prompt.Cursor() > 0 {
			prompt.CursorOperation(chat.OpSelect, chat.DirLeft, chat.ScopeCharacter)
		}
	case key.Matches(msg, m.keys.SelectEnd):
		for prompt.Cursor()+prompt.CursorLength() < utf8.RuneCountInString(prompt.Line()) {
			prompt.CursorOperation(chat.OpSelect, chat.DirRight, chat.ScopeCharacter)
		}
	case key.Matches(msg, m.keys.SelectAll):
		prompt.CursorOperation(chat.OpSelect, chat.DirLeft, chat.ScopeLine)

	case key.Matches(msg, m.keys.Backspace):
		prompt.CursorOperation(chat.OpDelete, chat.DirLeft, chat.ScopeCharacter)
	case key.Matches(msg, m.keys.Delete):
		prompt.CursorOperation(chat.OpDelete, chat.DirRight, chat.ScopeCharacter)
	case key.Matches(msg, m.keys.DeleteWordLeft):
		prompt.CursorOperation(chat.OpDelete, chat.DirLeft, chat.ScopeWord)
	case key.Matches(msg, m.keys.DeleteWordRight):
		prompt.CursorOperation(chat.OpDelete, chat.DirRight, chat.ScopeWord)
	case key.Matches(msg, m.keys.KillToStart):
		prompt.CursorOperation(chat.OpDelete, chat.DirLeft, chat.ScopeLine)
	case key.Matches(msg, m.keys.KillToEnd):
		prompt.CursorOperation(chat.OpDelete, chat.DirRight, chat.ScopeLine)

	case key.Matches(msg, m.keys.Copy):
		return m, m.copySelection(false)
	case key.Matches(msg, m.keys.Cut):
		return m, m.copySelection(true)
	case key.Matches(msg, m.keys.Paste):
		return m, m.paste()
	case key.Matches(msg, m.keys.CopyRecent):
		return m, m.writeClipboard("recent chat", m.backend.RecentChat())

	case key.Matches(msg, m.keys.Complete):
		m.complete(false)
	case key.Matches(msg, m.keys.CompleteBack):
		m.complete(true)

	case msg.Type == tea.KeyRunes && !msg.Alt, msg.Type == tea.KeySpace:
		m.insert(string(msg.Runes))
	}

	return m, nil
}

// insert types text at the caret, replacing any selection.
func (m *Model) insert(text string) {
	if text == "" {
		return
	}
	prompt := m.backend.Prompt()
	if prompt.CursorLength() > 0 {
		prompt.CursorOperation(chat.OpDelete, chat.DirLeft, chat.ScopeSelection)
	}
	prompt.InputString(text)
}

func firstLine(text string) string {
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		return text[:i]
	}
	return text
}

// =============================================================================
// CLIPBOARD
// =============================================================================

func (m *Model) copySelection(cut bool) tea.Cmd {
	prompt := m.backend.Prompt()
	sel := prompt.Selection()
	if sel == "" {
		return nil
	}
	if cut {
		prompt.CursorOperation(chat.OpDelete, chat.DirLeft, chat.ScopeSelection)
	}
	return m.writeClipboard("selection", sel)
}

func (m *Model) writeClipboard(what, text string) tea.Cmd {
	cb := m.clipboard
	return func() tea.Msg {
		return clipboardMsg{What: what, Err: cb.WriteAll(text)}
	}
}

func (m *Model) paste() tea.Cmd {
	cb := m.clipboard
	return func() tea.Msg {
		text, err := cb.ReadAll()
		return pasteMsg{Text: text, Err: err}
	}
}

// =============================================================================
// MOUSE
// =============================================================================

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.MouseWheelUp:
		m.backend.Scroll(-m.wheelRows)
	case tea.MouseWheelDown:
		m.backend.Scroll(m.wheelRows)
	case tea.MouseMiddle:
		return m, m.openWeblinkAt(msg.X, msg.Y)
	case tea.MouseLeft:
		if msg.Ctrl {
			return m, m.openWeblinkAt(msg.X, msg.Y)
		}
	}
	return m, nil
}

// WeblinkAt returns the URL shown at a screen cell of the console, if any.
func (m *Model) WeblinkAt(x, y int) (string, bool) {
	if m.showHUD || y < 0 || y >= m.chatRows() || x < 0 {
		return "", false
	}
	row := m.backend.ConsoleBuffer().FormattedLine(y)
	col := util.CharColumn(row.String(), x)
	frag, ok := row.FragmentAt(col)
	if !ok || frag.Weblink == "" {
		return "", false
	}
	return frag.Weblink, true
}

func (m *Model) openWeblinkAt(x, y int) tea.Cmd {
	url, ok := m.WeblinkAt(x, y)
	if !ok {
		return nil
	}
	open := m.openURL
	return func() tea.Msg {
		log.Printf("opening weblink %s", url)
		return urlOpenedMsg{URL: url, Err: open(url)}
	}
}

// =============================================================================
// SUBMITTED LINES
// =============================================================================

// submit handles a line taken from the prompt: slash commands go to the
// command registry, anything else is echoed as chat under the current nick.
func (m *Model) submit(line string) tea.Cmd {
	if line == "" {
		return nil
	}
	if !commands.IsCommand(line) {
		m.backend.AddMessage(m.nick, line)
		return nil
	}

	ctx := &commands.Context{
		Backend:   m.backend,
		Nick:      m.nick,
		HelpExtra: m.keyHelp(),
	}
	action := m.commands.Execute(ctx, line)
	m.nick = ctx.Nick
	if action == commands.ActionQuit {
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// keyHelp lists the key bindings, one line per help group.
func (m *Model) keyHelp() []string {
	var lines []string
	for _, group := range m.keys.FullHelp() {
		var parts []string
		for _, b := range group {
			h := b.Help()
			parts = append(parts, h.Key+" "+h.Desc)
		}
		lines = append(lines, strings.Join(parts, ", "))
	}
	return lines
}

// complete finishes a command name while one is being typed, otherwise
// cycles nick completion.
func (m *Model) complete(backwards bool) {
	prompt := m.backend.Prompt()
	if partial := commands.GetPartialCommand(prompt.Line()); partial != "" {
		matches := m.commands.CompleteName(partial)
		switch {
		case len(matches) == 1:
			prompt.Replace(matches[0] + " ")
		case len(matches) > 1:
			m.flash = strings.Join(matches, " ")
		}
		return
	}
	prompt.NickCompletion(m.completionNames(), backwards)
}

// completionNames lists nick completion candidates: configured names, the
// local nick, then senders seen in the console, without duplicates.
func (m *Model) completionNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, n := range m.nicknames {
		add(n)
	}
	add(m.nick)
	console := m.backend.ConsoleBuffer()
	for i := 0; i < console.LineCount(); i++ {
		add(console.Line(i).Name)
	}
	return names
}
