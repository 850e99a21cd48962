// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the console.
type KeyMap struct {
	// Scrollback
	PageUp   key.Binding
	PageDown key.Binding

	// Prompt and history
	Submit      key.Binding
	HistoryPrev key.Binding
	HistoryNext key.Binding

	// Caret movement
	Left      key.Binding
	Right     key.Binding
	WordLeft  key.Binding
	WordRight key.Binding
	Home      key.Binding
	End       key.Binding

	// Selection
	SelectLeft      key.Binding
	SelectRight     key.Binding
	SelectWordLeft  key.Binding
	SelectWordRight key.Binding
	SelectHome      key.Binding
	SelectEnd       key.Binding
	SelectAll       key.Binding

	// Deletion
	Backspace       key.Binding
	Delete          key.Binding
	DeleteWordLeft  key.Binding
	DeleteWordRight key.Binding
	KillToStart     key.Binding
	KillToEnd       key.Binding

	// Clipboard
	Copy       key.Binding
	Cut        key.Binding
	Paste      key.Binding
	CopyRecent key.Binding

	// Completion
	Complete     key.Binding
	CompleteBack key.Binding

	// Application
	ToggleHUD key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "scroll down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		HistoryPrev: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("Up", "previous line"),
		),
		HistoryNext: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("Down", "next line"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("Left", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("Right", "move right"),
		),
		WordLeft: key.NewBinding(
			key.WithKeys("ctrl+left", "alt+b"),
			key.WithHelp("C-Left", "word left"),
		),
		WordRight: key.NewBinding(
			key.WithKeys("ctrl+right", "alt+f"),
			key.WithHelp("C-Right", "word right"),
		),
		Home: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("Home", "line start"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "ctrl+e"),
			key.WithHelp("End", "line end"),
		),
		SelectLeft: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("S-Left", "select left"),
		),
		SelectRight: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("S-Right", "select right"),
		),
		SelectWordLeft: key.NewBinding(
			key.WithKeys("ctrl+shift+left"),
			key.WithHelp("C-S-Left", "select word left"),
		),
		SelectWordRight: key.NewBinding(
			key.WithKeys("ctrl+shift+right"),
			key.WithHelp("C-S-Right", "select word right"),
		),
		SelectHome: key.NewBinding(
			key.WithKeys("shift+home"),
			key.WithHelp("S-Home", "select to start"),
		),
		SelectEnd: key.NewBinding(
			key.WithKeys("shift+end"),
			key.WithHelp("S-End", "select to end"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("C-a", "select all"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("Backspace", "delete left"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete", "ctrl+d"),
			key.WithHelp("Delete", "delete right"),
		),
		DeleteWordLeft: key.NewBinding(
			key.WithKeys("ctrl+w", "alt+backspace"),
			key.WithHelp("C-w", "delete word left"),
		),
		DeleteWordRight: key.NewBinding(
			key.WithKeys("alt+d"),
			key.WithHelp("M-d", "delete word right"),
		),
		KillToStart: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "delete to start"),
		),
		KillToEnd: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("C-k", "delete to end"),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "copy"),
		),
		Cut: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "cut"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("C-v", "paste"),
		),
		CopyRecent: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("C-y", "copy chat"),
		),
		Complete: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("Tab", "complete nick"),
		),
		CompleteBack: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-Tab", "previous nick"),
		),
		ToggleHUD: key.NewBinding(
			key.WithKeys("f10"),
			key.WithHelp("F10", "console/hud"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "quit"),
		),
	}
}

// =============================================================================
// KEY BINDING HELPERS
// =============================================================================

// ShortHelp returns the bindings shown in the status bar.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ToggleHUD, k.Complete, k.CopyRecent, k.Quit}
}

// FullHelp returns the bindings listed by the /help command.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PageUp, k.PageDown, k.HistoryPrev, k.HistoryNext, k.Submit},
		{k.WordLeft, k.WordRight, k.Home, k.End},
		{k.SelectLeft, k.SelectRight, k.SelectWordLeft, k.SelectWordRight, k.SelectAll},
		{k.Backspace, k.Delete, k.DeleteWordLeft, k.DeleteWordRight, k.KillToStart, k.KillToEnd},
		{k.Copy, k.Cut, k.Paste, k.CopyRecent},
		{k.Complete, k.CompleteBack, k.ToggleHUD, k.Quit},
	}
}
