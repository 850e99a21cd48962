// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package console

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"

	"github.com/jeranaias/chatconsole/internal/chat"
	"github.com/jeranaias/chatconsole/internal/commands"
	"github.com/jeranaias/chatconsole/internal/config"
	"github.com/jeranaias/chatconsole/internal/ui/styles"
)

// chromeRows is the number of rows below the chat area: prompt and status bar.
const chromeRows = 2

// =============================================================================
// COLLABORATORS
// =============================================================================

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// URLOpener opens a weblink outside the terminal.
type URLOpener func(url string) error

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model of the chat console. It owns no chat state
// of its own; everything shown comes from the backend.
type Model struct {
	backend  *chat.Backend
	theme    *styles.Theme
	keys     KeyMap
	commands *commands.Registry

	clipboard Clipboard
	openURL   URLOpener

	nick         string
	nicknames    []string
	wheelRows    int
	tick         time.Duration
	weblinkColor string

	width    int
	height   int
	showHUD  bool
	lastTick time.Time
	flash    string
	quitting bool
}

// Option configures a Model.
type Option func(*Model)

// WithClipboard replaces the system clipboard.
func WithClipboard(c Clipboard) Option {
	return func(m *Model) { m.clipboard = c }
}

// WithURLOpener replaces the browser used for weblinks.
func WithURLOpener(open URLOpener) Option {
	return func(m *Model) { m.openURL = open }
}

// WithTheme replaces the theme detected from the terminal.
func WithTheme(t *styles.Theme) Option {
	return func(m *Model) { m.theme = t }
}

// New creates a console model around backend, configured from cfg.
func New(backend *chat.Backend, cfg *config.Config, opts ...Option) *Model {
	m := &Model{
		backend:   backend,
		keys:      DefaultKeyMap(),
		commands:  commands.NewRegistry(),
		clipboard: systemClipboard{},
		openURL:   browser.OpenURL,
		showHUD:   cfg.UI.ShowHUD,
	}
	m.applyConfig(cfg)
	for _, opt := range opts {
		opt(m)
	}
	if m.theme == nil {
		m.theme = styles.NewTheme(cfg.UI.Theme)
	}
	return m
}

func (m *Model) applyConfig(cfg *config.Config) {
	m.nick = cfg.Chat.Nickname
	m.nicknames = append([]string(nil), cfg.Chat.Nicknames...)
	m.wheelRows = cfg.UI.WheelRows
	m.tick = time.Duration(cfg.UI.TickMillis) * time.Millisecond
	m.weblinkColor = cfg.Chat.WeblinkColor
}

// Backend returns the chat backend driven by the model.
func (m *Model) Backend() *chat.Backend {
	return m.backend
}

// Nick returns the name submitted lines are sent under.
func (m *Model) Nick() string {
	return m.nick
}

// ShowingHUD reports whether the recent-messages view is shown instead of
// the console.
func (m *Model) ShowingHUD() bool {
	return m.showHUD
}

// chatRows is the height of the chat area.
func (m *Model) chatRows() int {
	return max(m.height-chromeRows, 0)
}

// =============================================================================
// MESSAGES
// =============================================================================

// tickMsg ages the recent messages.
type tickMsg time.Time

// IncomingMsg delivers a server message in "<name> text" form.
type IncomingMsg struct {
	Text string
}

// ConfigChangedMsg carries a reloaded configuration.
type ConfigChangedMsg struct {
	Config *config.Config
}

// urlOpenedMsg reports the result of opening a weblink.
type urlOpenedMsg struct {
	URL string
	Err error
}

// clipboardMsg reports the result of a clipboard write.
type clipboardMsg struct {
	What string
	Err  error
}

// pasteMsg carries clipboard contents to insert at the caret.
type pasteMsg struct {
	Text string
	Err  error
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tick, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the aging ticker.
func (m *Model) Init() tea.Cmd {
	m.lastTick = time.Now()
	return m.tickCmd()
}
