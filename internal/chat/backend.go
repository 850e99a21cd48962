// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Defaults used by NewBackend.
const (
	DefaultConsoleScrollback = 500
	DefaultRecentScrollback  = 6
	DefaultHistoryLimit      = 500
	DefaultPrompt            = "]"
	DefaultRecentMaxAge      = 60.0

	// MinRecentLines and MaxRecentLines bound ApplySettings.
	MinRecentLines = 2
	MaxRecentLines = 20
)

// Backend owns the console buffer, the recent-messages buffer shown as a
// HUD overlay, and the input prompt.
type Backend struct {
	console *Buffer
	recent  *Buffer
	prompt  *Prompt

	recentMaxAge float64
}

type backendOptions struct {
	consoleScrollback int
	recentScrollback  int
	historyLimit      int
	prompt            string
	recentMaxAge      float64
	bufferOpts        []BufferOption
}

// Option configures a Backend.
type Option func(*backendOptions)

// WithConsoleScrollback sets how many lines the console keeps.
func WithConsoleScrollback(n int) Option {
	return func(o *backendOptions) { o.consoleScrollback = n }
}

// WithRecentScrollback sets how many lines the recent buffer keeps.
func WithRecentScrollback(n int) Option {
	return func(o *backendOptions) { o.recentScrollback = n }
}

// WithHistoryLimit sets the prompt history size.
func WithHistoryLimit(n int) Option {
	return func(o *backendOptions) { o.historyLimit = n }
}

// WithPrompt sets the prompt prefix.
func WithPrompt(prompt string) Option {
	return func(o *backendOptions) { o.prompt = prompt }
}

// WithRecentMaxAge sets the age in seconds after which recent lines expire.
func WithRecentMaxAge(seconds float64) Option {
	return func(o *backendOptions) { o.recentMaxAge = seconds }
}

// WithBufferOptions applies opts to both buffers.
func WithBufferOptions(opts ...BufferOption) Option {
	return func(o *backendOptions) { o.bufferOpts = append(o.bufferOpts, opts...) }
}

// NewBackend creates a backend with a 500 line console, a 6 line recent
// buffer and a "]" prompt with 500 history entries unless overridden.
func NewBackend(opts ...Option) *Backend {
	o := backendOptions{
		consoleScrollback: DefaultConsoleScrollback,
		recentScrollback:  DefaultRecentScrollback,
		historyLimit:      DefaultHistoryLimit,
		prompt:            DefaultPrompt,
		recentMaxAge:      DefaultRecentMaxAge,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Backend{
		console:      NewBuffer(o.consoleScrollback, o.bufferOpts...),
		recent:       NewBuffer(o.recentScrollback, o.bufferOpts...),
		prompt:       NewPrompt(o.prompt, o.historyLimit),
		recentMaxAge: o.recentMaxAge,
	}
}

// AddMessage adds a message to both buffers, one line per "\n"-terminated
// part. Empty text adds nothing, and a final "\n" does not start a new line.
// It returns the number of lines added.
func (b *Backend) AddMessage(name, text string) int {
	name = norm.NFC.String(name)
	text = norm.NFC.String(text)
	lines := messageLines(text)
	for _, line := range lines {
		b.console.AddLine(name, line)
		b.recent.AddLine(name, line)
	}
	return len(lines)
}

func messageLines(text string) []string {
	var lines []string
	for text != "" {
		line, rest, _ := strings.Cut(text, "\n")
		lines = append(lines, line)
		text = rest
	}
	return lines
}

// AddUnparsedMessage splits a "<name> text" message into sender and text.
// Anything else is added as a system message. It returns the number of lines
// added.
func (b *Backend) AddUnparsedMessage(message string) int {
	if len(message) >= 2 && message[0] == '<' {
		closing := strings.IndexByte(message[1:], '>')
		if closing >= 0 {
			closing++
			if closing+2 <= len(message) && message[closing+1] == ' ' {
				return b.AddMessage(message[1:closing], message[closing+2:])
			}
		}
	}
	return b.AddMessage("", message)
}

// ConsoleBuffer returns the scrollable console buffer.
func (b *Backend) ConsoleBuffer() *Buffer {
	return b.console
}

// RecentBuffer returns the buffer of recent messages.
func (b *Backend) RecentBuffer() *Buffer {
	return b.recent
}

// Prompt returns the input prompt.
func (b *Backend) Prompt() *Prompt {
	return b.prompt
}

// RecentChat renders the recent buffer back into "<name> text" lines.
func (b *Backend) RecentChat() string {
	var sb strings.Builder
	for i := 0; i < b.recent.LineCount(); i++ {
		if i != 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(b.recent.Line(i).String())
	}
	return sb.String()
}

// Reformat resizes the console and prompt. The recent buffer is never
// displayed through rows, so it stays unformatted.
func (b *Backend) Reformat(cols, rows int) {
	b.console.Reformat(cols, rows)
	b.prompt.Reformat(cols)
}

// ClearRecentChat empties the recent buffer.
func (b *Backend) ClearRecentChat() {
	b.recent.Clear()
}

// ApplySettings resizes the recent buffer, clamped to
// [MinRecentLines, MaxRecentLines].
func (b *Backend) ApplySettings(recentLines int) {
	recentLines = max(MinRecentLines, min(recentLines, MaxRecentLines))
	b.recent.Resize(recentLines)
}

// Step ages the recent buffer and drops expired lines. The console only
// loses lines to its scrollback limit.
func (b *Backend) Step(dtime float64) {
	b.recent.Step(dtime)
	b.recent.DeleteByAge(b.recentMaxAge)
}

// Scroll moves the console view by rows.
func (b *Backend) Scroll(rows int) {
	b.console.Scroll(rows)
}

// ScrollPageDown scrolls the console forward by one viewport.
func (b *Backend) ScrollPageDown() {
	b.console.Scroll(b.console.Rows())
}

// ScrollPageUp scrolls the console back by one viewport.
func (b *Backend) ScrollPageUp() {
	b.console.Scroll(-b.console.Rows())
}
