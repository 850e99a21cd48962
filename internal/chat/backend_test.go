// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_Defaults(t *testing.T) {
	b := NewBackend()
	assert.Equal(t, DefaultConsoleScrollback, b.ConsoleBuffer().Scrollback())
	assert.Equal(t, DefaultRecentScrollback, b.RecentBuffer().Scrollback())
	assert.Equal(t, DefaultPrompt, b.Prompt().PromptPrefix())
}

func TestBackend_Options(t *testing.T) {
	b := NewBackend(
		WithConsoleScrollback(10),
		WithRecentScrollback(3),
		WithHistoryLimit(1),
		WithPrompt("> "),
	)
	assert.Equal(t, 10, b.ConsoleBuffer().Scrollback())
	assert.Equal(t, 3, b.RecentBuffer().Scrollback())
	assert.Equal(t, "> ", b.Prompt().PromptPrefix())

	b.Prompt().Replace("a")
	b.Prompt().Submit()
	b.Prompt().Replace("b")
	b.Prompt().Submit()
	assert.Equal(t, []string{"b"}, b.Prompt().History())
}

func TestBackend_AddMessageSplitsLines(t *testing.T) {
	b := NewBackend()
	b.AddMessage("bob", "one\ntwo")

	for _, buf := range []*Buffer{b.ConsoleBuffer(), b.RecentBuffer()} {
		require.Equal(t, 2, buf.LineCount())
		assert.Equal(t, Line{Name: "bob", Text: "one"}, buf.Line(0))
		assert.Equal(t, Line{Name: "bob", Text: "two"}, buf.Line(1))
	}
}

func TestBackend_AddMessageLineBreaks(t *testing.T) {
	tests := []struct {
		name string
		add  func(*Backend)
		want []string
	}{
		{"trailing newline", func(b *Backend) { b.AddMessage("bob", "one\n") }, []string{"one"}},
		{"blank line kept", func(b *Backend) { b.AddMessage("bob", "a\n\nb") }, []string{"a", "", "b"}},
		{"lone newline", func(b *Backend) { b.AddMessage("bob", "\n") }, []string{""}},
		{"empty text", func(b *Backend) { b.AddMessage("", "") }, nil},
		{"empty unparsed body", func(b *Backend) { b.AddUnparsedMessage("<bob> ") }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend()
			tt.add(b)
			for _, buf := range []*Buffer{b.ConsoleBuffer(), b.RecentBuffer()} {
				var got []string
				for i := 0; i < buf.LineCount(); i++ {
					got = append(got, buf.Line(i).Text)
				}
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestBackend_AddMessageNormalizes(t *testing.T) {
	b := NewBackend()
	b.AddMessage("Ze\u0301", "cafe\u0301")
	line := b.ConsoleBuffer().Line(0)
	assert.Equal(t, "Z\u00e9", line.Name)
	assert.Equal(t, "caf\u00e9", line.Text)
}

func TestBackend_AddUnparsedMessage(t *testing.T) {
	tests := []struct {
		message  string
		wantName string
		wantText string
	}{
		{"<bob> hi there", "bob", "hi there"},
		{"<bob> ", "bob", ""},
		{"<bob>hi", "", "<bob>hi"},
		{"<bob hi", "", "<bob hi"},
		{"*** alice joined", "", "*** alice joined"},
		{"", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			b := NewBackend()
			b.AddUnparsedMessage(tt.message)
			require.Equal(t, 1, b.ConsoleBuffer().LineCount())
			line := b.ConsoleBuffer().Line(0)
			assert.Equal(t, tt.wantName, line.Name)
			assert.Equal(t, tt.wantText, line.Text)
		})
	}
}

func TestBackend_RecentChat(t *testing.T) {
	b := NewBackend()
	assert.Equal(t, "", b.RecentChat())

	b.AddMessage("bob", "hi")
	b.AddMessage("", "server notice")
	assert.Equal(t, "<bob> hi\nserver notice", b.RecentChat())

	b.ClearRecentChat()
	assert.Equal(t, "", b.RecentChat())
	assert.Equal(t, 2, b.ConsoleBuffer().LineCount())
}

func TestBackend_StepExpiresRecentOnly(t *testing.T) {
	b := NewBackend()
	b.AddMessage("a", "old")
	b.Step(30)
	b.AddMessage("b", "new")
	b.Step(31)

	require.Equal(t, 1, b.RecentBuffer().LineCount())
	assert.Equal(t, "new", b.RecentBuffer().Line(0).Text)
	assert.Equal(t, 2, b.ConsoleBuffer().LineCount())

	b.Step(30)
	assert.Equal(t, 0, b.RecentBuffer().LineCount())
	assert.Equal(t, 2, b.ConsoleBuffer().LineCount())
}

func TestBackend_StepAtExactMaxAgeKeepsLine(t *testing.T) {
	b := NewBackend(WithRecentMaxAge(10))
	b.AddMessage("a", "x")
	b.Step(10)
	assert.Equal(t, 1, b.RecentBuffer().LineCount())
	b.Step(0.5)
	assert.Equal(t, 0, b.RecentBuffer().LineCount())
}

func TestBackend_ReformatSkipsRecent(t *testing.T) {
	b := NewBackend()
	b.AddMessage("bob", "hello")
	b.Reformat(20, 5)

	assert.Equal(t, 20, b.ConsoleBuffer().Cols())
	assert.Equal(t, 5, b.ConsoleBuffer().Rows())
	assert.Equal(t, 1, b.ConsoleBuffer().FormattedCount())
	assert.Equal(t, 0, b.RecentBuffer().Rows())
	assert.Equal(t, 0, b.RecentBuffer().FormattedCount())
}

func TestBackend_ApplySettings(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-1, MinRecentLines},
		{1, MinRecentLines},
		{2, 2},
		{8, 8},
		{20, 20},
		{50, MaxRecentLines},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			b := NewBackend()
			b.ApplySettings(tt.in)
			assert.Equal(t, tt.want, b.RecentBuffer().Scrollback())
		})
	}
}

func TestBackend_ApplySettingsDropsOldest(t *testing.T) {
	b := NewBackend()
	for i := 0; i < 6; i++ {
		b.AddMessage("", fmt.Sprintf("m%d", i))
	}
	b.ApplySettings(3)
	require.Equal(t, 3, b.RecentBuffer().LineCount())
	assert.Equal(t, "m3", b.RecentBuffer().Line(0).Text)
	assert.Equal(t, 6, b.ConsoleBuffer().LineCount())
}

func TestBackend_PageScroll(t *testing.T) {
	b := NewBackend()
	b.Reformat(10, 2)
	for i := 0; i < 6; i++ {
		b.AddMessage("", fmt.Sprintf("l%d", i))
	}
	console := b.ConsoleBuffer()
	require.Equal(t, 4, console.ScrollPos())

	b.ScrollPageUp()
	assert.Equal(t, 2, console.ScrollPos())
	b.ScrollPageUp()
	assert.Equal(t, 0, console.ScrollPos())
	b.ScrollPageUp()
	assert.Equal(t, 0, console.ScrollPos())

	b.ScrollPageDown()
	assert.Equal(t, 2, console.ScrollPos())
	b.Scroll(100)
	assert.Equal(t, 4, console.ScrollPos())
	assert.True(t, console.AtBottom())
}
