// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typed(p *Prompt, s string) {
	for _, r := range s {
		p.Input(r)
	}
}

// =============================================================================
// EDITING
// =============================================================================

func TestPrompt_InputAtCursor(t *testing.T) {
	p := NewPrompt("]", 10)
	typed(p, "helo")
	p.CursorOperation(OpMove, DirLeft, ScopeCharacter)
	p.Input('l')

	assert.Equal(t, "hello", p.Line())
	assert.Equal(t, 4, p.Cursor())

	p.InputString("ü!")
	assert.Equal(t, "hellü!o", p.Line())
	assert.Equal(t, 6, p.Cursor())
}

func TestPrompt_Replace(t *testing.T) {
	p := NewPrompt("]", 10)
	typed(p, "old")
	old := p.Replace("brand new")
	assert.Equal(t, "old", old)
	assert.Equal(t, "brand new", p.Line())
	assert.Equal(t, 9, p.Cursor())
}

func TestPrompt_Clear(t *testing.T) {
	p := NewPrompt("]", 10)
	p.Reformat(20)
	typed(p, "text")
	p.Clear()
	assert.Equal(t, "", p.Line())
	assert.Equal(t, 0, p.Cursor())
	assert.Equal(t, "]", p.VisiblePortion())
}

// =============================================================================
// HISTORY
// =============================================================================

func TestPrompt_HistoryCycle(t *testing.T) {
	p := NewPrompt("]", 3)
	for _, s := range []string{"a", "b", "c", "d"} {
		p.Replace(s)
		assert.Equal(t, s, p.Submit())
		assert.Equal(t, "", p.Line())
	}
	require.Equal(t, []string{"b", "c", "d"}, p.History())

	p.HistoryPrev()
	assert.Equal(t, "d", p.Line())
	p.HistoryPrev()
	assert.Equal(t, "c", p.Line())
	p.HistoryPrev()
	assert.Equal(t, "b", p.Line())
	p.HistoryPrev()
	assert.Equal(t, "b", p.Line())

	p.HistoryNext()
	assert.Equal(t, "c", p.Line())
	p.HistoryNext()
	assert.Equal(t, "d", p.Line())
	p.HistoryNext()
	assert.Equal(t, "", p.Line())
	p.HistoryNext()
	assert.Equal(t, "", p.Line())
}

func TestPrompt_HistoryEmptyAndDuplicates(t *testing.T) {
	p := NewPrompt("]", 5)
	p.HistoryPrev()
	assert.Equal(t, "", p.Line())

	assert.Equal(t, "", p.Submit())
	assert.Empty(t, p.History())

	for _, s := range []string{"a", "b", "b", "a"} {
		p.Replace(s)
		p.Submit()
	}
	assert.Equal(t, []string{"b", "a"}, p.History())
}

func TestPrompt_SubmitResetsHistoryIndex(t *testing.T) {
	p := NewPrompt("]", 5)
	p.Replace("one")
	p.Submit()
	p.Replace("two")
	p.Submit()

	p.HistoryPrev()
	p.HistoryPrev()
	require.Equal(t, "one", p.Line())
	p.Submit()

	p.HistoryPrev()
	assert.Equal(t, "one", p.Line())
	p.HistoryPrev()
	assert.Equal(t, "two", p.Line())
}

// =============================================================================
// NICK COMPLETION
// =============================================================================

func TestPrompt_NickCompletionCycle(t *testing.T) {
	names := []string{"alice", "albert", "alpha"}
	p := NewPrompt("]", 10)
	typed(p, "hi al")

	p.NickCompletion(names, false)
	assert.Equal(t, "hi alice ", p.Line())
	assert.Equal(t, 9, p.Cursor())
	assert.True(t, p.CompletionActive())

	p.NickCompletion(names, false)
	assert.Equal(t, "hi albert ", p.Line())

	p.NickCompletion(names, true)
	assert.Equal(t, "hi alice ", p.Line())

	p.NickCompletion(names, true)
	assert.Equal(t, "hi alpha ", p.Line())

	p.NickCompletion(names, false)
	assert.Equal(t, "hi alice ", p.Line())
}

func TestPrompt_NickCompletionFirstWordGetsColon(t *testing.T) {
	names := []string{"Alice", "Albert"}
	p := NewPrompt("]", 10)
	typed(p, "AL")

	p.NickCompletion(names, false)
	assert.Equal(t, "Alice: ", p.Line())
	p.NickCompletion(names, false)
	assert.Equal(t, "Albert: ", p.Line())
	p.NickCompletion(names, false)
	assert.Equal(t, "Alice: ", p.Line())
}

func TestPrompt_NickCompletionKeepsRestOfLine(t *testing.T) {
	p := NewPrompt("]", 10)
	p.Replace("x bo there")
	p.CursorOperation(OpMove, DirLeft, ScopeLine)
	p.CursorOperation(OpMove, DirRight, ScopeWord)
	require.Equal(t, 2, p.Cursor())

	p.NickCompletion([]string{"bob"}, false)
	assert.Equal(t, "x bob there", p.Line())
	assert.Equal(t, 6, p.Cursor())
}

func TestPrompt_NickCompletionNoMatch(t *testing.T) {
	p := NewPrompt("]", 10)
	typed(p, "hi zed")
	p.NickCompletion([]string{"alice"}, false)
	assert.Equal(t, "hi zed", p.Line())
	assert.False(t, p.CompletionActive())

	p.Replace("hi ")
	p.NickCompletion([]string{"alice"}, false)
	assert.Equal(t, "hi ", p.Line())
	assert.False(t, p.CompletionActive())
}

func TestPrompt_EditingCancelsCompletion(t *testing.T) {
	names := []string{"alice", "albert"}
	tests := []struct {
		name string
		edit func(p *Prompt)
	}{
		{"input", func(p *Prompt) { p.Input('x') }},
		{"cursor", func(p *Prompt) { p.CursorOperation(OpMove, DirLeft, ScopeCharacter) }},
		{"history", func(p *Prompt) { p.HistoryNext() }},
		{"replace", func(p *Prompt) { p.Replace("hi al") }},
		{"clear", func(p *Prompt) { p.Clear() }},
		{"submit", func(p *Prompt) { p.Submit() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrompt("]", 10)
			typed(p, "hi al")
			p.NickCompletion(names, false)
			require.True(t, p.CompletionActive())

			tt.edit(p)
			assert.False(t, p.CompletionActive())
		})
	}
}

// =============================================================================
// CURSOR OPERATIONS
// =============================================================================

func TestPrompt_CursorOperation(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		cursor     int
		op         CursorOp
		dir        CursorDir
		scope      CursorScope
		wantLine   string
		wantCursor int
	}{
		{"char left", "hello", 3, OpMove, DirLeft, ScopeCharacter, "hello", 2},
		{"char right at end", "hello", 5, OpMove, DirRight, ScopeCharacter, "hello", 5},
		{"char left at start", "hello", 0, OpMove, DirLeft, ScopeCharacter, "hello", 0},
		{"word right", "hello big world", 0, OpMove, DirRight, ScopeWord, "hello big world", 6},
		{"word right from space", "hello  big", 5, OpMove, DirRight, ScopeWord, "hello  big", 10},
		{"word left", "hello big world", 15, OpMove, DirLeft, ScopeWord, "hello big world", 10},
		{"word left over spaces", "hello big  ", 11, OpMove, DirLeft, ScopeWord, "hello big  ", 6},
		{"line start", "hello", 3, OpMove, DirLeft, ScopeLine, "hello", 0},
		{"line end", "hello", 1, OpMove, DirRight, ScopeLine, "hello", 5},
		{"backspace", "hello", 5, OpDelete, DirLeft, ScopeCharacter, "hell", 4},
		{"delete", "hello", 0, OpDelete, DirRight, ScopeCharacter, "ello", 0},
		{"delete word left", "hello big world", 15, OpDelete, DirLeft, ScopeWord, "hello big ", 10},
		{"delete word right", "hello big world", 6, OpDelete, DirRight, ScopeWord, "hello world", 6},
		{"kill to start", "hello world", 6, OpDelete, DirLeft, ScopeLine, "world", 0},
		{"kill to end", "hello world", 5, OpDelete, DirRight, ScopeLine, "hello", 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrompt("]", 10)
			p.Replace(tt.line)
			p.CursorOperation(OpMove, DirLeft, ScopeLine)
			for i := 0; i < tt.cursor; i++ {
				p.CursorOperation(OpMove, DirRight, ScopeCharacter)
			}
			require.Equal(t, tt.cursor, p.Cursor())

			p.CursorOperation(tt.op, tt.dir, tt.scope)
			assert.Equal(t, tt.wantLine, p.Line())
			assert.Equal(t, tt.wantCursor, p.Cursor())
		})
	}
}

func TestPrompt_Selection(t *testing.T) {
	p := NewPrompt("]", 10)
	p.Replace("hello world")

	p.CursorOperation(OpSelect, DirLeft, ScopeWord)
	assert.Equal(t, 6, p.Cursor())
	assert.Equal(t, 5, p.CursorLength())
	assert.Equal(t, "world", p.Selection())

	p.CursorOperation(OpSelect, DirLeft, ScopeCharacter)
	assert.Equal(t, " world", p.Selection())

	p.CursorOperation(OpDelete, DirLeft, ScopeSelection)
	assert.Equal(t, "hello", p.Line())
	assert.Equal(t, 5, p.Cursor())
	assert.Equal(t, 0, p.CursorLength())

	p.CursorOperation(OpSelect, DirLeft, ScopeLine)
	assert.Equal(t, 0, p.Cursor())
	assert.Equal(t, "hello", p.Selection())

	p.CursorOperation(OpMove, DirRight, ScopeCharacter)
	assert.Equal(t, 0, p.CursorLength())
}

// =============================================================================
// VIEW
// =============================================================================

func TestPrompt_ViewFollowsCursor(t *testing.T) {
	p := NewPrompt("]", 10)
	p.Reformat(6)
	typed(p, "abcdefgh")

	assert.Equal(t, "]efgh", p.VisiblePortion())
	assert.Equal(t, 5, p.VisibleCursorPosition())

	p.CursorOperation(OpMove, DirLeft, ScopeLine)
	assert.Equal(t, "]abcde", p.VisiblePortion())
	assert.Equal(t, 1, p.VisibleCursorPosition())

	p.CursorOperation(OpMove, DirRight, ScopeLine)
	assert.Equal(t, "]efgh", p.VisiblePortion())
}

func TestPrompt_ShortLineShowsFromStart(t *testing.T) {
	p := NewPrompt("> ", 10)
	p.Reformat(20)
	typed(p, "abc")
	assert.Equal(t, "> abc", p.VisiblePortion())
	assert.Equal(t, 5, p.VisibleCursorPosition())
	assert.Equal(t, 0, p.View())
}

func TestPrompt_ReformatNarrowerThanPrefix(t *testing.T) {
	p := NewPrompt(">>>", 10)
	p.Reformat(20)
	typed(p, "abc")

	p.Reformat(3)
	assert.Equal(t, ">>>", p.VisiblePortion())
	assert.Equal(t, 3, p.VisibleCursorPosition())

	assert.NotPanics(t, func() {
		p.Input('d')
		p.CursorOperation(OpMove, DirLeft, ScopeLine)
		_ = p.VisiblePortion()
	})
	assert.Equal(t, ">>>", p.VisiblePortion())
}

func TestPrompt_ReformatKeepsTail(t *testing.T) {
	p := NewPrompt("]", 10)
	p.Reformat(5)
	typed(p, "abcdefghij")
	require.Equal(t, "]hij", p.VisiblePortion())

	p.Reformat(8)
	assert.Equal(t, "]efghij", p.VisiblePortion())
	assert.Equal(t, 7, p.VisibleCursorPosition())
}
