// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// =============================================================================
// CURSOR OPERATIONS
// =============================================================================

// CursorOp is what a cursor operation does with the span it covers.
type CursorOp int

const (
	OpMove CursorOp = iota
	OpDelete
	OpSelect
)

// CursorDir is the direction of a cursor operation.
type CursorDir int

const (
	DirLeft CursorDir = iota
	DirRight
)

// CursorScope is how far a cursor operation reaches.
type CursorScope int

const (
	ScopeCharacter CursorScope = iota
	ScopeWord
	ScopeLine
	ScopeSelection
)

// =============================================================================
// PROMPT
// =============================================================================

// Prompt is a single-line input editor with a fixed prefix, a horizontally
// scrolling view, submitted-line history and nickname completion.
type Prompt struct {
	prompt string
	line   []rune

	history      []string
	historyIndex int
	historyLimit int

	cols      int
	view      int
	cursor    int
	cursorLen int

	// [nickStart, nickEnd) is the prefix under completion; both zero when
	// no completion is active.
	nickStart int
	nickEnd   int
}

// NewPrompt creates an empty prompt keeping at most historyLimit entries.
func NewPrompt(prompt string, historyLimit int) *Prompt {
	return &Prompt{
		prompt:       prompt,
		historyLimit: historyLimit,
	}
}

// Input inserts ch at the caret.
func (p *Prompt) Input(ch rune) {
	p.InputString(string(ch))
}

// InputString inserts s at the caret.
func (p *Prompt) InputString(s string) {
	ins := []rune(s)
	line := make([]rune, 0, len(p.line)+len(ins))
	line = append(line, p.line[:p.cursor]...)
	line = append(line, ins...)
	line = append(line, p.line[p.cursor:]...)
	p.line = line
	p.cursor += len(ins)
	p.cursorLen = 0
	p.clampView()
	p.resetCompletion()
}

// Submit returns the edit line and starts a fresh one, remembering the old
// line in history.
func (p *Prompt) Submit() string {
	line := string(p.line)
	p.AddToHistory(line)
	p.Replace("")
	return line
}

// AddToHistory records line as the newest history entry. Empty lines and
// repeats of the newest entry are ignored; older duplicates are moved up.
func (p *Prompt) AddToHistory(line string) {
	if line != "" && (len(p.history) == 0 || p.history[len(p.history)-1] != line) {
		kept := p.history[:0]
		for _, h := range p.history {
			if h != line {
				kept = append(kept, h)
			}
		}
		p.history = append(kept, line)
	}
	if len(p.history) > p.historyLimit {
		p.history = p.history[len(p.history)-p.historyLimit:]
	}
	p.historyIndex = len(p.history)
}

// Clear empties the edit line. History is kept.
func (p *Prompt) Clear() {
	p.line = nil
	p.view = 0
	p.cursor = 0
	p.cursorLen = 0
	p.resetCompletion()
}

// Replace sets the edit line, moves the caret to its end and returns the
// previous line.
func (p *Prompt) Replace(line string) string {
	old := string(p.line)
	p.line = []rune(line)
	p.cursor = len(p.line)
	p.view = p.cursor
	p.cursorLen = 0
	p.clampView()
	p.resetCompletion()
	return old
}

// HistoryPrev shows the previous history entry.
func (p *Prompt) HistoryPrev() {
	if p.historyIndex != 0 {
		p.historyIndex--
		p.Replace(p.history[p.historyIndex])
	}
}

// HistoryNext shows the next history entry, or an empty line past the newest.
func (p *Prompt) HistoryNext() {
	if p.historyIndex+1 >= len(p.history) {
		p.historyIndex = len(p.history)
		p.Replace("")
	} else {
		p.historyIndex++
		p.Replace(p.history[p.historyIndex])
	}
}

// History returns the submitted lines, oldest first.
func (p *Prompt) History() []string {
	out := make([]string, len(p.history))
	copy(out, p.history)
	return out
}

// =============================================================================
// NICK COMPLETION
// =============================================================================

// NickCompletion completes the word at the caret to one of names. Repeated
// calls cycle through the matches, backwards when requested. A word at the
// start of the line gets a colon appended.
func (p *Prompt) NickCompletion(names []string, backwards bool) {
	prefixStart := p.nickStart
	prefixEnd := p.nickEnd
	initial := prefixEnd == 0
	if initial {
		prefixStart, prefixEnd = p.cursor, p.cursor
		for prefixStart > 0 && !unicode.IsSpace(p.line[prefixStart-1]) {
			prefixStart--
		}
		for prefixEnd < len(p.line) && !unicode.IsSpace(p.line[prefixEnd]) {
			prefixEnd++
		}
		if prefixStart == prefixEnd {
			return
		}
	}
	fold := cases.Fold()
	prefix := fold.String(string(p.line[prefixStart:prefixEnd]))

	var completions []string
	for _, name := range names {
		if !strings.HasPrefix(fold.String(name), prefix) {
			continue
		}
		if prefixStart == 0 {
			name += ":"
		}
		completions = append(completions, name)
	}
	if len(completions) == 0 {
		return
	}

	wordEnd := prefixEnd
	index := 0
	if !initial {
		for wordEnd < len(p.line) && !unicode.IsSpace(p.line[wordEnd]) {
			wordEnd++
		}
		word := fold.String(string(p.line[prefixStart:wordEnd]))
		for i, c := range completions {
			if fold.String(c) == word {
				if backwards {
					index = i + len(completions) - 1
				} else {
					index = i + 1
				}
				index %= len(completions)
				break
			}
		}
	}
	replacement := []rune(completions[index] + " ")
	if wordEnd < len(p.line) && unicode.IsSpace(p.line[wordEnd]) {
		wordEnd++
	}

	line := make([]rune, 0, len(p.line)-(wordEnd-prefixStart)+len(replacement))
	line = append(line, p.line[:prefixStart]...)
	line = append(line, replacement...)
	line = append(line, p.line[wordEnd:]...)
	p.line = line
	p.cursor = prefixStart + len(replacement)
	p.cursorLen = 0
	p.clampView()
	p.nickStart = prefixStart
	p.nickEnd = prefixEnd
}

// CompletionActive reports whether a completion cycle is in progress.
func (p *Prompt) CompletionActive() bool {
	return p.nickEnd != 0
}

func (p *Prompt) resetCompletion() {
	p.nickStart = 0
	p.nickEnd = 0
}

// =============================================================================
// VIEW
// =============================================================================

// Reformat sets the total width available to the prompt, prefix included.
func (p *Prompt) Reformat(cols int) {
	prefixLen := utf8.RuneCountInString(p.prompt)
	if cols <= prefixLen {
		p.cols = 0
		p.view = p.cursor
		return
	}
	length := len(p.line)
	wasAtEnd := p.view+p.cols >= length+1
	p.cols = cols - prefixLen
	if wasAtEnd {
		p.view = length
	}
	p.clampView()
}

// VisiblePortion returns the prefix followed by the visible part of the line.
func (p *Prompt) VisiblePortion() string {
	start := min(p.view, len(p.line))
	end := min(start+p.cols, len(p.line))
	return p.prompt + string(p.line[start:end])
}

// VisibleCursorPosition returns the caret column within VisiblePortion.
func (p *Prompt) VisibleCursorPosition() int {
	return p.cursor - p.view + utf8.RuneCountInString(p.prompt)
}

// PromptPrefix returns the fixed prefix.
func (p *Prompt) PromptPrefix() string {
	return p.prompt
}

// Line returns the edit line.
func (p *Prompt) Line() string {
	return string(p.line)
}

// Cursor returns the caret position in characters.
func (p *Prompt) Cursor() int {
	return p.cursor
}

// CursorLength returns the length of the selection starting at the caret.
func (p *Prompt) CursorLength() int {
	return p.cursorLen
}

// Selection returns the selected text.
func (p *Prompt) Selection() string {
	end := min(p.cursor+p.cursorLen, len(p.line))
	return string(p.line[p.cursor:end])
}

// View returns the index of the first visible character.
func (p *Prompt) View() int {
	return p.view
}

// CursorOperation moves the caret, deletes or selects text. See CursorOp,
// CursorDir and CursorScope.
func (p *Prompt) CursorOperation(op CursorOp, dir CursorDir, scope CursorScope) {
	oldCursor := p.cursor
	newCursor := p.cursor

	length := len(p.line)
	increment := -1
	if dir == DirRight {
		increment = 1
	}

	switch scope {
	case ScopeCharacter:
		newCursor += increment
	case ScopeWord:
		if dir == DirRight {
			for newCursor < length && unicode.IsSpace(p.line[newCursor]) {
				newCursor++
			}
			for newCursor < length && !unicode.IsSpace(p.line[newCursor]) {
				newCursor++
			}
			for newCursor < length && unicode.IsSpace(p.line[newCursor]) {
				newCursor++
			}
		} else {
			for newCursor >= 1 && unicode.IsSpace(p.line[newCursor-1]) {
				newCursor--
			}
			for newCursor >= 1 && !unicode.IsSpace(p.line[newCursor-1]) {
				newCursor--
			}
		}
	case ScopeLine:
		newCursor += increment * length
	case ScopeSelection:
	}

	newCursor = max(min(newCursor, length), 0)

	switch op {
	case OpMove:
		p.cursor = newCursor
		p.cursorLen = 0
	case OpDelete:
		if p.cursorLen > 0 {
			p.erase(p.cursor, p.cursorLen)
		} else {
			p.cursor = min(newCursor, oldCursor)
			p.erase(p.cursor, abs(newCursor-oldCursor))
		}
		p.cursorLen = 0
	case OpSelect:
		if scope == ScopeLine {
			p.cursor = 0
			p.cursorLen = length
		} else {
			p.cursor = min(newCursor, oldCursor)
			p.cursorLen += abs(newCursor - oldCursor)
			p.cursorLen = min(p.cursorLen, length-p.cursor)
		}
	}

	p.clampView()
	p.resetCompletion()
}

func (p *Prompt) erase(start, n int) {
	end := min(start+n, len(p.line))
	p.line = append(p.line[:start:start], p.line[end:]...)
}

// clampView keeps the caret inside [view, view+cols) and the view inside
// the line plus one trailing cell for the caret.
func (p *Prompt) clampView() {
	length := len(p.line)
	switch {
	case p.cols == 0:
		p.view = p.cursor
	case length+1 <= p.cols:
		p.view = 0
	default:
		p.view = min(p.view, length+1-p.cols)
		p.view = min(p.view, p.cursor)
		p.view = max(p.view, p.cursor-p.cols+1)
		p.view = max(p.view, 0)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
