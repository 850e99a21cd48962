// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
)

// =============================================================================
// BUFFER
// =============================================================================

// Buffer holds a bounded chat log and its word-wrapped rows.
//
// The formatted rows mirror the unformatted lines: each Line maps to one or
// more consecutive rows, the first of which has First set. Rows are only kept
// while the buffer has a viewport (Rows() > 0).
type Buffer struct {
	scrollback  int
	unformatted []Line

	cols, rows int
	formatted  []FormattedLine
	scroll     int

	linesModified bool

	weblinks     bool
	weblinkColor string
}

// BufferOption configures a Buffer.
type BufferOption func(*Buffer)

// WithWeblinks turns on weblink detection; link fragments get the given color.
func WithWeblinks(color string) BufferOption {
	return func(b *Buffer) {
		b.weblinks = true
		b.weblinkColor = color
	}
}

// NewBuffer creates an empty buffer keeping at most scrollback lines.
// A scrollback of zero is treated as one.
func NewBuffer(scrollback int, opts ...BufferOption) *Buffer {
	b := &Buffer{scrollback: max(scrollback, 1)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AddLine appends a line. When the view sits at the bottom it follows the new
// rows. The oldest lines are dropped once the scrollback is exceeded.
func (b *Buffer) AddLine(name, text string) {
	b.linesModified = true

	line := NewLine(name, text)
	b.unformatted = append(b.unformatted, line)

	if b.rows > 0 {
		atBottom := b.scroll == b.bottomScrollPos()
		added := b.formatLine(line, b.cols, &b.formatted)
		if atBottom {
			b.scroll += added
		}
	}

	if len(b.unformatted) > b.scrollback {
		b.DeleteOldest(len(b.unformatted) - b.scrollback)
	}
}

// Clear removes every line. The view is left at the bottom so new lines
// are followed.
func (b *Buffer) Clear() {
	b.unformatted = nil
	b.formatted = nil
	b.scroll = b.bottomScrollPos()
	b.linesModified = true
}

// LineCount returns the number of unformatted lines.
func (b *Buffer) LineCount() int {
	return len(b.unformatted)
}

// Line returns the line at index, oldest first.
// It panics if index is out of range; check LineCount first.
func (b *Buffer) Line(index int) Line {
	if index < 0 || index >= len(b.unformatted) {
		panic(fmt.Sprintf("chat: line index %d out of range [0,%d)", index, len(b.unformatted)))
	}
	return b.unformatted[index]
}

// Step ages every line by dtime seconds.
func (b *Buffer) Step(dtime float64) {
	for i := range b.unformatted {
		b.unformatted[i].Age += dtime
	}
}

// DeleteOldest removes the oldest count lines together with their rows.
func (b *Buffer) DeleteOldest(count int) {
	atBottom := b.scroll == b.bottomScrollPos()

	delUnformatted := 0
	delFormatted := 0
	for count > 0 && delUnformatted < len(b.unformatted) {
		delUnformatted++

		// keep the rows in sync
		if delFormatted < len(b.formatted) {
			if !b.formatted[delFormatted].First {
				panic("chat: formatted rows out of sync with lines")
			}
			delFormatted++
			for delFormatted < len(b.formatted) && !b.formatted[delFormatted].First {
				delFormatted++
			}
		}
		count--
	}

	b.unformatted = b.unformatted[delUnformatted:]
	b.formatted = b.formatted[delFormatted:]

	if delUnformatted > 0 {
		b.linesModified = true
	}

	if atBottom {
		b.scroll = b.bottomScrollPos()
	} else {
		b.ScrollAbsolute(b.scroll - delFormatted)
	}
}

// DeleteByAge removes lines older than maxAge seconds, starting from the
// oldest and stopping at the first line that is young enough.
func (b *Buffer) DeleteByAge(maxAge float64) {
	count := 0
	for count < len(b.unformatted) && b.unformatted[count].Age > maxAge {
		count++
	}
	b.DeleteOldest(count)
}

// Resize changes the scrollback limit, dropping the oldest excess lines.
func (b *Buffer) Resize(scrollback int) {
	b.scrollback = max(scrollback, 1)
	if len(b.unformatted) > b.scrollback {
		b.DeleteOldest(len(b.unformatted) - b.scrollback)
	}
}

// Scrollback returns the line limit.
func (b *Buffer) Scrollback() int {
	return b.scrollback
}

// LinesModified reports whether lines were added or removed since the last
// ResetLinesModified.
func (b *Buffer) LinesModified() bool {
	return b.linesModified
}

// ResetLinesModified clears the modification flag.
func (b *Buffer) ResetLinesModified() {
	b.linesModified = false
}

// =============================================================================
// FORMATTING
// =============================================================================

// Rows returns the viewport height; zero when the buffer is not formatted.
func (b *Buffer) Rows() int {
	return b.rows
}

// Cols returns the viewport width.
func (b *Buffer) Cols() int {
	return b.cols
}

// FormattedCount returns the number of wrapped rows.
func (b *Buffer) FormattedCount() int {
	return len(b.formatted)
}

// Reformat sets the viewport size and rewraps when the width changed.
// A zero dimension drops all rows.
func (b *Buffer) Reformat(cols, rows int) {
	if cols <= 0 || rows <= 0 {
		b.cols = 0
		b.rows = 0
		b.scroll = 0
		b.formatted = nil
		return
	}
	if cols == b.cols && rows == b.rows {
		return
	}

	// Remember the scroll position in lines, not rows
	restoreUnformatted := 0
	restoreFormatted := b.scroll
	atBottom := b.scroll == b.bottomScrollPos()
	if !atBottom {
		for i := 0; i < b.scroll; i++ {
			if b.formatted[i].First {
				restoreUnformatted++
			}
		}
	}

	if cols != b.cols {
		b.formatted = b.formatted[:0]
		restoreFormatted = 0
		for i, line := range b.unformatted {
			if i == restoreUnformatted {
				restoreFormatted = len(b.formatted)
			}
			b.formatLine(line, cols, &b.formatted)
		}
		if restoreUnformatted >= len(b.unformatted) {
			restoreFormatted = len(b.formatted)
		}
	}

	b.cols = cols
	b.rows = rows

	if atBottom {
		b.ScrollBottom()
	} else {
		b.ScrollAbsolute(restoreFormatted)
	}
}

// Format wraps a single line to cols without touching the buffer.
func (b *Buffer) Format(line Line, cols int) []FormattedLine {
	if cols <= 0 {
		return nil
	}
	var out []FormattedLine
	b.formatLine(line, cols, &out)
	return out
}

// FormattedLine returns the row shown at viewport row. Rows outside the log
// come back empty.
func (b *Buffer) FormattedLine(row int) FormattedLine {
	index := b.scroll + row
	if index >= 0 && index < len(b.formatted) {
		return b.formatted[index]
	}
	return FormattedLine{First: true}
}

// =============================================================================
// SCROLLING
// =============================================================================

// ScrollPos returns the index of the row shown at the top of the viewport.
// It is negative when the log is shorter than the viewport.
func (b *Buffer) ScrollPos() int {
	return b.scroll
}

// Scroll moves the view by rows; negative scrolls back in time.
func (b *Buffer) Scroll(rows int) {
	b.ScrollAbsolute(b.scroll + rows)
}

// ScrollAbsolute moves the view to scroll, clamped to the valid range.
func (b *Buffer) ScrollAbsolute(scroll int) {
	top := b.topScrollPos()
	bottom := b.bottomScrollPos()

	b.scroll = scroll
	if b.scroll < top {
		b.scroll = top
	}
	if b.scroll > bottom {
		b.scroll = bottom
	}
}

// ScrollBottom shows the newest rows.
func (b *Buffer) ScrollBottom() {
	b.scroll = b.bottomScrollPos()
}

// ScrollTop shows the oldest rows.
func (b *Buffer) ScrollTop() {
	b.scroll = b.topScrollPos()
}

// AtBottom reports whether the view follows new rows.
func (b *Buffer) AtBottom() bool {
	return b.scroll == b.bottomScrollPos()
}

// topScrollPos anchors a short log to the bottom of the viewport, leaving
// blank rows above it.
func (b *Buffer) topScrollPos() int {
	if b.rows == 0 {
		return 0
	}
	count := len(b.formatted)
	if count <= b.rows {
		return count - b.rows
	}
	return 0
}

func (b *Buffer) bottomScrollPos() int {
	if b.rows == 0 {
		return 0
	}
	return len(b.formatted) - b.rows
}
