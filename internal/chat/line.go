// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"unicode/utf8"
)

// Line is a single logical chat entry.
// An empty Name marks a system message.
type Line struct {
	Name string
	Text string
	// Age is the number of seconds since the line was added.
	Age float64
}

// NewLine creates a line with age zero.
func NewLine(name, text string) Line {
	return Line{Name: name, Text: text}
}

// String renders the line the way a server would send it: "<name> text".
func (l Line) String() string {
	if l.Name == "" {
		return l.Text
	}
	return "<" + l.Name + "> " + l.Text
}

// Fragment is a run of text placed at a column of a formatted row.
type Fragment struct {
	Text   string
	Column int
	// Weblink holds the URL when the fragment is part of a detected link.
	Weblink string
	// Color is the foreground colour for the fragment, empty for default.
	Color string
}

// Len returns the fragment width in characters.
func (f Fragment) Len() int {
	return utf8.RuneCountInString(f.Text)
}

// FormattedLine is one row of wrapped chat text.
type FormattedLine struct {
	Fragments []Fragment
	// First is true for the first row produced from a Line.
	First bool
}

// String lays the fragments out at their columns, filling gaps with spaces.
// Trailing whitespace is kept.
func (fl FormattedLine) String() string {
	var sb strings.Builder
	col := 0
	for _, frag := range fl.Fragments {
		for col < frag.Column {
			sb.WriteByte(' ')
			col++
		}
		sb.WriteString(frag.Text)
		col += frag.Len()
	}
	return sb.String()
}

// Text returns the concatenated fragment text without leading indentation.
func (fl FormattedLine) Text() string {
	var sb strings.Builder
	for _, frag := range fl.Fragments {
		sb.WriteString(frag.Text)
	}
	return sb.String()
}

// FragmentAt returns the fragment covering the given column.
func (fl FormattedLine) FragmentAt(col int) (Fragment, bool) {
	for _, frag := range fl.Fragments {
		if col >= frag.Column && col < frag.Column+frag.Len() {
			return frag, true
		}
	}
	return Fragment{}, false
}
