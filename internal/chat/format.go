// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"unicode"
)

// weblinkDelims end a weblink in addition to whitespace.
const weblinkDelims = `'";`

// pendingFragment is a fragment waiting to be laid out. newline forces the
// row to end right after it.
type pendingFragment struct {
	Fragment
	newline bool
}

// hangingIndent returns the column where continuation rows of a line start.
func hangingIndent(name string, cols int) int {
	var indent int
	switch n := len([]rune(name)); {
	case n == 0:
		indent = 0
	case n+3 <= cols/2:
		indent = n + 3
	default:
		// very long names
		indent = 2
	}
	if indent >= cols {
		indent = 0
	}
	return indent
}

// formatLine word-wraps line into rows of cols characters, appends them to
// dst and returns how many rows were added. cols must be positive.
func (b *Buffer) formatLine(line Line, cols int, dst *[]FormattedLine) int {
	added := 0
	var pending []pendingFragment
	next := FormattedLine{First: true}
	outColumn := 0
	inPos := 0
	text := []rune(line.Text)

	if line.Name != "" {
		pending = append(pending,
			pendingFragment{Fragment: Fragment{Text: "<"}},
			pendingFragment{Fragment: Fragment{Text: line.Name}},
			pendingFragment{Fragment: Fragment{Text: "> "}},
		)
	}
	indent := hangingIndent(line.Name, cols)

	for len(pending) > 0 || inPos < len(text) {
		// Layout pending fragments into rows
		for len(pending) > 0 {
			frag := &pending[0]
			markNewline := frag.newline

			fragLen := frag.Len()
			if fragLen <= cols-outColumn {
				placed := frag.Fragment
				placed.Column = outColumn
				next.Fragments = append(next.Fragments, placed)
				outColumn += fragLen
				pending = pending[1:]
			} else {
				// Split: the head fills this row, the tail waits for the next
				runes := []rune(frag.Text)
				head := frag.Fragment
				head.Text = string(runes[:cols-outColumn])
				head.Column = outColumn
				next.Fragments = append(next.Fragments, head)
				frag.Text = string(runes[cols-outColumn:])
				frag.newline = false
				outColumn = cols
			}

			if outColumn == cols || markNewline {
				*dst = append(*dst, next)
				added++
				next = FormattedLine{}
				outColumn = indent
			}
		}

		if inPos >= len(text) {
			continue
		}

		// Produce fragments for the next row
		remainingOut := cols - outColumn
		markNewline := false
		for !markNewline {
			remainingIn := len(text) - inPos
			fragLen, spacePos := 0, 0

			httpPos := -1
			if b.weblinks {
				httpPos = findWeblink(text, inPos)
			}

			for fragLen < remainingIn && fragLen < remainingOut {
				if unicode.IsSpace(text[inPos+fragLen]) {
					spacePos = fragLen
				}
				fragLen++
			}

			switch {
			case httpPos < 0 || httpPos >= remainingOut:
				// no link on this row: cut at a word boundary and stop
				markNewline = true
			case httpPos == 0:
				// a link runs to the first whitespace or delimiter
				fragLen = len("http:/")
				for fragLen < remainingIn {
					c := text[inPos+fragLen]
					if unicode.IsSpace(c) || strings.ContainsRune(weblinkDelims, c) {
						break
					}
					fragLen++
				}
				spacePos = fragLen - 1
				if fragLen >= remainingOut {
					markNewline = true
				}
			default:
				// text up to the link
				spacePos = httpPos - 1
				fragLen = httpPos
			}

			// keep the trailing space with the word
			if spacePos != 0 && fragLen < remainingIn {
				fragLen = spacePos + 1
			}

			frag := pendingFragment{
				Fragment: Fragment{Text: string(text[inPos : inPos+fragLen])},
				newline:  markNewline,
			}
			if httpPos == 0 {
				frag.Weblink = frag.Text
				frag.Color = b.weblinkColor
			}
			pending = append(pending, frag)
			inPos += fragLen
			remainingOut -= min(fragLen, remainingOut)
		}
	}

	// End the last row; every line owns at least one row
	if added == 0 || len(next.Fragments) > 0 {
		*dst = append(*dst, next)
		added++
	}
	return added
}

// findWeblink returns the offset from pos of the next "https://" or, failing
// that, "http://" in text, or -1.
func findWeblink(text []rune, pos int) int {
	rest := string(text[pos:])
	idx := strings.Index(rest, "https://")
	if idx < 0 {
		idx = strings.Index(rest, "http://")
	}
	if idx < 0 {
		return -1
	}
	// byte offset to rune offset
	return len([]rune(rest[:idx]))
}
