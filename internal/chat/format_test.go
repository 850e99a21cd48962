// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowTexts(rows []FormattedLine) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.String()
	}
	return out
}

func TestLine_String(t *testing.T) {
	assert.Equal(t, "<sam> hi there", NewLine("sam", "hi there").String())
	assert.Equal(t, "*** server restarting", NewLine("", "*** server restarting").String())
	assert.Equal(t, "<sam> ", Line{Name: "sam"}.String())
}

// =============================================================================
// WORD WRAP
// =============================================================================

func TestFormat_WordWrap(t *testing.T) {
	tests := []struct {
		name string
		line Line
		cols int
		want []string
	}{
		{"hard break", NewLine("", "abcdefgh"), 4, []string{"abcd", "efgh"}},
		{"word boundary", NewLine("", "hello world"), 7, []string{"hello ", "world"}},
		{"fits", NewLine("", "short"), 20, []string{"short"}},
		{"empty", NewLine("", ""), 10, []string{""}},
		{"name only", NewLine("bob", ""), 20, []string{"<bob> "}},
		{"name and text", NewLine("bob", "hi"), 20, []string{"<bob> hi"}},
		{"long word", NewLine("", "ab cdefghijkl"), 5, []string{"ab ", "cdefg", "hijkl"}},
	}

	b := NewBuffer(10)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := b.Format(tt.line, tt.cols)
			assert.Equal(t, tt.want, rowTexts(rows))
			require.NotEmpty(t, rows)
			assert.True(t, rows[0].First)
			for _, r := range rows[1:] {
				assert.False(t, r.First)
			}
		})
	}
}

func TestFormat_HangingIndent(t *testing.T) {
	b := NewBuffer(10)
	rows := b.Format(NewLine("Bob", "aaaa bbbb cccc dddd eeee ffff gggg"), 20)

	require.Len(t, rows, 3)
	assert.Equal(t, "<", rows[0].Fragments[0].Text)
	assert.Equal(t, 0, rows[0].Fragments[0].Column)
	assert.Equal(t, 6, rows[1].Fragments[0].Column)
	assert.Equal(t, 6, rows[2].Fragments[0].Column)
	assert.Equal(t, []string{
		"<Bob> aaaa bbbb ",
		"      cccc dddd ",
		"      eeee ffff gggg",
	}, rowTexts(rows))
}

func TestFormat_LongNameIndent(t *testing.T) {
	b := NewBuffer(10)
	rows := b.Format(NewLine("averyveryverylongname", "hi"), 20)

	require.Len(t, rows, 2)
	assert.Equal(t, "<averyveryverylongna", rows[0].String())
	require.Len(t, rows[1].Fragments, 3)
	assert.Equal(t, Fragment{Text: "me", Column: 2}, rows[1].Fragments[0])
	assert.Equal(t, Fragment{Text: "> ", Column: 4}, rows[1].Fragments[1])
	assert.Equal(t, Fragment{Text: "hi", Column: 6}, rows[1].Fragments[2])
}

func TestFormat_NarrowViewport(t *testing.T) {
	b := NewBuffer(10)
	rows := b.Format(NewLine("ab", "xyz"), 1)

	// every character on its own row, no indentation room
	assert.Equal(t, []string{"<", "a", "b", ">", " ", "x", "y", "z"}, rowTexts(rows))
}

func TestFormat_Weblinks(t *testing.T) {
	b := NewBuffer(10, WithWeblinks("#8888FF"))
	rows := b.Format(NewLine("", "see https://example.com/x now"), 40)

	require.Len(t, rows, 1)
	frags := rows[0].Fragments
	require.Len(t, frags, 3)
	assert.Equal(t, "see ", frags[0].Text)
	assert.Empty(t, frags[0].Weblink)
	assert.Equal(t, Fragment{Text: "https://example.com/x", Column: 4, Weblink: "https://example.com/x", Color: "#8888FF"}, frags[1])
	assert.Equal(t, " now", frags[2].Text)
	assert.Equal(t, 25, frags[2].Column)
	assert.Equal(t, "see https://example.com/x now", rows[0].String())

	link, ok := rows[0].FragmentAt(10)
	require.True(t, ok)
	assert.Equal(t, "https://example.com/x", link.Weblink)
}

func TestFormat_WeblinkSplitKeepsTag(t *testing.T) {
	b := NewBuffer(10, WithWeblinks("#00FF00"))
	rows := b.Format(NewLine("", "http://abcdefghij"), 10)

	require.Len(t, rows, 2)
	assert.Equal(t, "http://abc", rows[0].Fragments[0].Text)
	assert.Equal(t, "defghij", rows[1].Fragments[0].Text)
	for _, r := range rows {
		assert.Equal(t, "http://abcdefghij", r.Fragments[0].Weblink)
	}
}

func TestFormat_WeblinksDisabled(t *testing.T) {
	b := NewBuffer(10)
	rows := b.Format(NewLine("", "see https://example.com/x now"), 40)

	require.Len(t, rows, 1)
	require.Len(t, rows[0].Fragments, 1)
	assert.Empty(t, rows[0].Fragments[0].Weblink)
}

// =============================================================================
// REFLOW CONSISTENCY
// =============================================================================

func randomText(r *rand.Rand) string {
	words := []string{"a", "bb", "ccc", "dddd", "hello", "world", "supercalifragilistic", "x", "  "}
	n := r.Intn(12)
	parts := make([]string, n)
	for i := range parts {
		parts[i] = words[r.Intn(len(words))]
	}
	return strings.Join(parts, " ")
}

func reformatted(b *Buffer) []FormattedLine {
	var out []FormattedLine
	for _, line := range b.unformatted {
		out = append(out, b.Format(line, b.cols)...)
	}
	return out
}

func TestFormat_IncrementalMatchesFullRewrap(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	names := []string{"", "al", "bob", "a-rather-long-nickname"}

	for _, cols := range []int{3, 8, 17, 40} {
		t.Run(fmt.Sprintf("cols=%d", cols), func(t *testing.T) {
			b := NewBuffer(25)
			b.Reformat(cols, 6)
			for i := 0; i < 60; i++ {
				b.AddLine(names[r.Intn(len(names))], randomText(r))
				assert.LessOrEqual(t, b.LineCount(), 25)
			}
			assert.Equal(t, reformatted(b), b.formatted)
			assert.Equal(t, b.LineCount(), countFirst(b.formatted))

			// a width change rewraps everything
			b.Reformat(cols+5, 6)
			assert.Equal(t, reformatted(b), b.formatted)
			assert.Equal(t, b.LineCount(), countFirst(b.formatted))
		})
	}
}

func countFirst(rows []FormattedLine) int {
	n := 0
	for _, r := range rows {
		if r.First {
			n++
		}
	}
	return n
}
