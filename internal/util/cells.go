// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "github.com/mattn/go-runewidth"

// Terminal cell helpers. The chat engine counts characters; these convert
// its rows into terminal cells, where East Asian wide runes take two.

// StringWidth returns the number of terminal cells s occupies.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// TruncateWidth cuts s to at most width cells. A wide rune that would
// straddle the limit is dropped.
func TruncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "")
}

// CharColumn converts a cell column of s back into a character column.
// Cells past the end of s map to columns past its last character.
func CharColumn(s string, cell int) int {
	cells := 0
	col := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if cells+w > cell {
			return col
		}
		cells += w
		col++
	}
	return col + (cell - cells)
}
