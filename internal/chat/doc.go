// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the chat console engine: a scrollback buffer that
// word-wraps chat lines into fixed-width rows, an editable input prompt and
// the backend that ties a console buffer, a recent-messages buffer and the
// prompt together.
//
// # Key Types
//
//   - Line: one logical chat entry (sender, text, age in seconds)
//   - FormattedLine: one screen row made of positioned Fragments
//   - Buffer: the unformatted log plus its wrapped rows and scroll position
//   - Prompt: input line with caret, selection, history and nick completion
//   - Backend: console buffer + recent buffer + prompt
//
// Columns are counted in characters (runes), not display cells.
//
// Nothing in this package is safe for concurrent use; every call is expected
// to come from the UI goroutine.
//
// # Usage
//
//	b := chat.NewBackend()
//	b.Reformat(80, 24)
//	b.AddUnparsedMessage("<alice> hello there")
//	for row := 0; row < b.ConsoleBuffer().Rows(); row++ {
//		fmt.Println(b.ConsoleBuffer().FormattedLine(row).String())
//	}
package chat
