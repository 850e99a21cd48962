// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the chatconsole packages.
//
// # Key Functions
//
// Terminal Cells:
//   - StringWidth, TruncateWidth: width-aware text fitting
//   - CharColumn: map a clicked cell back to a character column
//
// File Operations:
//   - AtomicWriteFile: Crash-safe file writing with fsync
//
// # Usage
//
//	// Fit a formatted chat row to the terminal width
//	row := util.TruncateWidth(line.String(), width)
//
//	// Write files atomically to prevent data loss
//	err := util.AtomicWriteFile(path, data, 0600)
package util
