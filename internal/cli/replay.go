// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// replay.go - The "replay" command: render a transcript through the console
// buffer and print the visible rows.

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jeranaias/chatconsole/internal/chat"
)

// HandleReplay feeds the transcript named by args.File through a backend
// and prints the console viewport, scrolled by args.Scroll rows from the
// bottom.
func HandleReplay(args Args, w io.Writer) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	backend := newBackend(cfg)
	if _, err := loadTranscriptFile(backend, args.File); err != nil {
		return err
	}

	cols, rows := args.Cols, args.Rows
	if cols <= 0 || rows <= 0 {
		termCols, termRows := GetTerminalSize()
		if cols <= 0 {
			cols = termCols
		}
		if rows <= 0 {
			rows = termRows
		}
	}

	backend.Reformat(cols, rows)
	backend.Scroll(args.Scroll)
	return writeViewport(w, backend.ConsoleBuffer())
}

// writeViewport prints the viewport rows of buf as plain text, dropping
// trailing spaces.
func writeViewport(w io.Writer, buf *chat.Buffer) error {
	for i := 0; i < buf.Rows(); i++ {
		if _, err := fmt.Fprintln(w, strings.TrimRight(buf.FormattedLine(i).String(), " ")); err != nil {
			return err
		}
	}
	return nil
}
