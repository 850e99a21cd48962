// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - The default command: the full-screen console.

package cli

import (
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/chatconsole/internal/config"
	"github.com/jeranaias/chatconsole/internal/ui/console"
)

// debugLogFile receives the log when CHATCONSOLE_DEBUG is set.
const debugLogFile = "chatconsole-debug.log"

// HandleTUI runs the full-screen console until the user quits.
func HandleTUI(args Args) error {
	if err := RequiresTTY("run the full-screen console (try \"chatconsole line\")"); err != nil {
		return err
	}

	if os.Getenv("CHATCONSOLE_DEBUG") != "" {
		f, err := tea.LogToFile(debugLogFile, "chatconsole")
		if err != nil {
			return NewCommandError("tui", "start", "cannot open debug log", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	backend := newBackend(cfg)
	if args.Transcript != "" {
		n, err := loadTranscriptFile(backend, args.Transcript)
		if err != nil {
			return err
		}
		log.Printf("loaded %d transcript lines from %s", n, args.Transcript)
	}

	m := console.New(backend, cfg)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if path, err := configPath(args); err == nil {
		w, err := config.NewWatcher(path, config.DefaultWatchDebounce, func(c *config.Config) {
			if args.Nick != "" {
				c.Chat.Nickname = args.Nick
			}
			p.Send(console.ConfigChangedMsg{Config: c})
		})
		if err == nil {
			defer w.Close()
			if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
				log.Printf("config watcher: %v", err)
			} else if err := w.Watch(); err != nil {
				log.Printf("config watcher: %v", err)
			}
		} else {
			log.Printf("config watcher: %v", err)
		}
	}

	if _, err := p.Run(); err != nil {
		return NewCommandError("tui", "run", "terminal program failed", err)
	}
	return nil
}
