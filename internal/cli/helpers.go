// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Config loading and transcript helpers shared by commands.

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/jeranaias/chatconsole/internal/chat"
	"github.com/jeranaias/chatconsole/internal/config"
)

// loadConfig loads the file named by --config, or the default config files,
// and applies --nick on top.
func loadConfig(args Args) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		if _, statErr := os.Stat(args.ConfigPath); os.IsNotExist(statErr) {
			// Not written yet; "config set" creates it.
			cfg = config.Default()
			cfg.ApplyEnvOverrides()
			cfg.SetDefaults()
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
		} else if cfg, err = config.LoadFromPath(args.ConfigPath); err != nil {
			return nil, NewCommandError("config", "load", args.ConfigPath, err)
		}
	} else {
		cfg, err = config.Load()
		if cfg == nil {
			return nil, NewCommandError("config", "load", "default config", err)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v (using defaults)\n", ErrorStyle.Render("Warning:"), err)
		}
	}
	if args.Nick != "" {
		cfg.Chat.Nickname = args.Nick
	}
	return cfg, nil
}

// configPath returns the file the config commands and watcher work on.
func configPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	return config.ConfigPathTOML()
}

// newBackend creates a backend configured from cfg.
func newBackend(cfg *config.Config) *chat.Backend {
	return chat.NewBackend(cfg.BackendOptions()...)
}

// loadTranscript feeds every line of r to the backend as a server message.
// It returns the number of chat lines added; blank lines add none.
func loadTranscript(backend *chat.Backend, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	n := 0
	for scanner.Scan() {
		n += backend.AddUnparsedMessage(scanner.Text())
	}
	return n, scanner.Err()
}

// loadTranscriptFile is loadTranscript over a named file.
func loadTranscriptFile(backend *chat.Backend, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, NewNotFoundError("transcript", path)
		}
		return 0, err
	}
	defer f.Close()
	return loadTranscript(backend, f)
}
