// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for chatconsole.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, validation and hot reload.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - ChatConfig: Scrollback sizes, prompt, nicknames and weblinks
//   - UIConfig: Theme, mouse wheel and tick settings for the terminal UI
//   - Watcher: Reloads the config file when it changes on disk
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (CHATCONSOLE_*)
//   - ~/.chatconsole/config.toml
//   - ~/.chatconsole/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Build a chat backend from it:
//
//	backend := chat.NewBackend(cfg.BackendOptions()...)
package config
