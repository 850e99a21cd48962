// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli parses the chatconsole command line and runs its commands.
//
// # Commands
//
//   - tui (default): full-screen console, see package console
//   - line: readline-style loop for plain terminals, backed by peterh/liner
//   - replay FILE: prints the console viewport for a transcript
//   - config show|get|set|reset|path: inspect and edit the config file
//   - version, help
//
// # Usage
//
//	os.Exit(cli.Run(os.Args[1:]))
//
// Handlers return errors; Run prints them and maps them to exit codes with
// GetExitCode.
package cli
