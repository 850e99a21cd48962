// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command-line parsing and dispatch for chatconsole.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdLine
	CmdReplay
	CmdConfig
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string
	Nick       string
	Transcript string

	// Command-specific
	Subcommand string
	ConfigKey  string
	ConfigVal  string
	File       string
	Cols       int
	Rows       int
	Scroll     int

	// Raw args after the command name
	Raw []string
}

const usageText = `chatconsole - terminal chat console

Usage:
  chatconsole                      Start the full-screen console (default)
  chatconsole tui                  Start the full-screen console
  chatconsole line                 Line-by-line chat on a plain terminal
  chatconsole replay FILE          Print the console view of a transcript
    --cols N                       Viewport width (default: terminal width)
    --rows N                       Viewport height (default: terminal height)
    --scroll N                     Rows to scroll back from the bottom (negative)
  chatconsole config [show]        Show configuration
  chatconsole config get KEY       Print one setting
  chatconsole config set KEY VAL   Change and save one setting
  chatconsole config path          Print the config file path
  chatconsole version              Show version
  chatconsole help                 Show this help

Global Flags:
  --config PATH     Use this config file instead of ~/.chatconsole/config.toml
  --nick NAME       Name submitted lines are sent under
  --transcript FILE Pre-load a transcript ("<name> text" per line) into the console

Console Keys:
  Enter submit, Up/Down history, Tab/Shift+Tab complete nick or command,
  PgUp/PgDn scroll, Ctrl+C/X/V copy/cut/paste, Ctrl+Y copy recent chat,
  F10 toggle recent-messages view, Esc quit.

Console Commands:
  /clear /clearrecent /nick NAME /me ACTION /help /quit

Environment:
  CHATCONSOLE_NICK, CHATCONSOLE_SCROLLBACK, CHATCONSOLE_RECENT,
  CHATCONSOLE_WEBLINKS, CHATCONSOLE_PROMPT override config values.
  CHATCONSOLE_DEBUG=1 writes a debug log to chatconsole-debug.log.

Version: %s
`

// PrintUsage writes the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "chatconsole version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
}

// Parse parses command-line arguments (without the program name) and returns
// the command and its args.
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv)
	args := Args{
		ConfigPath: p.Flag("config"),
		Nick:       p.Flag("nick"),
		Transcript: p.Flag("transcript"),
	}

	if p.BoolFlag("help") || p.BoolFlag("h") {
		return CmdHelp, args, nil
	}
	if p.BoolFlag("version") {
		return CmdVersion, args, nil
	}
	for _, name := range []string{"config", "nick", "transcript"} {
		if p.BoolFlag(name) {
			return CmdHelp, args, ErrMissingArgument("--"+name, "chatconsole --"+name+" VALUE")
		}
	}

	if p.PositionalCount() == 0 {
		return CmdTUI, args, nil
	}

	cmd := strings.ToLower(p.Subcommand())
	rest := p.PositionalFrom(1)
	args.Raw = rest
	if len(rest) > 0 {
		args.Subcommand = rest[0]
	}

	switch cmd {
	case "tui":
		return CmdTUI, args, nil

	case "line", "lines":
		return CmdLine, args, nil

	case "replay":
		if len(rest) == 0 {
			return CmdReplay, args, ErrMissingArgument("FILE", "chatconsole replay chat.log --cols 80")
		}
		args.File = rest[0]
		var err error
		if args.Cols, err = optionalPositive(p, "cols"); err != nil {
			return CmdReplay, args, err
		}
		if args.Rows, err = optionalPositive(p, "rows"); err != nil {
			return CmdReplay, args, err
		}
		if s := p.Flag("scroll"); s != "" {
			if args.Scroll, err = p.FlagInt("scroll"); err != nil {
				return CmdReplay, args, ErrInvalidFormat("--scroll", s, "an integer such as -10")
			}
		}
		return CmdReplay, args, nil

	case "config":
		if len(rest) > 1 {
			args.ConfigKey = rest[1]
		}
		if len(rest) > 2 {
			args.ConfigVal = strings.Join(rest[2:], " ")
		}
		return CmdConfig, args, nil

	case "version":
		return CmdVersion, args, nil

	case "help":
		return CmdHelp, args, nil
	}

	return CmdHelp, args, NewValidationErrorWithExample("command", cmd, "unknown command", "chatconsole help")
}

func optionalPositive(p *ArgParser, name string) (int, error) {
	s := p.Flag(name)
	if s == "" {
		return 0, nil
	}
	n, err := ParseIntWithValidation(s, "--"+name)
	if err != nil {
		return 0, NewValidationError("--"+name, s, err.Error())
	}
	return n, nil
}

// Run parses argv, executes the command and returns the process exit code.
func Run(argv []string) int {
	cmd, args, err := Parse(argv)
	if err != nil {
		DisplayError(os.Stderr, err)
		if cmd == CmdHelp {
			PrintUsage(os.Stderr)
		}
		return GetExitCode(err)
	}

	switch cmd {
	case CmdTUI:
		err = HandleTUI(args)
	case CmdLine:
		err = HandleLine(args)
	case CmdReplay:
		err = HandleReplay(args, os.Stdout)
	case CmdConfig:
		err = HandleConfig(args, os.Stdout)
	case CmdVersion:
		PrintVersion(os.Stdout)
	case CmdHelp:
		PrintUsage(os.Stdout)
	}

	if err != nil {
		DisplayError(os.Stderr, err)
		return GetExitCode(err)
	}
	return ExitSuccess
}
