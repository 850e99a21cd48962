// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// linemode.go - The "line" command: a readline-style chat loop for plain
// terminals. Messages are printed wrapped to the terminal width.

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/chatconsole/internal/chat"
	"github.com/jeranaias/chatconsole/internal/commands"
	"github.com/jeranaias/chatconsole/internal/config"
	"github.com/jeranaias/chatconsole/internal/ui/styles"
)

// lineReader reads edited lines from the user.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// lineSession holds the state of one line-mode run.
type lineSession struct {
	backend *chat.Backend
	nick    string
	names   []string
	width   int
	out     io.Writer

	commands *commands.Registry
}

func newLineSession(cfg *config.Config, out io.Writer, width int) *lineSession {
	return &lineSession{
		backend: newBackend(cfg),
		nick:    cfg.Chat.Nickname,
		names:   append([]string(nil), cfg.Chat.Nicknames...),
		width:   width,
		out:     out,

		commands: commands.NewRegistry(),
	}
}

// =============================================================================
// HANDLE LINE
// =============================================================================

// HandleLine runs the line-mode chat loop on the terminal.
func HandleLine(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	s := newLineSession(cfg, os.Stdout, GetTerminalWidth())
	if args.Transcript != "" {
		n, err := loadTranscriptFile(s.backend, args.Transcript)
		if err != nil {
			return err
		}
		s.printLast(n)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(s.complete)

	return s.run(line)
}

// =============================================================================
// LOOP
// =============================================================================

// run reads lines until the user quits, aborts or closes input.
func (s *lineSession) run(r lineReader) error {
	prefix := s.backend.Prompt().PromptPrefix()
	for {
		input, err := r.Prompt(prefix)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		r.AppendHistory(input)
		s.backend.Prompt().AddToHistory(input)

		if !s.submit(input) {
			return nil
		}
	}
}

// submit handles one line and reports whether the loop should continue.
func (s *lineSession) submit(input string) bool {
	if !commands.IsCommand(input) {
		s.printLast(s.backend.AddMessage(s.nick, input))
		return true
	}

	ctx := &commands.Context{
		Backend:   s.backend,
		Nick:      s.nick,
		HelpExtra: []string{"Tab completes nicks and commands"},
	}
	action := s.commands.Execute(ctx, input)
	s.nick = ctx.Nick
	s.printLast(ctx.Added)
	return action != commands.ActionQuit
}

// printLast prints the newest n console lines wrapped to the session width.
func (s *lineSession) printLast(n int) {
	buf := s.backend.ConsoleBuffer()
	start := max(buf.LineCount()-n, 0)
	for i := start; i < buf.LineCount(); i++ {
		line := buf.Line(i)
		for _, row := range buf.Format(line, s.width) {
			text := strings.TrimRight(row.String(), " ")
			if row.First && line.Name != "" {
				name := "<" + line.Name + ">"
				if rest, ok := strings.CutPrefix(text, name); ok {
					text = lipgloss.NewStyle().Foreground(styles.NickColor(line.Name)).Render(name) + rest
				}
			}
			fmt.Fprintln(s.out, text)
		}
	}
}

// =============================================================================
// COMPLETION
// =============================================================================

// complete returns every completion of the word at the end of line, in the
// order repeated Tab presses cycle through them. A command name still being
// typed completes to the matching commands instead.
func (s *lineSession) complete(line string) []string {
	if partial := commands.GetPartialCommand(line); partial != "" {
		var out []string
		for _, name := range s.commands.CompleteName(partial) {
			out = append(out, name+" ")
		}
		return out
	}

	names := s.completionNames()
	prompt := s.backend.Prompt()
	defer prompt.Clear()

	prompt.Replace(line)
	var out []string
	seen := make(map[string]bool)
	for range names {
		prompt.NickCompletion(names, false)
		candidate := prompt.Line()
		if candidate == line || seen[candidate] {
			break
		}
		seen[candidate] = true
		out = append(out, candidate)
	}
	return out
}

func (s *lineSession) completionNames() []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, n := range s.names {
		add(n)
	}
	add(s.nick)
	buf := s.backend.ConsoleBuffer()
	for i := 0; i < buf.LineCount(); i++ {
		add(buf.Line(i).Name)
	}
	return names
}
