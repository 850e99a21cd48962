// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"unicode"
)

// =============================================================================
// PARSE RESULT
// =============================================================================

// ParseResult contains the result of parsing a submitted line.
type ParseResult struct {
	// IsCommand is true if the input starts with /
	IsCommand bool

	// Command is the matched command (nil if not found)
	Command *Command

	// CommandName is the raw command name (e.g., "/help")
	CommandName string

	// Args are the parsed arguments
	Args []string

	// RawInput is the original input string
	RawInput string

	// RawArgs is the unparsed arguments portion
	RawArgs string
}

// =============================================================================
// PARSER
// =============================================================================

// Parser splits slash commands into a name and arguments.
type Parser struct {
	registry *Registry
}

// NewParser creates a new parser with the given registry.
func NewParser(registry *Registry) *Parser {
	return &Parser{registry: registry}
}

// Parse parses a submitted line. IsCommand is false if it doesn't start
// with /.
func (p *Parser) Parse(input string) ParseResult {
	input = strings.TrimSpace(input)
	result := ParseResult{RawInput: input}

	if !strings.HasPrefix(input, "/") {
		return result
	}
	result.IsCommand = true

	parts := splitCommandLine(input)
	if len(parts) == 0 {
		return result
	}

	result.CommandName = strings.ToLower(parts[0])
	if len(parts) > 1 {
		result.Args = parts[1:]
		result.RawArgs = strings.TrimSpace(input[len(ExtractCommandName(input)):])
	}

	result.Command = p.registry.Get(result.CommandName)
	return result
}

// =============================================================================
// ARGUMENT PARSING
// =============================================================================

// splitCommandLine splits a command line into tokens, respecting single and
// double quotes.
func splitCommandLine(input string) []string {
	var tokens []string
	var current strings.Builder
	var inSingleQuote, inDoubleQuote, quoted bool

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		char := runes[i]

		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			quoted = true

		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			quoted = true

		case char == '\\' && i+1 < len(runes) && (inDoubleQuote || inSingleQuote):
			next := runes[i+1]
			if next == '"' || next == '\'' || next == '\\' {
				current.WriteRune(next)
				i++
			} else {
				current.WriteRune(char)
			}

		case unicode.IsSpace(char) && !inSingleQuote && !inDoubleQuote:
			if current.Len() > 0 || quoted {
				tokens = append(tokens, current.String())
				current.Reset()
				quoted = false
			}

		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 || quoted {
		tokens = append(tokens, current.String())
	}

	return tokens
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// IsCommand returns true if the input appears to be a command.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// ExtractCommandName extracts just the command name from input.
// e.g., "/nick sam" -> "/nick"
func ExtractCommandName(input string) string {
	input = strings.TrimSpace(input)
	if !strings.HasPrefix(input, "/") {
		return ""
	}

	end := strings.IndexFunc(input, unicode.IsSpace)
	if end == -1 {
		return input
	}
	return input[:end]
}

// GetPartialCommand returns the command name still being typed, or "" once
// the name is complete or the line is not a command.
func GetPartialCommand(input string) string {
	if !strings.HasPrefix(input, "/") {
		return ""
	}
	if strings.IndexFunc(input, unicode.IsSpace) != -1 {
		return ""
	}
	return input
}

// ValidateArgs checks that every required argument is present.
func ValidateArgs(cmd *Command, args []string) error {
	if cmd == nil {
		return nil
	}
	for i, argDef := range cmd.Args {
		if argDef.Required && i >= len(args) {
			return &ValidationError{
				Command:  cmd.Name,
				Arg:      argDef.Name,
				Message:  "required argument missing",
				Expected: argDef.Description,
			}
		}
	}
	return nil
}

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError represents an argument validation error.
type ValidationError struct {
	Command  string
	Arg      string
	Message  string
	Expected string
}

func (e *ValidationError) Error() string {
	msg := e.Command + ": " + e.Message
	if e.Arg != "" {
		msg += " for argument '" + e.Arg + "'"
	}
	if e.Expected != "" {
		msg += " - expected: " + e.Expected
	}
	return msg
}
