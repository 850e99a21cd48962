// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"sort"
	"strings"

	"github.com/jeranaias/chatconsole/internal/chat"
)

// =============================================================================
// COMMAND DEFINITION
// =============================================================================

// Command represents a slash command that can be executed.
type Command struct {
	// Name is the primary command name (e.g., "/help")
	Name string

	// Aliases are alternative names (e.g., "/h", "/?")
	Aliases []string

	// Description is shown in help
	Description string

	// Usage shows argument syntax (e.g., "/nick <name>")
	Usage string

	// Args defines the expected arguments
	Args []ArgDef

	// Handler executes the command
	Handler func(ctx *Context, args []string) Action

	// Hidden commands don't appear in help
	Hidden bool
}

// ArgDef defines an argument for a command.
type ArgDef struct {
	Name        string
	Required    bool
	Description string
}

// Action tells the front end what to do after a command ran.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
)

// Context is what a handler can act on. Handlers may change Nick; the
// caller reads it back afterwards.
type Context struct {
	Backend *chat.Backend
	Nick    string

	// HelpExtra is appended to the /help output, e.g. key bindings.
	HelpExtra []string

	// RawArgs is the argument text exactly as typed, set by Execute.
	RawArgs string

	// Added counts the chat lines added through AddMessage and System.
	// Eviction from a full scrollback does not change it.
	Added int

	registry *Registry
}

// AddMessage adds a message to the backend and counts its lines.
func (c *Context) AddMessage(name, text string) {
	c.Added += c.Backend.AddMessage(name, text)
}

// System adds a system message to the console.
func (c *Context) System(text string) {
	c.AddMessage("", SystemPrefix+text)
}

// SystemPrefix marks messages generated locally rather than by a player.
const SystemPrefix = "-!- "

// =============================================================================
// COMMAND REGISTRY
// =============================================================================

// Registry holds all registered commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]*Command
}

// NewRegistry creates a new command registry with all built-in commands.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  make(map[string]*Command),
	}
	r.registerBuiltins()
	return r
}

// Register adds a command to the registry.
func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	for _, alias := range cmd.Aliases {
		r.aliases[alias] = cmd
	}
}

// Get retrieves a command by name or alias.
func (r *Registry) Get(name string) *Command {
	if cmd, ok := r.commands[name]; ok {
		return cmd
	}
	if cmd, ok := r.aliases[name]; ok {
		return cmd
	}
	return nil
}

// All returns all registered commands sorted by name.
func (r *Registry) All() []*Command {
	cmds := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// CompleteName returns the visible command names starting with partial,
// sorted.
func (r *Registry) CompleteName(partial string) []string {
	var names []string
	for _, cmd := range r.All() {
		if !cmd.Hidden && strings.HasPrefix(cmd.Name, partial) {
			names = append(names, cmd.Name)
		}
	}
	return names
}

// Execute runs the command in input. Unknown commands and missing
// arguments are reported as system messages.
func (r *Registry) Execute(ctx *Context, input string) Action {
	ctx.registry = r
	result := NewParser(r).Parse(input)
	ctx.RawArgs = result.RawArgs
	if !result.IsCommand || result.CommandName == "" {
		return ActionNone
	}
	if result.Command == nil {
		ctx.System("Unknown command: " + result.CommandName + " (try /help)")
		return ActionNone
	}
	if err := ValidateArgs(result.Command, result.Args); err != nil {
		ctx.System("Usage: " + result.Command.Usage)
		return ActionNone
	}
	return result.Command.Handler(ctx, result.Args)
}

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	r.Register(&Command{
		Name:        "/help",
		Aliases:     []string{"/h", "/?"},
		Description: "Show available commands",
		Usage:       "/help",
		Handler:     handleHelp,
	})

	r.Register(&Command{
		Name:        "/quit",
		Aliases:     []string{"/q", "/exit"},
		Description: "Leave the console",
		Usage:       "/quit",
		Handler:     func(*Context, []string) Action { return ActionQuit },
	})

	r.Register(&Command{
		Name:        "/clear",
		Aliases:     []string{"/cls"},
		Description: "Empty the console",
		Usage:       "/clear",
		Handler: func(ctx *Context, _ []string) Action {
			ctx.Backend.ConsoleBuffer().Clear()
			return ActionNone
		},
	})

	r.Register(&Command{
		Name:        "/clearrecent",
		Description: "Empty the recent messages",
		Usage:       "/clearrecent",
		Handler: func(ctx *Context, _ []string) Action {
			ctx.Backend.ClearRecentChat()
			return ActionNone
		},
	})

	r.Register(&Command{
		Name:        "/nick",
		Description: "Change the name you chat under",
		Usage:       "/nick <name>",
		Args:        []ArgDef{{Name: "name", Required: true, Description: "new nickname"}},
		Handler:     handleNick,
	})

	r.Register(&Command{
		Name:        "/me",
		Description: "Send an action",
		Usage:       "/me <action>",
		Args:        []ArgDef{{Name: "action", Required: true, Description: "what you do"}},
		Handler: func(ctx *Context, _ []string) Action {
			ctx.AddMessage("", "* "+ctx.Nick+" "+ctx.RawArgs)
			return ActionNone
		},
	})
}

func handleHelp(ctx *Context, _ []string) Action {
	ctx.System("Commands:")
	for _, cmd := range ctx.registry.All() {
		if cmd.Hidden {
			continue
		}
		ctx.System("  " + cmd.Usage + " - " + cmd.Description)
	}
	for _, line := range ctx.HelpExtra {
		ctx.System(line)
	}
	return ActionNone
}

func handleNick(ctx *Context, args []string) Action {
	if len(args) != 1 || strings.ContainsAny(args[0], "<>") {
		ctx.System("Usage: /nick <name>")
		return ActionNone
	}
	ctx.Nick = args[0]
	ctx.System("You are now known as " + ctx.Nick)
	return ActionNone
}
