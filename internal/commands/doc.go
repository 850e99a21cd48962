// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands provides the slash commands shared by the full-screen
// console and line mode.
//
// Lines submitted from the prompt that start with "/" are parsed into a
// command name and quoted-aware arguments, looked up in a Registry and run
// against a Context holding the chat backend and the current nick.
//
// # Built-in Commands
//
//   - /help (/h, /?): list commands
//   - /quit (/q, /exit): leave
//   - /clear (/cls): empty the console
//   - /clearrecent: empty the recent messages
//   - /nick <name>: change the name lines are sent under
//   - /me <action>: send an action line
//
// # Usage
//
//	reg := commands.NewRegistry()
//	ctx := &commands.Context{Backend: backend, Nick: nick}
//	if reg.Execute(ctx, line) == commands.ActionQuit {
//	    return tea.Quit
//	}
//	nick = ctx.Nick
package commands
