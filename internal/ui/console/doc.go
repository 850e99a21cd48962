// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package console is the full-screen terminal front end of the chat engine.
//
// The Model renders the console buffer (or the recent-messages HUD), the
// edit line and a status bar, and turns key presses, mouse events and
// timer ticks into calls on a chat.Backend. Lines submitted from the
// prompt are echoed as chat; lines starting with "/" are run by the
// commands registry, and Tab completes a command name while one is typed.
//
// Server messages arrive as IncomingMsg values sent into the running
// program, and a reloaded configuration as ConfigChangedMsg.
package console
