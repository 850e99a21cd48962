// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points the home directory at a temp dir so Load never reads
// the real user config.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	for _, key := range []string{
		"CHATCONSOLE_NICK", "CHATCONSOLE_SCROLLBACK", "CHATCONSOLE_RECENT",
		"CHATCONSOLE_WEBLINKS", "CHATCONSOLE_PROMPT",
	} {
		t.Setenv(key, "")
	}
	return home
}

func TestConfig_Default(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 500, cfg.Chat.ConsoleScrollback)
	assert.Equal(t, 6, cfg.Chat.RecentMessages)
	assert.Equal(t, 60.0, cfg.Chat.RecentMaxAge)
	assert.Equal(t, 500, cfg.Chat.HistoryLimit)
	assert.Equal(t, "]", cfg.Chat.Prompt)
	assert.False(t, cfg.Chat.ClickableWeblinks)
	assert.Equal(t, "#8888FF", cfg.Chat.WeblinkColor)
	assert.Equal(t, 3, cfg.UI.WheelRows)
	assert.Equal(t, 100, cfg.UI.TickMillis)
	assert.True(t, cfg.UI.ShowHUD)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantField string
	}{
		{"zero scrollback", func(c *Config) { c.Chat.ConsoleScrollback = 0 }, "chat.console_scrollback"},
		{"recent too small", func(c *Config) { c.Chat.RecentMessages = 1 }, "chat.recent_messages"},
		{"recent too large", func(c *Config) { c.Chat.RecentMessages = 21 }, "chat.recent_messages"},
		{"non-positive max age", func(c *Config) { c.Chat.RecentMaxAge = 0 }, "chat.recent_max_age"},
		{"negative history", func(c *Config) { c.Chat.HistoryLimit = -1 }, "chat.history_limit"},
		{"multi-line prompt", func(c *Config) { c.Chat.Prompt = "a\nb" }, "chat.prompt"},
		{"bad colour", func(c *Config) { c.Chat.WeblinkColor = "blue" }, "chat.weblink_color"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"zero wheel rows", func(c *Config) { c.UI.WheelRows = 0 }, "ui.wheel_rows"},
		{"tick too fast", func(c *Config) { c.UI.TickMillis = 1 }, "ui.tick_millis"},
		{"valid", func(c *Config) {}, ""},
		{"valid short colour", func(c *Config) { c.Chat.WeblinkColor = "#88f" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verrs ValidateErrors
			require.True(t, errors.As(err, &verrs), "want ValidateErrors, got %v", err)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.wantField, verrs[0].Field)
		})
	}
}

func TestConfig_GetSet(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Set("chat.prompt", "> "))
	v, err := cfg.Get("chat.prompt")
	require.NoError(t, err)
	assert.Equal(t, "> ", v)

	require.NoError(t, cfg.Set("chat.recent_messages", "10"))
	assert.Equal(t, 10, cfg.Chat.RecentMessages)

	require.NoError(t, cfg.Set("chat.recent_max_age", "2.5"))
	assert.Equal(t, 2.5, cfg.Chat.RecentMaxAge)

	require.NoError(t, cfg.Set("chat.clickable_weblinks", "yes"))
	assert.True(t, cfg.Chat.ClickableWeblinks)

	require.NoError(t, cfg.Set("chat.nicknames", "alice, bob,,carol"))
	assert.Equal(t, []string{"alice", "bob", "carol"}, cfg.Chat.Nicknames)

	require.NoError(t, cfg.Set("ui.wheel-rows", 5))
	assert.Equal(t, 5, cfg.UI.WheelRows)

	assert.Error(t, cfg.Set("chat.recent_messages", "many"))
	assert.Error(t, cfg.Set("chat.nope", "x"))
	assert.Error(t, cfg.Set("chat.prompt.deeper", "x"))
	_, err = cfg.Get("")
	assert.Error(t, err)
}

func TestConfig_GetAllKeys(t *testing.T) {
	keys := GetAllKeys()
	assert.Contains(t, keys, "version")
	assert.Contains(t, keys, "chat.console_scrollback")
	assert.Contains(t, keys, "chat.weblink_color")
	assert.Contains(t, keys, "ui.show_hud")

	cfg := Default()
	for _, key := range keys {
		_, err := cfg.Get(key)
		assert.NoError(t, err, key)
	}
}

func TestConfig_SaveLoadTOML(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Chat.Nickname = "sam"
	cfg.Chat.Nicknames = []string{"alice", "bob"}
	cfg.Chat.RecentMessages = 12
	require.NoError(t, SaveTOML(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	if os.PathSeparator == '/' {
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestConfig_SaveLoadJSON(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Default()
	cfg.UI.Theme = "light"
	require.NoError(t, SaveJSON(cfg, path))

	loaded, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "light", loaded.UI.Theme)
}

func TestConfig_PartialFileKeepsDefaults(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[chat]\nnickname = \"kim\"\n"), 0600))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "kim", cfg.Chat.Nickname)
	assert.Equal(t, 500, cfg.Chat.ConsoleScrollback)
	assert.Equal(t, "]", cfg.Chat.Prompt)
}

func TestConfig_LoadInvalidFile(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[chat]\nrecent_messages = 99\n"), 0600))

	_, err := LoadFromPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat.recent_messages")
}

func TestConfig_LoadFallsBackToDefaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	dir := filepath.Join(home, ".chatconsole")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0600))

	cfg, err = Load()
	assert.Error(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, Default(), cfg)
}

func TestConfig_LoadPrefersTOML(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, ".chatconsole")
	require.NoError(t, os.MkdirAll(dir, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"chat":{"nickname":"json"}}`), 0600))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Chat.Nickname)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[chat]\nnickname = \"toml\"\n"), 0600))
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "toml", cfg.Chat.Nickname)
}

func TestConfig_EnvOverrides(t *testing.T) {
	isolateHome(t)
	t.Setenv("CHATCONSOLE_NICK", "envnick")
	t.Setenv("CHATCONSOLE_SCROLLBACK", "42")
	t.Setenv("CHATCONSOLE_RECENT", "not-a-number")
	t.Setenv("CHATCONSOLE_WEBLINKS", "TRUE")
	t.Setenv("CHATCONSOLE_PROMPT", "$ ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "envnick", cfg.Chat.Nickname)
	assert.Equal(t, 42, cfg.Chat.ConsoleScrollback)
	assert.Equal(t, 6, cfg.Chat.RecentMessages)
	assert.True(t, cfg.Chat.ClickableWeblinks)
	assert.Equal(t, "$ ", cfg.Chat.Prompt)
}

func TestConfig_BackendOptions(t *testing.T) {
	cfg := Default()
	assert.Len(t, cfg.BackendOptions(), 5)

	cfg.Chat.ClickableWeblinks = true
	assert.Len(t, cfg.BackendOptions(), 6)
}
