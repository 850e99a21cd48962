// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, 50*time.Millisecond, func(cfg *Config) {
		changes <- cfg
	})
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	cfg := Default()
	cfg.Chat.RecentMessages = 9
	require.NoError(t, SaveTOML(cfg, path))

	select {
	case got := <-changes:
		assert.Equal(t, 9, got.Chat.RecentMessages)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after config write")
	}
}

func TestWatcher_IgnoresOtherFilesAndBadConfigs(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, SaveTOML(Default(), path))

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, 50*time.Millisecond, func(cfg *Config) {
		changes <- cfg
	})
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1"), 0600))
	require.NoError(t, os.WriteFile(path, []byte("[chat]\nrecent_messages = 50\n"), 0600))

	select {
	case got := <-changes:
		t.Fatalf("unexpected reload: %+v", got)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_CloseWithoutWatch(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "config.toml"), 0, func(*Config) {})
	require.NoError(t, err)
	assert.NoError(t, w.Close())
}

func TestWatcher_DebounceClamped(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want time.Duration
	}{
		{0, DefaultWatchDebounce},
		{-time.Second, DefaultWatchDebounce},
		{time.Nanosecond, MinWatchDebounce},
		{MinWatchDebounce, MinWatchDebounce},
		{time.Second, time.Second},
	}

	for _, tt := range tests {
		w, err := NewWatcher(filepath.Join(t.TempDir(), "config.toml"), tt.in, func(*Config) {})
		require.NoError(t, err)
		assert.Equal(t, tt.want, w.debounce, "debounce %v", tt.in)
		assert.NoError(t, w.Close())
	}

	w, err := NewWatcher(filepath.Join(t.TempDir(), "config.toml"), time.Nanosecond, func(*Config) {})
	require.NoError(t, err)
	require.NotPanics(t, func() { require.NoError(t, w.Watch()) })
	assert.NoError(t, w.Close())
}
