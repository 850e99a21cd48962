// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// AtomicWriteFile replaces path with data so that readers see either the old
// config or the new one, never a partial write. The parent directory is
// created with 0700 when missing.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) (err error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("atomic write %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	steps := []struct {
		what string
		run  func() error
	}{
		{"write", func() error { _, err := tmp.Write(data); return err }},
		{"sync", tmp.Sync},
		// The file must be closed before rename on Windows.
		{"close", tmp.Close},
		{"chmod", func() error { return os.Chmod(tmp.Name(), perm) }},
		{"rename", func() error { return os.Rename(tmp.Name(), target) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("atomic write %s: %s: %w", path, step.what, err)
		}
	}
	return nil
}
