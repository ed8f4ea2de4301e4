// Package filex has filesystem helpers for the client's local state.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnsureParentDir creates the directory that will hold the file at path
// and returns the cleaned path. In-memory SQLite DSNs are returned untouched.
func EnsureParentDir(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path, nil
	}

	path = filepath.Clean(ExpandHome(path))
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return path, nil
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
