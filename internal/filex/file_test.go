package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesMissingDirectories(t *testing.T) {
	tmp := t.TempDir()
	target := filepath.Join(tmp, "state", "nested", "session.db")

	got, err := EnsureParentDir(target)
	require.NoError(t, err)
	require.Equal(t, target, got)

	fi, err := os.Stat(filepath.Dir(target))
	require.NoError(t, err)
	require.True(t, fi.IsDir(), "should create a directory")

	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), fi.Mode().Perm()&0o700)
	}
}

func TestEnsureParentDir_Idempotent(t *testing.T) {
	target := filepath.Join(t.TempDir(), "state", "session.db")

	first, err := EnsureParentDir(target)
	require.NoError(t, err)
	second, err := EnsureParentDir(target)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestEnsureParentDir_FailsIfFileBlocksDirectory(t *testing.T) {
	tmp := t.TempDir()
	blocker := filepath.Join(tmp, "state")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := EnsureParentDir(filepath.Join(blocker, "session.db"))
	require.Error(t, err, "should fail when a file exists where the directory should be")
}

func TestEnsureParentDir_InMemoryDSNUntouched(t *testing.T) {
	for _, dsn := range []string{":memory:", "file:x?mode=memory&cache=shared"} {
		got, err := EnsureParentDir(dsn)
		require.NoError(t, err)
		require.Equal(t, dsn, got)
	}
}

func TestEnsureParentDir_Empty(t *testing.T) {
	_, err := EnsureParentDir("")
	require.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	require.Equal(t, filepath.Join(home, ".hackorsnooze", "s.db"), ExpandHome("~/.hackorsnooze/s.db"))
	require.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	require.Equal(t, "rel/path", ExpandHome("rel/path"))
}
