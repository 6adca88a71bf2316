// Package testfs provides filesystem fixtures for tests.
package testfs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// MakeTempDir returns a temp directory that is cleaned up when the test
// completes.
func MakeTempDir(t testing.TB) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "testfs-tmpdir-*")
	require.NoError(t, err, "failed to create temp dir")
	t.Cleanup(func() {
		err := os.RemoveAll(tmpDir)
		require.NoError(t, err, "failed to clean up temp dir")
	})
	return tmpDir
}

// MakeTempFile creates a temp file in dir (or in an OS-default location if dir
// is empty) matching the given name pattern, and returns its path. The file
// is removed when the test completes.
func MakeTempFile(t testing.TB, dir, pattern string) string {
	t.Helper()
	if pattern == "" {
		pattern = "testfs-tmpfile-*"
	}
	f, err := os.CreateTemp(dir, pattern)
	require.NoError(t, err, "failed to create temp file")
	err = f.Close()
	require.NoError(t, err, "failed to close temp file")
	t.Cleanup(func() {
		err := os.Remove(f.Name())
		require.NoError(t, err, "failed to clean up temp file")
	})
	return f.Name()
}

// WriteAllFileContents writes the given contents beneath rootDir, creating
// parent directories as needed. Map keys are slash-separated relative paths.
func WriteAllFileContents(t testing.TB, rootDir string, contents map[string]string) {
	t.Helper()
	for relPath, content := range contents {
		WriteFile(t, rootDir, relPath, content)
	}
}

// WriteFile writes a single file beneath rootDir, creating parent directories
// as needed, and returns its full path.
func WriteFile(t testing.TB, rootDir, relPath, content string) string {
	t.Helper()
	fullPath := filepath.Join(rootDir, relPath)
	err := os.MkdirAll(filepath.Dir(fullPath), 0755)
	require.NoError(t, err)
	err = os.WriteFile(fullPath, []byte(content), 0644)
	require.NoError(t, err)
	return fullPath
}

// MakeSymlink creates a symlink at relPath beneath rootDir pointing to
// target.
func MakeSymlink(t testing.TB, rootDir, relPath, target string) string {
	t.Helper()
	fullPath := filepath.Join(rootDir, relPath)
	err := os.MkdirAll(filepath.Dir(fullPath), 0755)
	require.NoError(t, err)
	err = os.Symlink(target, fullPath)
	require.NoError(t, err)
	return fullPath
}

// Exists returns whether the given path exists beneath rootDir, without
// following a symlink at the final path element.
func Exists(t testing.TB, rootDir, relPath string) bool {
	t.Helper()
	_, err := os.Lstat(filepath.Join(rootDir, relPath))
	if err != nil {
		if os.IsNotExist(err) {
			return false
		}
		require.NoError(t, err)
	}
	return true
}
