package fs_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitstate-io/gitstate/index"
	"github.com/gitstate-io/gitstate/testutil/testfs"
	"github.com/gitstate-io/gitstate/util/status"
	"github.com/gitstate-io/gitstate/worktree/fs"
)

func newCache(t *testing.T) (*fs.Cache, string) {
	root := testfs.MakeTempDir(t)
	cache := fs.NewCache(root, fs.Options{CreateDirectories: true})
	return cache, root
}

func TestRootIsAssumedToExistAndFilesInRootDoNotCreateDirectories(t *testing.T) {
	dir := testfs.MakeTempDir(t)
	cache := fs.NewCache(filepath.Join(dir, "non-existing-root"), fs.Options{
		CreateDirectories: true,
	})
	require.Equal(t, 0, cache.MkdirCalls)

	path, err := cache.EnsureLeadingDirectories("hello", index.ModeFile)
	require.NoError(t, err)
	_, err = os.Lstat(filepath.Dir(path))
	assert.True(t, os.IsNotExist(err), "the root itself is never created")
	assert.Equal(t, 0, cache.MkdirCalls)
}

func TestDirectoryPathsAreCreatedInFull(t *testing.T) {
	cache, _ := newCache(t)

	for _, tc := range []struct {
		name string
		mode index.Mode
	}{
		{"dir", index.ModeDir},
		{"submodule", index.ModeCommit},
		{"file", index.ModeFile},
		{"exe", index.ModeExecutable},
		{"link", index.ModeSymlink},
	} {
		path, err := cache.EnsureLeadingDirectories("dir/"+tc.name, tc.mode)
		require.NoError(t, err)
		parent, err := os.Lstat(filepath.Dir(path))
		require.NoError(t, err)
		assert.True(t, parent.IsDir(), "parent of %q exists as a directory", tc.name)
	}

	// One call for the shared parent, plus one each for the directory and
	// submodule leaves, which are themselves ensured as directories.
	assert.Equal(t, 3, cache.MkdirCalls)
}

func TestExistingDirectoriesAreFine(t *testing.T) {
	cache, root := newCache(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0755))

	path, err := cache.EnsureLeadingDirectories("dir/file", index.ModeFile)
	require.NoError(t, err)
	parent, err := os.Lstat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, parent.IsDir(), "directory is still present")
	assert.False(t, testfs.Exists(t, root, "dir/file"), "it won't create the file")
	assert.Equal(t, 1, cache.MkdirCalls)
}

func TestCollisionsAreForbiddenOrUnlinkedWhenForced(t *testing.T) {
	cache, root := newCache(t)
	forbidden := filepath.Join(root, "forbidden")
	require.NoError(t, os.Mkdir(forbidden, 0755))
	testfs.MakeSymlink(t, root, "link-to-dir", forbidden)
	testfs.WriteFile(t, root, "file-in-dir", "")

	for _, dirname := range []string{"file-in-dir", "link-to-dir"} {
		cache.SetUnlinkOnCollision(false)
		_, err := cache.EnsureLeadingDirectories(dirname+"/file", index.ModeFile)
		require.Error(t, err)
		assert.True(t, status.IsAlreadyExistsError(err), "got %v", err)
		assert.True(t, errors.Is(err, os.ErrExist))
	}
	assert.Equal(t, 2, cache.MkdirCalls,
		"it tries to create each directory once, but it's occupied")

	cache2 := fs.NewCache(root, fs.Options{
		CreateDirectories: true,
		UnlinkOnCollision: true,
	})
	for _, dirname := range []string{"link-to-dir", "file-in-dir"} {
		path, err := cache2.EnsureLeadingDirectories(dirname+"/file", index.ModeFile)
		require.NoError(t, err)
		parent, err := os.Lstat(filepath.Dir(path))
		require.NoError(t, err)
		assert.True(t, parent.IsDir(), "directory was forcefully created")
		assert.False(t, testfs.Exists(t, root, dirname+"/file"))
	}
	assert.Equal(t, 4, cache2.MkdirCalls,
		"like before, but it unlinks what's there and tries again")
}

func TestMemoSkipsConfirmedDirectories(t *testing.T) {
	cache, _ := newCache(t)

	_, err := cache.EnsureLeadingDirectories("a/b/c/file", index.ModeFile)
	require.NoError(t, err)
	require.Equal(t, 3, cache.MkdirCalls)

	// Same tree again: every prefix is memoized, no filesystem calls.
	_, err = cache.EnsureLeadingDirectories("a/b/c/other", index.ModeFile)
	require.NoError(t, err)
	assert.Equal(t, 3, cache.MkdirCalls)

	// One new segment below a memoized prefix costs exactly one call.
	_, err = cache.EnsureLeadingDirectories("a/b/d/file", index.ModeFile)
	require.NoError(t, err)
	assert.Equal(t, 4, cache.MkdirCalls)
}

func TestCreateDirectoriesDisabledSkipsTheFilesystem(t *testing.T) {
	root := testfs.MakeTempDir(t)
	cache := fs.NewCache(root, fs.Options{CreateDirectories: false})

	path, err := cache.EnsureLeadingDirectories("a/b/file", index.ModeFile)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b", "file"), path)
	assert.Equal(t, 0, cache.MkdirCalls)
	assert.False(t, testfs.Exists(t, root, "a"))
}

func TestInvalidPathsAreRejected(t *testing.T) {
	cache, _ := newCache(t)

	for _, relPath := range []string{"", "/abs/file", "a/../escape"} {
		_, err := cache.EnsureLeadingDirectories(relPath, index.ModeFile)
		require.Error(t, err, "path %q", relPath)
		assert.True(t, status.IsInvalidArgumentError(err), "path %q: got %v", relPath, err)
	}
	assert.Equal(t, 0, cache.MkdirCalls)
}
