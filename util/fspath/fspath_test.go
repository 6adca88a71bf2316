package fspath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitstate-io/gitstate/testutil/testfs"
	"github.com/gitstate-io/gitstate/util/fspath"
)

func TestKeyEquality(t *testing.T) {
	caseSensitive := map[fspath.Key]struct{}{}
	caseSensitive[fspath.NewKey("/tmp/Dir", false)] = struct{}{}
	_, ok := caseSensitive[fspath.NewKey("/tmp/dir", false)]
	assert.False(t, ok)

	caseInsensitive := map[fspath.Key]struct{}{}
	caseInsensitive[fspath.NewKey("/tmp/Dir", true)] = struct{}{}
	_, ok = caseInsensitive[fspath.NewKey("/tmp/dir", true)]
	assert.True(t, ok)
}

func TestIsParent(t *testing.T) {
	assert.True(t, fspath.IsParent("/a/b", "/a/b/c", false))
	assert.False(t, fspath.IsParent("/a/b", "/a/bc", false))
	assert.False(t, fspath.IsParent("/a/b", "/a/b", false))
	assert.True(t, fspath.IsParent("/a/B", "/a/b/c", true))
}

func TestIsCaseInsensitiveFS(t *testing.T) {
	dir := testfs.MakeTempDir(t)
	_, err := fspath.IsCaseInsensitiveFS(dir)
	// The answer depends on the filesystem under the temp dir; only the
	// probe mechanics are asserted here.
	require.NoError(t, err)
}
