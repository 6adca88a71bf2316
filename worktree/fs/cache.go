// Package fs creates the filesystem structure a checkout needs, without
// trusting anything already on disk.
package fs

import (
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/grpc/codes"

	"github.com/gitstate-io/gitstate/index"
	"github.com/gitstate-io/gitstate/metrics"
	"github.com/gitstate-io/gitstate/util/disk"
	"github.com/gitstate-io/gitstate/util/fspath"
	"github.com/gitstate-io/gitstate/util/status"
)

// Options is the caller-supplied policy of a Cache.
type Options struct {
	// CreateDirectories enables creating leading directories. When false,
	// EnsureLeadingDirectories only composes paths and never touches the
	// filesystem; writing the leaf will fail naturally if an ancestor is
	// missing.
	CreateDirectories bool
	// UnlinkOnCollision removes a file or symlink occupying a path segment
	// that must be a directory, instead of failing. A symlink is never
	// followed to check what it points at; a link to a perfectly good
	// directory is still a collision, since following it could redirect the
	// checkout outside its root.
	UnlinkOnCollision bool
	// CaseInsensitiveFS marks the filesystem under the root as
	// case-insensitive, so the memo treats paths differing only in case as
	// the same directory. See fspath.IsCaseInsensitiveFS.
	CaseInsensitiveFS bool
}

// Cache ensures the leading directories of checked-out files exist, memoizing
// confirmed directories so repeated files under the same tree cost no
// filesystem calls.
//
// A Cache is not safe for concurrent use: the memo is unsynchronized and the
// create-inspect-retry sequence for a single ancestor is not atomic against
// another actor racing on the same path. Each goroutine checking out into the
// same tree must own its own instance.
type Cache struct {
	root string
	opts Options
	// known records directories confirmed to exist for the lifetime of this
	// instance. A confirmed directory is never re-checked.
	known map[fspath.Key]struct{}

	// MkdirCalls counts directory creation attempts, including failed ones.
	MkdirCalls int
}

// NewCache returns a cache rooted at root. The root is assumed to already
// exist; it is never created or validated.
func NewCache(root string, opts Options) *Cache {
	return &Cache{
		root:  root,
		opts:  opts,
		known: make(map[fspath.Key]struct{}),
	}
}

// Root returns the directory all relative paths are resolved against.
func (c *Cache) Root() string {
	return c.root
}

// SetUnlinkOnCollision changes the collision policy for subsequent calls.
func (c *Cache) SetUnlinkOnCollision(unlink bool) {
	c.opts.UnlinkOnCollision = unlink
}

// EnsureLeadingDirectories verifies that every ancestor directory of relPath
// exists as a genuine directory beneath the root, creating missing ones, and
// returns the absolute path of the leaf. A directory or submodule leaf is
// itself ensured as a directory; any other leaf is never created or
// inspected, since writing it is the caller's job.
//
// relPath must be relative, slash-separated and free of ".." segments.
func (c *Cache) EnsureLeadingDirectories(relPath string, mode index.Mode) (string, error) {
	if err := validateRelativePath(relPath); err != nil {
		return "", err
	}
	fullPath := filepath.Join(c.root, filepath.FromSlash(relPath))
	if !c.opts.CreateDirectories {
		return fullPath, nil
	}

	segments := strings.Split(relPath, "/")
	if mode != index.ModeDir && mode != index.ModeCommit {
		segments = segments[:len(segments)-1]
	}
	prefix := c.root
	for _, segment := range segments {
		prefix = filepath.Join(prefix, segment)
		key := fspath.NewKey(prefix, c.opts.CaseInsensitiveFS)
		if _, ok := c.known[key]; ok {
			continue
		}
		if err := c.ensureDirectory(prefix); err != nil {
			return "", err
		}
		c.known[key] = struct{}{}
	}
	return fullPath, nil
}

// ensureDirectory brings prefix into the confirmed-directory state: create
// it, accept it if it already is a directory, or resolve the collision. The
// repair loop is deliberately bounded to a single retry; an adversarial
// filesystem must not be able to keep us looping.
func (c *Cache) ensureDirectory(prefix string) error {
	err := c.mkdir(prefix)
	if err == nil {
		metrics.WorktreeMkdirAttempts.WithLabelValues("created").Inc()
		return nil
	}
	if !os.IsExist(err) {
		metrics.WorktreeMkdirAttempts.WithLabelValues("error").Inc()
		return err
	}

	// Lstat, never Stat: a symlink must be judged by what it is, not by
	// what it points at.
	info, lerr := os.Lstat(prefix)
	if lerr != nil {
		metrics.WorktreeMkdirAttempts.WithLabelValues("error").Inc()
		return lerr
	}
	if info.IsDir() {
		metrics.WorktreeMkdirAttempts.WithLabelValues("existed").Inc()
		return nil
	}

	metrics.WorktreeMkdirAttempts.WithLabelValues("collision").Inc()
	if !c.opts.UnlinkOnCollision {
		return status.WrapWithCode(err, codes.AlreadyExists)
	}
	if uerr := disk.Unlink(prefix); uerr != nil {
		return uerr
	}
	metrics.WorktreeCollisionUnlinks.Inc()
	// One retry only. If it fails again, the second error reflects the
	// current filesystem state and is the one surfaced.
	if rerr := c.mkdir(prefix); rerr != nil {
		metrics.WorktreeMkdirAttempts.WithLabelValues("error").Inc()
		return rerr
	}
	metrics.WorktreeMkdirAttempts.WithLabelValues("created").Inc()
	return nil
}

func (c *Cache) mkdir(dir string) error {
	c.MkdirCalls++
	return os.Mkdir(dir, 0755)
}

func validateRelativePath(relPath string) error {
	if relPath == "" {
		return status.InvalidArgumentError("relative path must not be empty")
	}
	if filepath.IsAbs(relPath) || strings.HasPrefix(relPath, "/") {
		return status.InvalidArgumentErrorf("path %q must be relative", relPath)
	}
	for _, segment := range strings.Split(relPath, "/") {
		if segment == ".." {
			return status.InvalidArgumentErrorf("path %q must not contain '..' segments", relPath)
		}
	}
	return nil
}
