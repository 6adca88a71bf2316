package disk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gitstate-io/gitstate/util/ioutil"
	"github.com/gitstate-io/gitstate/util/log"
	"github.com/gitstate-io/gitstate/util/random"
	"github.com/gitstate-io/gitstate/util/status"
)

var (
	tmpWriteFileRe = regexp.MustCompile(`\.[0-9a-zA-Z]{10}\.tmp$`)
)

type DirUsage struct {
	TotalBytes uint64
	UsedBytes  uint64
	FreeBytes  uint64
	AvailBytes uint64
}

// EnsureDirectoryExists is a synonym for os.MkdirAll(dir, 0755). It returns an
// error if dir exists but isn't a directory.
func EnsureDirectoryExists(dir string) error {
	// This could be inlined, but there are many callers in many files.
	return os.MkdirAll(dir, 0755)
}

// RemoveIfExists attempts to remove the given named file or (empty) directory,
// ignoring IsNotExist errors.
func RemoveIfExists(filename string) error {
	err := os.Remove(filename)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Unlink removes the given named file or symlink, non-recursively. It never
// follows a symlink: removing a link to a directory removes the link itself.
func Unlink(path string) error {
	return os.Remove(path)
}

// WriteFile writes data to fullPath atomically: it writes to a temp file in
// the same directory and renames it into place.
func WriteFile(ctx context.Context, fullPath string, data []byte) (int, error) {
	if err := EnsureDirectoryExists(filepath.Dir(fullPath)); err != nil {
		return 0, err
	}

	randStr, err := random.RandomString(10)
	if err != nil {
		return 0, err
	}

	tmpFileName := fullPath + fmt.Sprintf(".%s.tmp", randStr)
	// We defer a cleanup function that would delete our tempfile here --
	// that way if the write is truncated (say, because it's too big) we
	// still remove the tmp file.
	defer func() {
		if err := RemoveIfExists(tmpFileName); err != nil {
			log.Warningf("Failed to delete %s: %s", tmpFileName, err)
		}
	}()

	if err := os.WriteFile(tmpFileName, data, 0644); err != nil {
		return 0, err
	}
	return len(data), os.Rename(tmpFileName, fullPath)
}

func ReadFile(ctx context.Context, fullPath string) ([]byte, error) {
	data, err := os.ReadFile(fullPath)
	if os.IsNotExist(err) {
		return nil, status.NotFoundError(err.Error())
	}
	return data, err
}

func DeleteFile(ctx context.Context, fullPath string) error {
	return os.Remove(fullPath)
}

func FileExists(ctx context.Context, fullPath string) (bool, error) {
	_, err := os.Stat(fullPath)
	if err == nil {
		return true, nil
	} else if os.IsNotExist(err) {
		return false, nil
	} else {
		return false, err
	}
}

type writeMover struct {
	*os.File
	tmpFileIsClosed bool
	finalPath       string
}

func (w *writeMover) Commit() error {
	tmpName := w.File.Name()
	if err := w.File.Close(); err != nil {
		return err
	}
	w.tmpFileIsClosed = true
	return os.Rename(tmpName, w.finalPath)
}

func (w *writeMover) Close() error {
	if !w.tmpFileIsClosed {
		w.File.Close()
	}
	if err := RemoveIfExists(w.File.Name()); err != nil {
		log.Warningf("Failed to delete %s: %s", w.File.Name(), err)
	}
	return nil
}

// FileWriter returns a writer streaming into a temp file next to fullPath.
// Commit renames the temp file into place; Close without a commit discards
// it.
func FileWriter(ctx context.Context, fullPath string) (ioutil.CommittedWriteCloser, error) {
	if err := EnsureDirectoryExists(filepath.Dir(fullPath)); err != nil {
		return nil, err
	}
	randStr, err := random.RandomString(10)
	if err != nil {
		return nil, err
	}

	tmpFileName := fullPath + fmt.Sprintf(".%s.tmp", randStr)
	f, err := os.OpenFile(tmpFileName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	wm := &writeMover{
		File:      f,
		finalPath: fullPath,
	}
	return wm, nil
}

func IsWriteTempFile(fullPath string) bool {
	return tmpWriteFileRe.MatchString(fullPath)
}

// ForceUnlink attempts to unlink the given path (non-recursively). It ignores
// NotExist errors. It attempts to change the parent directory permissions to
// 0777 if needed in order to unlink the entry.
func ForceUnlink(path string) error {
	if err := os.Remove(path); err == nil || errors.Is(err, os.ErrNotExist) {
		return nil
	} else if !errors.Is(err, os.ErrPermission) {
		return err
	}
	// Try changing parent directory permissions.
	parent := filepath.Dir(path)
	if err := os.Chmod(parent, 0777); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Parent disappeared - that means the child (probably) is gone too.
			return nil
		}
		return fmt.Errorf("chmod parent %q: %w", parent, err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
