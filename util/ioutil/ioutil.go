package ioutil

import (
	"io"

	"github.com/gitstate-io/gitstate/util/status"
)

// CommittedWriteCloser is a WriteCloser whose writes only become visible at
// their final destination after a successful Commit. Closing without a commit
// discards the written bytes.
type CommittedWriteCloser interface {
	io.Writer
	io.Closer
	// Commit finalizes the written bytes. Close must still be called
	// afterwards to release resources.
	Commit() error
}

// Committer is the commit half of CommittedWriteCloser, for wrappers that
// want to forward a commit to an underlying writer if it supports one.
type Committer interface {
	Commit() error
}

// A writer that drops anything written to it.
// Useful when you need an io.Writer but don't intend
// to actually write bytes to it.
type discardWriteCloser struct {
	io.Writer
}

// DiscardWriteCloser returns an io.WriteCloser that wraps io.Discard,
// dropping any bytes written to it and returning nil on Close.
func DiscardWriteCloser() *discardWriteCloser {
	return &discardWriteCloser{
		io.Discard,
	}
}

func (discardWriteCloser) Commit() error {
	return nil
}
func (discardWriteCloser) Close() error {
	return nil
}

type CloseFunc func() error
type CommitFunc func(int64) error

// CustomCommitWriteCloser wraps a writer and allows attaching custom logic
// that runs when Commit or Close is called.
type CustomCommitWriteCloser struct {
	w            io.Writer
	bytesWritten int64
	committed    bool

	CloseFn  CloseFunc
	CommitFn CommitFunc
}

func (c *CustomCommitWriteCloser) Write(buf []byte) (int, error) {
	n, err := c.w.Write(buf)
	c.bytesWritten += int64(n)
	return n, err
}

func (c *CustomCommitWriteCloser) Commit() error {
	if c.committed {
		return status.FailedPreconditionError("writer was already committed")
	}
	// Commit functions are run in order. If a commit function at a lower
	// level succeeds, the one above it should succeed as well.
	defer func() {
		c.committed = true
	}()

	if committer, ok := c.w.(Committer); ok {
		if err := committer.Commit(); err != nil {
			return err
		}
	}

	if c.CommitFn != nil {
		return c.CommitFn(c.bytesWritten)
	}
	return nil
}

func (c *CustomCommitWriteCloser) Close() error {
	var firstErr error

	// Close may free resources, so all Close functions should be called.
	// The first error encountered will be returned.
	if closer, ok := c.w.(io.Closer); ok {
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if c.CloseFn != nil {
		if err := c.CloseFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// NewCustomCommitWriteCloser wraps an io.Writer (or CommittedWriteCloser) and
// returns a CustomCommitWriteCloser.
func NewCustomCommitWriteCloser(w io.Writer) *CustomCommitWriteCloser {
	return &CustomCommitWriteCloser{
		w: w,
	}
}

// Counter keeps a count of all bytes written, discarding any written bytes.
// It is not safe for concurrent use.
type Counter struct{ n int64 }

func (c *Counter) Write(p []byte) (n int, err error) {
	c.n += int64(len(p))
	return len(p), nil
}

// Count returns the total number of bytes written.
func (c *Counter) Count() int64 {
	return c.n
}
