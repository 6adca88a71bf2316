package index

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/gitstate-io/gitstate/githash"
	"github.com/gitstate-io/gitstate/index/extension"
	"github.com/gitstate-io/gitstate/util/status"
)

// magic is the fixed signature opening every index file.
var magic = [4]byte{'D', 'I', 'R', 'C'}

// Options configure a single WriteTo call.
type Options struct {
	// Hash determines the checksum length used by the end-of-index-entry
	// extension. It cannot be inferred when reading an index back, so it is
	// always explicit.
	Hash githash.Kind
	// Version is the format version to write. Only Version2 is accepted.
	Version Version
	// Extensions selects which extension signatures to emit. The zero value
	// writes everything.
	Extensions extension.Policy
}

// WriteTo serializes the state to out. It streams sequentially and is not
// safe for concurrent use of the same destination.
//
// No checksum over the whole file is computed here; callers that need the
// trailing hash the reader expects must tee the stream through the
// configured hash themselves.
func (s *State) WriteTo(out io.Writer, opts Options) error {
	if opts.Version != Version2 {
		return status.InvalidArgumentErrorf("unsupported index version %d, only version %d can be written", opts.Version, Version2)
	}
	if uint64(len(s.Entries)) > math.MaxUint32 {
		return status.OutOfRangeErrorf("%d entries cannot be represented in a 32-bit entry count", len(s.Entries))
	}

	w := newCountingWriter(out)

	offsetToEntries, err := writeHeader(w, opts.Version, uint32(len(s.Entries)))
	if err != nil {
		return err
	}
	offsetToExtensions, err := writeEntries(w, s, offsetToEntries)
	if err != nil {
		return err
	}

	var toc []extension.TOCEntry
	for _, block := range s.Extensions {
		if block.Signature == extension.EndOfIndexEntrySignature {
			// Produced below from the table of contents, never carried by
			// the state itself.
			continue
		}
		if !opts.Extensions.WantSignature(block.Signature) {
			continue
		}
		offsetBeforeExt := w.count
		if err := extension.WriteBlockPrefix(w, block.Signature, uint32(len(block.Data))); err != nil {
			return err
		}
		if _, err := w.Write(block.Data); err != nil {
			return err
		}
		toc = append(toc, extension.TOCEntry{
			Signature: block.Signature,
			Size:      w.count - offsetBeforeExt - extension.MinSize,
		})
	}

	if len(s.Entries) > 0 && opts.Extensions.WantSignature(extension.EndOfIndexEntrySignature) && len(toc) > 0 {
		if err := extension.WriteEndOfIndexEntry(w, opts.Hash, offsetToExtensions, toc); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(w *countingWriter, version Version, numEntries uint32) (uint32, error) {
	if _, err := w.Write(magic[:]); err != nil {
		return 0, err
	}
	var buf [8]byte
	binary.BigEndian.PutUint32(buf[0:], uint32(version))
	binary.BigEndian.PutUint32(buf[4:], numEntries)
	if _, err := w.Write(buf[:]); err != nil {
		return 0, err
	}
	return w.count, nil
}

func writeEntries(w *countingWriter, s *State, headerSize uint32) (uint32, error) {
	// Each record is padded so the byte count since the end of the header
	// stays a multiple of 8, keeping records aligned regardless of their
	// individual length.
	var pad [8]byte
	for i := range s.Entries {
		if err := s.Entries[i].WriteTo(w); err != nil {
			return 0, err
		}
		if n := (w.count - headerSize) % 8; n != 0 {
			if _, err := w.Write(pad[n:]); err != nil {
				return 0, err
			}
		}
	}
	return w.count, nil
}

// countingWriter tracks the absolute output offset so later stages never
// re-query the sink. Offsets are 32-bit because that is all the on-disk
// format can address.
type countingWriter struct {
	inner io.Writer
	count uint32
}

func newCountingWriter(inner io.Writer) *countingWriter {
	return &countingWriter{inner: inner}
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.inner.Write(p)
	total := uint64(c.count) + uint64(n)
	if total > math.MaxUint32 {
		return n, status.OutOfRangeError("cannot write index files larger than 4 gigabytes")
	}
	c.count = uint32(total)
	return n, err
}
