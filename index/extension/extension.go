// Package extension defines the optional, signature-tagged blocks appended
// to an index file after the entry records.
package extension

import (
	"encoding/binary"
	"io"

	"github.com/gitstate-io/gitstate/githash"
)

// Signature is the 4-byte tag identifying an extension block on disk.
type Signature [4]byte

var (
	// TreeSignature marks the cached-tree extension, which stores the object
	// IDs of fully-resolved directories to speed up tree writing.
	TreeSignature = Signature{'T', 'R', 'E', 'E'}
	// EndOfIndexEntrySignature marks the trailing extension that records the
	// offset to the first extension block plus a checksum of the extension
	// table of contents, enabling fast partial reads.
	EndOfIndexEntrySignature = Signature{'E', 'O', 'I', 'E'}
)

// MinSize is the size of the signature plus the 32-bit big-endian payload
// length that prefixes every extension block.
const MinSize = 4 + 4

func (s Signature) String() string {
	return string(s[:])
}

// Block is one extension payload carried by a state. The payload is opaque
// to the index writer.
type Block struct {
	Signature Signature
	Data      []byte
}

// TOCEntry records one written extension block for the end-of-index-entry
// extension: its signature and its payload size excluding the MinSize
// prefix. The table of contents is transient; it is never persisted on its
// own.
type TOCEntry struct {
	Signature Signature
	Size      uint32
}

// WriteBlockPrefix writes the signature and big-endian payload-length prefix
// of an extension block.
func WriteBlockPrefix(w io.Writer, sig Signature, payloadSize uint32) error {
	if _, err := w.Write(sig[:]); err != nil {
		return err
	}
	var size [4]byte
	binary.BigEndian.PutUint32(size[:], payloadSize)
	_, err := w.Write(size[:])
	return err
}

// WriteEndOfIndexEntry writes the end-of-index-entry extension:
// the offset to the first extension block, followed by a hash (sized per
// kind) over the table-of-contents bytes of all preceding extensions. The
// extension deliberately has no entry of its own in the table of contents.
func WriteEndOfIndexEntry(w io.Writer, kind githash.Kind, offsetToExtensions uint32, toc []TOCEntry) error {
	hash := kind.New()
	var buf [4]byte
	for _, e := range toc {
		hash.Write(e.Signature[:])
		binary.BigEndian.PutUint32(buf[:], e.Size)
		hash.Write(buf[:])
	}

	payloadSize := 4 + uint32(kind.Size())
	if err := WriteBlockPrefix(w, EndOfIndexEntrySignature, payloadSize); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(buf[:], offsetToExtensions)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	_, err := w.Write(hash.Sum(nil))
	return err
}
