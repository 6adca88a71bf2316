package index

import (
	"encoding/binary"
	"io"

	"github.com/gitstate-io/gitstate/util/status"
)

const (
	// maxPathLen is the largest path length representable in the name-length
	// bits of the flags field. Longer paths store maxPathLen and rely on the
	// NUL terminator when read back.
	maxPathLen = 0xFFF

	stageShift = 12
)

// WriteTo serializes the entry as a version 2 on-disk record: the stat
// words, the object ID, the flags word, then the NUL-terminated path. The
// caller is responsible for the 8-byte alignment padding that follows each
// record.
func (e *Entry) WriteTo(w io.Writer) error {
	for _, p := range e.Path {
		if p == 0 {
			return status.InvalidArgumentErrorf("entry path %q contains a NUL byte", e.Path)
		}
	}

	var buf [40]byte
	words := []uint32{
		e.Stat.CtimeSec,
		e.Stat.CtimeNsec,
		e.Stat.MtimeSec,
		e.Stat.MtimeNsec,
		e.Stat.Dev,
		e.Stat.Ino,
		uint32(e.Mode),
		e.Stat.UID,
		e.Stat.GID,
		e.Stat.Size,
	}
	for i, word := range words {
		binary.BigEndian.PutUint32(buf[i*4:], word)
	}
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}

	if _, err := w.Write(e.ID); err != nil {
		return err
	}

	nameLen := len(e.Path)
	if nameLen > maxPathLen {
		nameLen = maxPathLen
	}
	flags := uint16(e.Stage&0x3)<<stageShift | uint16(nameLen)
	var flagBytes [2]byte
	binary.BigEndian.PutUint16(flagBytes[:], flags)
	if _, err := w.Write(flagBytes[:]); err != nil {
		return err
	}

	if _, err := io.WriteString(w, e.Path); err != nil {
		return err
	}
	_, err := w.Write([]byte{0})
	return err
}
