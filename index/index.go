// Package index models the persisted snapshot of tracked files (the "index"
// or "dircache") and serializes it to the on-disk index format.
package index

import (
	"github.com/gitstate-io/gitstate/githash"
	"github.com/gitstate-io/gitstate/index/extension"
)

// Version is an on-disk index format version.
type Version uint32

const (
	// Version2 is the baseline format and the only one this package writes.
	Version2 Version = 2
	Version3 Version = 3
	Version4 Version = 4
)

// Mode is the file type of a tracked entry, using the on-disk bit patterns.
type Mode uint32

const (
	// ModeFile is a regular file with 0644 permissions.
	ModeFile Mode = 0o100644
	// ModeExecutable is a regular file with the executable bit set.
	ModeExecutable Mode = 0o100755
	// ModeSymlink is a symbolic link.
	ModeSymlink Mode = 0o120000
	// ModeDir is a directory placeholder, used for sparse trees.
	ModeDir Mode = 0o040000
	// ModeCommit is a submodule commit (gitlink).
	ModeCommit Mode = 0o160000
)

// Stage is the merge stage of an entry, 0 outside of a conflict.
type Stage uint16

const (
	StageMerged Stage = iota
	StageBase
	StageOurs
	StageTheirs
)

// Stat is the cached filesystem metadata of an entry, used to cheaply detect
// working tree changes. All fields are truncated to 32 bits on disk.
type Stat struct {
	CtimeSec  uint32
	CtimeNsec uint32
	MtimeSec  uint32
	MtimeNsec uint32
	Dev       uint32
	Ino       uint32
	UID       uint32
	GID       uint32
	Size      uint32
}

// Entry is one tracked filesystem object. The entry owns its metadata; the
// writer only calls WriteTo on it.
type Entry struct {
	// Path is the slash-separated path relative to the repository root,
	// unique per (Path, Stage) within a State.
	Path  string
	Mode  Mode
	Stage Stage
	// ID is the content hash of the object the entry points to, sized by the
	// repository's hash kind.
	ID   githash.ObjectID
	Stat Stat
}

// State is an immutable snapshot of the index: the entry list plus any
// extension payloads carried along with it.
//
// Entries must be sorted by path (conflicting paths by stage). The writer
// trusts this invariant and never re-sorts.
type State struct {
	Entries []Entry
	// Extensions are the optional payloads associated with this state, in
	// the order they should appear on disk. The end-of-index-entry extension
	// is never carried here; the writer produces it itself.
	Extensions []extension.Block
}

// Tree returns the cached-tree extension payload, if the state carries one.
func (s *State) Tree() ([]byte, bool) {
	for _, b := range s.Extensions {
		if b.Signature == extension.TreeSignature {
			return b.Data, true
		}
	}
	return nil, false
}
