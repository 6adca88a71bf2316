// Package githash identifies the hash functions a repository can be built
// on and the object IDs they produce.
package githash

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"

	"github.com/gitstate-io/gitstate/util/status"
)

// Kind is the hash function backing object IDs and index checksums.
type Kind int

const (
	// SHA1 is the historical default hash.
	SHA1 Kind = iota
	// SHA256 is the transition hash for repositories created with
	// extensions.objectFormat=sha256.
	SHA256
)

const (
	SHA1Size   = sha1.Size
	SHA256Size = sha256.Size
)

// Size returns the length in bytes of digests produced by this kind.
func (k Kind) Size() int {
	switch k {
	case SHA256:
		return SHA256Size
	default:
		return SHA1Size
	}
}

// New returns a new hash.Hash computing digests of this kind.
func (k Kind) New() hash.Hash {
	switch k {
	case SHA256:
		return sha256.New()
	default:
		return sha1.New()
	}
}

func (k Kind) String() string {
	switch k {
	case SHA256:
		return "sha256"
	default:
		return "sha1"
	}
}

// KindFromString parses a --hash style flag value.
func KindFromString(s string) (Kind, error) {
	switch s {
	case "sha1":
		return SHA1, nil
	case "sha256":
		return SHA256, nil
	default:
		return 0, status.InvalidArgumentErrorf("unknown hash kind %q (expected 'sha1' or 'sha256')", s)
	}
}

// ObjectID is a raw object digest. Its length matches the Kind that produced
// it.
type ObjectID []byte

// String returns the hex form of the ID.
func (id ObjectID) String() string {
	return hex.EncodeToString(id)
}

// IsNull reports whether the ID is unset or all zeroes.
func (id ObjectID) IsNull() bool {
	for _, b := range id {
		if b != 0 {
			return false
		}
	}
	return true
}
