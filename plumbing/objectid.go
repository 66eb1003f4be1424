package plumbing

import (
	"bytes"
	"encoding/hex"

	"github.com/go-git/go-git-commitgraph/plumbing/hash"
)

// ObjectID is the 20-byte content address of an object. Its total order is
// the lexicographic order of its bytes.
type ObjectID [hash.Size]byte

// ZeroHash is the ObjectID with every byte set to zero.
var ZeroHash ObjectID

// FromHex parses a hexadecimal string and returns the corresponding
// ObjectID. It returns false if in is not a valid encoding of Size bytes.
func FromHex(in string) (ObjectID, bool) {
	var id ObjectID

	out, err := hex.DecodeString(in)
	if err != nil || len(out) != hash.Size {
		return id, false
	}

	copy(id[:], out)
	return id, true
}

// FromBytes builds an ObjectID from a raw, already-decoded hash. It returns
// false if in is not exactly Size bytes long.
func FromBytes(in []byte) (ObjectID, bool) {
	var id ObjectID
	if len(in) != hash.Size {
		return id, false
	}

	copy(id[:], in)
	return id, true
}

// Compare returns the lexicographic ordering of s against b: -1, 0 or 1.
func (s ObjectID) Compare(b ObjectID) int {
	return bytes.Compare(s[:], b[:])
}

// Bytes returns the raw bytes of the ObjectID.
func (s ObjectID) Bytes() []byte {
	return s[:]
}

// IsZero reports whether every byte of the ObjectID is zero.
func (s ObjectID) IsZero() bool {
	return s == ZeroHash
}

// String returns the hexadecimal representation of the ObjectID.
func (s ObjectID) String() string {
	return hex.EncodeToString(s[:])
}
