package plumbing

import (
	"strconv"

	"github.com/go-git/go-git-commitgraph/plumbing/hash"
)

// Hash is the content address of an object.
type Hash = ObjectID

// NewHash returns a new Hash based on a hexadecimal hash representation.
// Invalid input results in a zeroed hash.
func NewHash(s string) Hash {
	h, _ := FromHex(s)
	return h
}

// ObjectHasher computes the address of a git object from its type and
// uncompressed content, following git's "<type> <size>\0<content>" framing.
type ObjectHasher struct {
	h hash.Hash
}

// NewObjectHasher returns a ready to use ObjectHasher.
func NewObjectHasher() *ObjectHasher {
	return &ObjectHasher{h: hash.New()}
}

// Compute hashes d as an object of type ot.
func (h *ObjectHasher) Compute(ot ObjectType, d []byte) ObjectID {
	h.h.Reset()
	h.h.Write(ot.Bytes())
	h.h.Write([]byte(" "))
	h.h.Write([]byte(strconv.Itoa(len(d))))
	h.h.Write([]byte{0})
	h.h.Write(d)

	var id ObjectID
	copy(id[:], h.h.Sum(nil))
	return id
}
