// Package hash provides the hash implementation used to address objects
// and to checksum the files produced by this module.
package hash

import (
	"hash"

	"github.com/pjbgf/sha1cd"
)

// Size is the length in bytes of a hash produced by New.
const Size = 20

// Hash is the same as hash.Hash. This allows consumers to not have to
// import this package alongside "hash".
type Hash interface {
	hash.Hash
}

// New returns a new running hash used to checksum a stream of bytes.
//
// sha1cd detects and refuses known collision attacks, which matters here
// because the digest it produces is trusted by readers as a content
// address, not merely as a corruption check.
func New() Hash {
	return sha1cd.New()
}
