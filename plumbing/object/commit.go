// Package object decodes the raw object content stored in packs into the
// typed values the commit-graph writer needs.
package object

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-git/go-git-commitgraph/plumbing"
)

// ErrMalformedCommit is returned when a commit object's content cannot be
// parsed.
var ErrMalformedCommit = errors.New("malformed commit object")

// CommitData is the reduced view of a commit the commit-graph writer needs:
// its tree, its ordered parents, and its committer timestamp.
type CommitData struct {
	Hash      plumbing.Hash
	TreeHash  plumbing.Hash
	Parents   []plumbing.Hash
	Committer time.Time
}

// DecodeCommit parses the uncompressed content of a commit object (without
// the "commit <size>\0" framing) into a CommitData.
//
// Resolution may be called repeatedly for the same identifier (e.g. from a
// cache); the result must be identical every time.
func DecodeCommit(hash plumbing.Hash, content []byte) (*CommitData, error) {
	c := &CommitData{Hash: hash}

	s := bufio.NewScanner(bytes.NewReader(content))
	s.Buffer(make([]byte, 0, 1024), bufio.MaxScanTokenSize)

	for s.Scan() {
		line := s.Bytes()
		if len(line) == 0 {
			// Blank line marks the start of the commit message; nothing
			// after it is relevant to the commit graph.
			break
		}

		field, rest, ok := bytes.Cut(line, []byte{' '})
		if !ok {
			return nil, fmt.Errorf("%w: unexpected header %q", ErrMalformedCommit, line)
		}

		switch string(field) {
		case "tree":
			h, ok := plumbing.FromHex(string(rest))
			if !ok {
				return nil, fmt.Errorf("%w: invalid tree %q", ErrMalformedCommit, rest)
			}
			c.TreeHash = h
		case "parent":
			h, ok := plumbing.FromHex(string(rest))
			if !ok {
				return nil, fmt.Errorf("%w: invalid parent %q", ErrMalformedCommit, rest)
			}
			c.Parents = append(c.Parents, h)
		case "committer":
			when, err := parseSignatureTime(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformedCommit, err)
			}
			c.Committer = when
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCommit, err)
	}

	if c.TreeHash.IsZero() {
		return nil, fmt.Errorf("%w: missing tree", ErrMalformedCommit)
	}

	return c, nil
}

// parseSignatureTime extracts the "<seconds> <tz>" suffix of a committer
// line, e.g. "Jane Doe <jane@example.com> 1136239445 +0100".
func parseSignatureTime(line []byte) (time.Time, error) {
	fields := bytes.Fields(line)
	if len(fields) < 2 {
		return time.Time{}, fmt.Errorf("missing timestamp in %q", line)
	}

	secs, err := strconv.ParseInt(string(fields[len(fields)-2]), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp in %q: %w", line, err)
	}

	return time.Unix(secs, 0).UTC(), nil
}
