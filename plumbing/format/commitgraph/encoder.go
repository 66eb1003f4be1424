package commitgraph

import (
	"fmt"
	"io"
	"sort"

	"github.com/go-git/go-git-commitgraph/plumbing"
	"github.com/go-git/go-git-commitgraph/plumbing/hash"
	"github.com/go-git/go-git-commitgraph/utils/binary"
)

var fileMagic = [4]byte{'C', 'G', 'P', 'H'}

const (
	formatVersion = 1
	idVersion     = 1
	lenFanout     = 256
	idLen         = 20
	szUint32      = 4
	szUint64      = 8
	szFileHeader  = 8
	szChunkEntry  = 4 + szUint64
	szCommitData  = idLen + szUint32 + szUint32 + szUint64

	// parentNone marks an edge slot with no parent.
	parentNone = uint32(0x70000000)
	// parentMissing marks an edge whose parent hash does not appear in the
	// table being encoded: a dangling reference, not an encoding failure.
	parentMissing = uint32(0x7fffffff)
	// parentOctopusUsed, set on a CDAT record's second edge, means the
	// record has more than two parents and the remaining ones live in the
	// extra-edge-list chunk starting at the index in the low 31 bits.
	parentOctopusUsed = uint32(0x80000000)
	// parentLast marks the final extra-edge-list entry of an octopus run.
	parentLast = uint32(0x80000000)

	// maxCommits is the smallest table size Encode rejects; every accepted
	// table's indexes stay below the parentNone/parentOctopusUsed sentinel
	// range.
	maxCommits = 0x70000000
)

// Encoder writes a commit-graph file for a fixed set of commit identifiers.
type Encoder struct {
	w io.Writer
	h hash.Hash
}

// NewEncoder returns an Encoder that writes the commit-graph file to w,
// followed by the trailing digest of everything written.
func NewEncoder(w io.Writer) *Encoder {
	h := hash.New()
	return &Encoder{w: io.MultiWriter(w, h), h: h}
}

// Encode writes the commit-graph file for table, a strictly ascending,
// deduplicated slice of commit identifiers, resolving each one's tree,
// parents and timestamp through resolver.
//
// A parent hash absent from table is not an error: it is encoded with the
// dangling-reference sentinel, since the table may be a deliberate subset
// of history (e.g. a shallow or partial graph).
func (e *Encoder) Encode(table []plumbing.Hash, resolver Resolver) error {
	n := len(table)
	if n >= maxCommits {
		return fmt.Errorf("commitgraph: %d identifiers exceeds the maximum representable table size", n)
	}
	for i := 1; i < n; i++ {
		if table[i-1].Compare(table[i]) >= 0 {
			return fmt.Errorf("commitgraph: identifier table is not strictly ascending at index %d", i)
		}
	}

	fanout := buildFanout(table)
	index := func(h plumbing.Hash) (uint32, bool) { return lookup(table, fanout, h) }

	extraEdgesCount, err := e.countExtraEdges(table, resolver)
	if err != nil {
		return err
	}

	ids := []chunkID{oidFanoutChunk, oidLookupChunk, commitDataChunk}
	sizes := []uint64{uint64(lenFanout) * szUint32, uint64(n) * idLen, uint64(n) * szCommitData}
	if extraEdgesCount > 0 {
		ids = append(ids, extraEdgeListChunk)
		sizes = append(sizes, uint64(extraEdgesCount)*szUint32)
	}

	if err := e.writeFileHeader(len(ids)); err != nil {
		return err
	}
	if err := e.writeChunkDirectory(ids, sizes); err != nil {
		return err
	}
	if err := e.writeFanout(fanout); err != nil {
		return err
	}
	if err := e.writeOIDLookup(table); err != nil {
		return err
	}

	extraEdges, err := e.writeCommitData(table, index, resolver)
	if err != nil {
		return err
	}
	if err := e.writeExtraEdges(extraEdges); err != nil {
		return err
	}

	return e.writeChecksum()
}

// countExtraEdges makes a first pass over the table, resolving every
// identifier once, to learn how many edges the octopus overflow chunk must
// hold (and therefore whether it is present at all). Resolve is called
// again per identifier in writeCommitData; Resolver implementations must
// tolerate that.
func (e *Encoder) countExtraEdges(table []plumbing.Hash, resolver Resolver) (uint32, error) {
	var count uint32
	for _, h := range table {
		c, err := resolver.Resolve(h)
		if err != nil {
			return 0, fmt.Errorf("commitgraph: resolving %s: %w", h, err)
		}
		if len(c.ParentHashes) > 2 {
			count += uint32(len(c.ParentHashes) - 1)
		}
	}
	return count, nil
}

func buildFanout(table []plumbing.Hash) [lenFanout]uint32 {
	var fanout [lenFanout]uint32
	for _, h := range table {
		fanout[h.Bytes()[0]]++
	}
	for i := 1; i < lenFanout; i++ {
		fanout[i] += fanout[i-1]
	}
	return fanout
}

// lookup finds id's index in table using the fanout table to bound the
// binary search to the bucket for id's leading byte, rather than searching
// the whole table.
func lookup(table []plumbing.Hash, fanout [lenFanout]uint32, id plumbing.Hash) (uint32, bool) {
	b := id.Bytes()[0]
	lo := uint32(0)
	if b > 0 {
		lo = fanout[b-1]
	}
	hi := fanout[b]

	i := sort.Search(int(hi-lo), func(i int) bool {
		return table[lo+uint32(i)].Compare(id) >= 0
	})
	idx := lo + uint32(i)
	if idx < hi && table[idx] == id {
		return idx, true
	}
	return 0, false
}

func resolveParentEdge(index func(plumbing.Hash) (uint32, bool), parent plumbing.Hash) uint32 {
	if i, ok := index(parent); ok {
		return i
	}
	return parentMissing
}

func (e *Encoder) writeFileHeader(chunkCount int) error {
	if _, err := e.w.Write(fileMagic[:]); err != nil {
		return err
	}
	_, err := e.w.Write([]byte{formatVersion, idVersion, byte(chunkCount), 0})
	return err
}

func (e *Encoder) writeChunkDirectory(ids []chunkID, sizes []uint64) error {
	offset := uint64(szFileHeader + (len(ids)+1)*szChunkEntry)
	for i, id := range ids {
		sig := id.signature()
		if _, err := e.w.Write(sig[:]); err != nil {
			return err
		}
		if err := binary.WriteUint64(e.w, offset); err != nil {
			return err
		}
		offset += sizes[i]
	}
	sig := zeroChunk.signature()
	if _, err := e.w.Write(sig[:]); err != nil {
		return err
	}
	return binary.WriteUint64(e.w, offset)
}

func (e *Encoder) writeFanout(fanout [lenFanout]uint32) error {
	for _, v := range fanout {
		if err := binary.WriteUint32(e.w, v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeOIDLookup(table []plumbing.Hash) error {
	for _, h := range table {
		if _, err := e.w.Write(h.Bytes()); err != nil {
			return err
		}
	}
	return nil
}

// writeCommitData makes the second pass over the table, writing the fixed
// commit-data record for each identifier and accumulating the overflow
// edges of any octopus merge into extraEdges, in the order they must
// appear in the trailing chunk.
func (e *Encoder) writeCommitData(table []plumbing.Hash, index func(plumbing.Hash) (uint32, bool), resolver Resolver) ([]uint32, error) {
	var extraEdges []uint32
	for _, h := range table {
		c, err := resolver.Resolve(h)
		if err != nil {
			return nil, fmt.Errorf("commitgraph: resolving %s: %w", h, err)
		}

		if _, err := e.w.Write(c.TreeHash.Bytes()); err != nil {
			return nil, err
		}

		var edge1, edge2 uint32
		switch len(c.ParentHashes) {
		case 0:
			edge1, edge2 = parentNone, parentNone
		case 1:
			edge1 = resolveParentEdge(index, c.ParentHashes[0])
			edge2 = parentNone
		case 2:
			edge1 = resolveParentEdge(index, c.ParentHashes[0])
			edge2 = resolveParentEdge(index, c.ParentHashes[1])
		default:
			edge1 = resolveParentEdge(index, c.ParentHashes[0])
			// Snapshot the overflow slot this record's octopus parents
			// start at before appending them, so the pointer reflects
			// edges written by earlier records only.
			k := uint32(len(extraEdges))
			edge2 = parentOctopusUsed | k
			for _, p := range c.ParentHashes[1:] {
				extraEdges = append(extraEdges, resolveParentEdge(index, p))
			}
			extraEdges[len(extraEdges)-1] |= parentLast
		}

		if err := binary.WriteUint32(e.w, edge1); err != nil {
			return nil, err
		}
		if err := binary.WriteUint32(e.w, edge2); err != nil {
			return nil, err
		}
		if err := binary.WriteUint64(e.w, uint64(c.When.Unix())); err != nil {
			return nil, err
		}
	}
	return extraEdges, nil
}

func (e *Encoder) writeExtraEdges(extraEdges []uint32) error {
	for _, v := range extraEdges {
		if err := binary.WriteUint32(e.w, v); err != nil {
			return err
		}
	}
	return nil
}

func (e *Encoder) writeChecksum() error {
	_, err := e.w.Write(e.h.Sum(nil)[:idLen])
	return err
}
