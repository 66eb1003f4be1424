// Package commitgraph ties the object store, the commit resolver and the
// binary encoder together into the single entry point that writes (or
// atomically replaces) a repository's commit-graph file.
package commitgraph

import (
	"fmt"
	"sort"

	"github.com/go-git/go-git-commitgraph/plumbing"
	"github.com/go-git/go-git-commitgraph/plumbing/storer"
)

// minTableReservation is the smallest capacity reserved for the commit
// table regardless of the size hint, to avoid repeated grow-on-append
// churn for small repositories.
const minTableReservation = 1024

// CollectCommits enumerates every object in store, keeping only the ones
// typed as commits, and returns them as a strictly ascending, deduplicated
// identifier vector ready for Encoder.Encode.
//
// sizeHint is the estimated total object count; the returned table's
// backing array is pre-sized to half of it (never less than the minimum
// reservation) to cut down on reallocation during collection.
func CollectCommits(store storer.EncodedObjectStorer, sizeHint int) ([]plumbing.Hash, error) {
	reserve := sizeHint / 2
	if reserve < minTableReservation {
		reserve = minTableReservation
	}
	table := make([]plumbing.Hash, 0, reserve)

	iter, err := store.IterEncodedObjects(plumbing.CommitObject)
	if err != nil {
		return nil, fmt.Errorf("commitgraph: enumerating commit objects: %w", err)
	}
	defer iter.Close()

	err = iter.ForEach(func(obj plumbing.EncodedObject) error {
		if obj.Type() != plumbing.CommitObject {
			return fmt.Errorf("commitgraph: object %s classified as commit by the store but typed %s", obj.Hash(), obj.Type())
		}
		table = append(table, obj.Hash())
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(table, func(i, j int) bool { return table[i].Compare(table[j]) < 0 })

	return dedup(table), nil
}

// dedup collapses adjacent equal identifiers in a sorted slice in place,
// returning the distinct prefix.
func dedup(sorted []plumbing.Hash) []plumbing.Hash {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, h := range sorted[1:] {
		if out[len(out)-1] != h {
			out = append(out, h)
		}
	}
	return out
}
