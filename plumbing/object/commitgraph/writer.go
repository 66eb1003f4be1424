package commitgraph

import (
	"path"

	"github.com/go-git/go-billy/v5"

	"github.com/go-git/go-git-commitgraph/plumbing/format/commitgraph"
	"github.com/go-git/go-git-commitgraph/plumbing/storer"
	"github.com/go-git/go-git-commitgraph/utils/trace"
)

// targetName is the path, relative to the object directory, that holds the
// commit-graph file.
const targetName = "info/commit-graph"

// WriteCommitGraph collects every commit reachable in store, encodes the
// commit-graph file for them, and atomically publishes it at
// <objectDir>/info/commit-graph, replacing any previous generation.
//
// sizeHint estimates the total number of objects in store and is used only
// to pre-size the collection buffer; it does not need to be exact.
func WriteCommitGraph(fs billy.Filesystem, objectDir string, store storer.EncodedObjectStorer, sizeHint int) error {
	table, err := CollectCommits(store, sizeHint)
	if err != nil {
		return err
	}
	trace.General.Printf("commitgraph: collected %d commits", len(table))

	resolver := NewResolver(store)
	target := path.Join(objectDir, targetName)

	err = publish(fs, target, func(f billy.File) error {
		return commitgraph.NewEncoder(f).Encode(table, resolver)
	})
	if err != nil {
		return err
	}

	trace.General.Printf("commitgraph: published %s", target)
	return nil
}
