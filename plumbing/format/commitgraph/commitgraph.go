// Package commitgraph encodes the commit-graph file: a content-addressed,
// fanout-indexed side table of commit tree hashes, parent edges and
// timestamps, used to accelerate history traversal without opening every
// commit object in turn.
package commitgraph

import (
	"time"

	"github.com/go-git/go-git-commitgraph/plumbing"
)

// CommitData is the resolved, per-commit information the encoder needs to
// write a single commit-data record: its tree, its parents in their
// original order, and its committer timestamp.
type CommitData struct {
	TreeHash     plumbing.Hash
	ParentHashes []plumbing.Hash
	When         time.Time
}

// Resolver resolves the CommitData for a commit identifier already known to
// belong to the table being encoded. Encode may call Resolve more than once
// for the same identifier; implementations must return the same answer
// every time.
type Resolver interface {
	Resolve(h plumbing.Hash) (CommitData, error)
}

// ResolverFunc adapts a plain function to a Resolver.
type ResolverFunc func(plumbing.Hash) (CommitData, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(h plumbing.Hash) (CommitData, error) { return f(h) }
