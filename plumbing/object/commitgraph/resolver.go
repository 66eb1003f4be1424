package commitgraph

import (
	"fmt"
	"io"

	"github.com/go-git/go-git-commitgraph/plumbing"
	"github.com/go-git/go-git-commitgraph/plumbing/format/commitgraph"
	"github.com/go-git/go-git-commitgraph/plumbing/object"
	"github.com/go-git/go-git-commitgraph/plumbing/storer"
	"github.com/go-git/go-git-commitgraph/utils/ioutil"
)

// storeResolver resolves commits by reading and decoding the raw commit
// object out of an EncodedObjectStorer. It caches decoded commits so that
// the encoder's two passes over the table (counting overflow, then writing
// records) never parse the same object twice.
type storeResolver struct {
	store storer.EncodedObjectStorer
	cache map[plumbing.Hash]commitgraph.CommitData
}

// NewResolver returns a commitgraph.Resolver that decodes commits on
// demand from store. Results are cached, so repeated resolution of the
// same identifier is idempotent and cheap.
func NewResolver(store storer.EncodedObjectStorer) commitgraph.Resolver {
	return &storeResolver{
		store: store,
		cache: make(map[plumbing.Hash]commitgraph.CommitData),
	}
}

func (r *storeResolver) Resolve(h plumbing.Hash) (_ commitgraph.CommitData, err error) {
	if c, ok := r.cache[h]; ok {
		return c, nil
	}

	obj, err := r.store.EncodedObject(plumbing.CommitObject, h)
	if err != nil {
		return commitgraph.CommitData{}, fmt.Errorf("commitgraph: loading commit %s: %w", h, err)
	}
	reader, err := obj.Reader()
	if err != nil {
		return commitgraph.CommitData{}, fmt.Errorf("commitgraph: reading commit %s: %w", h, err)
	}
	defer ioutil.CheckClose(reader, &err)

	content := make([]byte, obj.Size())
	if _, err := io.ReadFull(reader, content); err != nil {
		return commitgraph.CommitData{}, fmt.Errorf("commitgraph: reading commit %s: %w", h, err)
	}

	decoded, err := object.DecodeCommit(h, content)
	if err != nil {
		return commitgraph.CommitData{}, err
	}

	c := commitgraph.CommitData{
		TreeHash:     decoded.TreeHash,
		ParentHashes: decoded.Parents,
		When:         decoded.Committer,
	}
	r.cache[h] = c
	return c, nil
}
