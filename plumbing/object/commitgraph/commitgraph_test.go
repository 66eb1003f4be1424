package commitgraph_test

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-git/go-git-commitgraph/plumbing"
	"github.com/go-git/go-git-commitgraph/plumbing/object/commitgraph"
	"github.com/go-git/go-git-commitgraph/storage/memory"
)

// addCommit builds a minimal, well-formed commit object in store and
// returns its hash. Parents are given as hashes already added to store.
func addCommit(t *testing.T, store *memory.Storage, tree plumbing.Hash, parents []plumbing.Hash, when int64) plumbing.Hash {
	t.Helper()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", tree)
	for _, p := range parents {
		fmt.Fprintf(&buf, "parent %s\n", p)
	}
	fmt.Fprintf(&buf, "committer Jane Doe <jane@example.com> %d +0000\n", when)
	buf.WriteString("\nmessage\n")

	obj := &plumbing.MemoryObject{}
	obj.SetType(plumbing.CommitObject)
	w, err := obj.Writer()
	require.NoError(t, err)
	_, err = w.Write(buf.Bytes())
	require.NoError(t, err)

	hash, err := store.SetEncodedObject(obj)
	require.NoError(t, err)
	return hash
}

func addBlob(t *testing.T, store *memory.Storage, content string) plumbing.Hash {
	t.Helper()
	obj := &plumbing.MemoryObject{}
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	hash, err := store.SetEncodedObject(obj)
	require.NoError(t, err)
	return hash
}

func TestCollectCommitsEmpty(t *testing.T) {
	store := memory.NewStorage()
	table, err := commitgraph.CollectCommits(store, 0)
	require.NoError(t, err)
	require.Empty(t, table)
}

func TestCollectCommitsSortsAndIgnoresOtherTypes(t *testing.T) {
	store := memory.NewStorage()
	tree := addBlob(t, store, "irrelevant")

	root := addCommit(t, store, tree, nil, 1)
	child := addCommit(t, store, tree, []plumbing.Hash{root}, 2)

	table, err := commitgraph.CollectCommits(store, 10)
	require.NoError(t, err)
	require.Len(t, table, 2)
	require.True(t, table[0].Compare(table[1]) < 0)

	found := map[plumbing.Hash]bool{}
	for _, h := range table {
		found[h] = true
	}
	require.True(t, found[root])
	require.True(t, found[child])
}

func TestResolverResolvesAndCaches(t *testing.T) {
	store := memory.NewStorage()
	tree := addBlob(t, store, "irrelevant")
	root := addCommit(t, store, tree, nil, 1000)

	resolver := commitgraph.NewResolver(store)

	c1, err := resolver.Resolve(root)
	require.NoError(t, err)
	require.Equal(t, tree, c1.TreeHash)
	require.Empty(t, c1.ParentHashes)
	require.Equal(t, int64(1000), c1.When.Unix())

	c2, err := resolver.Resolve(root)
	require.NoError(t, err)
	require.Equal(t, c1, c2)
}

func TestResolverUnknownCommit(t *testing.T) {
	store := memory.NewStorage()
	resolver := commitgraph.NewResolver(store)

	_, err := resolver.Resolve(plumbing.NewHash("347c91919944a68e9413581a1bc15519550a3afe"))
	require.Error(t, err)
}
