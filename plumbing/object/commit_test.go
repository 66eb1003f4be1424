package object_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-git/go-git-commitgraph/plumbing"
	"github.com/go-git/go-git-commitgraph/plumbing/object"
)

const sampleCommit = "tree 6dbd33ec0b17f1e0c87dbbd2d78bf32bdf9bc2db\n" +
	"parent 347c91919944a68e9413581a1bc15519550a3afe\n" +
	"author Jane Doe <jane@example.com> 1136239445 +0100\n" +
	"committer Jane Doe <jane@example.com> 1136239445 +0100\n" +
	"\n" +
	"Commit message.\n"

func TestDecodeCommit(t *testing.T) {
	hash := plumbing.NewHash("e713b52d7e13807e87a002e812041f248db3f643")

	c, err := object.DecodeCommit(hash, []byte(sampleCommit))
	require.NoError(t, err)
	require.Equal(t, hash, c.Hash)
	require.Equal(t, "6dbd33ec0b17f1e0c87dbbd2d78bf32bdf9bc2db", c.TreeHash.String())
	require.Len(t, c.Parents, 1)
	require.Equal(t, "347c91919944a68e9413581a1bc15519550a3afe", c.Parents[0].String())
	require.Equal(t, time.Unix(1136239445, 0).UTC(), c.Committer)
}

func TestDecodeCommitNoParents(t *testing.T) {
	content := "tree 6dbd33ec0b17f1e0c87dbbd2d78bf32bdf9bc2db\n" +
		"committer Jane Doe <jane@example.com> 1000 +0000\n" +
		"\n" +
		"Root commit.\n"

	c, err := object.DecodeCommit(plumbing.ZeroHash, []byte(content))
	require.NoError(t, err)
	require.Empty(t, c.Parents)
	require.Equal(t, time.Unix(1000, 0).UTC(), c.Committer)
}

func TestDecodeCommitOctopusMerge(t *testing.T) {
	content := "tree 6dbd33ec0b17f1e0c87dbbd2d78bf32bdf9bc2db\n" +
		"parent 347c91919944a68e9413581a1bc15519550a3afe\n" +
		"parent e713b52d7e13807e87a002e812041f248db3f643\n" +
		"parent 03d2c021ff68954cf3ef0a36825e194a4b98f981\n" +
		"committer Jane Doe <jane@example.com> 2000 +0000\n" +
		"\n" +
		"Octopus merge.\n"

	c, err := object.DecodeCommit(plumbing.ZeroHash, []byte(content))
	require.NoError(t, err)
	require.Len(t, c.Parents, 3)
}

func TestDecodeCommitMissingTree(t *testing.T) {
	content := "committer Jane Doe <jane@example.com> 1000 +0000\n\nNo tree.\n"

	_, err := object.DecodeCommit(plumbing.ZeroHash, []byte(content))
	require.ErrorIs(t, err, object.ErrMalformedCommit)
}

func TestDecodeCommitMalformedHeader(t *testing.T) {
	content := "tree\n\nbad header\n"

	_, err := object.DecodeCommit(plumbing.ZeroHash, []byte(content))
	require.ErrorIs(t, err, object.ErrMalformedCommit)
}
