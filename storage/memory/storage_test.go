package memory_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-git/go-git-commitgraph/plumbing"
	"github.com/go-git/go-git-commitgraph/storage/memory"
)

func TestStorageRoundTrip(t *testing.T) {
	s := memory.NewStorage()

	obj := &plumbing.MemoryObject{}
	obj.SetType(plumbing.BlobObject)
	w, err := obj.Writer()
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)

	hash, err := s.SetEncodedObject(obj)
	require.NoError(t, err)

	got, err := s.EncodedObject(plumbing.BlobObject, hash)
	require.NoError(t, err)
	require.Equal(t, hash, got.Hash())

	_, err = s.EncodedObject(plumbing.CommitObject, hash)
	require.ErrorIs(t, err, plumbing.ErrObjectNotFound)
}

func TestStorageIterFiltersByType(t *testing.T) {
	s := memory.NewStorage()

	blob := &plumbing.MemoryObject{}
	blob.SetType(plumbing.BlobObject)
	bw, _ := blob.Writer()
	_, _ = bw.Write([]byte("blob"))
	_, err := s.SetEncodedObject(blob)
	require.NoError(t, err)

	commit := &plumbing.MemoryObject{}
	commit.SetType(plumbing.CommitObject)
	cw, _ := commit.Writer()
	_, _ = cw.Write([]byte("commit"))
	_, err = s.SetEncodedObject(commit)
	require.NoError(t, err)

	iter, err := s.IterEncodedObjects(plumbing.CommitObject)
	require.NoError(t, err)

	var seen int
	err = iter.ForEach(func(o plumbing.EncodedObject) error {
		seen++
		require.Equal(t, plumbing.CommitObject, o.Type())
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, seen)

	iter, err = s.IterEncodedObjects(plumbing.AnyObject)
	require.NoError(t, err)
	count := 0
	for {
		_, err := iter.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		count++
	}
	require.Equal(t, 2, count)
}
