// Package storer defines the storage-facing interfaces the commit-graph
// writer consumes. A concrete store (backed by on-disk packs, an in-memory
// map, or anything else) only needs to satisfy EncodedObjectStorer.
package storer

import "github.com/go-git/go-git-commitgraph/plumbing"

// EncodedObjectIter is a generator of objects, returned by
// EncodedObjectStorer.IterEncodedObjects.
type EncodedObjectIter interface {
	Next() (plumbing.EncodedObject, error)
	ForEach(func(plumbing.EncodedObject) error) error
	Close()
}

// EncodedObjectStorer is the object-store adapter every object reachable
// from the repository's packs must be enumerable through.
type EncodedObjectStorer interface {
	// EncodedObject returns the object identified by h, failing if its type
	// does not match t (AnyObject matches anything).
	EncodedObject(t plumbing.ObjectType, h plumbing.Hash) (plumbing.EncodedObject, error)
	// IterEncodedObjects returns an iterator over every object of type t
	// reachable from the store's packs (AnyObject iterates over all of
	// them), in unspecified order.
	IterEncodedObjects(t plumbing.ObjectType) (EncodedObjectIter, error)
}
