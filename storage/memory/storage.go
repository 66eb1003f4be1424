// Package memory is an ephemeral, map-backed object store. It satisfies
// storer.EncodedObjectStorer and exists so the commit-graph writer can be
// exercised (in tests, and as a minimal reference adapter) without a real
// on-disk pack.
package memory

import (
	"github.com/go-git/go-git-commitgraph/plumbing"
	"github.com/go-git/go-git-commitgraph/plumbing/storer"
)

// Storage is a Storer implementation that keeps every object in memory.
type Storage struct {
	objects map[plumbing.Hash]plumbing.EncodedObject
}

// NewStorage returns an empty in-memory Storage.
func NewStorage() *Storage {
	return &Storage{objects: make(map[plumbing.Hash]plumbing.EncodedObject)}
}

// SetEncodedObject stores o, keyed by its own hash, and returns that hash.
func (s *Storage) SetEncodedObject(o plumbing.EncodedObject) (plumbing.Hash, error) {
	h := o.Hash()
	s.objects[h] = o
	return h, nil
}

// EncodedObject returns the object stored under h. If t is not AnyObject,
// the stored object's type must match it.
func (s *Storage) EncodedObject(t plumbing.ObjectType, h plumbing.Hash) (plumbing.EncodedObject, error) {
	obj, ok := s.objects[h]
	if !ok || (t != plumbing.AnyObject && obj.Type() != t) {
		return nil, plumbing.ErrObjectNotFound
	}
	return obj, nil
}

// IterEncodedObjects returns an iterator over every stored object of type t.
func (s *Storage) IterEncodedObjects(t plumbing.ObjectType) (storer.EncodedObjectIter, error) {
	var objs []plumbing.EncodedObject
	for _, obj := range s.objects {
		if t == plumbing.AnyObject || obj.Type() == t {
			objs = append(objs, obj)
		}
	}
	return storer.NewEncodedObjectSliceIter(objs), nil
}
