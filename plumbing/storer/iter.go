package storer

import (
	"io"

	"github.com/go-git/go-git-commitgraph/plumbing"
)

// sliceIter is the trivial EncodedObjectIter backed by an in-memory slice.
type sliceIter struct {
	objs []plumbing.EncodedObject
	pos  int
}

// NewEncodedObjectSliceIter returns an EncodedObjectIter that walks objs in
// order.
func NewEncodedObjectSliceIter(objs []plumbing.EncodedObject) EncodedObjectIter {
	return &sliceIter{objs: objs}
}

func (i *sliceIter) Next() (plumbing.EncodedObject, error) {
	if i.pos >= len(i.objs) {
		return nil, io.EOF
	}
	o := i.objs[i.pos]
	i.pos++
	return o, nil
}

func (i *sliceIter) ForEach(cb func(plumbing.EncodedObject) error) error {
	for _, o := range i.objs {
		if err := cb(o); err != nil {
			return err
		}
	}
	return nil
}

func (i *sliceIter) Close() { i.pos = len(i.objs) }
