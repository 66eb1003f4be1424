package plumbing

import (
	"bytes"
	"io"
)

// MemoryObject is an EncodedObject implementation that keeps the object
// content in memory. It is primarily useful for building test fixtures and
// for small, ephemeral object stores.
type MemoryObject struct {
	typ  ObjectType
	hash Hash
	cont []byte
	sz   int64
}

// Hash returns the object hash, computing it from the current type and
// content the first time it is called.
func (o *MemoryObject) Hash() Hash {
	if o.hash.IsZero() {
		o.hash = NewObjectHasher().Compute(o.typ, o.cont)
	}
	return o.hash
}

// Type returns the object type.
func (o *MemoryObject) Type() ObjectType { return o.typ }

// SetType sets the object type, invalidating any previously computed hash.
func (o *MemoryObject) SetType(t ObjectType) {
	o.typ = t
	o.hash = ZeroHash
}

// Size returns the size of the object content.
func (o *MemoryObject) Size() int64 { return o.sz }

// SetSize is a no-op placeholder satisfying EncodedObject; MemoryObject
// derives its size from the content written to it.
func (o *MemoryObject) SetSize(int64) {}

// Reader returns a reader for the object content.
func (o *MemoryObject) Reader() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(o.cont)), nil
}

// Writer returns a writer that appends to the object content.
func (o *MemoryObject) Writer() (io.WriteCloser, error) {
	return &memoryObjectWriter{o}, nil
}

// Content exposes the underlying bytes without an error-returning Reader.
func (o *MemoryObject) Content() []byte { return o.cont }

type memoryObjectWriter struct {
	o *MemoryObject
}

func (w *memoryObjectWriter) Write(p []byte) (int, error) {
	w.o.cont = append(w.o.cont, p...)
	w.o.sz = int64(len(w.o.cont))
	w.o.hash = ZeroHash
	return len(p), nil
}

func (w *memoryObjectWriter) Close() error { return nil }
