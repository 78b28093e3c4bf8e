// Package access defines the uniform read/write contract over either a
// materialized buffer or an unevaluated op node, composing without the
// two ever needing to know about each other: any type with the same
// three (Reader) or six (Writer) methods satisfies the contract through
// Go's interface duck-typing. An ops.Node has no Read method of its own;
// ops.Bound and ops.BoundWriter pair it with a platform to supply one.
package access

import (
	"github.com/tensorgraph/tensorgraph/internal/buffer"
	"github.com/tensorgraph/tensorgraph/internal/kernel"
	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// Reader is the read-only accessor contract: size, a bulk read that
// produces a buffer-layer converter, and a point read.
type Reader[T kernel.Real] interface {
	Size() int
	Read() (buffer.Reader[T], error)
	ReadValue(offset int) (T, error)
}

// Writer extends Reader with the mutation surface. A façade enforces
// exclusivity by requiring a Go pointer receiver and &mut-style usage at
// the call site; concurrent writers can't alias the same Writer value
// because only one goroutine can hold the pointer that owns it.
type Writer[T kernel.Real] interface {
	Reader[T]
	Write(data []T) error
	WriteValue(v T) error
	WriteValueAt(offset int, v T) error
}

// BufAccess adapts a buffer.Any into the access.Writer contract.
type BufAccess[T kernel.Real] struct {
	Buf buffer.Any[T]
}

func (a BufAccess[T]) Size() int                       { return a.Buf.Size() }
func (a BufAccess[T]) Read() (buffer.Reader[T], error) { return a.Buf.Read() }
func (a BufAccess[T]) ReadValue(i int) (T, error)      { return a.Buf.ReadValue(i) }
func (a BufAccess[T]) Write(data []T) error          { return a.Buf.Write(data) }
func (a BufAccess[T]) WriteValue(v T) error          { return a.Buf.WriteValue(v) }
func (a BufAccess[T]) WriteValueAt(i int, v T) error { return a.Buf.WriteValueAt(i, v) }

// Accessor is the erased accessor type used at reduce/cond/matmul
// boundaries, the only place dynamic dispatch is required. Since a Go
// interface value is already a type-erased, dynamically dispatched
// reference, Accessor is Reader itself; it is named separately so call
// sites that specifically need "any upstream shape" (as opposed to a
// statically known operand type) read that way.
type Accessor[T kernel.Real] = Reader[T]

// readOnly adapts a Reader into a Writer whose mutation methods always fail,
// so call sites needing the Writer shape (e.g. a slice of an immutable,
// op-node-backed array) can treat any accessor uniformly without a type
// switch at every call site.
type readOnly[T kernel.Real] struct{ Reader[T] }

func (r readOnly[T]) Write(data []T) error {
	return tensorerr.New(tensorerr.Unsupported, "write", "this accessor is read-only")
}
func (r readOnly[T]) WriteValue(v T) error {
	return tensorerr.New(tensorerr.Unsupported, "write_value", "this accessor is read-only")
}
func (r readOnly[T]) WriteValueAt(i int, v T) error {
	return tensorerr.New(tensorerr.Unsupported, "write_value_at", "this accessor is read-only")
}

// AsWriter returns r as a Writer: r itself if it already implements Writer,
// or a read-only adapter that fails every mutation otherwise.
func AsWriter[T kernel.Real](r Reader[T]) Writer[T] {
	if w, ok := r.(Writer[T]); ok {
		return w
	}
	return readOnly[T]{r}
}
