// Package ops implements the op node family: one Go type per algorithmic
// family (Unary, Dual, Scalar, Cast, Cond, Linear, Reduce, MatDiag,
// MatMul, Slice, View, RandomNormal, RandomUniform). Each op knows its own
// output size, can compute a single element without materializing, and
// can Enqueue itself into a platform-specific buffer.
package ops

import (
	"github.com/tensorgraph/tensorgraph/internal/access"
	"github.com/tensorgraph/tensorgraph/internal/buffer"
	"github.com/tensorgraph/tensorgraph/internal/kernel"
	"github.com/tensorgraph/tensorgraph/internal/platform"
	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// Node is the contract every op family implements: a deferred operation
// plus its own materialization step, rolled into one Go interface, since
// Go has no separate trait-per-platform mechanism the way the source
// engine does.
type Node[T kernel.Real] interface {
	Size() int
	ReadValue(offset int) (T, error)
	Enqueue(p *platform.Platform) (buffer.Any[T], error)
}

// Bound pairs an op node with its target platform, giving it the
// access.Reader shape the rest of the engine composes against: it owns an
// op node and the platform that materializes it.
type Bound[T kernel.Real] struct {
	Node     Node[T]
	Platform *platform.Platform
}

func (b Bound[T]) Size() int                  { return b.Node.Size() }
func (b Bound[T]) ReadValue(i int) (T, error) { return b.Node.ReadValue(i) }

func (b Bound[T]) Read() (buffer.Reader[T], error) {
	buf, err := b.Node.Enqueue(b.Platform)
	if err != nil {
		return buffer.Reader[T]{}, err
	}
	return buf.Read()
}

var _ access.Reader[float64] = Bound[float64]{}

// WriterNode extends Node with the mutation surface a write-through op
// (Slice backed by a mutable accessor) needs.
type WriterNode[T kernel.Real] interface {
	Node[T]
	Write(data []T) error
	WriteValue(v T) error
	WriteValueAt(offset int, v T) error
}

// BoundWriter is Bound's counterpart for ops that support writes: it pairs
// a WriterNode with its target platform to present the full access.Writer
// surface.
type BoundWriter[T kernel.Real] struct {
	Node     WriterNode[T]
	Platform *platform.Platform
}

func (b BoundWriter[T]) Size() int                  { return b.Node.Size() }
func (b BoundWriter[T]) ReadValue(i int) (T, error) { return b.Node.ReadValue(i) }

func (b BoundWriter[T]) Read() (buffer.Reader[T], error) {
	buf, err := b.Node.Enqueue(b.Platform)
	if err != nil {
		return buffer.Reader[T]{}, err
	}
	return buf.Read()
}

func (b BoundWriter[T]) Write(data []T) error          { return b.Node.Write(data) }
func (b BoundWriter[T]) WriteValue(v T) error          { return b.Node.WriteValue(v) }
func (b BoundWriter[T]) WriteValueAt(i int, v T) error { return b.Node.WriteValueAt(i, v) }

var _ access.Writer[float64] = BoundWriter[float64]{}

// materialize allocates a Stack, Heap, or Device buffer sized n for the
// given platform tier and fills it by calling fill(i) for every index:
// sequentially on Stack, chunked across the pool on Heap, and chunked into
// work groups and uploaded on Device. Every op's Enqueue implementation
// that produces a dense elementwise/linear result funnels through this so
// the tier-dispatch rule lives in exactly one place.
func materialize[T kernel.Real](p *platform.Platform, n int, fill func(i int) T) buffer.Any[T] {
	switch p.Select(n) {
	case platform.KindStack:
		buf := buffer.NewStackSized[T](n)
		data := make([]T, n)
		for i := 0; i < n; i++ {
			data[i] = fill(i)
		}
		buf.Write(data)
		return buf
	case platform.KindDevice:
		buf, err := platform.DeviceMaterialize(p, n, fill)
		if err != nil {
			// fill itself cannot fail here; the only failure mode is the
			// upload, which a pure fill function never triggers in
			// practice, so falling back to Heap keeps this path total.
			break
		}
		return buf
	}
	buf := buffer.NewHeapSized[T](n)
	slice, _ := buf.Read()
	out := slice.Slice()
	p.Pool().Chunks(n, func(start, end int) error {
		for i := start; i < end; i++ {
			out[i] = fill(i)
		}
		return nil
	})
	return buf
}

// materializeErr is materialize's counterpart for fill functions that can
// fail (e.g. integer division by zero), short-circuiting to the first
// error observed.
func materializeErr[T kernel.Real](p *platform.Platform, n int, fill func(i int) (T, error)) (buffer.Any[T], error) {
	switch p.Select(n) {
	case platform.KindStack:
		buf := buffer.NewStackSized[T](n)
		data := make([]T, n)
		for i := 0; i < n; i++ {
			v, err := fill(i)
			if err != nil {
				return nil, err
			}
			data[i] = v
		}
		buf.Write(data)
		return buf, nil
	case platform.KindDevice:
		return platform.DeviceMaterializeErr(p, n, fill)
	default:
		buf := buffer.NewHeapSized[T](n)
		slice, _ := buf.Read()
		out := slice.Slice()
		err := p.Pool().Chunks(n, func(start, end int) error {
			for i := start; i < end; i++ {
				v, err := fill(i)
				if err != nil {
					return err
				}
				out[i] = v
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return buf, nil
	}
}

func boundsf(op string, size, offset int) error {
	return tensorerr.Newf(tensorerr.Bounds, op, "offset %d out of bounds for size %d", offset, size).WithIndex(offset)
}
