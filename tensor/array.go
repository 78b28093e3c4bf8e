// Package tensor implements the n-dimensional array façade: a shape bound
// to an accessor (a materialized buffer or a deferred op node), a target
// platform, and a compile-time element-type tag. Each algebraic method
// validates its shape/axis/permutation arguments, selects a platform by
// the resulting size, constructs an op node, and wraps it in a new Array —
// never mutating the receiver.
package tensor

import (
	"github.com/tensorgraph/tensorgraph/internal/access"
	"github.com/tensorgraph/tensorgraph/internal/buffer"
	"github.com/tensorgraph/tensorgraph/internal/kernel"
	"github.com/tensorgraph/tensorgraph/internal/ops"
	"github.com/tensorgraph/tensorgraph/internal/platform"
	"github.com/tensorgraph/tensorgraph/internal/shape"
	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// Array is the façade type: shape + accessor + platform + element type.
// The Go type parameter T replaces a runtime type tag with one resolved
// at compile time instead.
type Array[T kernel.Real] struct {
	shape shape.Shape
	acc   access.Reader[T]
	plat  *platform.Platform
	k     kernel.Kernel[T]
}

func wrap[T kernel.Real](s shape.Shape, acc access.Reader[T], plat *platform.Platform) Array[T] {
	return Array[T]{shape: s, acc: acc, plat: plat, k: kernel.For[T]()}
}

// validateShape rejects the scalar (zero-dimensional) shape in addition to
// shape.Shape's own per-axis checks — the smallest legal array shape is
// [1].
func validateShape(s shape.Shape) error {
	if s.Ndim() == 0 {
		return tensorerr.New(tensorerr.Bounds, "shape", "scalar shape is not allowed; the smallest legal shape is [1]")
	}
	return s.Validate()
}

// New binds an existing buffer to shape s.
func New[T kernel.Real](buf buffer.Any[T], s shape.Shape) (Array[T], error) {
	if err := validateShape(s); err != nil {
		return Array[T]{}, err
	}
	if s.Size() != buf.Size() {
		return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, "new", "shape %v has size %d but buffer has size %d", s, s.Size(), buf.Size()).WithShape(s)
	}
	return wrap(s, access.BufAccess[T]{Buf: buf}, platform.New()), nil
}

// Constant builds a shape-s array whose every element equals value.
func Constant[T kernel.Real](value T, s shape.Shape) (Array[T], error) {
	if err := validateShape(s); err != nil {
		return Array[T]{}, err
	}
	p := platform.New()
	n := s.Size()
	var buf buffer.Any[T]
	if p.Select(n) == platform.KindStack {
		buf = buffer.NewStackSized[T](n)
	} else {
		buf = buffer.NewHeapSized[T](n)
	}
	buf.WriteValue(value)
	return wrap(s, access.BufAccess[T]{Buf: buf}, p), nil
}

// Copy materializes a's accessor into a fresh, independent buffer,
// detaching the result from any upstream op graph a's accessor belonged to.
func Copy[T kernel.Real](a Array[T]) (Array[T], error) {
	r, err := a.acc.Read()
	if err != nil {
		return Array[T]{}, err
	}
	src := r.Slice()
	data := make([]T, len(src))
	copy(data, src)
	return wrap(a.shape.Clone(), access.BufAccess[T]{Buf: buffer.NewHeap(data)}, a.plat), nil
}

// Range builds a shape-s array filled with an arithmetic sequence from
// start to stop (step = (stop-start)/size). Random access into a Range
// array is exact since every element is a pure function of its index.
func Range[T kernel.Real](start, stop float64, s shape.Shape) (Array[T], error) {
	if err := validateShape(s); err != nil {
		return Array[T]{}, err
	}
	n := s.Size()
	step := 0.0
	if n > 0 {
		step = (stop - start) / float64(n)
	}
	k := kernel.For[T]()
	p := platform.New()
	node := ops.Linear[T]{StartF64: start, Step: step, N: n, FromFloat64: k.FromFloat64}
	return wrap(s, ops.Bound[T]{Node: node, Platform: p}, p), nil
}

// RandomNormal builds a flat array of n standard-normal samples. Random
// access is unsupported on the result (ops.RandomNormal.ReadValue always
// fails): a single normal sample is only well-defined as half of a
// Box-Muller pair drawn together.
func RandomNormal[T kernel.Real](n int) (Array[T], error) {
	s := shape.Shape{n}
	if err := validateShape(s); err != nil {
		return Array[T]{}, err
	}
	k := kernel.For[T]()
	p := platform.New()
	node := ops.RandomNormal[T]{N: n, FromFloat64: k.FromFloat64}
	return wrap(s, ops.Bound[T]{Node: node, Platform: p}, p), nil
}

// RandomUniform builds a flat array of n uniform-in-[0,1) samples.
func RandomUniform[T kernel.Real](n int) (Array[T], error) {
	s := shape.Shape{n}
	if err := validateShape(s); err != nil {
		return Array[T]{}, err
	}
	k := kernel.For[T]()
	p := platform.New()
	node := ops.RandomUniform[T]{N: n, FromFloat64: k.FromFloat64}
	return wrap(s, ops.Bound[T]{Node: node, Platform: p}, p), nil
}

// Convert adapts a foreign buffer of element type S, interpreted under
// shape s, into an Array[T]. It is lazy: the cast op reads src and
// materializes a converted buffer each time the result is read, never
// eagerly at Convert time — including the identity case where S and T
// happen to be the same type. Nothing is cached between reads.
func Convert[T, S kernel.Real](src buffer.Any[S], s shape.Shape) (Array[T], error) {
	if err := validateShape(s); err != nil {
		return Array[T]{}, err
	}
	if s.Size() != src.Size() {
		return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, "convert", "shape %v has size %d but buffer has size %d", s, s.Size(), src.Size()).WithShape(s)
	}
	ks, kt := kernel.For[S](), kernel.For[T]()
	p := platform.New()
	node := ops.Cast[S, T]{Input: access.BufAccess[S]{Buf: src}, ToFloat64: ks.ToFloat64, FromFloat64: kt.FromFloat64}
	return wrap(s, ops.Bound[T]{Node: node, Platform: p}, p), nil
}

// Cast converts a to a new element type S via the universal float64 round
// trip, deferred the same way every other op is.
func Cast[T, S kernel.Real](a Array[T]) Array[S] {
	kt, ks := kernel.For[T](), kernel.For[S]()
	node := ops.Cast[T, S]{Input: a.acc, ToFloat64: kt.ToFloat64, FromFloat64: ks.FromFloat64}
	return wrap(a.shape.Clone(), ops.Bound[S]{Node: node, Platform: a.plat}, a.plat)
}

// Shape returns a's dimension vector.
func (a Array[T]) Shape() shape.Shape { return a.shape.Clone() }

// Ndim is the number of axes.
func (a Array[T]) Ndim() int { return a.shape.Ndim() }

// Size is the total element count.
func (a Array[T]) Size() int { return a.shape.Size() }

// ReadValue reads the element at row-major linear offset, without
// materializing the rest of the array.
func (a Array[T]) ReadValue(offset int) (T, error) { return a.acc.ReadValue(offset) }

// Buffer materializes the full array and returns its contiguous elements
// in row-major order. The returned slice aliases internal storage for
// Heap-backed arrays; callers that need to retain it across further writes
// to a should copy it first.
func (a Array[T]) Buffer() ([]T, error) {
	r, err := a.acc.Read()
	if err != nil {
		return nil, err
	}
	return r.Slice(), nil
}

// WriteValueAt writes through to the backing accessor at offset. It fails
// with Unsupported when the accessor is read-only — a broadcast, transpose,
// or reverse view, or a slice of one — since a write through a broadcast
// view would alias multiple logical elements onto the same backing offset.
func (a Array[T]) WriteValueAt(offset int, v T) error {
	w, ok := a.acc.(access.Writer[T])
	if !ok {
		return tensorerr.New(tensorerr.Unsupported, "write_value_at", "this array's accessor is read-only")
	}
	return w.WriteValueAt(offset, v)
}
