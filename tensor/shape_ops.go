package tensor

import (
	"github.com/tensorgraph/tensorgraph/internal/access"
	"github.com/tensorgraph/tensorgraph/internal/ops"
	"github.com/tensorgraph/tensorgraph/internal/shape"
	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
	"github.com/tensorgraph/tensorgraph/internal/view"
)

// Reshape reinterprets a's elements under a new shape of equal size.
// Reshape always copies first: verifying that an arbitrary op-node-backed
// accessor is already contiguous row-major is not tractable in general, so
// Reshape guarantees the contiguous-row-major precondition by construction
// rather than by a runtime check that could reject an accessor it failed
// to prove contiguous.
func (a Array[T]) Reshape(s shape.Shape) (Array[T], error) {
	if err := validateShape(s); err != nil {
		return Array[T]{}, err
	}
	if s.Size() != a.shape.Size() {
		return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, "reshape", "shape %v has size %d but array has size %d", s, s.Size(), a.shape.Size()).WithShape(a.shape)
	}
	copied, err := Copy(a)
	if err != nil {
		return Array[T]{}, err
	}
	copied.shape = s.Clone()
	return copied, nil
}

// Squeeze drops the named axes, each of which must have dimension 1. An
// empty axes slice drops every size-1 axis. Squeeze never touches the
// accessor: the element order is unchanged, only the shape relabels it.
func (a Array[T]) Squeeze(axes []int) (Array[T], error) {
	drop := make([]bool, a.shape.Ndim())
	if len(axes) == 0 {
		for i, d := range a.shape {
			if d == 1 {
				drop[i] = true
			}
		}
	} else {
		for _, ax := range axes {
			if ax < 0 || ax >= a.shape.Ndim() {
				return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, "squeeze", "axis %d out of range for shape %v", ax, a.shape).WithShape(a.shape)
			}
			if a.shape[ax] != 1 {
				return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, "squeeze", "axis %d has dimension %d, not 1", ax, a.shape[ax]).WithShape(a.shape)
			}
			drop[ax] = true
		}
	}

	out := shape.Shape{}
	for i, d := range a.shape {
		if !drop[i] {
			out = append(out, d)
		}
	}
	if len(out) == 0 {
		out = shape.Shape{1}
	}
	return wrap(out, a.acc, a.plat), nil
}

// Unsqueeze inserts size-1 axes at each position in axes (interpreted
// against the resulting shape, left to right), the inverse of Squeeze.
func (a Array[T]) Unsqueeze(axes []int) (Array[T], error) {
	outNdim := a.shape.Ndim() + len(axes)
	insert := make([]bool, outNdim)
	for _, ax := range axes {
		if ax < 0 || ax >= outNdim {
			return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, "unsqueeze", "axis %d out of range for resulting ndim %d", ax, outNdim)
		}
		if insert[ax] {
			return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, "unsqueeze", "axis %d repeated", ax)
		}
		insert[ax] = true
	}

	out := make(shape.Shape, 0, outNdim)
	src := 0
	for i := 0; i < outNdim; i++ {
		if insert[i] {
			out = append(out, 1)
		} else {
			out = append(out, a.shape[src])
			src++
		}
	}
	return wrap(out, a.acc, a.plat), nil
}

// Transpose permutes a's axes according to perm, a zero-copy view.
func (a Array[T]) Transpose(perm []int) (Array[T], error) {
	spec, err := view.Transpose(a.shape.Clone(), perm)
	if err != nil {
		return Array[T]{}, err
	}
	node := ops.View[T]{Input: a.acc, Spec: spec}
	return wrap(spec.OutShape, ops.Bound[T]{Node: node, Platform: a.plat}, a.plat), nil
}

// Broadcast expands a to target, a zero-copy view. Broadcast never shrinks
// a dimension, and the result is read-only since multiple output offsets
// can alias the same source element.
func (a Array[T]) Broadcast(target shape.Shape) (Array[T], error) {
	spec, err := view.Broadcast(a.shape.Clone(), target)
	if err != nil {
		return Array[T]{}, err
	}
	node := ops.View[T]{Input: a.acc, Spec: spec}
	return wrap(spec.OutShape, ops.Bound[T]{Node: node, Platform: a.plat}, a.plat), nil
}

// Reverse flips a along each named axis, a zero-copy view expressed via
// Reversed/SrcDims flags rather than negative strides (internal/view).
func (a Array[T]) Reverse(axes []int) (Array[T], error) {
	spec, err := view.Reverse(a.shape.Clone(), axes)
	if err != nil {
		return Array[T]{}, err
	}
	node := ops.View[T]{Input: a.acc, Spec: spec}
	return wrap(spec.OutShape, ops.Bound[T]{Node: node, Platform: a.plat}, a.plat), nil
}

// Slice selects a sub-region of a according to r. The result stays
// write-through to a's backing accessor when a is mutable; when a is itself
// a view or another read-only op node, writes through the slice fail with
// Unsupported rather than silently discarding the write.
func (a Array[T]) Slice(r shape.Range) (Array[T], error) {
	spec, err := view.NewSlice(a.shape.Clone(), r)
	if err != nil {
		return Array[T]{}, err
	}
	node := ops.Slice[T]{Input: access.AsWriter(a.acc), Spec: spec}
	return wrap(spec.OutShape, ops.BoundWriter[T]{Node: node, Platform: a.plat}, a.plat), nil
}
