package ops

import (
	"github.com/tensorgraph/tensorgraph/internal/access"
	"github.com/tensorgraph/tensorgraph/internal/buffer"
	"github.com/tensorgraph/tensorgraph/internal/kernel"
	"github.com/tensorgraph/tensorgraph/internal/platform"
	"github.com/tensorgraph/tensorgraph/internal/shape"
)

// Reduce folds one axis of InShape down to a single value per remaining
// coordinate, or every axis at once when Axis is negative. Input is typed
// as access.Accessor (the erased Reader) rather than a concrete op type,
// since a reduction's upstream can be any shape-producing node: the one
// place in the algebra where dynamic dispatch across otherwise-distinct op
// types is genuinely required.
type Reduce[T kernel.Real] struct {
	Input    access.Accessor[T]
	InShape  shape.Shape
	Axis     int
	Identity T
	Combine  func(a, b T) T
}

func (r Reduce[T]) outShape() shape.Shape {
	if r.Axis < 0 {
		return shape.Shape{1}
	}
	out := make(shape.Shape, 0, r.InShape.Ndim()-1)
	for i, d := range r.InShape {
		if i == r.Axis {
			continue
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return shape.Shape{1}
	}
	return out
}

func (r Reduce[T]) Size() int { return r.outShape().Size() }

func (r Reduce[T]) ReadValue(i int) (T, error) {
	if i < 0 || i >= r.Size() {
		return r.Identity, boundsf("reduce.read_value", r.Size(), i)
	}

	if r.Axis < 0 {
		acc := r.Identity
		n := r.Input.Size()
		for k := 0; k < n; k++ {
			v, err := r.Input.ReadValue(k)
			if err != nil {
				return acc, err
			}
			acc = r.Combine(acc, v)
		}
		return acc, nil
	}

	out := r.outShape()
	coord := shape.Unravel(out, i)
	axisDim := r.InShape[r.Axis]
	srcCoord := make([]int, r.InShape.Ndim())
	j := 0
	for a := range r.InShape {
		if a == r.Axis {
			continue
		}
		srcCoord[a] = coord[j]
		j++
	}

	acc := r.Identity
	for k := 0; k < axisDim; k++ {
		srcCoord[r.Axis] = k
		v, err := r.Input.ReadValue(shape.Ravel(r.InShape, srcCoord))
		if err != nil {
			return acc, err
		}
		acc = r.Combine(acc, v)
	}
	return acc, nil
}

func (r Reduce[T]) Enqueue(p *platform.Platform) (buffer.Any[T], error) {
	return materializeErr(p, r.Size(), func(i int) (T, error) { return r.ReadValue(i) })
}

// ArgReduce finds the axis-relative index of the element Better prefers
// (argmax: Better(candidate, current) = candidate > current under the
// NaN-loses kernel ordering; argmin analogously). It always produces int64
// indices regardless of T, so it cannot itself satisfy Node[T] — it is its
// own Node[int64] family.
type ArgReduce[T kernel.Real] struct {
	Input   access.Accessor[T]
	InShape shape.Shape
	Axis    int
	Better  func(candidate, current T) bool
}

func (a ArgReduce[T]) outShape() shape.Shape {
	out := make(shape.Shape, 0, a.InShape.Ndim()-1)
	for i, d := range a.InShape {
		if i == a.Axis {
			continue
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return shape.Shape{1}
	}
	return out
}

func (a ArgReduce[T]) Size() int { return a.outShape().Size() }

func (a ArgReduce[T]) ReadValue(i int) (int64, error) {
	if i < 0 || i >= a.Size() {
		return 0, boundsf("arg_reduce.read_value", a.Size(), i)
	}

	out := a.outShape()
	coord := shape.Unravel(out, i)
	axisDim := a.InShape[a.Axis]
	srcCoord := make([]int, a.InShape.Ndim())
	j := 0
	for ax := range a.InShape {
		if ax == a.Axis {
			continue
		}
		srcCoord[ax] = coord[j]
		j++
	}

	srcCoord[a.Axis] = 0
	best, err := a.Input.ReadValue(shape.Ravel(a.InShape, srcCoord))
	if err != nil {
		return 0, err
	}
	bestIdx := int64(0)

	for k := 1; k < axisDim; k++ {
		srcCoord[a.Axis] = k
		v, err := a.Input.ReadValue(shape.Ravel(a.InShape, srcCoord))
		if err != nil {
			return 0, err
		}
		if a.Better(v, best) {
			best = v
			bestIdx = int64(k)
		}
	}
	return bestIdx, nil
}

func (a ArgReduce[T]) Enqueue(p *platform.Platform) (buffer.Any[int64], error) {
	return materializeErr(p, a.Size(), func(i int) (int64, error) { return a.ReadValue(i) })
}
