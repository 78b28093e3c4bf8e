package tensor

import (
	"math"
	"sort"

	"github.com/tensorgraph/tensorgraph/internal/ops"
	"github.com/tensorgraph/tensorgraph/internal/shape"
	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// reduceAxis folds a single axis of a down to one value per remaining
// coordinate using identity/combine, producing a new Array with that axis
// dropped.
func (a Array[T]) reduceAxis(axis int, identity T, combine func(x, y T) T) (Array[T], error) {
	if axis < 0 || axis >= a.shape.Ndim() {
		return Array[T]{}, tensorerr.Newf(tensorerr.Bounds, "reduce", "axis %d out of range for shape %v", axis, a.shape).WithShape(a.shape)
	}
	node := ops.Reduce[T]{Input: a.acc, InShape: a.shape.Clone(), Axis: axis, Identity: identity, Combine: combine}
	out := shape.Shape{}
	for i, d := range a.shape {
		if i == axis {
			continue
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		out = shape.Shape{1}
	}
	return wrap(out, ops.Bound[T]{Node: node, Platform: a.plat}, a.plat), nil
}

// reduceAxes folds axes in descending order so that an earlier drop never
// shifts the index of an axis still to be folded.
func (a Array[T]) reduceAxes(axes []int, identity T, combine func(x, y T) T) (Array[T], error) {
	sorted := append([]int(nil), axes...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	cur := a
	for _, axis := range sorted {
		next, err := cur.reduceAxis(axis, identity, combine)
		if err != nil {
			return Array[T]{}, err
		}
		cur = next
	}
	return cur, nil
}

// Sum, Product, Min, Max fold the named axes, innermost first, leaving the
// remaining axes in their original relative order. An empty axes slice
// folds nothing and leaves a unchanged (reduceAxes' loop over zero axes
// is a no-op), matching sum(axes=∅, keepdims=true) == A.
func (a Array[T]) Sum(axes []int) (Array[T], error) {
	return a.reduceAxes(axes, a.k.Zero, func(x, y T) T { return a.k.Add(x, y) })
}

func (a Array[T]) Product(axes []int) (Array[T], error) {
	return a.reduceAxes(axes, a.k.One, func(x, y T) T { return a.k.Mul(x, y) })
}

// For float T, Min and Max fold from a NaN identity: MinOp/MaxOp never pick
// NaN over a number, so an axis with any number yields its extreme and an
// all-NaN axis yields NaN.
func (a Array[T]) Min(axes []int) (Array[T], error) {
	identity := a.k.Max
	if a.k.IsFloat {
		identity = a.k.FromFloat64(math.NaN())
	}
	return a.reduceAxes(axes, identity, a.k.MinOp)
}

func (a Array[T]) Max(axes []int) (Array[T], error) {
	identity := a.k.Min
	if a.k.IsFloat {
		identity = a.k.FromFloat64(math.NaN())
	}
	return a.reduceAxes(axes, identity, a.k.MaxOp)
}

// SumAll and ProductAll collapse a to a single scalar value without
// constructing an intermediate Array, since only the value itself is wanted.
func (a Array[T]) SumAll() (T, error) {
	node := ops.Reduce[T]{Input: a.acc, InShape: a.shape.Clone(), Axis: -1, Identity: a.k.Zero, Combine: func(x, y T) T { return a.k.Add(x, y) }}
	return node.ReadValue(0)
}

func (a Array[T]) ProductAll() (T, error) {
	node := ops.Reduce[T]{Input: a.acc, InShape: a.shape.Clone(), Axis: -1, Identity: a.k.One, Combine: func(x, y T) T { return a.k.Mul(x, y) }}
	return node.ReadValue(0)
}

// All and Any apply the 0/1-of-T boolean convention used by the comparison
// family: All reports whether every element is nonzero, Any whether at
// least one is. Both fold over every element; neither short-circuits.
func (a Array[T]) All() (bool, error) {
	node := ops.Reduce[T]{
		Input: a.acc, InShape: a.shape.Clone(), Axis: -1, Identity: a.k.One,
		Combine: func(x, y T) T {
			if x != a.k.Zero && y != a.k.Zero {
				return a.k.One
			}
			return a.k.Zero
		},
	}
	v, err := node.ReadValue(0)
	if err != nil {
		return false, err
	}
	return v != a.k.Zero, nil
}

func (a Array[T]) Any() (bool, error) {
	node := ops.Reduce[T]{
		Input: a.acc, InShape: a.shape.Clone(), Axis: -1, Identity: a.k.Zero,
		Combine: func(x, y T) T {
			if x != a.k.Zero || y != a.k.Zero {
				return a.k.One
			}
			return a.k.Zero
		},
	}
	v, err := node.ReadValue(0)
	if err != nil {
		return false, err
	}
	return v != a.k.Zero, nil
}

// ArgMax and ArgMin find the axis-relative index of the extreme value along
// axis, always returning an int64 result regardless of T (ops.ArgReduce is
// its own Node[int64] family, independent of T's numeric kind). NaN never
// wins: a NaN current value is displaced by any non-NaN candidate.
func (a Array[T]) ArgMax(axis int) (Array[int64], error) {
	return a.argReduce(axis, func(candidate, current T) bool {
		return candidate > current || (current != current && candidate == candidate)
	})
}

func (a Array[T]) ArgMin(axis int) (Array[int64], error) {
	return a.argReduce(axis, func(candidate, current T) bool {
		return candidate < current || (current != current && candidate == candidate)
	})
}

func (a Array[T]) argReduce(axis int, better func(candidate, current T) bool) (Array[int64], error) {
	if axis < 0 || axis >= a.shape.Ndim() {
		return Array[int64]{}, tensorerr.Newf(tensorerr.Bounds, "arg_reduce", "axis %d out of range for shape %v", axis, a.shape).WithShape(a.shape)
	}
	node := ops.ArgReduce[T]{Input: a.acc, InShape: a.shape.Clone(), Axis: axis, Better: better}
	out := shape.Shape{}
	for i, d := range a.shape {
		if i == axis {
			continue
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		out = shape.Shape{1}
	}
	return wrap[int64](out, ops.Bound[int64]{Node: node, Platform: a.plat}, a.plat), nil
}
