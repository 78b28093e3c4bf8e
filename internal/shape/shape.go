// Package shape implements the Shape/Strides/Range algebra that the array
// façade and the view layer build on: row-major layout, broadcast
// compatibility, reshape, squeeze, unsqueeze, transpose, and slice range
// resolution.
package shape

import (
	"fmt"

	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// Shape is an ordered sequence of positive dimension sizes. An empty Shape
// denotes a scalar-shaped value, which the façade never exposes directly;
// the smallest legal array shape is [1].
type Shape []int

// Clone returns an independent copy.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	copy(out, s)
	return out
}

// Ndim is the number of axes.
func (s Shape) Ndim() int { return len(s) }

// Size is the product of every dimension; the empty shape has size 1.
func (s Shape) Size() int {
	size := 1
	for _, d := range s {
		size *= d
	}
	return size
}

// Equal reports whether two shapes have the same dims in the same order.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Validate checks that every dimension is positive.
func (s Shape) Validate() error {
	for i, d := range s {
		if d < 1 {
			return tensorerr.Newf(tensorerr.Bounds, "shape", "dimension %d at axis %d must be >= 1", d, i).WithShape(s)
		}
	}
	return nil
}

// Strides is the row-major stride vector for a Shape: stride[i] is how far
// to advance a linear source offset to move one step along axis i.
type Strides []int

// RowMajor computes the natural (contiguous) strides for shape.
func RowMajor(s Shape) Strides {
	st := make(Strides, len(s))
	acc := 1
	for i := len(s) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= s[i]
	}
	return st
}

// Unravel decomposes a linear row-major offset into per-axis coordinates.
func Unravel(s Shape, offset int) []int {
	coord := make([]int, len(s))
	st := RowMajor(s)
	for i, stride := range st {
		coord[i] = (offset / stride) % s[i]
	}
	return coord
}

// Ravel composes per-axis coordinates back into a row-major linear offset.
func Ravel(s Shape, coord []int) int {
	st := RowMajor(s)
	offset := 0
	for i, stride := range st {
		offset += coord[i] * stride
	}
	return offset
}

// BroadcastShapes aligns two shapes right-to-left and returns the result
// shape, following NumPy-style broadcasting: dims must be equal or one of
// them must be 1; broadcast never shrinks a dimension.
func BroadcastShapes(a, b Shape) (Shape, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(Shape, n)
	for i := 0; i < n; i++ {
		da, db := 1, 1
		if idx := len(a) - n + i; idx >= 0 {
			da = a[idx]
		}
		if idx := len(b) - n + i; idx >= 0 {
			db = b[idx]
		}
		switch {
		case da == db:
			out[i] = da
		case da == 1:
			out[i] = db
		case db == 1:
			out[i] = da
		default:
			return nil, tensorerr.Newf(tensorerr.Bounds, "broadcast",
				"shapes %v and %v are not broadcast-compatible at axis %d; use an explicit broadcast", a, b, i)
		}
	}
	return out, nil
}

// BroadcastCompatible reports whether a can be broadcast to b (b is the
// wider or equal target): every aligned dim of a is either equal to b's or
// 1.
func BroadcastCompatible(a, b Shape) bool {
	if len(a) > len(b) {
		return false
	}
	off := len(b) - len(a)
	for i, da := range a {
		db := b[off+i]
		if da != db && da != 1 {
			return false
		}
	}
	return true
}

// Project maps a coordinate in the broadcast target shape back to a
// coordinate in the (narrower or degenerate) source shape, dropping the
// leading axes the source doesn't have and zeroing axes whose source dim
// is 1.
func Project(coord []int, target, source Shape) []int {
	off := len(target) - len(source)
	out := make([]int, len(source))
	for i := range source {
		c := coord[off+i]
		if source[i] == 1 {
			c = 0
		}
		out[i] = c
	}
	return out
}

// AxisRangeKind tags the variant of AxisRange.
type AxisRangeKind int

const (
	// At removes the axis, selecting a single index.
	At AxisRangeKind = iota
	// In selects a contiguous or strided span [Start, Stop) by Step.
	In
	// Of gathers the axis by an explicit index list.
	Of
)

// AxisRange is one axis's slice specification.
type AxisRange struct {
	Kind    AxisRangeKind
	At_     int
	Start   int
	Stop    int
	Step    int
	Indices []int
}

// OutputLen is the number of elements this axis range contributes to the
// sliced shape, or -1 for an At range (which removes the axis).
func (r AxisRange) OutputLen() int {
	switch r.Kind {
	case At:
		return -1
	case In:
		if r.Step == 0 {
			return 0
		}
		n := (r.Stop - r.Start + r.Step - 1) / r.Step
		if n < 0 {
			n = 0
		}
		return n
	case Of:
		return len(r.Indices)
	default:
		return 0
	}
}

// Range is an ordered sequence of AxisRange, one per leading axis of the
// array being sliced; axes beyond len(Range) keep their full span.
type Range []AxisRange

// Resolve pads r out to a full Range over shape s (length == s.Ndim()),
// filling missing trailing axes with a full In(0, dim, 1) span, and
// validates every AxisRange against its dimension.
func Resolve(r Range, s Shape) (Range, error) {
	if len(r) > s.Ndim() {
		return nil, tensorerr.Newf(tensorerr.Bounds, "slice", "range has %d axes but shape has only %d", len(r), s.Ndim()).WithShape(s)
	}

	out := make(Range, s.Ndim())
	for i := 0; i < s.Ndim(); i++ {
		if i < len(r) {
			out[i] = r[i]
		} else {
			out[i] = AxisRange{Kind: In, Start: 0, Stop: s[i], Step: 1}
		}
	}

	for axis, ar := range out {
		dim := s[axis]
		switch ar.Kind {
		case At:
			if ar.At_ < 0 || ar.At_ >= dim {
				return nil, tensorerr.Newf(tensorerr.Bounds, "slice", "axis %d: index %d out of bounds for dim %d", axis, ar.At_, dim).WithShape(s).WithIndex(ar.At_)
			}
		case In:
			if ar.Step == 0 {
				return nil, tensorerr.Newf(tensorerr.Bounds, "slice", "axis %d: step must not be zero", axis).WithShape(s)
			}
			if ar.Start < 0 || ar.Start > dim || ar.Stop < ar.Start || ar.Stop > dim {
				return nil, tensorerr.Newf(tensorerr.Bounds, "slice", "axis %d: range [%d,%d) invalid for dim %d", axis, ar.Start, ar.Stop, dim).WithShape(s)
			}
		case Of:
			for _, idx := range ar.Indices {
				if idx < 0 || idx >= dim {
					return nil, tensorerr.Newf(tensorerr.Bounds, "slice", "axis %d: gather index %d out of bounds for dim %d", axis, idx, dim).WithShape(s).WithIndex(idx)
				}
			}
		default:
			return nil, tensorerr.Newf(tensorerr.Bounds, "slice", "axis %d: unknown range kind", axis).WithShape(s)
		}
	}

	return out, nil
}

// OutputShape is the shape that results from slicing s with the fully
// resolved range r: At axes are dropped, the rest contribute OutputLen().
func (r Range) OutputShape(s Shape) Shape {
	out := make(Shape, 0, len(r))
	for _, ar := range r {
		if ar.Kind == At {
			continue
		}
		out = append(out, ar.OutputLen())
	}
	if len(out) == 0 {
		return Shape{1}
	}
	return out
}

// ValidatePermutation checks that perm is a valid transpose permutation for
// an array of the given ndim: same length, every index < ndim, no repeats.
func ValidatePermutation(perm []int, ndim int) error {
	if len(perm) != ndim {
		return tensorerr.Newf(tensorerr.Bounds, "transpose", "permutation length %d does not match ndim %d", len(perm), ndim)
	}
	seen := make([]bool, ndim)
	for _, p := range perm {
		if p < 0 || p >= ndim {
			return tensorerr.Newf(tensorerr.Bounds, "transpose", "permutation index %d out of range for ndim %d", p, ndim)
		}
		if seen[p] {
			return tensorerr.Newf(tensorerr.Bounds, "transpose", "permutation repeats axis %d", p)
		}
		seen[p] = true
	}
	return nil
}

// ReverseAxes returns the default transpose permutation: axis reversal.
func ReverseAxes(ndim int) []int {
	perm := make([]int, ndim)
	for i := range perm {
		perm[i] = ndim - 1 - i
	}
	return perm
}

// InversePermutation returns perm such that applying it after p restores
// the original axis order.
func InversePermutation(p []int) []int {
	inv := make([]int, len(p))
	for i, v := range p {
		inv[v] = i
	}
	return inv
}

func (s Shape) String() string {
	return fmt.Sprintf("%v", []int(s))
}
