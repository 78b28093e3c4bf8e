// Package view implements the zero-copy addressing algebra for broadcast,
// transpose, slice, and reverse: every view is a pure function from an
// output linear offset to a source linear offset.
package view

import (
	"github.com/tensorgraph/tensorgraph/internal/shape"
	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// Spec addresses source elements by decomposing an output linear offset
// into per-axis indices using OutStrides (0 for a broadcast axis), then
// summing SrcStrides·indices. It is the Go counterpart of the source
// engine's ViewSpec: pure numeric state, no ownership of the source.
type Spec struct {
	OutShape   shape.Shape
	OutStrides shape.Strides
	SrcStrides shape.Strides
	// Reversed marks, per output axis, whether the index runs backwards
	// against the source (index -> dim-1-index before applying SrcStrides).
	// This is how Reverse is expressed without negative strides.
	Reversed []bool
	SrcDims  []int
}

// SourceOffset maps an output linear offset to the source linear offset.
func (v Spec) SourceOffset(offset int) int {
	src := 0
	for i, outStride := range v.OutStrides {
		idx := offset / outStride % v.OutShape[i]
		if v.Reversed != nil && v.Reversed[i] {
			idx = v.SrcDims[i] - 1 - idx
		}
		src += idx * v.SrcStrides[i]
	}
	return src
}

// Broadcast builds a read-only view expanding source (shape srcShape) to
// target. Right-aligned: for each output axis the source stride is the
// natural source stride if dims match, 0 if the source dim is 1, and the
// call fails if neither holds. Broadcast never shrinks a dimension.
func Broadcast(srcShape shape.Shape, target shape.Shape) (Spec, error) {
	if !shape.BroadcastCompatible(srcShape, target) {
		return Spec{}, tensorerr.Newf(tensorerr.Bounds, "broadcast", "shape %v cannot broadcast to %v", srcShape, target)
	}

	srcNatural := shape.RowMajor(srcShape)
	outStrides := shape.RowMajor(target)
	off := len(target) - len(srcShape)

	srcStrides := make(shape.Strides, len(target))
	for i := range target {
		srcIdx := i - off
		if srcIdx < 0 {
			srcStrides[i] = 0
			continue
		}
		if srcShape[srcIdx] == target[i] {
			srcStrides[i] = srcNatural[srcIdx]
		} else if srcShape[srcIdx] == 1 {
			srcStrides[i] = 0
		} else {
			return Spec{}, tensorerr.Newf(tensorerr.Bounds, "broadcast", "axis %d: dim %d cannot stretch to %d", i, srcShape[srcIdx], target[i])
		}
	}

	return Spec{OutShape: target, OutStrides: outStrides, SrcStrides: srcStrides}, nil
}

// Transpose builds a view permuting srcShape's axes according to perm.
// Output shape/strides are the natural row-major layout of the permuted
// shape; source strides are the source's natural strides reordered by
// perm, so reading the view in row-major order visits the source in
// permuted order without copying.
func Transpose(srcShape shape.Shape, perm []int) (Spec, error) {
	if err := shape.ValidatePermutation(perm, srcShape.Ndim()); err != nil {
		return Spec{}, err
	}

	out := make(shape.Shape, len(perm))
	for i, p := range perm {
		out[i] = srcShape[p]
	}

	srcNatural := shape.RowMajor(srcShape)
	srcStrides := make(shape.Strides, len(perm))
	for i, p := range perm {
		srcStrides[i] = srcNatural[p]
	}

	return Spec{OutShape: out, OutStrides: shape.RowMajor(out), SrcStrides: srcStrides}, nil
}

// Reverse builds a view that reads srcShape backwards along each axis
// named in axes. Go strides are unsigned step counts in this engine, so a
// reversed axis is represented by the Reversed/SrcDims fields rather than
// a negative SrcStrides entry.
func Reverse(srcShape shape.Shape, axes []int) (Spec, error) {
	reversed := make([]bool, srcShape.Ndim())
	for _, a := range axes {
		if a < 0 || a >= srcShape.Ndim() {
			return Spec{}, tensorerr.Newf(tensorerr.Bounds, "reverse", "axis %d out of range for ndim %d", a, srcShape.Ndim())
		}
		reversed[a] = true
	}

	srcStrides := shape.RowMajor(srcShape)
	return Spec{
		OutShape:   srcShape.Clone(),
		OutStrides: srcStrides,
		SrcStrides: srcStrides,
		Reversed:   reversed,
		SrcDims:    []int(srcShape.Clone()),
	}, nil
}

// SliceSpec is the gather/select addressing used by a slice op: it pairs
// the source shape/strides with a resolved shape.Range and precomputes the
// output shape.
type SliceSpec struct {
	SrcShape   shape.Shape
	SrcStrides shape.Strides
	Range      shape.Range
	OutShape   shape.Shape
}

// NewSlice resolves r against srcShape and precomputes the output shape.
func NewSlice(srcShape shape.Shape, r shape.Range) (SliceSpec, error) {
	resolved, err := shape.Resolve(r, srcShape)
	if err != nil {
		return SliceSpec{}, err
	}
	return SliceSpec{
		SrcShape:   srcShape,
		SrcStrides: shape.RowMajor(srcShape),
		Range:      resolved,
		OutShape:   resolved.OutputShape(srcShape),
	}, nil
}

// SourceOffset maps an output linear offset (row-major over OutShape) to
// the source linear offset, by walking each axis's AxisRange.
func (s SliceSpec) SourceOffset(offset int) int {
	outStrides := shape.RowMajor(s.OutShape)
	src := 0
	outAxis := 0
	for axis, ar := range s.Range {
		srcStride := s.SrcStrides[axis]
		switch ar.Kind {
		case shape.At:
			src += ar.At_ * srcStride
		case shape.In:
			idx := offset / outStrides[outAxis] % s.OutShape[outAxis]
			src += (ar.Start + idx*ar.Step) * srcStride
			outAxis++
		case shape.Of:
			idx := offset / outStrides[outAxis] % s.OutShape[outAxis]
			src += ar.Indices[idx] * srcStride
			outAxis++
		}
	}
	return src
}

// Compose combines two successive slices of the same array into one
// SliceSpec whose SourceOffset equals applying r1 then r2, matching the
// "slice composition" invariant: A.slice(r1).slice(r2) reads identically to
// A.slice(compose(r1, r2)).
func (s SliceSpec) Compose(r2 shape.Range) (SliceSpec, error) {
	resolved2, err := shape.Resolve(r2, s.OutShape)
	if err != nil {
		return SliceSpec{}, err
	}

	// Build the combined range axis by axis over the ORIGINAL source: each
	// non-At axis of s.Range is refined by the matching axis of resolved2.
	combined := make(shape.Range, 0, len(s.Range))
	j := 0 // index into resolved2, aligned with s.Range's non-At axes
	for _, ar1 := range s.Range {
		if ar1.Kind == shape.At {
			combined = append(combined, ar1)
			continue
		}
		ar2 := resolved2[j]
		j++
		combined = append(combined, composeAxis(ar1, ar2))
	}

	return NewSlice(s.SrcShape, combined)
}

// composeAxis folds a second-pass AxisRange (expressed over the
// first-pass's output axis) into a single AxisRange over the original
// source axis. outer is either In or Of (At axes are handled by the
// caller and never reach here).
func composeAxis(outer, inner shape.AxisRange) shape.AxisRange {
	// sourceAt maps a position along outer's output axis to a source index.
	sourceAt := func(i int) int {
		if outer.Kind == shape.Of {
			return outer.Indices[i]
		}
		return outer.Start + i*outer.Step
	}

	switch inner.Kind {
	case shape.At:
		return shape.AxisRange{Kind: shape.At, At_: sourceAt(inner.At_)}
	case shape.In:
		if outer.Kind == shape.Of {
			n := inner.OutputLen()
			indices := make([]int, n)
			for i := 0; i < n; i++ {
				indices[i] = sourceAt(inner.Start + i*inner.Step)
			}
			return shape.AxisRange{Kind: shape.Of, Indices: indices}
		}
		// Stop is one past the last source index selected, so it never
		// runs beyond the source dim even when outer's span is not a
		// whole number of steps.
		n := inner.OutputLen()
		start := sourceAt(inner.Start)
		stop := start
		if n > 0 {
			stop = sourceAt(inner.Start+(n-1)*inner.Step) + 1
		}
		return shape.AxisRange{
			Kind:  shape.In,
			Start: start,
			Stop:  stop,
			Step:  outer.Step * inner.Step,
		}
	case shape.Of:
		indices := make([]int, len(inner.Indices))
		for i, idx := range inner.Indices {
			indices[i] = sourceAt(idx)
		}
		return shape.AxisRange{Kind: shape.Of, Indices: indices}
	default:
		return outer
	}
}
