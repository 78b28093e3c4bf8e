package ops

import (
	"github.com/tensorgraph/tensorgraph/internal/access"
	"github.com/tensorgraph/tensorgraph/internal/buffer"
	"github.com/tensorgraph/tensorgraph/internal/kernel"
	"github.com/tensorgraph/tensorgraph/internal/platform"
	"github.com/tensorgraph/tensorgraph/internal/view"
)

// Slice addresses a contiguous or strided sub-region of Input through a
// view.SliceSpec. Input is an access.Writer so a slice of a mutable array
// stays write-through: writing through the slice writes the backing
// accessor at the composed offset, with no staging buffer in between.
type Slice[T kernel.Real] struct {
	Input access.Writer[T]
	Spec  view.SliceSpec
}

func (s Slice[T]) Size() int { return s.Spec.OutShape.Size() }

func (s Slice[T]) ReadValue(i int) (T, error) {
	if i < 0 || i >= s.Size() {
		var zero T
		return zero, boundsf("slice.read_value", s.Size(), i)
	}
	return s.Input.ReadValue(s.Spec.SourceOffset(i))
}

func (s Slice[T]) Enqueue(p *platform.Platform) (buffer.Any[T], error) {
	return materializeErr(p, s.Size(), func(i int) (T, error) { return s.ReadValue(i) })
}

func (s Slice[T]) Write(data []T) error {
	n := s.Size()
	if len(data) != n {
		return boundsf("slice.write", n, len(data))
	}
	for i, v := range data {
		if err := s.WriteValueAt(i, v); err != nil {
			return err
		}
	}
	return nil
}

func (s Slice[T]) WriteValue(v T) error {
	n := s.Size()
	for i := 0; i < n; i++ {
		if err := s.WriteValueAt(i, v); err != nil {
			return err
		}
	}
	return nil
}

func (s Slice[T]) WriteValueAt(i int, v T) error {
	if i < 0 || i >= s.Size() {
		return boundsf("slice.write_value_at", s.Size(), i)
	}
	return s.Input.WriteValueAt(s.Spec.SourceOffset(i), v)
}

var _ WriterNode[float64] = Slice[float64]{}

// View addresses Input through a view.Spec (broadcast, transpose, or
// reverse). Unlike Slice it is read-only: broadcasting and transposing can
// make one source element visible at several output offsets, so a write
// through a View would be ambiguous about which source element to update.
type View[T kernel.Real] struct {
	Input access.Reader[T]
	Spec  view.Spec
}

func (v View[T]) Size() int { return v.Spec.OutShape.Size() }

func (v View[T]) ReadValue(i int) (T, error) {
	if i < 0 || i >= v.Size() {
		var zero T
		return zero, boundsf("view.read_value", v.Size(), i)
	}
	return v.Input.ReadValue(v.Spec.SourceOffset(i))
}

func (v View[T]) Enqueue(p *platform.Platform) (buffer.Any[T], error) {
	return materializeErr(p, v.Size(), func(i int) (T, error) { return v.ReadValue(i) })
}

var _ Node[float64] = View[float64]{}
