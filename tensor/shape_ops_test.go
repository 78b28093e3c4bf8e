package tensor

import (
	"testing"

	"github.com/tensorgraph/tensorgraph/internal/shape"
)

func TestReshapePreservesElementsInRowMajorOrder(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3, 4, 5, 6}, shape.Shape{2, 3})
	b, err := a.Reshape(shape.Shape{3, 2})
	if err != nil {
		t.Fatalf("Reshape: %v", err)
	}
	got, err := b.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	want := []float64{1, 2, 3, 4, 5, 6}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("index %d = %v, want %v", i, got[i], w)
		}
	}
}

func TestReshapeRejectsSizeMismatch(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3, 4}, shape.Shape{4})
	if _, err := a.Reshape(shape.Shape{3}); err == nil {
		t.Fatalf("expected size-mismatch error")
	}
}

func TestSqueezeDropsSizeOneAxes(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3}, shape.Shape{1, 3, 1})
	b, err := a.Squeeze(nil)
	if err != nil {
		t.Fatalf("Squeeze: %v", err)
	}
	if !b.Shape().Equal(shape.Shape{3}) {
		t.Fatalf("shape = %v, want [3]", b.Shape())
	}
}

func TestSqueezeRejectsNonUnitAxis(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3}, shape.Shape{3})
	if _, err := a.Squeeze([]int{0}); err == nil {
		t.Fatalf("expected non-unit-axis rejection")
	}
}

func TestUnsqueezeInsertsSizeOneAxis(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3}, shape.Shape{3})
	b, err := a.Unsqueeze([]int{0})
	if err != nil {
		t.Fatalf("Unsqueeze: %v", err)
	}
	if !b.Shape().Equal(shape.Shape{1, 3}) {
		t.Fatalf("shape = %v, want [1 3]", b.Shape())
	}
}

func TestTransposePermutesAxes(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3, 4, 5, 6}, shape.Shape{2, 3})
	b, err := a.Transpose([]int{1, 0})
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	if !b.Shape().Equal(shape.Shape{3, 2}) {
		t.Fatalf("shape = %v, want [3 2]", b.Shape())
	}
	got, err := b.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	want := []float64{1, 4, 2, 5, 3, 6}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("index %d = %v, want %v", i, got[i], w)
		}
	}
}

func TestTransposeRoundTrip(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3, 4, 5, 6}, shape.Shape{2, 3})
	perm := []int{1, 0}
	b, err := a.Transpose(perm)
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	back, err := b.Transpose(shape.InversePermutation(perm))
	if err != nil {
		t.Fatalf("Transpose back: %v", err)
	}
	got, err := back.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	want, err := a.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBroadcastExpandsDimensionOfOne(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3}, shape.Shape{1, 3})
	b, err := a.Broadcast(shape.Shape{2, 3})
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	got, err := b.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	want := []float64{1, 2, 3, 1, 2, 3}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("index %d = %v, want %v", i, got[i], w)
		}
	}
}

func TestBroadcastIsReadOnly(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3}, shape.Shape{1, 3})
	b, err := a.Broadcast(shape.Shape{2, 3})
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	if err := b.WriteValueAt(0, 99); err == nil {
		t.Fatalf("expected write-through-broadcast rejection")
	}
}

func TestReverseFlipsAlongAxis(t *testing.T) {
	a := mustArray(t, []float64{1, 2, 3, 4, 5}, shape.Shape{5})
	b, err := a.Reverse([]int{0})
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	got, err := b.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	want := []float64{5, 4, 3, 2, 1}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("index %d = %v, want %v", i, got[i], w)
		}
	}
}

func TestSliceSelectsSubRegion(t *testing.T) {
	a := mustArray(t, []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, shape.Shape{4, 3})
	r := shape.Range{
		{Kind: shape.At, At_: 1},
		{Kind: shape.In, Start: 1, Stop: 3, Step: 1},
	}
	b, err := a.Slice(r)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	got, err := b.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	want := []float64{4, 5}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("index %d = %v, want %v", i, got[i], w)
		}
	}
}

func TestSliceWriteThroughMutatesSource(t *testing.T) {
	a := mustArray(t, []float64{0, 1, 2, 3}, shape.Shape{4})
	r := shape.Range{{Kind: shape.In, Start: 1, Stop: 3, Step: 1}}
	b, err := a.Slice(r)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if err := b.WriteValueAt(0, 99); err != nil {
		t.Fatalf("WriteValueAt: %v", err)
	}
	v, err := a.ReadValue(1)
	if err != nil {
		t.Fatalf("ReadValue: %v", err)
	}
	if v != 99 {
		t.Fatalf("source[1] = %v, want 99", v)
	}
}
