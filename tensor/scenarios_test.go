package tensor

import (
	"testing"

	"github.com/tensorgraph/tensorgraph/internal/buffer"
	"github.com/tensorgraph/tensorgraph/internal/shape"
)

// TestScenarioAddWithRanges is end-to-end scenario 1: an ascending range
// added to its element-reversed counterpart sums to a constant on every
// element.
func TestScenarioAddWithRanges(t *testing.T) {
	l, err := Range[float64](0, 10, shape.Shape{5, 2})
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	r := mustArray(t, []float64{9, 8, 7, 6, 5, 4, 3, 2, 1, 0}, shape.Shape{5, 2})

	sum, err := l.Add(r)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	nine, err := Constant[float64](9, shape.Shape{5, 2})
	if err != nil {
		t.Fatalf("Constant: %v", err)
	}
	eq, err := sum.Eq(nine)
	if err != nil {
		t.Fatalf("Eq: %v", err)
	}
	all, err := eq.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if !all {
		t.Fatalf("scenario 1: expected every element to equal 9")
	}
}

// TestScenarioBroadcastSubtract is end-to-end scenario 2.
func TestScenarioBroadcastSubtract(t *testing.T) {
	l := mustArray(t, []float64{0, 1, 2, 3, 4, 5}, shape.Shape{2, 3})
	r0 := mustArray(t, []float64{0, 1}, shape.Shape{2})
	r1, err := r0.Unsqueeze([]int{1})
	if err != nil {
		t.Fatalf("Unsqueeze: %v", err)
	}
	r, err := r1.Broadcast(shape.Shape{2, 3})
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}

	diff, err := l.Sub(r)
	if err != nil {
		t.Fatalf("Sub: %v", err)
	}
	got, err := diff.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	want := []float64{0, 1, 2, 2, 3, 4}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("scenario 2: index %d = %v, want %v", i, got[i], w)
		}
	}
}

// TestScenarioSlice3D is end-to-end scenario 3.
func TestScenarioSlice3D(t *testing.T) {
	a, err := Range[float64](0, 24, shape.Shape{4, 3, 2})
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	r := shape.Range{
		{Kind: shape.At, At_: 1},
		{Kind: shape.In, Start: 1, Stop: 3, Step: 1},
	}
	sliced, err := a.Slice(r)
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if !sliced.Shape().Equal(shape.Shape{2, 2}) {
		t.Fatalf("scenario 3: shape = %v, want [2 2]", sliced.Shape())
	}
	got, err := sliced.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	want := []float64{8, 9, 10, 11}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("scenario 3: index %d = %v, want %v", i, got[i], w)
		}
	}
}

// TestScenarioTranspose3D is end-to-end scenario 4.
func TestScenarioTranspose3D(t *testing.T) {
	a, err := Range[float64](0, 24, shape.Shape{2, 3, 4})
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	b, err := a.Transpose([]int{2, 0, 1})
	if err != nil {
		t.Fatalf("Transpose: %v", err)
	}
	if !b.Shape().Equal(shape.Shape{4, 2, 3}) {
		t.Fatalf("scenario 4: shape = %v, want [4 2 3]", b.Shape())
	}
	wantFirstRow := []float64{0, 4, 8}
	for i, w := range wantFirstRow {
		v, err := b.ReadValue(i)
		if err != nil {
			t.Fatalf("ReadValue(%d): %v", i, err)
		}
		if v != w {
			t.Fatalf("scenario 4: ReadValue(%d) = %v, want %v", i, v, w)
		}
	}
}

// TestScenarioMatMulConstants is end-to-end scenario 5.
func TestScenarioMatMulConstants(t *testing.T) {
	a, err := Constant[float64](1, shape.Shape{2, 3})
	if err != nil {
		t.Fatalf("Constant: %v", err)
	}
	b, err := Constant[float64](1, shape.Shape{3, 4})
	if err != nil {
		t.Fatalf("Constant: %v", err)
	}
	c, err := a.MatMul(b)
	if err != nil {
		t.Fatalf("MatMul: %v", err)
	}
	if !c.Shape().Equal(shape.Shape{2, 4}) {
		t.Fatalf("scenario 5: shape = %v, want [2 4]", c.Shape())
	}
	got, err := c.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	for i, v := range got {
		if v != 3 {
			t.Fatalf("scenario 5: index %d = %v, want 3", i, v)
		}
	}
}

// TestScenarioRandomNormalSizeParity is end-to-end scenario 6: an odd
// sample count still yields exactly that many elements despite Box-Muller
// drawing pairs.
func TestScenarioRandomNormalSizeParity(t *testing.T) {
	a, err := RandomNormal[float64](5)
	if err != nil {
		t.Fatalf("RandomNormal: %v", err)
	}
	got, err := a.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("scenario 6: len = %d, want 5", len(got))
	}
}

// TestScenarioSumReductionLarge is end-to-end scenario 7.
func TestScenarioSumReductionLarge(t *testing.T) {
	a, err := Constant[float64](1, shape.Shape{300, 1, 2})
	if err != nil {
		t.Fatalf("Constant: %v", err)
	}
	b, err := a.Broadcast(shape.Shape{300, 250, 2})
	if err != nil {
		t.Fatalf("Broadcast: %v", err)
	}
	total, err := b.SumAll()
	if err != nil {
		t.Fatalf("SumAll: %v", err)
	}
	if total != 150000 {
		t.Fatalf("scenario 7: SumAll = %v, want 150000", total)
	}
}

// TestInvariantShapeSizeMatchesAccessorSize checks shape.product() ==
// accessor.size() for a representative array.
func TestInvariantShapeSizeMatchesAccessorSize(t *testing.T) {
	a := mustArray(t, make([]float64, 24), shape.Shape{2, 3, 4})
	if a.Size() != a.shape.Size() {
		t.Fatalf("Size() = %d, shape.Size() = %d", a.Size(), a.shape.Size())
	}
}

// TestInvariantReduceSumIdentity checks the zero-constant / one-constant
// reduce identities.
func TestInvariantReduceSumIdentity(t *testing.T) {
	zero, err := Constant[float64](0, shape.Shape{3, 3})
	if err != nil {
		t.Fatalf("Constant: %v", err)
	}
	sum, err := zero.SumAll()
	if err != nil {
		t.Fatalf("SumAll: %v", err)
	}
	if sum != 0 {
		t.Fatalf("SumAll of zero constant = %v, want 0", sum)
	}

	one, err := Constant[float64](1, shape.Shape{3, 3})
	if err != nil {
		t.Fatalf("Constant: %v", err)
	}
	product, err := one.ProductAll()
	if err != nil {
		t.Fatalf("ProductAll: %v", err)
	}
	if product != 1 {
		t.Fatalf("ProductAll of one constant = %v, want 1", product)
	}
}

// TestInvariantCondAllOnesSelectsThen checks the cond-selects invariant.
func TestInvariantCondAllOnesSelectsThen(t *testing.T) {
	cond, err := Constant[uint8](1, shape.Shape{3})
	if err != nil {
		t.Fatalf("Constant: %v", err)
	}
	then := mustArray(t, []float64{1, 2, 3}, shape.Shape{3})
	els := mustArray(t, []float64{9, 9, 9}, shape.Shape{3})
	out, err := Cond[float64](cond, then, els)
	if err != nil {
		t.Fatalf("Cond: %v", err)
	}
	got, err := out.Buffer()
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	want := []float64{1, 2, 3}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("index %d = %v, want %v", i, got[i], w)
		}
	}
}

// TestInvariantWriteThroughSlice checks that a slice write is visible
// through the source accessor at the composed offset.
func TestInvariantWriteThroughSlice(t *testing.T) {
	a, err := New[float64](buffer.NewHeap([]float64{0, 1, 2, 3, 4}), shape.Shape{5})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, err := a.Slice(shape.Range{{Kind: shape.In, Start: 2, Stop: 4, Step: 1}})
	if err != nil {
		t.Fatalf("Slice: %v", err)
	}
	if err := s.WriteValueAt(1, 42); err != nil {
		t.Fatalf("WriteValueAt: %v", err)
	}
	v, err := a.ReadValue(3)
	if err != nil {
		t.Fatalf("ReadValue: %v", err)
	}
	if v != 42 {
		t.Fatalf("write-through: a[3] = %v, want 42", v)
	}
}
