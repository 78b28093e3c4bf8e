package ops

import (
	"testing"

	"github.com/tensorgraph/tensorgraph/internal/platform"
)

func f64(f float64) float64 { return f }

func TestLinearProducesArithmeticSequence(t *testing.T) {
	l := Linear[float64]{StartF64: 2, Step: 3, N: 5, FromFloat64: f64}
	buf, err := l.Enqueue(platform.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, _ := buf.Read()
	got := r.Slice()
	want := []float64{2, 5, 8, 11, 14}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestLinearReadValueMatchesEnqueue(t *testing.T) {
	l := Linear[float64]{StartF64: -1, Step: 0.5, N: 4, FromFloat64: f64}
	for i := 0; i < l.N; i++ {
		v, err := l.ReadValue(i)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := -1 + float64(i)*0.5
		if v != want {
			t.Fatalf("ReadValue(%d) = %v, want %v", i, v, want)
		}
	}
	if _, err := l.ReadValue(l.N); err == nil {
		t.Fatalf("expected out-of-bounds error")
	}
}

func TestRandomUniformFillsExpectedRange(t *testing.T) {
	r := RandomUniform[float64]{N: 100, FromFloat64: f64}
	buf, err := r.Enqueue(platform.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, _ := buf.Read()
	for _, v := range out.Slice() {
		if v < 0 || v >= 1 {
			t.Fatalf("value %v outside [0,1)", v)
		}
	}
}

func TestRandomNormalSizeParity(t *testing.T) {
	for _, n := range []int{1, 2, 7, 64, 65} {
		rn := RandomNormal[float64]{N: n, FromFloat64: f64}
		buf, err := rn.Enqueue(platform.New())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if buf.Size() != n {
			t.Fatalf("Size() = %d, want %d", buf.Size(), n)
		}
	}
}

func TestRandomNormalReadValueUnsupported(t *testing.T) {
	rn := RandomNormal[float64]{N: 4, FromFloat64: f64}
	if _, err := rn.ReadValue(0); err == nil {
		t.Fatalf("expected unsupported random-access error")
	}
}
