package ops

import (
	"testing"

	"github.com/tensorgraph/tensorgraph/internal/kernel"
	"github.com/tensorgraph/tensorgraph/internal/platform"
	"github.com/tensorgraph/tensorgraph/internal/shape"
)

func TestMatMulComputesDotProducts(t *testing.T) {
	// [[1,2],[3,4]] x [[5,6],[7,8]] = [[19,22],[43,50]]
	m := MatMul[float64]{
		Left:   readerOf([]float64{1, 2, 3, 4}),
		Right:  readerOf([]float64{5, 6, 7, 8}),
		Batch:  1, M: 2, K: 2, N: 2,
		Kernel: kernel.For[float64](),
	}
	buf, err := m.Enqueue(platform.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, _ := buf.Read()
	got := out.Slice()
	want := []float64{19, 22, 43, 50}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMatMulRejectsRandomAccess(t *testing.T) {
	m := MatMul[float64]{Left: readerOf([]float64{1}), Right: readerOf([]float64{1}), Batch: 1, M: 1, K: 1, N: 1, Kernel: kernel.For[float64]()}
	if _, err := m.ReadValue(0); err == nil {
		t.Fatalf("expected error for random access on MatMul")
	}
}

func TestMatMulRejectsShapeMismatch(t *testing.T) {
	m := MatMul[float64]{Left: readerOf([]float64{1, 2, 3}), Right: readerOf([]float64{1, 2}), Batch: 1, M: 2, K: 2, N: 1, Kernel: kernel.For[float64]()}
	if _, err := m.Enqueue(platform.New()); err == nil {
		t.Fatalf("expected shape-mismatch error")
	}
}

func TestMatMulBatched(t *testing.T) {
	// Two batches of [[1,0],[0,1]] (identity) times [[1,2],[3,4]] and
	// [[5,6],[7,8]] -> right operand unchanged.
	left := []float64{1, 0, 0, 1, 1, 0, 0, 1}
	right := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	m := MatMul[float64]{Left: readerOf(left), Right: readerOf(right), Batch: 2, M: 2, K: 2, N: 2, Kernel: kernel.For[float64]()}
	buf, err := m.Enqueue(platform.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, _ := buf.Read()
	got := out.Slice()
	want := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMatDiagExtractsDiagonal(t *testing.T) {
	d := MatDiag[float64]{Input: readerOf([]float64{1, 2, 3, 4, 5, 6}), InShape: shape.Shape{2, 3}}
	buf, err := d.Enqueue(platform.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, _ := buf.Read()
	got := out.Slice()
	want := []float64{1, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestMatDiagConstructsFromVector(t *testing.T) {
	d := MatDiag[float64]{Input: readerOf([]float64{1, 2, 3}), InShape: shape.Shape{3}}
	buf, err := d.Enqueue(platform.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, _ := buf.Read()
	got := out.Slice()
	want := []float64{1, 0, 0, 0, 2, 0, 0, 0, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
