package access

import (
	"testing"

	"github.com/tensorgraph/tensorgraph/internal/buffer"
)

func TestBufAccessDelegatesToBuffer(t *testing.T) {
	buf := buffer.NewHeap([]float64{1, 2, 3})
	a := BufAccess[float64]{Buf: buf}

	if a.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", a.Size())
	}
	v, err := a.ReadValue(1)
	if err != nil || v != 2 {
		t.Fatalf("ReadValue(1) = %v, %v, want 2, nil", v, err)
	}
	if err := a.WriteValueAt(0, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ = a.ReadValue(0)
	if v != 9 {
		t.Fatalf("after write, ReadValue(0) = %v, want 9", v)
	}
}

// fakeOp is a minimal stand-in showing that any type implementing Reader's
// three methods is usable wherever an Accessor is expected, without a
// dedicated "AccessOp" wrapper type.
type fakeOp struct{ n int }

func (f fakeOp) Size() int { return f.n }
func (f fakeOp) Read() (buffer.Reader[int32], error) {
	data := make([]int32, f.n)
	for i := range data {
		data[i] = int32(i)
	}
	return buffer.NewHeap(data).Read()
}
func (f fakeOp) ReadValue(i int) (int32, error) { return int32(i), nil }

func TestOpSatisfiesAccessorWithoutWrapper(t *testing.T) {
	var acc Accessor[int32] = fakeOp{n: 4}
	v, err := acc.ReadValue(2)
	if err != nil || v != 2 {
		t.Fatalf("ReadValue(2) = %v, %v, want 2, nil", v, err)
	}
}
