package buffer

import "testing"

func TestStackBufferStaysInlineBelowCapacity(t *testing.T) {
	data := []float64{1, 2, 3}
	s := NewStack(data)
	if s.spilled {
		t.Fatalf("small buffer should not spill")
	}
	if s.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", s.Size())
	}
	r, err := s.Read()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Kind != OwnedStack {
		t.Fatalf("Kind = %v, want OwnedStack", r.Kind)
	}
	for i, v := range data {
		if r.Slice()[i] != v {
			t.Fatalf("slice[%d] = %v, want %v", i, r.Slice()[i], v)
		}
	}
}

func TestStackBufferSpillsAboveCapacity(t *testing.T) {
	data := make([]float64, StackCapacity+10)
	for i := range data {
		data[i] = float64(i)
	}
	s := NewStack(data)
	if !s.spilled {
		t.Fatalf("large buffer should spill to heap")
	}
	r, _ := s.Read()
	if r.Kind != Borrowed {
		t.Fatalf("spilled buffer read should be Borrowed, got %v", r.Kind)
	}
	if len(r.Slice()) != len(data) {
		t.Fatalf("len = %d, want %d", len(r.Slice()), len(data))
	}
}

func TestStackWriteValueAtBounds(t *testing.T) {
	s := NewStackSized[float64](4)
	if err := s.WriteValueAt(10, 1); err == nil {
		t.Fatalf("expected Bounds error for out-of-range write")
	}
	if err := s.WriteValueAt(1, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := s.ReadValue(1)
	if v != 7 {
		t.Fatalf("ReadValue(1) = %v, want 7", v)
	}
}

func TestHeapBufferWriteLengthMismatch(t *testing.T) {
	h := NewHeapSized[int32](3)
	if err := h.Write([]int32{1, 2}); err == nil {
		t.Fatalf("expected Bounds error for length mismatch")
	}
	if err := h.Write([]int32{1, 2, 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeviceBufferRoundTrip(t *testing.T) {
	d := NewDeviceFrom([]float32{1, 2, 3})
	if d.ID.String() == "" {
		t.Fatalf("device buffer should have a non-empty identity")
	}
	if err := d.WriteValueAt(1, 9); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := d.ReadValue(1)
	if err != nil || v != 9 {
		t.Fatalf("ReadValue(1) = %v, %v, want 9, nil", v, err)
	}
}
