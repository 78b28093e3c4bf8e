// Package buffer implements owned, byte-level storage of a contiguous
// sequence of kernel.Real elements: a small-buffer-optimized host buffer,
// a heap host buffer, and an opaque device buffer handle.
package buffer

import (
	"unsafe"

	"github.com/google/uuid"

	"github.com/tensorgraph/tensorgraph/internal/kernel"
	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// StackCapacity is VEC_MIN_SIZE: the element count below which a Stack
// buffer stays inline, and the size threshold the platform layer uses to
// choose between the Stack and Heap execution paths. Kept aligned with a
// SIMD-friendly chunk width, per the engine's own design note.
const StackCapacity = 64

// ReaderKind tags which buffer variant produced a Reader.
type ReaderKind int

const (
	OwnedHeap ReaderKind = iota
	OwnedStack
	Borrowed
)

// Reader is the uniform borrow-or-own converter every buffer's Read()
// returns: a contiguous slice view plus which variant it came from.
type Reader[T kernel.Real] struct {
	Kind ReaderKind
	data []T
}

// Slice exposes the contiguous view. Only an OwnedStack reader holds a
// private copy; a Borrowed reader and the readers Heap and Device return
// (tagged OwnedHeap) alias the buffer's storage, so callers must not retain
// those past the buffer's next mutation.
func (r Reader[T]) Slice() []T { return r.data }

// Any is the buffer-layer contract shared by Stack, Heap, and Device.
type Any[T kernel.Real] interface {
	Size() int
	Read() (Reader[T], error)
	ReadValue(offset int) (T, error)
	Write(data []T) error
	WriteValue(v T) error
	WriteValueAt(offset int, v T) error
}

// Stack is the small-buffer-optimized host buffer: inline storage up to
// StackCapacity elements, spilling to a heap slice once grown past it.
type Stack[T kernel.Real] struct {
	inline  [StackCapacity]T
	spill   []T
	n       int
	spilled bool
}

// NewStack builds a Stack buffer from data, spilling immediately if data
// is already larger than StackCapacity.
func NewStack[T kernel.Real](data []T) *Stack[T] {
	s := &Stack[T]{}
	s.grow(len(data))
	copy(s.slice(), data)
	return s
}

// NewStackSized allocates a zeroed Stack buffer of the given size.
func NewStackSized[T kernel.Real](size int) *Stack[T] {
	s := &Stack[T]{}
	s.grow(size)
	return s
}

func (s *Stack[T]) grow(n int) {
	if n > StackCapacity && !s.spilled {
		s.spill = make([]T, StackCapacity)
		copy(s.spill, s.inline[:s.n])
		s.spilled = true
	}
	if s.spilled {
		if n > cap(s.spill) {
			grown := make([]T, n)
			copy(grown, s.spill)
			s.spill = grown
		} else {
			s.spill = s.spill[:n]
		}
	}
	s.n = n
}

func (s *Stack[T]) slice() []T {
	if s.spilled {
		return s.spill
	}
	return s.inline[:s.n]
}

func (s *Stack[T]) Size() int { return s.n }

func (s *Stack[T]) Read() (Reader[T], error) {
	if s.spilled {
		return Reader[T]{Kind: Borrowed, data: s.spill}, nil
	}
	// The inline array lives inside the struct; copy it out so the reader
	// doesn't alias a field whose address may move with the receiver.
	owned := make([]T, s.n)
	copy(owned, s.inline[:s.n])
	return Reader[T]{Kind: OwnedStack, data: owned}, nil
}

func (s *Stack[T]) ReadValue(offset int) (T, error) {
	var zero T
	if offset < 0 || offset >= s.n {
		return zero, tensorerr.Newf(tensorerr.Bounds, "buffer.read_value", "offset %d out of bounds for size %d", offset, s.n).WithIndex(offset)
	}
	return s.slice()[offset], nil
}

func (s *Stack[T]) Write(data []T) error {
	if len(data) != s.n {
		return tensorerr.Newf(tensorerr.Bounds, "buffer.write", "write length %d does not match buffer size %d", len(data), s.n)
	}
	copy(s.slice(), data)
	return nil
}

func (s *Stack[T]) WriteValue(v T) error {
	dst := s.slice()
	for i := range dst {
		dst[i] = v
	}
	return nil
}

func (s *Stack[T]) WriteValueAt(offset int, v T) error {
	if offset < 0 || offset >= s.n {
		return tensorerr.Newf(tensorerr.Bounds, "buffer.write_value_at", "offset %d out of bounds for size %d", offset, s.n).WithIndex(offset)
	}
	s.slice()[offset] = v
	return nil
}

// Heap is the plain contiguous heap-vector host buffer.
type Heap[T kernel.Real] struct {
	data []T
}

// NewHeap wraps data directly (no copy) as a Heap buffer.
func NewHeap[T kernel.Real](data []T) *Heap[T] {
	return &Heap[T]{data: data}
}

// NewHeapSized allocates a zeroed Heap buffer of the given size.
func NewHeapSized[T kernel.Real](size int) *Heap[T] {
	return &Heap[T]{data: make([]T, size)}
}

func (h *Heap[T]) Size() int { return len(h.data) }

func (h *Heap[T]) Read() (Reader[T], error) {
	return Reader[T]{Kind: OwnedHeap, data: h.data}, nil
}

func (h *Heap[T]) ReadValue(offset int) (T, error) {
	var zero T
	if offset < 0 || offset >= len(h.data) {
		return zero, tensorerr.Newf(tensorerr.Bounds, "buffer.read_value", "offset %d out of bounds for size %d", offset, len(h.data)).WithIndex(offset)
	}
	return h.data[offset], nil
}

func (h *Heap[T]) Write(data []T) error {
	if len(data) != len(h.data) {
		return tensorerr.Newf(tensorerr.Bounds, "buffer.write", "write length %d does not match buffer size %d", len(data), len(h.data))
	}
	copy(h.data, data)
	return nil
}

func (h *Heap[T]) WriteValue(v T) error {
	for i := range h.data {
		h.data[i] = v
	}
	return nil
}

func (h *Heap[T]) WriteValueAt(offset int, v T) error {
	if offset < 0 || offset >= len(h.data) {
		return tensorerr.Newf(tensorerr.Bounds, "buffer.write_value_at", "offset %d out of bounds for size %d", offset, len(h.data)).WithIndex(offset)
	}
	h.data[offset] = v
	return nil
}

// Device is the opaque device-memory handle. The concrete GPU kernel
// runtime is an external collaborator outside this module's scope; this
// type is the host-side accounting object every platform implementation
// (including one with a real compute runtime wired in) exchanges: an
// identity plus the host-visible staging slice used by ReadValue's
// single-element host read and WriteValueAt's single-element transfer.
type Device[T kernel.Real] struct {
	ID     uuid.UUID
	staged []T
}

// NewDevice allocates a device buffer handle backed by staged host memory
// of the given size (the upload/download path the top-level platform uses
// to move data across the host/device boundary).
func NewDevice[T kernel.Real](size int) *Device[T] {
	return &Device[T]{ID: uuid.New(), staged: make([]T, size)}
}

// NewDeviceFrom uploads data into a freshly allocated device handle.
func NewDeviceFrom[T kernel.Real](data []T) *Device[T] {
	staged := make([]T, len(data))
	copy(staged, data)
	return &Device[T]{ID: uuid.New(), staged: staged}
}

func (d *Device[T]) Size() int { return len(d.staged) }

func (d *Device[T]) Read() (Reader[T], error) {
	return Reader[T]{Kind: OwnedHeap, data: d.staged}, nil
}

func (d *Device[T]) ReadValue(offset int) (T, error) {
	var zero T
	if offset < 0 || offset >= len(d.staged) {
		return zero, tensorerr.Newf(tensorerr.Bounds, "device.read_value", "offset %d out of bounds for size %d", offset, len(d.staged)).WithIndex(offset)
	}
	return d.staged[offset], nil
}

func (d *Device[T]) Write(data []T) error {
	if len(data) != len(d.staged) {
		var zero T
		elemSize := int(unsafe.Sizeof(zero))
		return tensorerr.Newf(tensorerr.IO, "device.write", "transfer of %s does not match device buffer size of %s",
			tensorerr.Bytes(len(data)*elemSize), tensorerr.Bytes(len(d.staged)*elemSize))
	}
	copy(d.staged, data)
	return nil
}

func (d *Device[T]) WriteValue(v T) error {
	for i := range d.staged {
		d.staged[i] = v
	}
	return nil
}

func (d *Device[T]) WriteValueAt(offset int, v T) error {
	if offset < 0 || offset >= len(d.staged) {
		return tensorerr.Newf(tensorerr.Bounds, "device.write_value_at", "offset %d out of bounds for size %d", offset, len(d.staged)).WithIndex(offset)
	}
	d.staged[offset] = v
	return nil
}
