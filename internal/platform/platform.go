// Package platform implements the execution substrates an op node
// materializes against: Stack (sequential, small), Heap (data-parallel
// over a worker pool), and Device (GPU via a compute runtime, feature
// gated). A Platform value is the composite: one type that Select()s a
// Kind by size and exposes the primitives (Pool, DeviceRing) an op's
// Enqueue implementation dispatches against.
package platform

import (
	"runtime"
	"sync"

	"github.com/tensorgraph/tensorgraph/internal/buffer"
)

// Kind is the execution tier Select() resolves a size hint to.
type Kind int

const (
	KindStack Kind = iota
	KindHeap
	KindDevice
)

func (k Kind) String() string {
	switch k {
	case KindStack:
		return "stack"
	case KindHeap:
		return "heap"
	case KindDevice:
		return "device"
	default:
		return "unknown"
	}
}

// Thresholds are the tier boundaries that decide Stack vs Heap vs Device,
// bundled so embedding applications (and tests that want to exercise a
// tier boundary without allocating a huge array) can override them.
type Thresholds struct {
	VecMinSize    int
	GpuMinSize    int
	AccMinSize    int
	WorkGroupSize int
	PoolSize      int
}

// defaultThresholds sets VecMinSize aligned with buffer.StackCapacity,
// GpuMinSize at 1 KiB of elements, and AccMinSize at 2^31 elements (an
// element count rather than a byte count, since tensorgraph is
// type-generic).
var defaultThresholds = Thresholds{
	VecMinSize:    buffer.StackCapacity,
	GpuMinSize:    1024,
	AccMinSize:    2147483648,
	WorkGroupSize: 64,
	PoolSize:      runtime.NumCPU(),
}

var thresholdsMu sync.RWMutex

// Configure overrides the process-wide default Thresholds used by New().
// Platforms already constructed are unaffected.
func Configure(t Thresholds) {
	thresholdsMu.Lock()
	defer thresholdsMu.Unlock()
	defaultThresholds = t
}

func currentDefaults() Thresholds {
	thresholdsMu.RLock()
	defer thresholdsMu.RUnlock()
	return defaultThresholds
}

// Platform is the top-level composite platform: it owns the Heap worker
// pool and, when built with the tensorgraph_device tag and devices are
// present, a round-robin ring of device queues. It is constructed
// explicitly rather than lazily on first use, since Go has no implicit
// global initialization order guarantee across packages worth relying on.
type Platform struct {
	Thresholds Thresholds
	pool       *Pool
	ring       *DeviceRing
}

// New builds a Platform using the current default Thresholds.
func New() *Platform {
	t := currentDefaults()
	return &Platform{
		Thresholds: t,
		pool:       NewPool(t.PoolSize),
		ring:       newDeviceRing(),
	}
}

// Select resolves a size hint to an execution Kind: Stack below
// VecMinSize, Heap up to GpuMinSize, then Device for both the GPU tier
// (GpuMinSize..AccMinSize) and the accelerator tier (AccMinSize and
// above) — the two device sub-tiers share one Kind since this module
// stages both through the same host-side Device buffer, but Select keeps
// them as distinct cases so DeviceWorkGroupSize can size a launch
// differently once a buffer crosses into accelerator territory. Device
// collapses to Heap whenever the tier is absent (not built with the
// tensorgraph_device tag, or no devices registered).
func (p *Platform) Select(size int) Kind {
	switch {
	case size < p.Thresholds.VecMinSize:
		return KindStack
	case !HasDevice || p.ring == nil || size < p.Thresholds.GpuMinSize:
		return KindHeap
	case size < p.Thresholds.AccMinSize:
		return KindDevice // GPU tier
	default:
		return KindDevice // accelerator tier
	}
}

// DeviceWorkGroupSize returns the work-group size a device launch for size
// elements should chunk by: the configured WorkGroupSize, widened once size
// crosses AccMinSize since an accelerator-class launch amortizes dispatch
// overhead over more elements per group.
func (p *Platform) DeviceWorkGroupSize(size int) int {
	wg := p.Thresholds.WorkGroupSize
	if wg < 1 {
		wg = 1
	}
	if size >= p.Thresholds.AccMinSize {
		wg *= 4
	}
	return wg
}

// Pool is the Heap platform's fan-out primitive.
func (p *Platform) Pool() *Pool { return p.pool }

// DeviceRing is nil unless the tensorgraph_device build tag is set and at
// least one device was registered.
func (p *Platform) DeviceRing() *DeviceRing { return p.ring }
