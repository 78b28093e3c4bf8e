package platform

import (
	"fmt"
	"unsafe"

	"github.com/tensorgraph/tensorgraph/internal/buffer"
	"github.com/tensorgraph/tensorgraph/internal/kernel"
	"github.com/tensorgraph/tensorgraph/internal/tensorerr"
)

// DeviceMaterialize runs fill for every index in [0,n), chunked into
// DeviceWorkGroupSize(n)-sized groups across the Heap worker pool, then
// uploads the result into a device buffer drawn from the next queue in
// the ring. Without a real compute runtime behind DeviceRing this takes
// the same "no cached kernel, fall back to host and upload" path the
// device platform takes for a kernel-less op, but it is still a distinct
// code path from the Heap tier: a size that crosses GpuMinSize lands in
// device-staged memory instead of silently staying on the host Heap
// buffer.
func DeviceMaterialize[T kernel.Real](p *Platform, n int, fill func(i int) T) (buffer.Any[T], error) {
	data := make([]T, n)
	if err := p.deviceFill(n, func(i int) error {
		data[i] = fill(i)
		return nil
	}); err != nil {
		return nil, err
	}
	return deviceUpload(p, data)
}

// DeviceMaterializeErr is DeviceMaterialize's counterpart for fill
// functions that can fail.
func DeviceMaterializeErr[T kernel.Real](p *Platform, n int, fill func(i int) (T, error)) (buffer.Any[T], error) {
	data := make([]T, n)
	if err := p.deviceFill(n, func(i int) error {
		v, err := fill(i)
		if err != nil {
			return err
		}
		data[i] = v
		return nil
	}); err != nil {
		return nil, err
	}
	return deviceUpload(p, data)
}

// deviceFill runs fill(i) for every i in [0,n) across work groups of
// DeviceWorkGroupSize(n) elements, mirroring a kernel launch's work-group
// grid without a real compute runtime to dispatch one to.
func (p *Platform) deviceFill(n int, fill func(i int) error) error {
	wg := p.DeviceWorkGroupSize(n)
	groups := (n + wg - 1) / wg
	if groups < 1 {
		groups = 1
	}
	return p.Pool().Parallel(groups, func(g int) error {
		start := g * wg
		end := start + wg
		if end > n {
			end = n
		}
		for i := start; i < end; i++ {
			if err := fill(i); err != nil {
				return err
			}
		}
		return nil
	})
}

// DeviceUpload stages an already-computed host result into device memory,
// drawing the next queue identity from the ring. Ops whose compute isn't
// expressible as a per-index fill (e.g. MatMul) still route their result
// through here when Select chose the Device tier, so the result lands in
// device-staged memory rather than silently staying a plain Heap buffer.
func DeviceUpload[T kernel.Real](p *Platform, data []T) (buffer.Any[T], error) {
	return deviceUpload(p, data)
}

// deviceUpload draws the next queue identity from the ring and stages data
// into a fresh device buffer. A transfer failure is wrapped with the
// lower-layer cause via tensorerr.Wrap so the upload's own stack trace
// survives alongside the device context.
func deviceUpload[T kernel.Real](p *Platform, data []T) (buffer.Any[T], error) {
	if p.ring != nil {
		p.ring.Next()
	}
	buf := buffer.NewDevice[T](len(data))
	if err := buf.Write(data); err != nil {
		var zero T
		size := len(data) * int(unsafe.Sizeof(zero))
		return nil, tensorerr.Wrap(tensorerr.Platform, "device.upload", err,
			fmt.Sprintf("device upload of %s failed", tensorerr.Bytes(size)))
	}
	return buf, nil
}
