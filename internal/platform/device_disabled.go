//go:build !tensorgraph_device

package platform

// HasDevice is false in the default build: the GPU-via-compute-runtime
// tier is feature gated. Select() then never returns KindDevice and Heap
// absorbs every size.
const HasDevice = false

func newDeviceRing() *DeviceRing { return nil }
