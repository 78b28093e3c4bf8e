//go:build tensorgraph_device

package platform

import "github.com/google/uuid"

// HasDevice is true when tensorgraph is built with the tensorgraph_device tag.
// Actual device enumeration belongs to the compute runtime, an external
// collaborator; this default ring registers a single local queue identity
// so Select() can exercise the Device tier end to end without a real GPU
// present.
const HasDevice = true

func newDeviceRing() *DeviceRing {
	return &DeviceRing{devices: []uuid.UUID{uuid.New()}}
}
