package platform

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// DeviceRing round-robins a pool of device queue identities, drawn via an
// atomic counter for load balancing across available devices. The concrete
// compute runtime the queue talks to is an external collaborator; DeviceRing
// only owns identity and rotation.
type DeviceRing struct {
	devices []uuid.UUID
	counter uint64
}

// Next returns the next queue identity in round-robin order.
func (r *DeviceRing) Next() uuid.UUID {
	i := atomic.AddUint64(&r.counter, 1) - 1
	return r.devices[i%uint64(len(r.devices))]
}

// Len reports how many device queues are registered.
func (r *DeviceRing) Len() int { return len(r.devices) }
