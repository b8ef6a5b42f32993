package binaural

import "sync/atomic"

// irMailbox hands impulse responses from the control context to the
// processing context. Both sides are wait-free; a newer submission replaces
// one that has not been taken yet.
type irMailbox struct {
	pending atomic.Pointer[ImpulseResponse]
}

// post publishes ir. ir must not be mutated afterwards.
func (m *irMailbox) post(ir *ImpulseResponse) {
	m.pending.Store(ir)
}

// take returns the latest unclaimed response, or nil.
func (m *irMailbox) take() *ImpulseResponse {
	return m.pending.Swap(nil)
}

// hasPending reports whether a response is waiting.
func (m *irMailbox) hasPending() bool {
	return m.pending.Load() != nil
}

// clear drops an unclaimed response.
func (m *irMailbox) clear() {
	m.pending.Store(nil)
}
