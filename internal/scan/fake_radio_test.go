package scan

import (
	"context"
	"sync"

	"github.com/chaz8081/blescan/internal/ble"
)

// fakeRadio simulates the BLE driver. Tests push events through emit and
// failWith after StartScan has been called.
type fakeRadio struct {
	mu        sync.Mutex
	supported bool
	enabled   bool
	onEvent   func(ble.DiscoveryEvent)
	onFailure func(error)
	starts    int
	stops     int
}

func newFakeRadio() *fakeRadio {
	return &fakeRadio{supported: true, enabled: true}
}

func (r *fakeRadio) Supported() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.supported
}

func (r *fakeRadio) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

func (r *fakeRadio) StartScan(onEvent func(ble.DiscoveryEvent), onFailure func(error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onEvent = onEvent
	r.onFailure = onFailure
	r.starts++
}

func (r *fakeRadio) StopScan() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stops++
	return nil
}

func (r *fakeRadio) emit(ev ble.DiscoveryEvent) {
	r.mu.Lock()
	cb := r.onEvent
	r.mu.Unlock()
	if cb != nil {
		cb(ev)
	}
}

func (r *fakeRadio) failWith(err error) {
	r.mu.Lock()
	cb := r.onFailure
	r.mu.Unlock()
	if cb != nil {
		cb(err)
	}
}

func (r *fakeRadio) counts() (starts, stops int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.starts, r.stops
}

var _ ble.Radio = (*fakeRadio)(nil)

type fakePermissions bool

func (p fakePermissions) Granted() bool { return bool(p) }

func (p fakePermissions) Request(context.Context) <-chan bool {
	ch := make(chan bool, 1)
	ch <- bool(p)
	close(ch)
	return ch
}

var _ ble.Permissions = fakePermissions(false)
