// Package scan implements the scan session controller and the state it
// manages: the device registry, the precondition checks run before every
// scan, and the observable UI state store.
package scan

import (
	"cmp"
	"slices"
	"sync"

	"github.com/chaz8081/blescan/internal/ble"
)

type registryEntry struct {
	event ble.DiscoveryEvent
	seq   uint64 // first-insertion order, kept across replacements
}

// Registry holds the latest discovery event per hardware address.
// Safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	entries map[string]registryEntry
	nextSeq uint64
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]registryEntry)}
}

// Clear removes all entries.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.entries)
	r.nextSeq = 0
}

// Upsert stores ev under its address, replacing any earlier event for it.
func (r *Registry) Upsert(ev ble.DiscoveryEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := ev.Key()
	e, ok := r.entries[key]
	if !ok {
		e.seq = r.nextSeq
		r.nextSeq++
	}
	e.event = ev
	r.entries[key] = e
}

// Len returns the number of distinct addresses held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Snapshot returns the entries ordered by descending RSSI, ties in insertion
// order. With connectableOnly set, definitively non-connectable entries are
// left out. The returned slice is owned by the caller.
func (r *Registry) Snapshot(connectableOnly bool) []ble.DiscoveryEvent {
	r.mu.Lock()
	entries := make([]registryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if connectableOnly && !e.event.Connectable.Admits() {
			continue
		}
		entries = append(entries, e)
	}
	r.mu.Unlock()

	slices.SortFunc(entries, func(a, b registryEntry) int {
		if c := cmp.Compare(b.event.RSSI, a.event.RSSI); c != 0 {
			return c
		}
		return cmp.Compare(a.seq, b.seq)
	})

	out := make([]ble.DiscoveryEvent, len(entries))
	for i, e := range entries {
		out[i] = e.event
	}
	return out
}
