package scan

import (
	"sync"

	"github.com/chaz8081/blescan/internal/ble"
)

// StatusKind tells the presentation layer how to colour the status line.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusError
)

func (k StatusKind) String() string {
	if k == StatusError {
		return "error"
	}
	return "info"
}

// UiState is a point-in-time view of the scanner. Values are replaced
// wholesale; Devices must not be modified by readers.
type UiState struct {
	HasPermissions    bool
	Scanning          bool
	Status            string
	StatusKind        StatusKind
	FilterConnectable bool
	Devices           []ble.DiscoveryEvent
}

// InitialState is the state before permissions have been checked.
func InitialState(filterConnectable bool) UiState {
	return UiState{
		Status:            "Permissions not yet checked.",
		FilterConnectable: filterConnectable,
	}
}

// Store holds the current UiState and fans it out to subscribers. Each
// subscriber sees values in publication order but may miss intermediate ones
// if it falls behind.
type Store struct {
	mu     sync.Mutex
	state  UiState
	subs   map[uint64]chan UiState
	nextID uint64
}

// NewStore creates a store holding initial.
func NewStore(initial UiState) *Store {
	return &Store{
		state: initial,
		subs:  make(map[uint64]chan UiState),
	}
}

// Get returns the current state.
func (s *Store) Get() UiState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Replace publishes next as the current state.
func (s *Store) Replace(next UiState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publish(next)
}

// Update applies fn to the current state and publishes the result
// atomically with respect to other writers.
func (s *Store) Update(fn func(UiState) UiState) UiState {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.state)
	s.publish(next)
	return next
}

// Subscribe returns a channel that receives the current state immediately
// and every later state, keeping only the newest undelivered value. The
// returned function unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan UiState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan UiState, 1)
	ch <- s.state
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// publish must be called with mu held.
func (s *Store) publish(next UiState) {
	s.state = next
	for _, ch := range s.subs {
		select {
		case <-ch: // drop the stale value
		default:
		}
		ch <- next
	}
}
