// Package hotkey provides a global scan hotkey using gohook.
// It supports "hold" mode (scan while the keys are held) and
// "toggle" mode (press to start, press again to stop).
package hotkey

import (
	"context"
	"log/slog"
	"sync"

	hook "github.com/robotn/gohook"
)

// EventType is the scan intent a key press maps to.
type EventType int

const (
	// EventStart signals that the hotkey was pressed in hold mode.
	EventStart EventType = iota
	// EventStop signals that the hotkey was released in hold mode.
	EventStop
	// EventToggle signals a press in toggle mode.
	EventToggle
)

func (t EventType) String() string {
	switch t {
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventToggle:
		return "toggle"
	default:
		return "unknown"
	}
}

// Event is emitted on the channel returned by Events.
type Event struct {
	Type EventType
}

// Listener manages a global hotkey and emits scan intents.
type Listener struct {
	keys []string
	mode string // "hold" or "toggle"
	ch   chan Event
	done chan struct{}
	once sync.Once
}

// NewListener creates a Listener for the given key combo and mode.
// keys should be lowercase key names (e.g., ["ctrl", "shift", "b"]).
// mode must be "hold" or "toggle".
func NewListener(keys []string, mode string) *Listener {
	return &Listener{
		keys: keys,
		mode: mode,
		ch:   make(chan Event, 16),
		done: make(chan struct{}),
	}
}

// Events returns the channel that receives hotkey events.
// The channel is closed when the listener stops.
func (l *Listener) Events() <-chan Event {
	return l.ch
}

// Start begins listening for the global hotkey.
// This function blocks until Stop is called. Run it in a goroutine.
func (l *Listener) Start() {
	switch l.mode {
	case "hold":
		hook.Register(hook.KeyDown, l.keys, func(e hook.Event) { l.emit(EventStart) })
		hook.Register(hook.KeyUp, l.keys, func(e hook.Event) { l.emit(EventStop) })
	default: // "toggle"
		hook.Register(hook.KeyDown, l.keys, func(e hook.Event) { l.emit(EventToggle) })
	}

	evChan := hook.Start()
	go func() {
		<-l.done
		hook.End()
	}()
	<-hook.Process(evChan)
	close(l.ch)
}

// emit sends without blocking; key repeats that arrive while the channel is
// full are dropped.
func (l *Listener) emit(t EventType) {
	select {
	case l.ch <- Event{Type: t}:
	default:
	}
}

// Stop terminates the hotkey listener.
// It is safe to call multiple times.
func (l *Listener) Stop() {
	l.once.Do(func() {
		close(l.done)
	})
}

// Target receives the scan intents a hotkey produces.
type Target interface {
	Start()
	Stop()
	Toggle()
}

// Dispatch forwards events to target until events closes or ctx is done.
func Dispatch(ctx context.Context, events <-chan Event, target Target) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			slog.Debug("[HOTKEY] event", "type", ev.Type)
			switch ev.Type {
			case EventStart:
				target.Start()
			case EventStop:
				target.Stop()
			case EventToggle:
				target.Toggle()
			}
		}
	}
}
