package domain

import "time"

// EventType enumerates the typed events the core emits to consumers.
type EventType string

const (
	EventVariationChange EventType = "variation_change"
	EventMomentumStart   EventType = "momentum_start"
	EventMomentumEnd     EventType = "momentum_end"
	EventSnapComplete    EventType = "snap_complete"
	EventGestureStart    EventType = "gesture_start"
	EventGestureEnd      EventType = "gesture_end"
	EventBoundaryReached EventType = "boundary_reached"
	EventExhausted       EventType = "exhausted"
)

// Event is delivered synchronously to registered listeners after the
// mutation or phase change it describes has fully taken effect.
type Event struct {
	Type     EventType
	NodeID   string
	BranchID string
	At       time.Time
}

// Listener receives events. Listeners run on the caller's goroutine; the
// core is single-threaded by contract (see Graph), so no locking is needed.
type Listener func(Event)

// Emitter is a minimal plain-callback registry, independent of any UI
// framework's reactivity system.
type Emitter struct {
	listeners map[int]Listener
	nextID    int
}

// Subscribe registers a listener and returns its unsubscribe function.
func (e *Emitter) Subscribe(fn Listener) func() {
	if e.listeners == nil {
		e.listeners = make(map[int]Listener)
	}
	id := e.nextID
	e.nextID++
	e.listeners[id] = fn
	return func() { delete(e.listeners, id) }
}

// Emit delivers the event to every registered listener.
func (e *Emitter) Emit(ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	for _, fn := range e.listeners {
		fn(ev)
	}
}
