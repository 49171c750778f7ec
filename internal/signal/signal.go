// Package signal is a synchronous fire-and-forget event bus. Listeners are
// delivered in subscription order on the emitting goroutine; their return
// values and panics are not consumed by emitters.
package signal

import "sync"

// Names emitted by the query adapter.
const (
	Connected       = "connected"
	CommandStarted  = "command.started"
	CommandFinished = "command.finished"
	EventReceived   = "event.received"
)

// Listener observes one emitted signal.
type Listener func(args ...any)

// Emitter dispatches named signals to zero or more listeners. The zero
// value is unusable; construct with NewEmitter.
type Emitter struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
}

func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[string][]Listener)}
}

// Subscribe registers a listener for one signal name.
func (e *Emitter) Subscribe(name string, fn Listener) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[name] = append(e.listeners[name], fn)
}

// Emit delivers a signal to every registered listener, synchronously.
// Emitting on a nil Emitter is a no-op so callers can treat the bus as
// optional.
func (e *Emitter) Emit(name string, args ...any) {
	if e == nil {
		return
	}
	e.mu.RLock()
	fns := e.listeners[name]
	e.mu.RUnlock()
	for _, fn := range fns {
		fn(args...)
	}
}
