// Package profile accounts wall-clock runtime per named scope.
package profile

import (
	"sync"
	"time"
)

type scope struct {
	total     time.Duration
	startedAt time.Time
	running   bool
}

// Profiler accumulates runtime for keyed scopes. Start/Stop pairs may
// repeat; Runtime reports the running total including a live scope.
type Profiler struct {
	mu     sync.Mutex
	scopes map[string]*scope
	now    func() time.Time
}

func New() *Profiler {
	return &Profiler{
		scopes: make(map[string]*scope),
		now:    time.Now,
	}
}

// Init creates the scope without starting it, so Runtime resolves to zero
// before the first Start/Stop pair.
func (p *Profiler) Init(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.scopes[key] == nil {
		p.scopes[key] = &scope{}
	}
}

// Start opens the scope. Starting an already-running scope is a no-op.
func (p *Profiler) Start(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.scopes[key]
	if s == nil {
		s = &scope{}
		p.scopes[key] = s
	}
	if s.running {
		return
	}
	s.running = true
	s.startedAt = p.now()
}

// Stop closes the scope and folds the elapsed time into its total.
// Stopping a scope that is not running is a no-op.
func (p *Profiler) Stop(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.scopes[key]
	if s == nil || !s.running {
		return
	}
	s.total += p.now().Sub(s.startedAt)
	s.running = false
}

// Runtime returns the accumulated duration for the scope, including the
// live portion of a scope that is still running.
func (p *Profiler) Runtime(key string) time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.scopes[key]
	if s == nil {
		return 0
	}
	if s.running {
		return s.total + p.now().Sub(s.startedAt)
	}
	return s.total
}
