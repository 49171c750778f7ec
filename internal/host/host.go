// Package host holds the adapter-owned root handle into the server-side
// domain. The query adapter creates one Host lazily and binds it into every
// reply and event it constructs.
package host

import (
	"sync"
	"time"
)

// Host is the domain root for one server connection. It memoizes
// server-reported properties (version, welcome banner, selected server)
// so higher layers can annotate it as replies arrive.
type Host struct {
	addr      string
	createdAt time.Time

	mu    sync.RWMutex
	props map[string]string
}

func New(addr string) *Host {
	return &Host{
		addr:      addr,
		createdAt: time.Now(),
		props:     make(map[string]string),
	}
}

// Addr returns the server address this handle is bound to.
func (h *Host) Addr() string { return h.addr }

// CreatedAt returns when the handle was first materialized.
func (h *Host) CreatedAt() time.Time { return h.createdAt }

// Identifier satisfies the wire reference contract: a host reference
// encodes as its address.
func (h *Host) Identifier() string { return h.addr }

// SetProperty records one server-reported property.
func (h *Host) SetProperty(key, value string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.props[key] = value
}

// Property returns a recorded property and whether it is present.
func (h *Host) Property(key string) (string, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	v, ok := h.props[key]
	return v, ok
}
