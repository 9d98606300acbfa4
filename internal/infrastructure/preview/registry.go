// Package preview issues revocable display handles for in-memory image
// bytes. A handle is the server-side analogue of a browser object URL:
// acquired when bytes are registered, dereferenced via a short token and
// released exactly once when the bytes are replaced or dropped. Released
// handles free the registry slot immediately; they are not reclaimed by
// anything else.
package preview

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

type entry struct {
	data     []byte
	mimeType string
}

// Registry maps opaque tokens to registered image bytes.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register stores data under a fresh token and returns its handle.
func (r *Registry) Register(data []byte, mimeType string) *Handle {
	token := uuid.NewString()

	r.mu.Lock()
	r.entries[token] = entry{data: data, mimeType: mimeType}
	r.mu.Unlock()

	return &Handle{registry: r, token: token}
}

// Resolve dereferences a token. Returns false for unknown or released tokens.
func (r *Registry) Resolve(token string) ([]byte, string, bool) {
	r.mu.RLock()
	e, ok := r.entries[token]
	r.mu.RUnlock()
	return e.data, e.mimeType, ok
}

// Len reports how many handles are currently live.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *Registry) remove(token string) {
	r.mu.Lock()
	delete(r.entries, token)
	r.mu.Unlock()
}

// Handle is an owning reference to one registry slot. Release is the only
// revocation entry point and is safe to call more than once; only the
// first call takes effect.
type Handle struct {
	registry *Registry
	token    string
	released atomic.Bool
}

// Token returns the opaque identifier used in preview URLs.
func (h *Handle) Token() string {
	return h.token
}

// URL returns the path a client dereferences the handle at.
func (h *Handle) URL() string {
	return "/previews/" + h.token
}

// Release revokes the handle. Returns true if this call performed the
// revocation, false if it had already been released.
func (h *Handle) Release() bool {
	if h == nil || !h.released.CompareAndSwap(false, true) {
		return false
	}
	h.registry.remove(h.token)
	return true
}
