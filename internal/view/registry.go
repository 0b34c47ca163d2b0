package view

import (
	"fmt"
	"sync"
)

// Registry routes interaction events to the view owning the message
// they occurred on. Views live here from bind until the owning message
// is deleted or the process exits; there is no durable storage.
type Registry struct {
	mu    sync.RWMutex
	views map[string]*View
}

func NewRegistry() *Registry {
	return &Registry{views: make(map[string]*View)}
}

// Add registers a bound view under its message ID.
func (r *Registry) Add(v *View) error {
	messageID := v.MessageID()
	if messageID == "" {
		return fmt.Errorf("cannot register an unbound view")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.views[messageID]; exists {
		return fmt.Errorf("view already registered for message %s", messageID)
	}
	r.views[messageID] = v
	return nil
}

// Get returns the view for messageID, if any.
func (r *Registry) Get(messageID string) (*View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[messageID]
	return v, ok
}

// Remove drops the view for messageID. Removing an unknown ID is a
// no-op.
func (r *Registry) Remove(messageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.views, messageID)
}

// Len returns the number of live views.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}
