// Package session holds the single "currently logged-in user" shared by every
// request the process serves. It is a stand-in for real authentication: there
// is exactly one slot, and any client's login or logout overwrites it.
package session

import "sync"

// Holder is the process-wide current-user slot.
type Holder struct {
	mu     sync.RWMutex
	userID uint64
	set    bool
}

// NewHolder returns an empty holder (nobody logged in).
func NewHolder() *Holder {
	return &Holder{}
}

// CurrentUser returns the logged-in user id, if any.
func (h *Holder) CurrentUser() (uint64, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.userID, h.set
}

// SetCurrentUser overwrites the slot with userID.
func (h *Holder) SetCurrentUser(userID uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.userID = userID
	h.set = true
}

// Clear logs out whoever is in the slot.
func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.userID = 0
	h.set = false
}
