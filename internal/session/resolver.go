package session

import "github.com/ferndev/ragchat/internal/core"

// Resolver decides which session id is active on startup. Only the
// reserved default id can be restored; anything else starts unselected.
type Resolver struct {
	store *Store
}

func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

func (r *Resolver) Resolve() (string, bool) {
	if _, ok := r.store.Get(core.DefaultSessionID); ok {
		return core.DefaultSessionID, true
	}
	return "", false
}
