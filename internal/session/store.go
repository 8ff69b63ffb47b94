package session

import (
	"context"
	"sync"

	"github.com/ferndev/ragchat/internal/core"
	"github.com/ferndev/ragchat/pkg/log"
)

// Store owns the session collection, in memory and in the KV store.
// All mutations go through it; persistence failures are absorbed and
// logged so the in-memory state stays authoritative for the process.
type Store struct {
	kv core.KV

	mu       sync.Mutex
	sessions []core.Session
}

func NewStore(kv core.KV) *Store {
	return &Store{kv: kv}
}

// Load reads the persisted collection. A missing or malformed blob
// leaves the collection empty; the caller never sees an error.
func (s *Store) Load(ctx context.Context) {
	value, ok, err := s.kv.Get(ctx, core.SessionsKey)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("failed to load chat sessions")
		return
	}
	if !ok {
		return
	}

	sessions, err := decodeSessions(value)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("stored chat sessions are malformed, starting empty")
		return
	}

	s.mu.Lock()
	s.sessions = sessions
	s.mu.Unlock()
}

// save persists the full collection. Must be called with mu held so no
// other mutation can interleave between the memory write and the
// persistence write.
func (s *Store) save(ctx context.Context) {
	value, err := encodeSessions(s.sessions)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to encode chat sessions")
		return
	}
	if err := s.kv.Put(ctx, core.SessionsKey, value); err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to save chat sessions")
	}
}

// List returns a snapshot of all sessions, newest-first. Later
// mutations of the store are not reflected in it.
func (s *Store) List() []core.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = copySession(sess)
	}
	return out
}

func (s *Store) Get(id string) (core.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.sessions {
		if sess.ID == id {
			return copySession(sess), true
		}
	}
	return core.Session{}, false
}

// UpsertMessages appends msgs to the session with the given id, or
// creates it with the given title and prepends it to the collection.
// Memory and persistence are updated in one critical section.
func (s *Store) UpsertMessages(ctx context.Context, id, title string, msgs ...core.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.sessions {
		if s.sessions[i].ID == id {
			s.sessions[i].Messages = append(s.sessions[i].Messages, msgs...)
			found = true
			break
		}
	}
	if !found {
		sess := core.Session{
			ID:       id,
			Title:    title,
			Messages: append([]core.Message(nil), msgs...),
		}
		s.sessions = append([]core.Session{sess}, s.sessions...)
	}

	s.save(ctx)
}

// Clear empties the whole collection and persists the empty state.
// There is no per-session deletion.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = nil
	s.save(ctx)
}

func copySession(sess core.Session) core.Session {
	out := sess
	out.Messages = append([]core.Message(nil), sess.Messages...)
	return out
}
