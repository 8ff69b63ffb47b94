package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ferndev/ragchat/internal/core"
)

type memKV struct {
	data     map[string]string
	failPuts bool
	failGets bool
}

func newMemKV() *memKV {
	return &memKV{data: map[string]string{}}
}

func (m *memKV) Get(ctx context.Context, key string) (string, bool, error) {
	if m.failGets {
		return "", false, errors.New("read failed")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Put(ctx context.Context, key, value string) error {
	if m.failPuts {
		return errors.New("disk full")
	}
	m.data[key] = value
	return nil
}

func (m *memKV) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func msg(id, content string, user bool, ts time.Time) core.Message {
	return core.Message{ID: id, Content: content, IsUser: user, Timestamp: ts}
}

func TestStore_UpsertCreatesAndPrepends(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemKV())

	now := time.Now()
	store.UpsertMessages(ctx, "a", "first session", msg("1", "hi", true, now))
	store.UpsertMessages(ctx, "b", "second session", msg("2", "yo", true, now))

	list := store.List()
	if len(list) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(list))
	}
	if list[0].ID != "b" || list[1].ID != "a" {
		t.Errorf("new sessions must be prepended, got order %s, %s", list[0].ID, list[1].ID)
	}
	if list[0].Title != "second session" {
		t.Errorf("title = %q, want %q", list[0].Title, "second session")
	}
}

func TestStore_UpsertAppendsWithoutTouchingTitle(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemKV())

	t0 := time.Now()
	store.UpsertMessages(ctx, "a", "original title", msg("1", "hi", true, t0), msg("2", "hello", false, t0.Add(time.Second)))
	store.UpsertMessages(ctx, "a", "ignored title", msg("3", "more", true, t0.Add(2*time.Second)), msg("4", "sure", false, t0.Add(3*time.Second)))

	sess, ok := store.Get("a")
	if !ok {
		t.Fatal("session not found")
	}
	if sess.Title != "original title" {
		t.Errorf("title changed on append: %q", sess.Title)
	}
	if len(sess.Messages) != 4 {
		t.Fatalf("expected 4 messages, got %d", len(sess.Messages))
	}
	for i, want := range []string{"1", "2", "3", "4"} {
		if sess.Messages[i].ID != want {
			t.Errorf("message %d = %s, want %s", i, sess.Messages[i].ID, want)
		}
	}
	for i := 1; i < len(sess.Messages); i++ {
		if sess.Messages[i].Timestamp.Before(sess.Messages[i-1].Timestamp) {
			t.Errorf("timestamps not non-decreasing at %d", i)
		}
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()

	store := NewStore(kv)
	t0 := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	store.UpsertMessages(ctx, core.DefaultSessionID, "Hello how are you...",
		msg("u1", "Hello how are you doing", true, t0),
		core.Message{ID: "b1", Content: "Fine!", IsUser: false, Timestamp: t0.Add(2 * time.Second), Context: "doc snippet"},
	)

	reloaded := NewStore(kv)
	reloaded.Load(ctx)

	sess, ok := reloaded.Get(core.DefaultSessionID)
	if !ok {
		t.Fatal("session lost in round trip")
	}
	if sess.Title != "Hello how are you..." {
		t.Errorf("title = %q", sess.Title)
	}
	if len(sess.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(sess.Messages))
	}
	if !sess.Messages[0].Timestamp.Equal(t0) {
		t.Errorf("timestamp round trip: got %v, want %v", sess.Messages[0].Timestamp, t0)
	}
	if sess.Messages[1].Context != "doc snippet" {
		t.Errorf("context lost: %q", sess.Messages[1].Context)
	}
	if sess.Messages[0].IsUser != true || sess.Messages[1].IsUser != false {
		t.Error("message variants lost in round trip")
	}
}

func TestStore_CorruptedBlobLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.data[core.SessionsKey] = `{"not": "an array"`

	store := NewStore(kv)
	store.Load(ctx)

	if got := store.List(); len(got) != 0 {
		t.Errorf("expected empty collection from corrupted blob, got %d sessions", len(got))
	}
}

func TestStore_ReadFailureLoadsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.failGets = true

	store := NewStore(kv)
	store.Load(ctx)

	if got := store.List(); len(got) != 0 {
		t.Errorf("expected empty collection on read failure, got %d sessions", len(got))
	}
}

func TestStore_SaveFailureKeepsMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	kv.failPuts = true

	store := NewStore(kv)
	store.UpsertMessages(ctx, "a", "t", msg("1", "hi", true, time.Now()))

	if _, ok := store.Get("a"); !ok {
		t.Error("in-memory state must survive a persistence failure")
	}
}

func TestStore_ClearEmptiesEverything(t *testing.T) {
	ctx := context.Background()
	kv := newMemKV()
	store := NewStore(kv)

	now := time.Now()
	store.UpsertMessages(ctx, "a", "one", msg("1", "hi", true, now))
	store.UpsertMessages(ctx, "b", "two", msg("2", "yo", true, now))

	store.Clear(ctx)

	if got := store.List(); len(got) != 0 {
		t.Fatalf("clear must remove every session, got %d", len(got))
	}

	reloaded := NewStore(kv)
	reloaded.Load(ctx)
	if got := reloaded.List(); len(got) != 0 {
		t.Errorf("cleared state must persist, reloaded %d sessions", len(got))
	}
}

func TestStore_ListIsASnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemKV())

	now := time.Now()
	store.UpsertMessages(ctx, "a", "t", msg("1", "hi", true, now))

	snapshot := store.List()
	store.UpsertMessages(ctx, "a", "t", msg("2", "more", true, now.Add(time.Second)))

	if len(snapshot[0].Messages) != 1 {
		t.Errorf("snapshot must not reflect later mutations, got %d messages", len(snapshot[0].Messages))
	}
}

func TestResolver(t *testing.T) {
	ctx := context.Background()
	store := NewStore(newMemKV())
	resolver := NewResolver(store)

	if id, ok := resolver.Resolve(); ok || id != "" {
		t.Errorf("empty store must resolve to no active session, got %q", id)
	}

	store.UpsertMessages(ctx, "other", "t", msg("1", "hi", true, time.Now()))
	if _, ok := resolver.Resolve(); ok {
		t.Error("non-default session must not become active on startup")
	}

	store.UpsertMessages(ctx, core.DefaultSessionID, "t", msg("2", "hi", true, time.Now()))
	id, ok := resolver.Resolve()
	if !ok || id != core.DefaultSessionID {
		t.Errorf("default session must resolve, got %q %v", id, ok)
	}
}
