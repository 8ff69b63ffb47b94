package view

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/ferndev/ragchat/internal/core"
	"github.com/ferndev/ragchat/internal/service/sync"
	"github.com/ferndev/ragchat/internal/session"
	"github.com/ferndev/ragchat/pkg/log"
)

// ErrSendInFlight rejects a send while another one is still pending.
// One exchange at a time per surface.
var ErrSendInFlight = errors.New("a message is already being sent")

type Engine interface {
	Send(ctx context.Context, text, sessionID string) (sync.Result, error)
}

// Coordinator owns what the UI shows: the session list snapshot and
// the currently displayed session. It refreshes both from the store
// after every completed exchange.
type Coordinator struct {
	store    *session.Store
	resolver *session.Resolver
	engine   Engine

	inFlight atomic.Bool

	sessions  []core.Session
	currentID string
	current   *core.Session
}

func NewCoordinator(store *session.Store, resolver *session.Resolver, engine Engine) *Coordinator {
	return &Coordinator{
		store:    store,
		resolver: resolver,
		engine:   engine,
	}
}

// Startup restores the session list and, when the default session
// already exists, makes it current.
func (c *Coordinator) Startup(ctx context.Context) {
	c.store.Load(ctx)
	c.sessions = c.store.List()
	if id, ok := c.resolver.Resolve(); ok {
		c.Select(id)
	}
	log.FromCtx(ctx).Debug().Int("sessions", len(c.sessions)).Str("current", c.currentID).Msg("view restored")
}

// Refresh reloads the list snapshot and the current session.
func (c *Coordinator) Refresh() {
	c.sessions = c.store.List()
	c.reloadCurrent()
}

func (c *Coordinator) reloadCurrent() {
	if c.currentID == "" {
		c.current = nil
		return
	}
	if sess, ok := c.store.Get(c.currentID); ok {
		c.current = &sess
	} else {
		c.current = nil
	}
}

// Select makes the given session the displayed one.
func (c *Coordinator) Select(id string) {
	c.currentID = id
	c.reloadCurrent()
}

func (c *Coordinator) Sessions() []core.Session {
	return c.sessions
}

func (c *Coordinator) CurrentID() string {
	return c.currentID
}

func (c *Coordinator) Current() (core.Session, bool) {
	if c.current == nil {
		return core.Session{}, false
	}
	return *c.current, true
}

// Send runs one exchange through the engine. On success the cursor is
// forced to the canonical session id, mirroring the engine's
// convergence, and the view refreshes. On failure nothing changes and
// the caller keeps the typed text.
func (c *Coordinator) Send(ctx context.Context, text string) (sync.Result, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return sync.Result{}, ErrSendInFlight
	}
	defer c.inFlight.Store(false)

	result, err := c.engine.Send(ctx, text, c.currentID)
	if err != nil {
		return sync.Result{}, err
	}

	c.Select(result.SessionID)
	c.Refresh()
	return result, nil
}

// NewChat discards every session, not just the displayed one, and
// resets the cursor to the canonical id. Callers must warn before
// invoking it.
func (c *Coordinator) NewChat(ctx context.Context) {
	c.store.Clear(ctx)
	c.currentID = core.DefaultSessionID
	c.current = nil
	c.sessions = c.store.List()
}
