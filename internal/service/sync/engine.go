package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ferndev/ragchat/internal/core"
	"github.com/ferndev/ragchat/internal/providers/backend"
	"github.com/ferndev/ragchat/internal/session"
	"github.com/ferndev/ragchat/pkg/log"
)

// ErrEmptyMessage is returned when the input is empty after trimming.
// Nothing is constructed and no request goes out.
var ErrEmptyMessage = errors.New("message is empty")

type ChatBackend interface {
	Chat(ctx context.Context, message, sessionID string) (backend.ChatResponse, error)
}

type SessionStore interface {
	UpsertMessages(ctx context.Context, id, title string, msgs ...core.Message)
}

// Result carries both halves of a completed exchange.
type Result struct {
	SessionID   string
	UserMessage core.Message
	BotMessage  core.Message
}

// Engine performs one message exchange: user message out, bot message
// back, both appended to the canonical session in one upsert. Nothing
// touches the store until the backend has answered.
type Engine struct {
	backend ChatBackend
	store   SessionStore
	now     func() time.Time
}

func NewEngine(b ChatBackend, store SessionStore) *Engine {
	return &Engine{
		backend: b,
		store:   store,
		now:     time.Now,
	}
}

// Send resolves any caller-supplied session id to the reserved default
// id before transmission, so every conversation converges onto the one
// canonical session the backend knows about.
func (e *Engine) Send(ctx context.Context, text, sessionID string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrEmptyMessage
	}

	userMsg := core.Message{
		ID:        uuid.NewString(),
		Content:   text,
		IsUser:    true,
		Timestamp: e.now(),
	}

	resp, err := e.backend.Chat(ctx, text, core.DefaultSessionID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to send message: %w", err)
	}

	botMsg := core.Message{
		ID:        uuid.NewString(),
		Content:   resp.Answer,
		IsUser:    false,
		Timestamp: time.Unix(resp.Timestamp, 0),
	}
	if resp.Context != nil {
		botMsg.Context = *resp.Context
	}

	// Title is only consulted when the upsert creates the session.
	e.store.UpsertMessages(ctx, core.DefaultSessionID, session.Title(text), userMsg, botMsg)

	log.FromCtx(ctx).Debug().
		Str("session_id", core.DefaultSessionID).
		Str("user_msg_id", userMsg.ID).
		Str("bot_msg_id", botMsg.ID).
		Msg("message exchange completed")

	return Result{
		SessionID:   core.DefaultSessionID,
		UserMessage: userMsg,
		BotMessage:  botMsg,
	}, nil
}
