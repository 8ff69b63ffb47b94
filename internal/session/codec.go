package session

import (
	"encoding/json"
	"time"

	"github.com/ferndev/ragchat/internal/core"
)

// Stored shapes for the chatbot_sessions blob. Timestamps are encoded
// as epoch milliseconds; nothing outside this file depends on the
// persisted layout.

type storedMessage struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	IsUser    bool   `json:"isUser"`
	Timestamp int64  `json:"timestamp"`
	Context   string `json:"context,omitempty"`
}

type storedSession struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Messages []storedMessage `json:"messages"`
}

func encodeSessions(sessions []core.Session) (string, error) {
	stored := make([]storedSession, 0, len(sessions))
	for _, sess := range sessions {
		ss := storedSession{
			ID:       sess.ID,
			Title:    sess.Title,
			Messages: make([]storedMessage, 0, len(sess.Messages)),
		}
		for _, msg := range sess.Messages {
			ss.Messages = append(ss.Messages, storedMessage{
				ID:        msg.ID,
				Content:   msg.Content,
				IsUser:    msg.IsUser,
				Timestamp: msg.Timestamp.UnixMilli(),
				Context:   msg.Context,
			})
		}
		stored = append(stored, ss)
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeSessions(value string) ([]core.Session, error) {
	var stored []storedSession
	if err := json.Unmarshal([]byte(value), &stored); err != nil {
		return nil, err
	}

	sessions := make([]core.Session, 0, len(stored))
	for _, ss := range stored {
		sess := core.Session{
			ID:       ss.ID,
			Title:    ss.Title,
			Messages: make([]core.Message, 0, len(ss.Messages)),
		}
		for _, msg := range ss.Messages {
			sess.Messages = append(sess.Messages, core.Message{
				ID:        msg.ID,
				Content:   msg.Content,
				IsUser:    msg.IsUser,
				Timestamp: time.UnixMilli(msg.Timestamp),
				Context:   msg.Context,
			})
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}
