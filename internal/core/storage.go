package core

import "context"

// KV is the durable key-value store behind session and auth state.
// Values are opaque serialized blobs owned by their writers.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Reserved KV keys. Each holds one JSON document.
const (
	SessionsKey = "chatbot_sessions"
	AuthKey     = "chatbot_auth"
)
