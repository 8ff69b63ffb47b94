package core

import "time"

const (
	AppName      = "ragchat"
	AppUserAgent = "ragchat/0.1"
	AppVersion   = "0.1.0"

	// DefaultSessionID is the single reserved conversation identifier.
	// Every send is transmitted and persisted under this id, whatever
	// session the UI believes it is targeting.
	DefaultSessionID = "default"
)

// Message is a single entry in a session. Once appended it is never
// modified; order within a session is append order.
type Message struct {
	ID        string
	Content   string
	IsUser    bool
	Timestamp time.Time
	// Context carries the retrieved-context trace of an assistant
	// answer. Empty for user messages.
	Context string
}

// Session is a titled, ordered sequence of messages with a stable id.
// Title is set once, when the session is created.
type Session struct {
	ID       string
	Title    string
	Messages []Message
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AuthState struct {
	User            *User `json:"user"`
	IsAuthenticated bool  `json:"isAuthenticated"`
}
