// Package sessions provides server-side conversation memory for SchemeNav.
package sessions

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a session id is unknown.
var ErrNotFound = errors.New("session not found")

// Session holds metadata about a conversation session.
type Session struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	MessageCount int       `json:"message_count"`
}

// Message is a single turn in a conversation buffer.
type Message struct {
	Role    string    `json:"role"` // "user" or "assistant"
	Content string    `json:"content"`
	Ts      time.Time `json:"ts"`
}

// Store defines the conversation memory interface. Sessions live for
// the server process lifetime; ids are opaque to clients.
type Store interface {
	Create() (*Session, error)
	Get(id string) (*Session, error)
	List() ([]*Session, error)
	Append(id string, msg Message) error
	History(id string) ([]Message, error)
}
