// Package conversation owns the client-side message log and the
// single-flight exchange state machine.
package conversation

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/schemenav/schemenav/internal/api"
)

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Fixed user-visible texts. Transport errors are never shown directly.
const (
	FallbackReply = "Sorry, I didn't get a response. Please try again."
	FailureReply  = "Sorry, something went wrong. Please try again."
)

// ErrRejected is returned by Ask when a submission is refused
// (empty query or an exchange already in flight).
var ErrRejected = errors.New("submission rejected")

// Message is one entry of the conversation log. Finalized messages
// (Pending=false) are immutable; at most one pending assistant
// placeholder exists at any time.
type Message struct {
	Role    Role
	Content string
	Pending bool
}

// Exchanger performs one network exchange per call. Implemented by
// rest.Client; faked in tests.
type Exchanger interface {
	Start(ctx context.Context, query string) (api.ExchangeResponse, error)
	Continue(ctx context.Context, query, userID string) (api.ExchangeResponse, error)
}

// Turn is the dispatch snapshot captured when a submission is accepted.
// An empty UserID means the exchange must go through Start.
type Turn struct {
	Query  string
	UserID string
}

// Controller sequences exchanges against a backend and reconciles the
// optimistic message log with responses. All mutable state is owned
// here and guarded by mu; Exchange itself touches none of it, so the
// network call can run off the caller's event loop.
type Controller struct {
	client Exchanger

	mu       sync.Mutex
	messages []Message
	awaiting bool
	userID   string
}

// NewController creates a controller around the given exchanger.
func NewController(client Exchanger) *Controller {
	return &Controller{client: client}
}

// Submit validates a query and records the optimistic turn: a finalized
// user message followed by a pending assistant placeholder. It returns
// the dispatch snapshot and true on acceptance. Empty queries and
// submissions while an exchange is in flight are rejected.
func (c *Controller) Submit(query string) (Turn, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Turn{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.awaiting {
		return Turn{}, false
	}

	c.messages = append(c.messages,
		Message{Role: RoleUser, Content: query},
		Message{Role: RoleAssistant, Pending: true},
	)
	c.awaiting = true

	return Turn{Query: query, UserID: c.userID}, true
}

// Exchange performs the network call for an accepted turn. Dispatch is
// decided by the snapshot: no held session id means Start, otherwise
// Continue. Controller state is not touched, so this is safe to run
// concurrently with readers.
func (c *Controller) Exchange(ctx context.Context, t Turn) (api.ExchangeResponse, error) {
	if t.UserID == "" {
		return c.client.Start(ctx, t.Query)
	}
	return c.client.Continue(ctx, t.Query, t.UserID)
}

// Resolve settles the in-flight exchange: the pending placeholder is
// replaced in place with the reply (or a fixed fallback when the reply
// carries no message), and on the first successful exchange the session
// id is adopted. Adoption is one-time; a user id echoed on later
// responses is ignored. On failure the placeholder becomes a generic
// failure notice and the error goes to the log only.
func (c *Controller) Resolve(resp api.ExchangeResponse, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.awaiting {
		return
	}
	c.awaiting = false

	content := FailureReply
	if err != nil {
		slog.Error("exchange failed", "error", err)
	} else {
		content = resp.Message
		if content == "" {
			content = FallbackReply
		}
		if c.userID == "" && resp.UserID != "" {
			c.userID = resp.UserID
		}
	}

	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Pending {
			c.messages[i] = Message{Role: RoleAssistant, Content: content}
			break
		}
	}
}

// Ask runs a full turn synchronously: submit, exchange, resolve. It
// returns the finalized assistant reply. The transport error, if any,
// is returned alongside the generic notice already placed in the log.
func (c *Controller) Ask(ctx context.Context, query string) (string, error) {
	turn, ok := c.Submit(query)
	if !ok {
		return "", ErrRejected
	}

	resp, err := c.Exchange(ctx, turn)
	c.Resolve(resp, err)

	msgs := c.Messages()
	return msgs[len(msgs)-1].Content, err
}

// Messages returns a copy of the conversation log in display order.
func (c *Controller) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Awaiting reports whether an exchange is in flight.
func (c *Controller) Awaiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.awaiting
}

// UserID returns the adopted session identifier, or "" before the
// first successful start.
func (c *Controller) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}
