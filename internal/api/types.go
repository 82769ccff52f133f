// Package api defines the wire types of the SchemeNav conversation protocol.
package api

// StartRequest opens a new conversation session.
type StartRequest struct {
	UserQuery string `json:"user_query"`
}

// ContinueRequest adds a follow-up turn to an existing session.
type ContinueRequest struct {
	UserQuery string `json:"user_query"`
	UserID    string `json:"user_id"`
}

// ExchangeResponse is the reply to both /start and /continue.
// UserID is authoritative on /start only; it is echoed on /continue but
// clients never re-adopt it.
type ExchangeResponse struct {
	Message string `json:"message,omitempty"`
	UserID  string `json:"user_id,omitempty"`
}

// StatusResponse reports server liveness.
type StatusResponse struct {
	Status    string  `json:"status"`
	Timestamp float64 `json:"timestamp"`
}

// ErrorResponse carries a human-readable failure detail.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
