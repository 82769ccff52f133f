// Package server exposes the SchemeNav conversation API over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/schemenav/schemenav/internal/api"
	"github.com/schemenav/schemenav/internal/sessions"
)

// EmptyAnswerReply replaces an empty responder answer so a successful
// exchange never yields an empty message.
const EmptyAnswerReply = "Sorry, something went wrong."

// Responder produces an answer for one conversation turn.
// Implemented by pipeline.Pipeline; faked in tests.
type Responder interface {
	Respond(ctx context.Context, userID, query string, history []sessions.Message) (string, error)
}

// Server is the SchemeNav HTTP server.
type Server struct {
	httpServer *http.Server
	store      sessions.Store
	responder  Responder
}

// NewServer creates a server around a session store and a responder.
func NewServer(store sessions.Store, responder Responder, host string, port int) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	s := &Server{
		store:     store,
		responder: responder,
	}

	// Routes
	r.Get("/status", s.handleStatus)
	r.Post("/start", s.handleStart)
	r.Post("/continue", s.handleContinue)
	r.Get("/sessions", s.handleSessions)

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", host, port),
		Handler: r,
	}

	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening. It blocks until the server is stopped.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	slog.Info("SchemeNav server listening", "addr", ln.Addr().String())
	return s.httpServer.Serve(ln)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.StatusResponse{
		Status:    "ok",
		Timestamp: float64(time.Now().UnixNano()) / 1e9,
	})
}

// handleStart opens a new session and answers the first query.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	var req api.StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.UserQuery) == "" {
		writeError(w, http.StatusBadRequest, "'user_query' is required.")
		return
	}

	sess, err := s.store.Create()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not create session")
		return
	}

	s.answer(r.Context(), w, sess.ID, req.UserQuery, nil)
}

// handleContinue answers a follow-up turn of an existing session.
func (s *Server) handleContinue(w http.ResponseWriter, r *http.Request) {
	var req api.ContinueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		strings.TrimSpace(req.UserQuery) == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "'user_id' and 'user_query' are required.")
		return
	}

	history, err := s.store.History(req.UserID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User session not found. Please start a new conversation.")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not load session")
		return
	}

	s.answer(r.Context(), w, req.UserID, req.UserQuery, history)
}

// answer runs the responder for one turn, saves both sides to the
// session buffer, and writes the exchange response.
func (s *Server) answer(ctx context.Context, w http.ResponseWriter, userID, query string, history []sessions.Message) {
	reply, err := s.responder.Respond(ctx, userID, query, history)
	if err != nil {
		slog.Error("responder failed", "user_id", userID, "error", err)
		writeError(w, http.StatusInternalServerError, "could not produce an answer")
		return
	}
	if reply == "" {
		reply = EmptyAnswerReply
	}

	if err := s.store.Append(userID, sessions.Message{Role: "user", Content: query}); err != nil {
		slog.Warn("could not save user turn", "user_id", userID, "error", err)
	}
	if err := s.store.Append(userID, sessions.Message{Role: "assistant", Content: reply}); err != nil {
		slog.Warn("could not save assistant turn", "user_id", userID, "error", err)
	}

	writeJSON(w, http.StatusOK, api.ExchangeResponse{
		Message: reply,
		UserID:  userID,
	})
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, api.ErrorResponse{Detail: detail})
}
