package workbench

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/querypad/querypad/core/cookie"
	"github.com/querypad/querypad/core/logger"
	"github.com/querypad/querypad/core/session"
	"github.com/querypad/querypad/core/sessiontransport"
	"github.com/querypad/querypad/core/user"
)

const maxBodyBytes = 1 << 16

// userDirectory is the user repository surface the handlers need.
type userDirectory interface {
	Authenticate(ctx context.Context, username, password string) (user.User, error)
	Register(ctx context.Context, username, password string) (user.User, error)
}

// sessionIssuer is the session service surface the handlers need.
type sessionIssuer interface {
	Create(ctx context.Context, userID uuid.UUID) (session.Created, error)
	Delete(ctx context.Context, id string) error
}

// Handler implements the authentication and profile endpoints.
type Handler struct {
	users    userDirectory
	sessions sessionIssuer
	cookies  *cookie.Builder
	log      *slog.Logger
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type meResponse struct {
	User      user.User `json:"user"`
	ExpiresAt time.Time `json:"session_expires_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Register creates an account via the auth_register procedure and logs the
// new user straight in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	u, err := h.users.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondAuthError(w, r, err)
		return
	}

	h.issueSession(w, r, u, http.StatusCreated)
}

// Login verifies credentials via the auth_login procedure and issues a
// session cookie.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondAuthError(w, r, err)
		return
	}

	h.issueSession(w, r, u, http.StatusOK)
}

// Logout revokes the session named by the cookie and expires the cookie.
// A request without a valid session cookie still gets the expired cookie
// and a success answer.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := h.cookies.Read(r)
	if !ok {
		h.cookies.Clear(w)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	id, _, ok := session.ParseToken(token)
	if !ok {
		h.cookies.Clear(w)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.sessions.Delete(r.Context(), id); err != nil {
		h.log.ErrorContext(r.Context(), "session revocation failed",
			logger.Component("handler"),
			logger.Error(err),
		)
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "could not revoke session"})
		return
	}

	h.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the authenticated user's profile from the request context. The
// session middleware has already validated the cookie; no store access here.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u, ok := sessiontransport.UserFromContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	sess, _ := sessiontransport.SessionFromContext(r.Context())

	resp := meResponse{User: *u}
	if sess != nil {
		resp.ExpiresAt = sess.ExpiresAt
	}
	respondJSON(w, http.StatusOK, resp)
}

// issueSession creates a session for the user, sets the cookie, and answers
// with the profile. A store failure means no cookie reaches the client.
func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, u user.User, status int) {
	created, err := h.sessions.Create(r.Context(), u.ID)
	if err != nil {
		h.log.ErrorContext(r.Context(), "session creation failed",
			logger.Component("handler"),
			logger.UserID(u.ID.String()),
			logger.Error(err),
		)
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "could not create session"})
		return
	}

	h.cookies.Set(w, created.Token, created.ExpiresAt)
	respondJSON(w, status, u)
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return credentialsRequest{}, false
	}
	if req.Username == "" || req.Password == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "username and password are required"})
		return credentialsRequest{}, false
	}
	return req, true
}

// respondAuthError maps account errors onto HTTP statuses. Anything not
// recognized is an infrastructure fault and answers 503.
func (h *Handler) respondAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "invalid credentials"})
	case errors.Is(err, user.ErrAccountLocked):
		respondJSON(w, http.StatusLocked, errorResponse{Error: "account is locked"})
	case errors.Is(err, user.ErrWeakPassword):
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "password does not meet policy"})
	case errors.Is(err, user.ErrDuplicateAccount):
		respondJSON(w, http.StatusConflict, errorResponse{Error: "username is already taken"})
	default:
		h.log.ErrorContext(r.Context(), "authentication backend failure",
			logger.Component("handler"),
			logger.Error(err),
		)
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "authentication is temporarily unavailable"})
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
