// Package sessiontransport connects the HTTP layer to the session core. The
// middleware extracts the raw token from the session cookie, asks the session
// service to validate it, and attaches the result to the request context. It
// is the routing layer's job, not this package's, to turn an unauthenticated
// context into a 401; the one distinction enforced here is that a store
// outage answers 503, never 401.
package sessiontransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/querypad/querypad/core/cookie"
	"github.com/querypad/querypad/core/logger"
	"github.com/querypad/querypad/core/session"
	"github.com/querypad/querypad/core/user"
)

// Validator is the session service surface the transport needs.
type Validator interface {
	Validate(ctx context.Context, token string) (*user.User, *session.Session, error)
}

// Cookie is the cookie-based session transport.
type Cookie struct {
	validator Validator
	cookies   *cookie.Builder
	log       *slog.Logger
}

// NewCookie creates a cookie-based session transport.
func NewCookie(v Validator, cookies *cookie.Builder, log *slog.Logger) *Cookie {
	return &Cookie{validator: v, cookies: cookies, log: log}
}

// Middleware resolves the session for every request. Requests without a
// valid session proceed unauthenticated; a store failure short-circuits
// with 503 Service Unavailable.
func (c *Cookie) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := c.cookies.Read(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			u, sess, err := c.validator.Validate(r.Context(), token)
			if err != nil {
				c.log.ErrorContext(r.Context(), "session store unavailable",
					logger.Component("sessiontransport"),
					logger.Error(err),
				)
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
			if u == nil || sess == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := withAuth(r.Context(), u, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects unauthenticated requests with 401. Mount it after the
// transport middleware on protected routes.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := UserFromContext(r.Context()); !ok {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
