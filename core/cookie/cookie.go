// Package cookie formats the session cookie headers. The builder is pure
// string formatting with no I/O; its whole contract is exact attribute
// presence, because a missing HttpOnly or Secure flag is a security
// regression even when the token handling itself is sound.
package cookie

import (
	"net/http"
	"net/url"
	"time"
)

// Builder produces Set-Cookie headers for the session cookie and its
// logout counterpart.
type Builder struct {
	name   string
	secure bool
}

// New creates a cookie builder. The Secure attribute is emitted only when
// secure is true; local development over plain HTTP sets it to false.
func New(cfg Config) *Builder {
	name := cfg.Name
	if name == "" {
		name = "session"
	}
	return &Builder{name: name, secure: cfg.Secure}
}

// Name returns the cookie name the builder was configured with.
func (b *Builder) Name() string {
	return b.name
}

// Session builds the cookie carrying the token, URL-encoded, expiring with
// the session: Path=/, HttpOnly, SameSite=Lax, Secure outside development.
func (b *Builder) Session(token string, expiresAt time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     b.name,
		Value:    url.QueryEscape(token),
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   b.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Expired builds the cookie that immediately expires the session cookie on
// the client (epoch-zero Expires), used for logout.
func (b *Builder) Expired() *http.Cookie {
	return &http.Cookie{
		Name:     b.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   b.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// SessionHeader returns the literal Set-Cookie header value for a session.
func (b *Builder) SessionHeader(token string, expiresAt time.Time) string {
	return b.Session(token, expiresAt).String()
}

// ExpiredHeader returns the literal Set-Cookie header value for logout.
func (b *Builder) ExpiredHeader() string {
	return b.Expired().String()
}

// Set writes the session cookie to the response.
func (b *Builder) Set(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, b.Session(token, expiresAt))
}

// Clear writes the expiring cookie to the response.
func (b *Builder) Clear(w http.ResponseWriter) {
	http.SetCookie(w, b.Expired())
}

// Read extracts the raw token from the request cookie, URL-decoded.
// ok is false when the cookie is absent or its value does not decode.
func (b *Builder) Read(r *http.Request) (token string, ok bool) {
	c, err := r.Cookie(b.name)
	if err != nil || c.Value == "" {
		return "", false
	}
	token, err = url.QueryUnescape(c.Value)
	if err != nil {
		return "", false
	}
	return token, true
}
