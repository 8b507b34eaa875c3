package sessiontransport

import (
	"context"

	"github.com/querypad/querypad/core/session"
	"github.com/querypad/querypad/core/user"
)

// Unexported key types avoid context key collisions.
type (
	userContextKey    struct{}
	sessionContextKey struct{}
)

// withAuth attaches the validated user and session to the context.
func withAuth(ctx context.Context, u *user.User, sess *session.Session) context.Context {
	ctx = context.WithValue(ctx, userContextKey{}, u)
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(userContextKey{}).(*user.User)
	return u, ok && u != nil
}

// SessionFromContext returns the validated session, if any. Its UUID is the
// value to set as the database row-level-security context.
func SessionFromContext(ctx context.Context) (*session.Session, bool) {
	s, ok := ctx.Value(sessionContextKey{}).(*session.Session)
	return s, ok && s != nil
}
