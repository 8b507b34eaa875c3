package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/querypad/querypad/core/user"
)

// Record is the server-side session state as persisted in the stores.
// Sessions are immutable after creation except for deletion, so a Record is
// written once and only ever read back or removed.
type Record struct {
	// ID is the public lookup key: the non-secret half of the token and the
	// cache key. It carries no proof of possession on its own.
	ID string

	// UUID is the database-side row identifier, decoupled from ID so the
	// row-level-security context stays stable regardless of cache key churn.
	UUID uuid.UUID

	// SecretHash is the SHA-256 digest of the bearer secret. The pre-image
	// is never persisted anywhere.
	SecretHash []byte

	// User holds the identity fields denormalized at creation time so
	// per-request validation avoids a join on the hot path.
	User user.User

	CreatedAt time.Time
	ExpiresAt time.Time
}

// Session is the validated view handed back to the routing layer.
type Session struct {
	// ID is the cache key, used for a later Delete.
	ID string
	// UUID is the value a database connection sets as its row-level-security
	// context. This package produces the value but never sets the context.
	UUID      uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Created is the result of issuing a new session. Token is the only place
// the bearer secret ever appears; it goes straight to the client cookie.
type Created struct {
	Token     string
	ID        string
	ExpiresAt time.Time
}
