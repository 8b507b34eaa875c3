package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the persistence contract for session records. Implementations
// must return ErrNotFound for any record that is absent, whether it never
// existed or expired; callers never learn the difference.
type Store interface {
	// Create persists a record. It must not report success unless the record
	// is durably retrievable from every store it was registered in.
	Create(ctx context.Context, rec Record) error
	// Get returns the record for the given public id.
	Get(ctx context.Context, id string) (Record, error)
	// Delete removes the record from every store it was written to.
	// Deleting an absent record is not an error.
	Delete(ctx context.Context, id string) error
}

// DurableStore is the durable half of the dual-store arrangement: the
// database row keyed by the session UUID that anchors row-level-security
// context. It grants no access on its own because the bearer secret's hash
// lives only in the cache.
type DurableStore interface {
	Insert(ctx context.Context, id, userID uuid.UUID, createdAt, expiresAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}
