package session

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/querypad/querypad/core/logger"
)

// DualStore orchestrates the cache (fast path, TTL-bearing, authoritative for
// validate-ability) and the database row (durable bookkeeping for
// row-level-security context). The two stores have no transaction
// coordinator; consistency is kept by compensating deletes on partial writes
// and by a fail-safe delete ordering.
type DualStore struct {
	cache   Store
	durable DurableStore
	log     *slog.Logger
}

// NewDualStore composes the cache store and the durable row store.
func NewDualStore(cache Store, durable DurableStore, log *slog.Logger) *DualStore {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DualStore{cache: cache, durable: durable, log: log}
}

// Create writes the cache record first, then the database row. If the row
// insert fails the cache write is compensated with a delete so the whole
// operation fails atomically from the caller's point of view. A failed
// compensation leaves an orphaned cache record; that is logged for
// out-of-band cleanup rather than retried inline, since retrying a
// half-applied write risks double-writing.
func (d *DualStore) Create(ctx context.Context, rec Record) error {
	if err := d.cache.Create(ctx, rec); err != nil {
		return err
	}

	if err := d.durable.Insert(ctx, rec.UUID, rec.User.ID, rec.CreatedAt, rec.ExpiresAt); err != nil {
		if compErr := d.cache.Delete(ctx, rec.ID); compErr != nil {
			d.log.ErrorContext(ctx, "compensating cache delete failed, orphaned session record needs cleanup",
				logger.Component("session.dualstore"),
				slog.String("session_uuid", rec.UUID.String()),
				logger.Error(compErr),
			)
		}
		return err
	}

	return nil
}

// Get consults only the cache; the database row carries no secret material
// and cannot answer a validation on its own.
func (d *DualStore) Get(ctx context.Context, id string) (Record, error) {
	return d.cache.Get(ctx, id)
}

// Delete reads the session UUID from the cache record, removes the cache
// entry, then removes the database row. Cache first: a crash between the two
// steps leaves an orphaned database row, which grants no access because the
// secret hash is gone with the cache entry. The reverse order could leave a
// live cache entry pointing at deleted row-level-security context.
func (d *DualStore) Delete(ctx context.Context, id string) error {
	rec, err := d.cache.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}

	if err := d.cache.Delete(ctx, id); err != nil {
		return err
	}

	if err := d.durable.Delete(ctx, rec.UUID); err != nil {
		d.log.WarnContext(ctx, "session row delete failed after cache delete, orphaned row needs cleanup",
			logger.Component("session.dualstore"),
			slog.String("session_uuid", rec.UUID.String()),
			logger.Error(err),
		)
		return err
	}

	return nil
}
