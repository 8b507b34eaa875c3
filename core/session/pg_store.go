package session

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/querypad/querypad/integration/database/pg"
)

// PGStore is the database-only store variant: one relational query with a
// user join on every validation, in exchange for a single dependency to
// operate. Expiry is enforced with a time-bound filter on read instead of
// physical deletion.
type PGStore struct {
	db *pgxpool.Pool
}

// NewPGStore creates a PostgreSQL-backed session store.
func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Create inserts the full record, secret hash included, into the sessions table.
func (p *PGStore) Create(ctx context.Context, rec Record) error {
	if !rec.ExpiresAt.After(time.Now()) {
		return ErrNotInFuture
	}

	_, err := p.db.Exec(ctx,
		`INSERT INTO sessions (id, token_id, secret_hash, user_id, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.UUID, rec.ID, hex.EncodeToString(rec.SecretHash), rec.User.ID, rec.CreatedAt, rec.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert session row: %w", err)
	}
	return nil
}

// Get joins the user row and filters out expired sessions in the query, so
// an expired session is indistinguishable from one that never existed.
func (p *PGStore) Get(ctx context.Context, id string) (Record, error) {
	var (
		rec        Record
		secretHash string
	)
	err := p.db.QueryRow(ctx,
		`SELECT s.id, s.secret_hash, s.created_at, s.expires_at,
		        u.id, u.username, u.role, u.is_verified
		 FROM sessions s
		 JOIN users u ON u.id = s.user_id
		 WHERE s.token_id = $1 AND s.expires_at > now()`,
		id,
	).Scan(
		&rec.UUID, &secretHash, &rec.CreatedAt, &rec.ExpiresAt,
		&rec.User.ID, &rec.User.Username, &rec.User.Role, &rec.User.Verified,
	)
	if err != nil {
		if pg.IsNotFoundError(err) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("select session row: %w", err)
	}

	rec.ID = id
	rec.SecretHash, err = hex.DecodeString(secretHash)
	if err != nil {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Delete removes the session row by its public token id.
func (p *PGStore) Delete(ctx context.Context, id string) error {
	if _, err := p.db.Exec(ctx, `DELETE FROM sessions WHERE token_id = $1`, id); err != nil {
		return fmt.Errorf("delete session row: %w", err)
	}
	return nil
}

// SessionRows is the durable half of the dual store: bare bookkeeping rows
// keyed by the session UUID, used only to anchor row-level-security context.
// No secret material is written here.
type SessionRows struct {
	db *pgxpool.Pool
}

// NewSessionRows creates the durable-row accessor for the dual store.
func NewSessionRows(db *pgxpool.Pool) *SessionRows {
	return &SessionRows{db: db}
}

// Insert records the session row. The expires_at bound is provisioned with
// the same nominal TTL as the cache key so the two stores cannot diverge.
func (s *SessionRows) Insert(ctx context.Context, id, userID uuid.UUID, createdAt, expiresAt time.Time) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO sessions (id, user_id, created_at, expires_at)
		 VALUES ($1, $2, $3, $4)`,
		id, userID, createdAt, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("insert session row: %w", err)
	}
	return nil
}

// Delete removes the session row by UUID.
func (s *SessionRows) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session row: %w", err)
	}
	return nil
}
