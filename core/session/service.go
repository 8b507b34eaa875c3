// Package session implements the session token lifecycle: issuing,
// validating, and revoking login sessions across the cache and the database.
//
// The public token has the form "{id}.{secret}". The id is a plain lookup
// key; the secret is the bearer credential, stored server-side only as a
// SHA-256 hash and compared exclusively in constant time. Validation returns
// a uniform null result for malformed, unknown, expired, and tampered tokens
// so an attacker gets no oracle; store unavailability surfaces as an error
// instead, because it is an infrastructure fault, not an authentication
// outcome.
package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/querypad/querypad/core/user"
	"github.com/querypad/querypad/pkg/secrets"
)

// UserSource supplies the public profile fields denormalized into the
// session record. Implemented by user.Repository.
type UserSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
}

// Service is the public session API composed from a Store, a UserSource,
// and the token primitives.
type Service struct {
	store Store
	users UserSource
	ttl   time.Duration
	log   *slog.Logger
}

// NewService creates a session service. The default TTL is 30 days.
func NewService(store Store, users UserSource, opts ...Option) *Service {
	s := &Service{
		store: store,
		users: users,
		ttl:   720 * time.Hour,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TTL returns the configured session lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Create issues a new session for the given user. The user's profile is read
// once here, the record is persisted, and only then is the token returned;
// a store failure means no token reaches the caller.
func (s *Service) Create(ctx context.Context, userID uuid.UUID) (Created, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return Created{}, errors.Join(ErrUserLookup, err)
	}

	id, err := secrets.NewRandomString(secrets.DefaultByteLength)
	if err != nil {
		return Created{}, errors.Join(ErrTokenGeneration, err)
	}
	secret, err := secrets.NewRandomString(secrets.DefaultByteLength)
	if err != nil {
		return Created{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	rec := Record{
		ID:         id,
		UUID:       uuid.New(),
		SecretHash: secrets.HashSecret(secret),
		User:       u,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}

	if err := s.store.Create(ctx, rec); err != nil {
		return Created{}, errors.Join(ErrSaveSession, err)
	}

	return Created{
		Token:     composeToken(id, secret),
		ID:        id,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

// Validate checks a raw token and returns the denormalized user and the
// session view, or (nil, nil, nil) for anything that is not a currently
// valid token. A non-nil error means a store could not answer and the
// request should fail with a 5xx, never a 401.
func (s *Service) Validate(ctx context.Context, token string) (*user.User, *Session, error) {
	id, secret, ok := ParseToken(token)
	if !ok {
		return nil, nil, nil
	}

	rec, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}

	if !secrets.ConstantTimeEqual(secrets.HashSecret(secret), rec.SecretHash) {
		return nil, nil, nil
	}

	u := rec.User
	return &u, &Session{
		ID:        rec.ID,
		UUID:      rec.UUID,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}, nil
}

// Delete revokes the session with the given public id in every store it was
// written to. Deleting an already-absent session succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}
