package user

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestRelayAuthError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		code string
		want error
	}{
		{"invalid credentials", "AU001", ErrInvalidCredentials},
		{"account locked", "AU002", ErrAccountLocked},
		{"weak password", "AU003", ErrWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := relayAuthError(&pgconn.PgError{Code: tt.code, Message: tt.name})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("unknown sqlstate passes through", func(t *testing.T) {
		t.Parallel()

		orig := &pgconn.PgError{Code: "23505"}
		err := relayAuthError(orig)
		assert.ErrorIs(t, err, orig)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("non-pg error passes through", func(t *testing.T) {
		t.Parallel()

		orig := errors.New("broken pipe")
		assert.ErrorIs(t, relayAuthError(orig), orig)
	})
}
