package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/querypad/querypad/core/session"
)

type mockDurable struct {
	mock.Mock
}

func (m *mockDurable) Insert(ctx context.Context, id, userID uuid.UUID, createdAt, expiresAt time.Time) error {
	args := m.Called(ctx, id, userID, createdAt, expiresAt)
	return args.Error(0)
}

func (m *mockDurable) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestDualStore_Create(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes cache then database row", func(t *testing.T) {
		t.Parallel()

		rec := newTestRecord(t, time.Hour)
		cache := &mockStore{}
		durable := &mockDurable{}
		cache.On("Create", mock.Anything, rec).Return(nil).Once()
		durable.On("Insert", mock.Anything, rec.UUID, rec.User.ID, rec.CreatedAt, rec.ExpiresAt).Return(nil).Once()

		dual := session.NewDualStore(cache, durable, nil)
		require.NoError(t, dual.Create(ctx, rec))

		cache.AssertExpectations(t)
		durable.AssertExpectations(t)
	})

	t.Run("cache failure aborts before the database write", func(t *testing.T) {
		t.Parallel()

		rec := newTestRecord(t, time.Hour)
		cacheErr := errors.New("cache down")
		cache := &mockStore{}
		durable := &mockDurable{} // Insert must never be called
		cache.On("Create", mock.Anything, rec).Return(cacheErr).Once()

		dual := session.NewDualStore(cache, durable, nil)
		require.ErrorIs(t, dual.Create(ctx, rec), cacheErr)

		cache.AssertExpectations(t)
		durable.AssertExpectations(t)
	})

	t.Run("row insert failure compensates with a cache delete", func(t *testing.T) {
		t.Parallel()

		rec := newTestRecord(t, time.Hour)
		dbErr := errors.New("db down")
		cache := &mockStore{}
		durable := &mockDurable{}
		cache.On("Create", mock.Anything, rec).Return(nil).Once()
		durable.On("Insert", mock.Anything, rec.UUID, rec.User.ID, rec.CreatedAt, rec.ExpiresAt).Return(dbErr).Once()
		cache.On("Delete", mock.Anything, rec.ID).Return(nil).Once()

		dual := session.NewDualStore(cache, durable, nil)
		require.ErrorIs(t, dual.Create(ctx, rec), dbErr)

		cache.AssertExpectations(t)
		durable.AssertExpectations(t)
	})

	t.Run("failed compensation still fails the operation", func(t *testing.T) {
		t.Parallel()

		rec := newTestRecord(t, time.Hour)
		dbErr := errors.New("db down")
		cache := &mockStore{}
		durable := &mockDurable{}
		cache.On("Create", mock.Anything, rec).Return(nil).Once()
		durable.On("Insert", mock.Anything, rec.UUID, rec.User.ID, rec.CreatedAt, rec.ExpiresAt).Return(dbErr).Once()
		cache.On("Delete", mock.Anything, rec.ID).Return(errors.New("cache down too")).Once()

		dual := session.NewDualStore(cache, durable, nil)
		require.ErrorIs(t, dual.Create(ctx, rec), dbErr)

		cache.AssertExpectations(t)
		durable.AssertExpectations(t)
	})
}

func TestDualStore_Get(t *testing.T) {
	t.Parallel()

	t.Run("consults only the cache", func(t *testing.T) {
		t.Parallel()

		rec := newTestRecord(t, time.Hour)
		cache := &mockStore{}
		durable := &mockDurable{} // no calls expected
		cache.On("Get", mock.Anything, rec.ID).Return(rec, nil).Once()

		dual := session.NewDualStore(cache, durable, nil)
		got, err := dual.Get(context.Background(), rec.ID)
		require.NoError(t, err)
		require.Equal(t, rec, got)

		cache.AssertExpectations(t)
		durable.AssertExpectations(t)
	})
}

func TestDualStore_Delete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("cache entry goes first, then the database row", func(t *testing.T) {
		t.Parallel()

		rec := newTestRecord(t, time.Hour)
		cache := &mockStore{}
		durable := &mockDurable{}

		cacheDeleted := false
		cache.On("Get", mock.Anything, rec.ID).Return(rec, nil).Once()
		cache.On("Delete", mock.Anything, rec.ID).Run(func(mock.Arguments) {
			cacheDeleted = true
		}).Return(nil).Once()
		durable.On("Delete", mock.Anything, rec.UUID).Run(func(mock.Arguments) {
			require.True(t, cacheDeleted, "database row deleted before the cache entry")
		}).Return(nil).Once()

		dual := session.NewDualStore(cache, durable, nil)
		require.NoError(t, dual.Delete(ctx, rec.ID))

		cache.AssertExpectations(t)
		durable.AssertExpectations(t)
	})

	t.Run("absent cache entry is a no-op", func(t *testing.T) {
		t.Parallel()

		cache := &mockStore{}
		durable := &mockDurable{} // no calls expected
		cache.On("Get", mock.Anything, "gone").Return(session.Record{}, session.ErrNotFound).Once()

		dual := session.NewDualStore(cache, durable, nil)
		require.NoError(t, dual.Delete(ctx, "gone"))

		cache.AssertExpectations(t)
		durable.AssertExpectations(t)
	})

	t.Run("row delete failure is surfaced", func(t *testing.T) {
		t.Parallel()

		rec := newTestRecord(t, time.Hour)
		dbErr := errors.New("db down")
		cache := &mockStore{}
		durable := &mockDurable{}
		cache.On("Get", mock.Anything, rec.ID).Return(rec, nil).Once()
		cache.On("Delete", mock.Anything, rec.ID).Return(nil).Once()
		durable.On("Delete", mock.Anything, rec.UUID).Return(dbErr).Once()

		dual := session.NewDualStore(cache, durable, nil)
		require.ErrorIs(t, dual.Delete(ctx, rec.ID), dbErr)
	})
}
