package startup_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querypad/querypad/core/startup"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastConfig() startup.Config {
	return startup.Config{
		BaseInterval: time.Millisecond,
		MaxInterval:  5 * time.Millisecond,
		MaxAttempts:  20,
	}
}

func TestWaitReady(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("succeeds immediately when all dependencies answer", func(t *testing.T) {
		t.Parallel()

		err := startup.WaitReady(ctx, discardLogger(), fastConfig(),
			startup.Check{Name: "postgres", Probe: func(context.Context) error { return nil }},
			startup.Check{Name: "redis", Probe: func(context.Context) error { return nil }},
		)
		require.NoError(t, err)
	})

	t.Run("succeeds once a dependency becomes reachable on the nth probe", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		probe := func(context.Context) error {
			if calls.Add(1) < 5 {
				return errors.New("connection refused")
			}
			return nil
		}

		err := startup.WaitReady(ctx, discardLogger(), fastConfig(),
			startup.Check{Name: "postgres", Probe: probe})
		require.NoError(t, err)
		assert.Equal(t, int32(5), calls.Load())
	})

	t.Run("exhausts the attempt cap and fails, never looping indefinitely", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		probe := func(context.Context) error {
			calls.Add(1)
			return errors.New("connection refused")
		}

		cfg := fastConfig()
		cfg.MaxAttempts = 4

		err := startup.WaitReady(ctx, discardLogger(), cfg,
			startup.Check{Name: "redis", Probe: probe})
		require.ErrorIs(t, err, startup.ErrNotReady)
		assert.Equal(t, int32(4), calls.Load())
	})

	t.Run("probes dependencies concurrently", func(t *testing.T) {
		t.Parallel()

		// Two probes that each block until the other has started can only
		// both succeed on the first attempt if they run concurrently.
		aStarted := make(chan struct{})
		bStarted := make(chan struct{})
		var aOnce, bOnce sync.Once

		wait := func(once *sync.Once, started chan struct{}, other <-chan struct{}) func(context.Context) error {
			return func(ctx context.Context) error {
				once.Do(func() { close(started) })
				select {
				case <-other:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(100 * time.Millisecond):
					return errors.New("peer probe never started")
				}
			}
		}

		cfg := fastConfig()
		cfg.MaxAttempts = 2

		err := startup.WaitReady(ctx, discardLogger(), cfg,
			startup.Check{Name: "a", Probe: wait(&aOnce, aStarted, bStarted)},
			startup.Check{Name: "b", Probe: wait(&bOnce, bStarted, aStarted)},
		)
		require.NoError(t, err)
	})

	t.Run("one failing dependency fails the whole wait", func(t *testing.T) {
		t.Parallel()

		cfg := fastConfig()
		cfg.MaxAttempts = 2

		err := startup.WaitReady(ctx, discardLogger(), cfg,
			startup.Check{Name: "postgres", Probe: func(context.Context) error { return nil }},
			startup.Check{Name: "redis", Probe: func(context.Context) error { return errors.New("down") }},
		)
		require.ErrorIs(t, err, startup.ErrNotReady)
		assert.Contains(t, err.Error(), "redis")
	})
}
