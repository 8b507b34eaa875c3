// Package startup gates the service on its external dependencies. WaitReady
// probes every store the session core depends on and returns only once all of
// them answer, so request handling never begins against an unreachable store.
// Serving session validation without the stores would look like a mass
// authentication outage, indistinguishable from a security incident, which is
// why exhaustion is fatal to the caller rather than a degraded mode.
package startup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/querypad/querypad/core/logger"
)

// Check is a single dependency probe: a lightweight liveness call such as
// SELECT 1 for the database or PING for the cache.
type Check struct {
	Name  string
	Probe func(context.Context) error
}

// Config bounds the per-dependency retry policy.
type Config struct {
	// BaseInterval is the first backoff interval; it doubles per attempt.
	BaseInterval time.Duration `env:"STARTUP_PROBE_BASE_INTERVAL" envDefault:"100ms"`
	// MaxInterval caps the spacing between attempts.
	MaxInterval time.Duration `env:"STARTUP_PROBE_MAX_INTERVAL" envDefault:"5s"`
	// MaxAttempts bounds the total probe count per dependency.
	MaxAttempts uint64 `env:"STARTUP_PROBE_MAX_ATTEMPTS" envDefault:"20"`
}

// ErrNotReady is returned when a dependency stays unreachable through all
// attempts. Callers must treat it as fatal and not start accepting traffic.
var ErrNotReady = errors.New("dependency did not become ready")

// WaitReady probes all checks concurrently, each under exponential backoff
// from cfg.BaseInterval capped at cfg.MaxInterval, giving up after
// cfg.MaxAttempts attempts. Total startup latency is bounded by the slowest
// single dependency, not the sum. The first exhausted check fails the whole
// wait.
func WaitReady(ctx context.Context, log *slog.Logger, cfg Config, checks ...Check) error {
	maxAttempts := cfg.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = 1
	}

	g, ctx := errgroup.WithContext(ctx)

	for _, c := range checks {
		g.Go(func() error {
			start := time.Now()
			attempt := 0

			backoff := retry.WithMaxRetries(maxAttempts-1,
				retry.WithCappedDuration(cfg.MaxInterval,
					retry.NewExponential(cfg.BaseInterval)))

			err := retry.Do(ctx, backoff, func(ctx context.Context) error {
				attempt++
				if err := c.Probe(ctx); err != nil {
					log.WarnContext(ctx, "dependency not ready yet",
						logger.Component("startup"),
						slog.String("dependency", c.Name),
						logger.RetryCount(attempt),
						logger.Error(err),
					)
					return retry.RetryableError(err)
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("%w: %s after %d attempts: %w", ErrNotReady, c.Name, attempt, err)
			}

			log.InfoContext(ctx, "dependency ready",
				logger.Component("startup"),
				slog.String("dependency", c.Name),
				logger.RetryCount(attempt),
				logger.Elapsed(start),
			)
			return nil
		})
	}

	return g.Wait()
}
