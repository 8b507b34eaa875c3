package session

import (
	"log/slog"
	"time"
)

// Store variant selectors for Config.Store.
const (
	StoreDual     = "dual"     // redis cache + postgres bookkeeping (default)
	StorePostgres = "postgres" // single-store: postgres only, join on every read
)

// Config holds session service configuration.
type Config struct {
	// TTL is the session lifetime. The cache key TTL and the database row's
	// expires_at are both provisioned from this single value so the two
	// stores cannot diverge.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"720h"`

	// Store selects the store variant: "dual" trades a second dependency for
	// cache-speed validation; "postgres" trades a per-request join for having
	// one store to operate.
	Store string `env:"SESSION_STORE" envDefault:"dual"`
}

// Option is a functional option for configuring the session service.
type Option func(*Service)

// WithTTL sets the session time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger used for partial-write and cleanup reporting.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}
