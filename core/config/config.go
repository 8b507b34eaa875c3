// Package config provides type-safe environment variable loading with
// per-type caching. A .env file, when present, is loaded once before the
// first parse; real environment variables always win over file values.
package config

import (
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	mu    sync.Mutex
	cache = make(map[string]any)
)

// Load parses environment variables into cfg. Each configuration type is
// parsed only once per process; later calls for the same type receive the
// cached value.
func Load[T any](cfg *T) error {
	dotenvOnce.Do(func() {
		// Missing .env is the normal production case, not an error.
		_ = godotenv.Load()
	})

	key := fmt.Sprintf("%T", *cfg)

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[key]; ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse %s from environment: %w", key, err)
	}

	cache[key] = *cfg
	return nil
}

// MustLoad is Load that panics on failure. Intended for process startup
// where a missing required variable should stop the boot.
func MustLoad[T any](cfg *T) {
	if err := Load[T](cfg); err != nil {
		panic(err)
	}
}
