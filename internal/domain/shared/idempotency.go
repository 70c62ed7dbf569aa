package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys so that retried mutations
// (point-of-sale clients resubmitting after a timeout) are not applied twice.
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks whether a key has already been processed.
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release forgets a key before its TTL expires. Called when the guarded
	// operation fails, so the client's retry is not rejected.
	Release(ctx context.Context, key string) error

	// Close releases the store's resources.
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a processed key is remembered. After it expires the
	// same key is accepted again.
	TTL time.Duration

	// Enabled toggles idempotency checking.
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
