package interfaces

import (
	"context"
	"time"
)

// KVStore is a plain key-value store without transactions or compare-and-swap.
type KVStore interface {
	// Get returns nil and no error when key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value. ttl <= 0 means no expiry.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
