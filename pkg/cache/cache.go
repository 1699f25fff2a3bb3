// Package cache provides the key-value stores that sit in front of
// expensive upstream calls. Values are opaque strings.
package cache

import (
	"context"
	"time"
)

// Cache is safe for concurrent use. Get reports a miss with ok=false and a
// nil error; errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// expiration maps the configured TTL to a backend expiration where zero
// means the entry never expires.
func expiration(ttl time.Duration) time.Duration {
	if ttl < 0 {
		return 0
	}
	return ttl
}
