package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a Locker.
type UnlockFunc func(ctx context.Context) error

// Locker serialises work on a key across simulator replicas, so a seeded
// scenario requested twice at once is computed only once.
type Locker interface {
	// Lock blocks until the lock on key is held or ctx is done.
	// Returns an UnlockFunc that MUST be called to release the lock.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
