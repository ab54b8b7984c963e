package contracts

import (
	"context"
	"time"
)

// LockerService is a Redis-backed advisory lock. TryLock returns the owner
// token required to Unlock; a false first return means somebody else holds it.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}
