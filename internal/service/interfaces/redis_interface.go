package interfaces

import (
	"context"
	"time"
)

// RedisStoreOperations is the derived status snapshot cache. Snapshots
// hold a loan's collection sheet with statuses already computed, keyed by
// loan id and invalidated on every mutation.
type RedisStoreOperations interface {
	SaveStatusSnapshot(ctx context.Context, loanID string, snapshot []byte, ttl time.Duration) error
	GetStatusSnapshot(ctx context.Context, loanID string) ([]byte, error)
	DeleteStatusSnapshot(ctx context.Context, loanID string) error
}
