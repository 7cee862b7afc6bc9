package repository

import (
	"context"
	"time"

	redismodel "collectionledger/internal/pkg/store/models"

	"github.com/redis/go-redis/v9"
)

// RedisStoreAdapter backs the status snapshot cache. It only speaks in
// loan ids; key layout lives with the schema.
type RedisStoreAdapter struct {
	client *redis.Client
}

func NewRedisStoreAdapter(client *redis.Client) *RedisStoreAdapter {
	return &RedisStoreAdapter{client: client}
}

// SaveStatusSnapshot caches a loan's derived collection sheet, already
// serialized by the service. A short TTL bounds staleness between the
// mutation-time invalidations.
func (a *RedisStoreAdapter) SaveStatusSnapshot(ctx context.Context, loanID string, snapshot []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = time.Second
	}
	return a.client.Set(ctx, redismodel.StatusSnapshotKeyBuilder(loanID), snapshot, ttl).Err()
}

func (a *RedisStoreAdapter) GetStatusSnapshot(ctx context.Context, loanID string) ([]byte, error) {
	return a.client.Get(ctx, redismodel.StatusSnapshotKeyBuilder(loanID)).Bytes()
}

func (a *RedisStoreAdapter) DeleteStatusSnapshot(ctx context.Context, loanID string) error {
	return a.client.Del(ctx, redismodel.StatusSnapshotKeyBuilder(loanID)).Err()
}
