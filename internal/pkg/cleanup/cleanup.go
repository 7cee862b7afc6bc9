package cleanup

import (
	"context"

	mongodb "collectionledger/internal/pkg/db/mongo"
	redisdb "collectionledger/internal/pkg/db/redis"
	"collectionledger/internal/pkg/logger"
)

// CleanupResources closes the ledger's Mongo and Redis handles on
// shutdown. The snapshot cache needs no draining; entries expire on
// their own TTL.
func CleanupResources(ctx context.Context, mongoClient *mongodb.MongoClient, redisClient *redisdb.RedisClient) {
	if mongoClient != nil && mongoClient.Client != nil {
		if err := mongodb.Disconnect(mongoClient.Client); err != nil {
			logger.CtxError(ctx, "Failed to disconnect from MongoDB", err)
		}
	}
	if redisClient != nil && redisClient.Client != nil {
		if err := redisdb.Disconnect(redisClient.Client); err != nil {
			logger.CtxError(ctx, "Failed to disconnect from Redis", err)
		}
	}
}
