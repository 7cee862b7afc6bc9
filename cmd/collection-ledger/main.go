package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	gcppubsub "cloud.google.com/go/pubsub"
	"github.com/shopspring/decimal"

	"collectionledger/internal/app/router"
	"collectionledger/internal/pkg/cleanup"
	config "collectionledger/internal/pkg/config"
	mongodb "collectionledger/internal/pkg/db/mongo"
	redisdb "collectionledger/internal/pkg/db/redis"
	kafkaConsumer "collectionledger/internal/pkg/kafka/consumer"
	"collectionledger/internal/pkg/log_messages"
	"collectionledger/internal/pkg/logger"
	"collectionledger/internal/pkg/pubsub"
	"collectionledger/internal/service/ledger"
)

func main() {

	ctx := context.Background()

	cfg, err := config.LoadFromConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(logger.ParseLevel(cfg.Logging.LogLevel))

	// Money fields render as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true

	// Connect to MongoDB
	mongoClient, err := mongodb.ConnectToMongoDB(ctx, cfg.Mongo)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	// Connect to Redis
	redisClient, err := redisdb.ConnectToRedis(ctx, cfg.Redis, nil)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// kafka consumer for disbursement events
	disbursementConsumer, err := kafkaConsumer.NewKafkaConsumer(cfg.Kafka)
	if err != nil {
		log.Fatalf("Failed to create kafka consumer: %v", err)
	}

	if err := disbursementConsumer.Subscribe(cfg.Kafka.DisbursementTopic); err != nil {
		logger.CtxError(ctx, "failed to subscribe to disbursement topic", err)
		return
	}

	// pubsub publisher for receipt notifications
	pubsubclient, err := initPubSubClient(ctx, cfg.PubSub.ProjectID, cfg.PubSub.ReceiptTopic)
	if err != nil {
		log.Fatalf("Failed to create Pub/Sub client: %v", err)
	}

	policy := ledger.PolicyFromConfig(cfg.Ledger)

	server := router.SetupRouter(ctx, disbursementConsumer, pubsubclient, mongoClient, redisClient.Client, policy)
	port := cfg.Server.Port

	if err := server.Run(":" + fmt.Sprintf("%d", port)); err != nil {
		logger.CtxError(ctx, "Failed to start server", err)
	}

	defer cleanup.CleanupResources(ctx, mongoClient, redisClient)

}

func initPubSubClient(ctx context.Context, projectID, topic string) (*pubsub.PubSubClient, error) {
	client, err := pubsub.NewPubSubClient(ctx, projectID, topic, gcppubsub.NewClient)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", log_messages.ErrorPubSubClientCreation, err)
	}

	logger.Info("successful pubsub client creation",
		slog.String("pubsub_topic", topic),
	)

	return client, nil
}
