package router

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"collectionledger/internal/app/handlers"
	mongodb "collectionledger/internal/pkg/db/mongo"
	kafkaConsumer "collectionledger/internal/pkg/kafka/consumer"
	"collectionledger/internal/pkg/logger"
	"collectionledger/internal/pkg/pubsub"
	"collectionledger/internal/pkg/store/impl/installments"
	"collectionledger/internal/pkg/store/impl/loans"
	"collectionledger/internal/pkg/store/impl/payments_in_progress"
	"collectionledger/internal/pkg/store/impl/penalty_endorsements"
	"collectionledger/internal/pkg/store/impl/receipts"
	"collectionledger/internal/pkg/store/repository"
	"collectionledger/internal/service/ledger"
)

const basePath = "/IntegrationServices/Dodrio/CollectionLedger"

func SetupRouter(ctx context.Context,
	disbursementConsumer *kafkaConsumer.KafkaConsumer,
	pubSubClient *pubsub.PubSubClient,
	mongoClient *mongodb.MongoClient,
	redisClient *redis.Client,
	policy ledger.Policy) *gin.Engine {

	server := gin.Default()

	installmentsRepo := installments.NewInstallmentsRepository(mongoClient)
	receiptsRepo := receipts.NewReceiptsRepository(mongoClient)
	endorsementsRepo := penalty_endorsements.NewPenaltyEndorsementsRepository(mongoClient)
	loansRepo := loans.NewLoansRepository(mongoClient)
	inProgressRepo := payments_in_progress.NewPaymentsInProgressRepository(mongoClient)
	redisAdapter := repository.NewRedisStoreAdapter(redisClient)

	ledgerService := ledger.NewService(
		installmentsRepo,
		receiptsRepo,
		endorsementsRepo,
		loansRepo,
		inProgressRepo,
		redisAdapter,
		mongoClient,
		pubSubClient,
		policy,
	)

	if disbursementConsumer != nil {
		go func() {
			disbursementHandler := handlers.NewDisbursementHandler(ledgerService)
			if err := disbursementHandler.ConsumeDisbursements(ctx, disbursementConsumer); err != nil {
				logger.CtxError(ctx, "failed to start Kafka consumer", err)
			}
		}()
	}

	paymentHandler := handlers.NewPaymentHandler(ledgerService)
	penaltyHandler := handlers.NewPenaltyHandler(ledgerService)
	collectionHandler := handlers.NewCollectionHandler(ledgerService)
	healthCheckHandler := handlers.NewHealthCheckHandler()

	server.POST(basePath+"/Payments", paymentHandler.PostPayment)
	server.POST(basePath+"/PenaltyEndorsements", penaltyHandler.PostEndorsement)
	server.POST(basePath+"/PenaltyEndorsements/:endorsementId/Decision", penaltyHandler.PostDecision)
	server.GET(basePath+"/Loans/:loanId/Collections", collectionHandler.GetLoanCollections)
	server.GET(basePath+"/Collections/:referenceNumber", collectionHandler.GetCollection)
	server.POST(basePath+"/Collections/:referenceNumber/Note", collectionHandler.PostNote)
	server.GET(basePath+"/HealthCheck", healthCheckHandler.HealthCheck)

	return server
}
