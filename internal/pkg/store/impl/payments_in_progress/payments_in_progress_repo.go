package payments_in_progress

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"collectionledger/internal/pkg/consts"
	mongodb "collectionledger/internal/pkg/db/mongo"
	"collectionledger/internal/pkg/logger"
	"collectionledger/internal/pkg/store/models"
	"collectionledger/internal/pkg/store/repository"
	"collectionledger/internal/service/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentsInProgressRepository struct {
	repo interfaces.PaymentsInProgressStoreInterface
}

func NewPaymentsInProgressRepository(client *mongodb.MongoClient) *PaymentsInProgressRepository {
	collection := client.Database.Collection(consts.PaymentsInProgressCollection)
	repo := repository.NewMongoRepository[storemodels.PaymentInProgress](collection)
	return &PaymentsInProgressRepository{repo: repo}
}

func NewPaymentsInProgressRepositoryWithInterface(
	repo interfaces.PaymentsInProgressStoreInterface) *PaymentsInProgressRepository {
	return &PaymentsInProgressRepository{repo: repo}
}

func (r *PaymentsInProgressRepository) CheckEntryExists(ctx context.Context,
	referenceNumber string) (bool, error) {
	filter := bson.M{"referenceNumber": referenceNumber}
	_, err := r.repo.FindOne(ctx, filter, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		logger.CtxError(ctx, "Error checking payment in progress", err,
			slog.String("reference_number", referenceNumber))
		return false, err
	}
	return true, nil
}

func (r *PaymentsInProgressRepository) CreateEntry(ctx context.Context,
	referenceNumber string) error {
	entry := storemodels.PaymentInProgress{
		ReferenceNumber: referenceNumber,
		CreatedAt:       time.Now(),
	}
	_, err := r.repo.Create(ctx, entry)
	if err != nil {
		logger.CtxError(ctx, "Failed to create payment in progress entry", err,
			slog.String("reference_number", referenceNumber))
		return err
	}
	logger.CtxInfo(ctx, "Created payment in progress entry",
		slog.String("reference_number", referenceNumber))
	return nil
}

func (r *PaymentsInProgressRepository) DeleteEntry(ctx context.Context, referenceNumber string) error {
	filter := bson.M{"referenceNumber": referenceNumber}
	err := r.repo.Delete(ctx, filter)
	if err != nil {
		logger.CtxError(ctx, "Failed to delete payment in progress entry", err,
			slog.String("reference_number", referenceNumber))
		return err
	}
	logger.CtxInfo(ctx, "Deleted payment in progress entry",
		slog.String("reference_number", referenceNumber))
	return nil
}
