package receipts

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

type ReceiptsRepository struct {
	repo interfaces.ReceiptStoreInterface
}

func NewReceiptsRepository(client *mongodb.MongoClient) *ReceiptsRepository {
	collection := client.Database.Collection(consts.ReceiptsCollection)
	repo := repository.NewMongoRepository[storemodels.Receipt](collection)
	return &ReceiptsRepository{repo: repo}
}

func NewReceiptsRepositoryWithInterface(repo interfaces.ReceiptStoreInterface) *ReceiptsRepository {
	return &ReceiptsRepository{repo: repo}
}

// CreateReceipt writes the receipt row. Receipts are insert-only; there is
// deliberately no update method on this repository.
func (rr *ReceiptsRepository) CreateReceipt(ctx context.Context, receipt *storemodels.Receipt) error {
	receipt.CreatedAt = time.Now().UTC()

	if _, err := rr.repo.Create(ctx, receipt); err != nil {
		logger.CtxError(ctx, "Error creating receipt", err,
			slog.String("receipt_number", receipt.ReceiptNumber),
			slog.String("reference_number", receipt.ReferenceNumber))
		return err
	}

	logger.CtxInfo(ctx, "Created receipt",
		slog.String("receipt_number", receipt.ReceiptNumber),
		slog.String("reference_number", receipt.ReferenceNumber))
	return nil
}

func (rr *ReceiptsRepository) GetByReceiptNumber(ctx context.Context, receiptNumber string) (*storemodels.Receipt, error) {
	filter := bson.M{"receiptNumber": receiptNumber}

	receipt, err := rr.repo.FindOne(ctx, filter, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "No receipt found",
				slog.String("receipt_number", receiptNumber))
			return nil, err
		}
		logger.CtxError(ctx, "Error finding receipt", err,
			slog.String("receipt_number", receiptNumber))
		return nil, err
	}

	return &receipt, nil
}

func (rr *ReceiptsRepository) ListByReferenceNumber(ctx context.Context, referenceNumber string) ([]storemodels.Receipt, error) {
	filter := bson.M{"referenceNumber": referenceNumber}
	opts := options.Find().SetSort(bson.D{{Key: "datePaid", Value: 1}})

	rows, err := rr.repo.Find(ctx, filter, opts)
	if err != nil {
		logger.CtxError(ctx, "Error listing receipts for installment", err,
			slog.String("reference_number", referenceNumber))
		return nil, err
	}

	return rows, nil
}
