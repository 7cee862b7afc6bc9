package interfaces

import (
	"context"

	"collectionledger/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentsInProgressRepositoryInterface interface {
	CheckEntryExists(ctx context.Context, referenceNumber string) (bool, error)
	CreateEntry(ctx context.Context, referenceNumber string) error
	DeleteEntry(ctx context.Context, referenceNumber string) error
}

type PaymentsInProgressStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (
		storemodels.PaymentInProgress, error)
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	Delete(ctx context.Context, filter interface{}) error
}
