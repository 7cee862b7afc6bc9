package interfaces

import (
	"context"

	"collectionledger/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ReceiptsRepositoryInterface interface {
	CreateReceipt(ctx context.Context, receipt *storemodels.Receipt) error
	GetByReceiptNumber(ctx context.Context, receiptNumber string) (*storemodels.Receipt, error)
	ListByReferenceNumber(ctx context.Context, referenceNumber string) ([]storemodels.Receipt, error)
}

type ReceiptStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.Receipt, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]storemodels.Receipt, error)
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
}
