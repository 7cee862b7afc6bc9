package interfaces

import (
	"context"

	"collectionledger/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InstallmentsRepositoryInterface interface {
	InsertSchedule(ctx context.Context, rows []storemodels.Installment) error
	GetByReferenceNumber(ctx context.Context, referenceNumber string) (*storemodels.Installment, error)
	ListByLoanID(ctx context.Context, loanID string) ([]storemodels.Installment, error)
	// Update matches on referenceNumber and the document's version and bumps
	// the version; mongo.ErrNoDocuments signals a lost race.
	Update(ctx context.Context, doc *storemodels.Installment) error
	SetNote(ctx context.Context, referenceNumber, note string) error
}

type InstallmentStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.Installment, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]storemodels.Installment, error)
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	CreateMany(ctx context.Context, documents []interface{}) (*mongo.InsertManyResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
}
