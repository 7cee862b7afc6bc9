package interfaces

import (
	"context"

	"collectionledger/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PenaltyEndorsementsRepositoryInterface interface {
	CreateEndorsement(ctx context.Context, endorsement *storemodels.PenaltyEndorsement) error
	GetByEndorsementID(ctx context.Context, endorsementID string) (*storemodels.PenaltyEndorsement, error)
	// GetPendingByReference returns the open endorsement for an installment,
	// or mongo.ErrNoDocuments when none is pending.
	GetPendingByReference(ctx context.Context, referenceNumber string) (*storemodels.PenaltyEndorsement, error)
	UpdateEndorsement(ctx context.Context, endorsement *storemodels.PenaltyEndorsement) error
}

type PenaltyEndorsementStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.PenaltyEndorsement, error)
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
}
