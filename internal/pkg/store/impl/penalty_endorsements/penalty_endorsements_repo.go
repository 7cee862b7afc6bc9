package penalty_endorsements

import (
	"context"
	"errors"
	"log/slog"

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

type PenaltyEndorsementsRepository struct {
	repo interfaces.PenaltyEndorsementStoreInterface
}

func NewPenaltyEndorsementsRepository(client *mongodb.MongoClient) *PenaltyEndorsementsRepository {
	collection := client.Database.Collection(consts.PenaltyEndorsementsCollection)
	repo := repository.NewMongoRepository[storemodels.PenaltyEndorsement](collection)
	return &PenaltyEndorsementsRepository{repo: repo}
}

func NewPenaltyEndorsementsRepositoryWithInterface(repo interfaces.PenaltyEndorsementStoreInterface) *PenaltyEndorsementsRepository {
	return &PenaltyEndorsementsRepository{repo: repo}
}

func (pr *PenaltyEndorsementsRepository) CreateEndorsement(ctx context.Context, endorsement *storemodels.PenaltyEndorsement) error {
	if _, err := pr.repo.Create(ctx, endorsement); err != nil {
		logger.CtxError(ctx, "Error creating penalty endorsement", err,
			slog.String("endorsement_id", endorsement.EndorsementID),
			slog.String("reference_number", endorsement.ReferenceNumber))
		return err
	}

	logger.CtxInfo(ctx, "Created penalty endorsement",
		slog.String("endorsement_id", endorsement.EndorsementID),
		slog.String("reference_number", endorsement.ReferenceNumber))
	return nil
}

func (pr *PenaltyEndorsementsRepository) GetByEndorsementID(ctx context.Context, endorsementID string) (*storemodels.PenaltyEndorsement, error) {
	filter := bson.M{"endorsementId": endorsementID}

	endorsement, err := pr.repo.FindOne(ctx, filter, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "No penalty endorsement found",
				slog.String("endorsement_id", endorsementID))
			return nil, err
		}
		logger.CtxError(ctx, "Error finding penalty endorsement", err,
			slog.String("endorsement_id", endorsementID))
		return nil, err
	}

	return &endorsement, nil
}

func (pr *PenaltyEndorsementsRepository) GetPendingByReference(ctx context.Context, referenceNumber string) (*storemodels.PenaltyEndorsement, error) {
	filter := bson.M{
		"referenceNumber": referenceNumber,
		"status":          string(consts.EndorsementPending),
	}

	endorsement, err := pr.repo.FindOne(ctx, filter, options.FindOne())
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxError(ctx, "Error finding pending endorsement", err,
				slog.String("reference_number", referenceNumber))
		}
		return nil, err
	}

	return &endorsement, nil
}

// UpdateEndorsement persists a decision. The filter insists the stored row
// is still Pending so a second decision can never land.
func (pr *PenaltyEndorsementsRepository) UpdateEndorsement(ctx context.Context, endorsement *storemodels.PenaltyEndorsement) error {
	filter := bson.M{
		"endorsementId": endorsement.EndorsementID,
		"status":        string(consts.EndorsementPending),
	}
	update := bson.M{
		"$set": bson.M{
			"status":       endorsement.Status,
			"remarks":      endorsement.Remarks,
			"decidedBy":    endorsement.DecidedBy,
			"dateResolved": endorsement.DateResolved,
		},
	}

	result, err := pr.repo.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.CtxError(ctx, "Error updating penalty endorsement", err,
			slog.String("endorsement_id", endorsement.EndorsementID))
		return err
	}
	if result.MatchedCount == 0 {
		logger.CtxWarn(ctx, "Penalty endorsement no longer pending",
			slog.String("endorsement_id", endorsement.EndorsementID))
		return mongo.ErrNoDocuments
	}

	return nil
}
