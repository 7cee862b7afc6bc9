package installments

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

type InstallmentsRepository struct {
	repo interfaces.InstallmentStoreInterface
}

func NewInstallmentsRepository(client *mongodb.MongoClient) *InstallmentsRepository {
	collection := client.Database.Collection(consts.InstallmentsCollection)
	repo := repository.NewMongoRepository[storemodels.Installment](collection)
	return &InstallmentsRepository{repo: repo}
}

func NewInstallmentsRepositoryWithInterface(repo interfaces.InstallmentStoreInterface) *InstallmentsRepository {
	return &InstallmentsRepository{repo: repo}
}

func (ir *InstallmentsRepository) InsertSchedule(ctx context.Context, rows []storemodels.Installment) error {
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(rows))
	for i := range rows {
		rows[i].CreatedAt = now
		rows[i].UpdatedAt = now
		docs = append(docs, rows[i])
	}

	if _, err := ir.repo.CreateMany(ctx, docs); err != nil {
		logger.CtxError(ctx, "Error inserting installment schedule", err,
			slog.Int("rows", len(rows)))
		return err
	}

	logger.CtxInfo(ctx, "Inserted installment schedule", slog.Int("rows", len(rows)))
	return nil
}

func (ir *InstallmentsRepository) GetByReferenceNumber(ctx context.Context, referenceNumber string) (*storemodels.Installment, error) {
	filter := bson.M{"referenceNumber": referenceNumber}

	inst, err := ir.repo.FindOne(ctx, filter, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "No installment found for reference number",
				slog.String("reference_number", referenceNumber))
			return nil, err
		}
		logger.CtxError(ctx, "Error finding installment by reference number", err,
			slog.String("reference_number", referenceNumber))
		return nil, err
	}

	return &inst, nil
}

func (ir *InstallmentsRepository) ListByLoanID(ctx context.Context, loanID string) ([]storemodels.Installment, error) {
	filter := bson.M{"loanId": loanID}
	opts := options.Find().SetSort(bson.D{{Key: "collectionNumber", Value: 1}})

	rows, err := ir.repo.Find(ctx, filter, opts)
	if err != nil {
		logger.CtxError(ctx, "Error listing installments for loan", err,
			slog.String("loan_id", loanID))
		return nil, err
	}

	logger.CtxDebug(ctx, "Fetched installments for loan",
		slog.String("loan_id", loanID), slog.Int("count", len(rows)))
	return rows, nil
}

// Update writes the full amount and status state of one row, guarded by the
// version the caller read. mongo.ErrNoDocuments means another writer got
// there first.
func (ir *InstallmentsRepository) Update(ctx context.Context, doc *storemodels.Installment) error {
	filter := bson.M{
		"referenceNumber": doc.ReferenceNumber,
		"version":         doc.Version,
	}
	update := bson.M{
		"$set": bson.M{
			"penaltyAmount":  doc.PenaltyAmount,
			"paidAmount":     doc.PaidAmount,
			"penaltyPaid":    doc.PenaltyPaid,
			"interestPaid":   doc.InterestPaid,
			"principalPaid":  doc.PrincipalPaid,
			"loanBalance":    doc.LoanBalance,
			"runningBalance": doc.RunningBalance,
			"status":         doc.Status,
			"pendingPenalty": doc.PendingPenalty,
			"mode":           doc.Mode,
			"collector":      doc.Collector,
			"collectorId":    doc.CollectorID,
			"updatedAt":      time.Now().UTC(),
		},
		"$inc": bson.M{"version": 1},
	}

	result, err := ir.repo.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.CtxError(ctx, "Error updating installment", err,
			slog.String("reference_number", doc.ReferenceNumber))
		return err
	}
	if result.MatchedCount == 0 {
		logger.CtxWarn(ctx, "Installment version conflict on update",
			slog.String("reference_number", doc.ReferenceNumber),
			slog.Int("expected_version", int(doc.Version)))
		return mongo.ErrNoDocuments
	}

	return nil
}

func (ir *InstallmentsRepository) SetNote(ctx context.Context, referenceNumber, note string) error {
	filter := bson.M{"referenceNumber": referenceNumber}
	update := bson.M{"$set": bson.M{"note": note, "updatedAt": time.Now().UTC()}}

	result, err := ir.repo.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.CtxError(ctx, "Error setting installment note", err,
			slog.String("reference_number", referenceNumber))
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}
