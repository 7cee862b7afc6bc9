package loans

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

type LoansRepository struct {
	repo interfaces.LoanStoreInterface
}

func NewLoansRepository(client *mongodb.MongoClient) *LoansRepository {
	collection := client.Database.Collection(consts.LoansCollection)
	repo := repository.NewMongoRepository[storemodels.Loan](collection)
	return &LoansRepository{repo: repo}
}

func NewLoansRepositoryWithInterface(repo interfaces.LoanStoreInterface) *LoansRepository {
	return &LoansRepository{repo: repo}
}

func (lr *LoansRepository) CreateLoan(ctx context.Context, loan *storemodels.Loan) error {
	now := time.Now().UTC()
	loan.CreatedAt = now
	loan.UpdatedAt = now

	if _, err := lr.repo.Create(ctx, loan); err != nil {
		logger.CtxError(ctx, "Error creating loan", err,
			slog.String("loan_id", loan.LoanID))
		return err
	}

	logger.CtxInfo(ctx, "Created loan", slog.String("loan_id", loan.LoanID))
	return nil
}

func (lr *LoansRepository) GetByLoanID(ctx context.Context, loanID string) (*storemodels.Loan, error) {
	filter := bson.M{"loanId": loanID}

	loan, err := lr.repo.FindOne(ctx, filter, options.FindOne())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.CtxWarn(ctx, "No loan found", slog.String("loan_id", loanID))
			return nil, err
		}
		logger.CtxError(ctx, "Error finding loan", err, slog.String("loan_id", loanID))
		return nil, err
	}

	return &loan, nil
}

// ExistsByLoanID backs disbursement idempotency: a replayed event for a
// known loan is skipped instead of generating a second schedule.
func (lr *LoansRepository) ExistsByLoanID(ctx context.Context, loanID string) (bool, error) {
	count, err := lr.repo.CountDocuments(ctx, bson.M{"loanId": loanID})
	if err != nil {
		logger.CtxError(ctx, "Error counting loans", err, slog.String("loan_id", loanID))
		return false, err
	}
	return count > 0, nil
}

func (lr *LoansRepository) UpdateLoanBalance(ctx context.Context, loanID, loanBalance string) error {
	filter := bson.M{"loanId": loanID}
	update := bson.M{
		"$set": bson.M{
			"loanBalance": loanBalance,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := lr.repo.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.CtxError(ctx, "Error updating loan balance", err,
			slog.String("loan_id", loanID))
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	logger.CtxDebug(ctx, "Updated loan balance",
		slog.String("loan_id", loanID), slog.String("loan_balance", loanBalance))
	return nil
}
