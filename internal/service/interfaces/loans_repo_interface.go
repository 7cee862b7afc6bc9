package interfaces

import (
	"context"

	"collectionledger/internal/pkg/store/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type LoansRepositoryInterface interface {
	CreateLoan(ctx context.Context, loan *storemodels.Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*storemodels.Loan, error)
	ExistsByLoanID(ctx context.Context, loanID string) (bool, error)
	UpdateLoanBalance(ctx context.Context, loanID, loanBalance string) error
}

type LoanStoreInterface interface {
	FindOne(ctx context.Context, filter interface{}, opt *options.FindOneOptions) (storemodels.Loan, error)
	Create(ctx context.Context, document interface{}) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (*mongo.UpdateResult, error)
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
}
