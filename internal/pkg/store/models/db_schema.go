package storemodels

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money fields are stored as decimal strings so Mongo round-trips them
// without binary-float drift; the service layer converts to and from
// decimals at its boundary.

// Installment is one schedule row in the installments collection.
type Installment struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	LoanID           string             `bson:"loanId"`
	ReferenceNumber  string             `bson:"referenceNumber"`
	CollectionNumber int                `bson:"collectionNumber"`
	DueDate          time.Time          `bson:"dueDate"`

	PeriodAmount          string `bson:"periodAmount"`
	PeriodInterestAmount  string `bson:"periodInterestAmount"`
	PeriodPrincipalAmount string `bson:"periodPrincipalAmount"`
	PenaltyAmount         string `bson:"penaltyAmount"`

	PaidAmount    string `bson:"paidAmount"`
	PenaltyPaid   string `bson:"penaltyPaid"`
	InterestPaid  string `bson:"interestPaid"`
	PrincipalPaid string `bson:"principalPaid"`

	LoanBalance    string  `bson:"loanBalance"`
	RunningBalance string  `bson:"runningBalance"`
	TotalPayable   *string `bson:"totalPayable,omitempty"`

	Status         string `bson:"status"`
	PendingPenalty bool   `bson:"pendingPenalty"`
	OpenTerm       bool   `bson:"openTerm"`

	Note        string `bson:"note,omitempty"`
	Mode        string `bson:"mode,omitempty"`
	Collector   string `bson:"collector,omitempty"`
	CollectorID string `bson:"collectorId,omitempty"`

	// Version guards concurrent writers; updates match on it and bump it.
	Version int32 `bson:"version"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// Loan is the loan header written at disbursement.
type Loan struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	LoanID           string             `bson:"loanId"`
	BorrowerID       string             `bson:"borrowerId"`
	Principal        string             `bson:"principal"`
	MonthlyRate      string             `bson:"monthlyRate"`
	TermMonths       int                `bson:"termMonths"`
	OpenTerm         bool               `bson:"openTerm"`
	DisbursementDate time.Time          `bson:"disbursementDate"`
	LoanBalance      string             `bson:"loanBalance"`
	TotalPayable     *string            `bson:"totalPayable,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt"`
}

// Receipt rows are written once inside the payment transaction and never
// updated afterwards.
type Receipt struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ReceiptNumber   string             `bson:"receiptNumber"`
	ReferenceNumber string             `bson:"referenceNumber"`
	LoanID          string             `bson:"loanId"`
	BorrowerID      string             `bson:"borrowerId"`
	Amount          string             `bson:"amount"`
	DatePaid        time.Time          `bson:"datePaid"`
	Mode            string             `bson:"mode"`
	Collector       string             `bson:"collector,omitempty"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

// PenaltyEndorsement tracks a penalty proposal through its decision.
type PenaltyEndorsement struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	EndorsementID   string             `bson:"endorsementId"`
	ReferenceNumber string             `bson:"referenceNumber"`
	LoanID          string             `bson:"loanId"`
	Reason          string             `bson:"reason"`
	PenaltyAmount   string             `bson:"penaltyAmount"`
	PayableAmount   string             `bson:"payableAmount"`
	Status          string             `bson:"status"`
	EndorsedBy      string             `bson:"endorsedBy"`
	DateEndorsed    time.Time          `bson:"dateEndorsed"`
	Remarks         string             `bson:"remarks,omitempty"`
	DecidedBy       string             `bson:"decidedBy,omitempty"`
	DateResolved    *time.Time         `bson:"dateResolved,omitempty"`
}

// PaymentInProgress is the cross-instance guard row: it exists while a
// payment against the reference number is mid-commit.
type PaymentInProgress struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	ReferenceNumber string             `bson:"referenceNumber"`
	CreatedAt       time.Time          `bson:"createdAt"`
}
