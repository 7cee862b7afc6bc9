package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"collectionledger/internal/pkg/consts"
)

// LoanTerms is everything schedule generation needs about a disbursed
// loan. MonthlyRate is a percentage, e.g. 5 for five percent per month.
type LoanTerms struct {
	LoanID           string
	BorrowerID       string
	Principal        decimal.Decimal
	MonthlyRate      decimal.Decimal
	TermMonths       int
	OpenTerm         bool
	DisbursementDate time.Time
}

// Installment is one collectible row of a loan's schedule. Amount
// fields are decimals rounded to two places; Status is derived, never
// authored by callers.
type Installment struct {
	LoanID           string
	ReferenceNumber  string
	CollectionNumber int
	DueDate          time.Time

	// Scheduled amounts for the period.
	PeriodAmount    decimal.Decimal
	PeriodInterest  decimal.Decimal
	PeriodPrincipal decimal.Decimal

	// Approved penalty merged into the payable for this period.
	PenaltyAmount decimal.Decimal

	// Cumulative amounts collected, by allocation bucket.
	PaidAmount    decimal.Decimal
	PenaltyPaid   decimal.Decimal
	InterestPaid  decimal.Decimal
	PrincipalPaid decimal.Decimal

	// LoanBalance is the principal still owed on the loan entering this
	// period; payments walk it down as principal is allocated.
	LoanBalance    decimal.Decimal
	RunningBalance decimal.Decimal

	// TotalPayable is the scheduled total for the whole loan. Nil for
	// open-term loans, where no total exists up front.
	TotalPayable *decimal.Decimal

	Status         consts.InstallmentStatus
	PendingPenalty bool
	OpenTerm       bool

	Note        string
	Mode        string
	Collector   string
	CollectorID string

	Version int32
}

// Payable is the full amount this row can collect before principal
// prepayment: the scheduled period amount plus any approved penalty.
func (i *Installment) Payable() decimal.Decimal {
	return i.PeriodAmount.Add(i.PenaltyAmount)
}

// PeriodBalance is what remains to be collected on this row.
func (i *Installment) PeriodBalance() decimal.Decimal {
	balance := i.Payable().Sub(i.PaidAmount)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// Settled reports whether the row has nothing left to collect.
func (i *Installment) Settled() bool {
	return i.PeriodBalance().IsZero()
}

// PaymentRequest is a cash or online payment posted against one
// installment.
type PaymentRequest struct {
	ReferenceNumber string
	Amount          decimal.Decimal
	Mode            string
	Collector       string
	CollectorID     string
}

// Allocation records how a single payment was split across the buckets,
// in the fixed order penalty, then interest, then principal.
type Allocation struct {
	Penalty   decimal.Decimal
	Interest  decimal.Decimal
	Principal decimal.Decimal

	// Applied is the amount actually taken; Clamped is true when the
	// tendered amount exceeded it.
	Applied decimal.Decimal
	Clamped bool
}

// Payment is the committed fact behind a receipt.
type Payment struct {
	ReferenceNumber string
	LoanID          string
	BorrowerID      string
	Amount          decimal.Decimal
	DatePaid        time.Time
	Mode            string
	Collector       string
	CollectorID     string
}

// Receipt is the immutable record handed back to the payer. It is
// written once and never updated.
type Receipt struct {
	ReceiptNumber   string
	ReferenceNumber string
	LoanID          string
	BorrowerID      string
	Amount          decimal.Decimal
	DatePaid        time.Time
	Mode            string
	Collector       string
}

// PenaltyEndorsement is a request to add a penalty to a late
// installment, awaiting a supervisor's decision.
type PenaltyEndorsement struct {
	ID              string
	ReferenceNumber string
	LoanID          string
	Reason          string
	PenaltyAmount   decimal.Decimal
	PayableAmount   decimal.Decimal
	Status          consts.EndorsementStatus
	EndorsedBy      string
	DateEndorsed    time.Time
	Remarks         string
	DecidedBy       string
	DateResolved    *time.Time
}

// Resolved reports whether the endorsement has reached a terminal state.
func (e *PenaltyEndorsement) Resolved() bool {
	return e.Status == consts.EndorsementApproved || e.Status == consts.EndorsementRejected
}

// PaymentResult is everything a committed payment produced.
type PaymentResult struct {
	Installment Installment
	Receipt     Receipt
	Allocation  Allocation
}
