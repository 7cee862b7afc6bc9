package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"collectionledger/internal/pkg/consts"
	"collectionledger/internal/service/ledger"
)

// installmentView is the wire shape of one schedule row. Decimal fields
// marshal as plain JSON numbers; see main where that is switched on.
type installmentView struct {
	LoanID               string           `json:"loanId"`
	ReferenceNumber      string           `json:"referenceNumber"`
	CollectionNumber     int              `json:"collectionNumber"`
	DueDate              string           `json:"dueDate"`
	PeriodAmount         decimal.Decimal  `json:"periodAmount"`
	PeriodInterestAmount decimal.Decimal  `json:"periodInterestAmount"`
	PenaltyAmount        decimal.Decimal  `json:"penaltyAmount"`
	PaidAmount           decimal.Decimal  `json:"paidAmount"`
	PeriodBalance        decimal.Decimal  `json:"periodBalance"`
	LoanBalance          decimal.Decimal  `json:"loanBalance"`
	RunningBalance       decimal.Decimal  `json:"runningBalance"`
	TotalPayable         *decimal.Decimal `json:"totalPayable"`
	Status               string           `json:"status"`
	PendingPenalty       bool             `json:"pendingPenalty"`
	OpenTerm             bool             `json:"openTerm"`
	Note                 string           `json:"note,omitempty"`
}

func toInstallmentView(inst *ledger.Installment) installmentView {
	return installmentView{
		LoanID:               inst.LoanID,
		ReferenceNumber:      inst.ReferenceNumber,
		CollectionNumber:     inst.CollectionNumber,
		DueDate:              inst.DueDate.Format(consts.ISODateFormat),
		PeriodAmount:         inst.PeriodAmount,
		PeriodInterestAmount: inst.PeriodInterest,
		PenaltyAmount:        inst.PenaltyAmount,
		PaidAmount:           inst.PaidAmount,
		PeriodBalance:        inst.PeriodBalance(),
		LoanBalance:          inst.LoanBalance,
		RunningBalance:       inst.RunningBalance,
		TotalPayable:         inst.TotalPayable,
		Status:               string(inst.Status),
		PendingPenalty:       inst.PendingPenalty,
		OpenTerm:             inst.OpenTerm,
		Note:                 inst.Note,
	}
}

type receiptView struct {
	ReceiptNumber   string          `json:"receiptNumber"`
	ReferenceNumber string          `json:"referenceNumber"`
	LoanID          string          `json:"loanId"`
	BorrowerID      string          `json:"borrowerId"`
	Amount          decimal.Decimal `json:"amount"`
	DatePaid        time.Time       `json:"datePaid"`
	Mode            string          `json:"mode"`
	Collector       string          `json:"collector,omitempty"`
}

func toReceiptView(r *ledger.Receipt) receiptView {
	return receiptView{
		ReceiptNumber:   r.ReceiptNumber,
		ReferenceNumber: r.ReferenceNumber,
		LoanID:          r.LoanID,
		BorrowerID:      r.BorrowerID,
		Amount:          r.Amount,
		DatePaid:        r.DatePaid,
		Mode:            r.Mode,
		Collector:       r.Collector,
	}
}

type endorsementView struct {
	EndorsementID   string          `json:"endorsementId"`
	ReferenceNumber string          `json:"referenceNumber"`
	LoanID          string          `json:"loanId"`
	Reason          string          `json:"reason"`
	PenaltyAmount   decimal.Decimal `json:"penaltyAmount"`
	PayableAmount   decimal.Decimal `json:"payableAmount"`
	Status          string          `json:"status"`
	EndorsedBy      string          `json:"endorsedBy"`
	DateEndorsed    time.Time       `json:"dateEndorsed"`
	Remarks         string          `json:"remarks,omitempty"`
	DecidedBy       string          `json:"decidedBy,omitempty"`
	DateResolved    *time.Time      `json:"dateResolved,omitempty"`
}

func toEndorsementView(e *ledger.PenaltyEndorsement) endorsementView {
	return endorsementView{
		EndorsementID:   e.ID,
		ReferenceNumber: e.ReferenceNumber,
		LoanID:          e.LoanID,
		Reason:          e.Reason,
		PenaltyAmount:   e.PenaltyAmount,
		PayableAmount:   e.PayableAmount,
		Status:          string(e.Status),
		EndorsedBy:      e.EndorsedBy,
		DateEndorsed:    e.DateEndorsed,
		Remarks:         e.Remarks,
		DecidedBy:       e.DecidedBy,
		DateResolved:    e.DateResolved,
	}
}

// respondLedgerError maps typed ledger errors onto HTTP statuses.
func respondLedgerError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrInstallmentNotFound),
		errors.Is(err, ledger.ErrLoanNotFound),
		errors.Is(err, ledger.ErrEndorsementNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrInvalidDecision),
		errors.Is(err, ledger.ErrScheduleGeneration):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrInstallmentSettled),
		errors.Is(err, ledger.ErrPenaltyAlreadyPending),
		errors.Is(err, ledger.ErrEndorsementNotEligible),
		errors.Is(err, ledger.ErrEndorsementAlreadyResolved),
		errors.Is(err, ledger.ErrPaymentInProgress),
		errors.Is(err, ledger.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
