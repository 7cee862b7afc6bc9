package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"collectionledger/internal/pkg/consts"
	"collectionledger/utils"
)

// NewEndorsement proposes a penalty on a late installment. The rate comes
// from the lateness bucket at endorsement time, applied to the period
// amount, and is frozen into the endorsement; a later bucket change does
// not reprice a pending proposal.
func NewEndorsement(inst Installment, currentStatus consts.InstallmentStatus,
	reason, endorsedBy string, now time.Time) (PenaltyEndorsement, error) {

	penalty, ok := utils.ComputePenaltyAmount(currentStatus, inst.PeriodAmount)
	if !ok {
		return PenaltyEndorsement{}, ErrEndorsementNotEligible
	}

	return PenaltyEndorsement{
		ID:              uuid.New().String(),
		ReferenceNumber: inst.ReferenceNumber,
		LoanID:          inst.LoanID,
		Reason:          reason,
		PenaltyAmount:   penalty,
		PayableAmount:   inst.PeriodAmount.Add(penalty),
		Status:          consts.EndorsementPending,
		EndorsedBy:      endorsedBy,
		DateEndorsed:    now,
	}, nil
}

// ReallocateRejectedPenalty moves money that was collected against a
// pending proposal back into the interest and principal buckets once the
// proposal is rejected. Without this the row's paid total keeps counting
// penalty money toward a payable that no longer includes the penalty.
// Whatever neither bucket can absorb stays put, which can only happen
// when nothing is owed on the row anyway.
func ReallocateRejectedPenalty(inst Installment) Installment {
	excess := inst.PenaltyPaid.Sub(inst.PenaltyAmount)
	if !excess.IsPositive() {
		return inst
	}

	interestOut := floorZero(inst.PeriodInterest.Sub(inst.InterestPaid))
	toInterest := decimal.Min(excess, interestOut)
	toPrincipal := decimal.Min(excess.Sub(toInterest), inst.LoanBalance)

	inst.PenaltyPaid = inst.PenaltyPaid.Sub(toInterest).Sub(toPrincipal)
	inst.InterestPaid = inst.InterestPaid.Add(toInterest)
	inst.PrincipalPaid = inst.PrincipalPaid.Add(toPrincipal)
	inst.LoanBalance = inst.LoanBalance.Sub(toPrincipal)
	return inst
}

// Resolve moves a pending endorsement to its terminal state. Approved and
// Rejected are final; resolving twice is an error no matter which decision
// came first.
func (e *PenaltyEndorsement) Resolve(decision, remarks, decidedBy string, now time.Time) error {
	if e.Resolved() {
		return ErrEndorsementAlreadyResolved
	}

	switch decision {
	case consts.EndorsementDecisionApprove:
		e.Status = consts.EndorsementApproved
	case consts.EndorsementDecisionReject:
		e.Status = consts.EndorsementRejected
	default:
		return ErrInvalidDecision
	}

	e.Remarks = remarks
	e.DecidedBy = decidedBy
	e.DateResolved = &now
	return nil
}
