package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyPayment allocates a single payment against an installment and
// returns the updated row plus the split. It is pure: the caller decides
// whether and how to persist the result.
//
// Allocation order is fixed: penalty first, then interest, then principal.
// Money left after the period's scheduled principal keeps paying down the
// loan balance (the whole balance for open-term rows, the remaining
// scheduled share for fixed-term rows). A payment larger than everything
// the row can absorb is clamped; the allocation reports the clamp so the
// caller can tell the payer.
//
// proposedPenalty is a penalty endorsement that is still Pending but that
// policy says should already be collected; zero otherwise.
func ApplyPayment(inst Installment, amount, proposedPenalty decimal.Decimal,
	now time.Time, th LatenessThresholds) (Installment, Allocation, error) {

	if !amount.IsPositive() {
		return inst, Allocation{}, ErrInvalidAmount
	}

	penaltyOut := floorZero(inst.PenaltyAmount.Add(proposedPenalty).Sub(inst.PenaltyPaid))
	interestOut := floorZero(inst.PeriodInterest.Sub(inst.InterestPaid))

	var principalOut decimal.Decimal
	if inst.OpenTerm {
		principalOut = inst.LoanBalance
	} else {
		principalOut = floorZero(inst.PeriodPrincipal.Sub(inst.PrincipalPaid))
		if principalOut.GreaterThan(inst.LoanBalance) {
			principalOut = inst.LoanBalance
		}
	}

	capacity := penaltyOut.Add(interestOut).Add(principalOut)
	if capacity.IsZero() {
		return inst, Allocation{}, ErrInstallmentSettled
	}

	alloc := Allocation{Applied: amount}
	if amount.GreaterThan(capacity) {
		alloc.Applied = capacity
		alloc.Clamped = true
	}

	remaining := alloc.Applied
	alloc.Penalty = decimal.Min(remaining, penaltyOut)
	remaining = remaining.Sub(alloc.Penalty)
	alloc.Interest = decimal.Min(remaining, interestOut)
	remaining = remaining.Sub(alloc.Interest)
	alloc.Principal = remaining

	inst.PaidAmount = inst.PaidAmount.Add(alloc.Applied)
	inst.PenaltyPaid = inst.PenaltyPaid.Add(alloc.Penalty)
	inst.InterestPaid = inst.InterestPaid.Add(alloc.Interest)
	inst.PrincipalPaid = inst.PrincipalPaid.Add(alloc.Principal)
	inst.LoanBalance = inst.LoanBalance.Sub(alloc.Principal)

	payable := inst.Payable().Add(proposedPenalty)
	periodBalance := floorZero(payable.Sub(inst.PaidAmount))
	inst.RunningBalance = inst.LoanBalance.Add(periodBalance)
	inst.Status = DeriveStatus(inst.DueDate, inst.PaidAmount, payable, now, inst.PendingPenalty, th)

	return inst, alloc, nil
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
