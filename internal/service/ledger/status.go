package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"collectionledger/internal/pkg/consts"
	"collectionledger/utils"
)

// LatenessThresholds split an unpaid installment's lateness into the two
// buckets. PastDueAfterDays is the first late day; OverdueAfterDays is
// where the heavier bucket begins.
type LatenessThresholds struct {
	PastDueAfterDays int
	OverdueAfterDays int
}

func DefaultThresholds() LatenessThresholds {
	return LatenessThresholds{
		PastDueAfterDays: consts.DefaultPastDueAfterDays,
		OverdueAfterDays: consts.DefaultOverdueAfterDays,
	}
}

// DeriveStatus computes an installment's status from its amounts and the
// clock. Status is never stored as a source of truth; every read and every
// mutation re-derives it here.
//
// Full settlement wins over lateness: a row paid late is Paid. An unsettled
// row past its due date lands in a lateness bucket even when partially
// paid. An installment with a pending penalty endorsement is by definition
// late and stays in its bucket until resolved. A row with nothing payable,
// which a tiny open-term balance can produce once interest rounds to zero,
// counts as settled.
func DeriveStatus(dueDate time.Time, paidAmount, payableAmount decimal.Decimal,
	today time.Time, pendingPenalty bool, th LatenessThresholds) consts.InstallmentStatus {

	if paidAmount.GreaterThanOrEqual(payableAmount) {
		return consts.StatusPaid
	}

	daysLate := utils.DaysLate(dueDate, today)
	switch {
	case daysLate >= th.OverdueAfterDays:
		return consts.StatusOverdue
	case daysLate >= th.PastDueAfterDays || pendingPenalty:
		return consts.StatusPastDue
	}

	if paidAmount.IsPositive() {
		return consts.StatusPartial
	}
	return consts.StatusUnpaid
}

// Restatus re-derives and sets the status on the installment in place.
func Restatus(inst *Installment, today time.Time, th LatenessThresholds) {
	inst.Status = DeriveStatus(inst.DueDate, inst.PaidAmount, inst.Payable(), today, inst.PendingPenalty, th)
}
