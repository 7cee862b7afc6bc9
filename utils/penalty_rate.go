package utils

import (
	"collectionledger/internal/pkg/consts"

	"github.com/shopspring/decimal"
)

var (
	pastDueRate = decimal.NewFromFloat(0.02)
	overdueRate = decimal.NewFromFloat(0.05)
)

// PenaltyRateFor returns the late-fee rate applied to an installment's
// period amount: 2% once Past Due, 5% once Overdue. Any other status carries
// no penalty and returns ok=false.
func PenaltyRateFor(status consts.InstallmentStatus) (decimal.Decimal, bool) {
	switch status {
	case consts.StatusPastDue:
		return pastDueRate, true
	case consts.StatusOverdue:
		return overdueRate, true
	default:
		return decimal.Zero, false
	}
}

// ComputePenaltyAmount applies the lateness rate to the period amount,
// rounded to centavos.
func ComputePenaltyAmount(status consts.InstallmentStatus, periodAmount decimal.Decimal) (decimal.Decimal, bool) {
	rate, ok := PenaltyRateFor(status)
	if !ok {
		return decimal.Zero, false
	}
	return periodAmount.Mul(rate).Round(2), true
}
