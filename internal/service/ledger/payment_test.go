package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"collectionledger/internal/pkg/consts"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func lateInstallment() Installment {
	// Past due row with an approved penalty of 50, interest 30 of the period
	// still owed, and plenty of principal outstanding.
	return Installment{
		LoanID:           "loan-1",
		ReferenceNumber:  "ref-1",
		CollectionNumber: 2,
		DueDate:          time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		PeriodAmount:     money("130"),
		PeriodInterest:   money("30"),
		PeriodPrincipal:  money("100"),
		PenaltyAmount:    money("50"),
		LoanBalance:      money("1000"),
		Status:           consts.StatusPastDue,
	}
}

func TestApplyPaymentAllocationOrder(t *testing.T) {
	inst := lateInstallment()
	now := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	updated, alloc, err := ApplyPayment(inst, money("120"), decimal.Zero, now, DefaultThresholds())
	assert.NoError(t, err)

	assert.True(t, alloc.Penalty.Equal(money("50")), "penalty first, got %s", alloc.Penalty)
	assert.True(t, alloc.Interest.Equal(money("30")), "interest second, got %s", alloc.Interest)
	assert.True(t, alloc.Principal.Equal(money("40")), "principal last, got %s", alloc.Principal)
	assert.False(t, alloc.Clamped)

	assert.True(t, updated.PaidAmount.Equal(money("120")))
	assert.True(t, updated.LoanBalance.Equal(money("960")))
	assert.Equal(t, consts.StatusPastDue, updated.Status, "still short of the payable")
}

func TestApplyPaymentSettlesAndUpdatesStatus(t *testing.T) {
	inst := lateInstallment()
	now := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	updated, alloc, err := ApplyPayment(inst, money("180"), decimal.Zero, now, DefaultThresholds())
	assert.NoError(t, err)
	assert.True(t, alloc.Applied.Equal(money("180")))
	assert.Equal(t, consts.StatusPaid, updated.Status, "settled late row is Paid")
	assert.True(t, updated.PeriodBalance().IsZero())
	assert.True(t, updated.LoanBalance.Equal(money("900")))
}

func TestApplyPaymentRejectsNonPositiveAmount(t *testing.T) {
	inst := lateInstallment()
	now := time.Now()

	_, _, err := ApplyPayment(inst, decimal.Zero, decimal.Zero, now, DefaultThresholds())
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = ApplyPayment(inst, money("-5"), decimal.Zero, now, DefaultThresholds())
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestApplyPaymentRejectsSettledInstallment(t *testing.T) {
	inst := Installment{
		ReferenceNumber: "ref-1",
		DueDate:         time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		PeriodAmount:    money("100"),
		PeriodInterest:  money("100"),
		PaidAmount:      money("100"),
		InterestPaid:    money("100"),
		LoanBalance:     decimal.Zero,
		Status:          consts.StatusPaid,
	}

	_, _, err := ApplyPayment(inst, money("10"), decimal.Zero, time.Now(), DefaultThresholds())
	assert.ErrorIs(t, err, ErrInstallmentSettled)
}

func TestApplyPaymentClampsOverpaymentOpenTerm(t *testing.T) {
	// Open-term row: interest 2500 owed, whole balance 50000 reachable.
	inst := Installment{
		ReferenceNumber: "ref-1",
		DueDate:         time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		PeriodAmount:    money("2500"),
		PeriodInterest:  money("2500"),
		LoanBalance:     money("50000"),
		OpenTerm:        true,
		Status:          consts.StatusUnpaid,
	}
	now := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	updated, alloc, err := ApplyPayment(inst, money("60000"), decimal.Zero, now, DefaultThresholds())
	assert.NoError(t, err)
	assert.True(t, alloc.Clamped)
	assert.True(t, alloc.Applied.Equal(money("52500")), "clamped at payable, got %s", alloc.Applied)
	assert.True(t, alloc.Interest.Equal(money("2500")))
	assert.True(t, alloc.Principal.Equal(money("50000")))
	assert.True(t, updated.LoanBalance.IsZero())
	assert.Equal(t, consts.StatusPaid, updated.Status)
}

func TestApplyPaymentOpenTermPrincipalPrepayment(t *testing.T) {
	inst := Installment{
		ReferenceNumber: "ref-1",
		DueDate:         time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC),
		PeriodAmount:    money("2500"),
		PeriodInterest:  money("2500"),
		LoanBalance:     money("50000"),
		OpenTerm:        true,
		Status:          consts.StatusUnpaid,
	}
	now := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)

	updated, alloc, err := ApplyPayment(inst, money("10000"), decimal.Zero, now, DefaultThresholds())
	assert.NoError(t, err)
	assert.True(t, alloc.Interest.Equal(money("2500")))
	assert.True(t, alloc.Principal.Equal(money("7500")), "excess pays down principal")
	assert.True(t, updated.LoanBalance.Equal(money("42500")))
}

func TestApplyPaymentFixedTermClampsAtScheduledPrincipal(t *testing.T) {
	// Fixed-term rows collect at most the scheduled principal share.
	inst := Installment{
		ReferenceNumber: "ref-1",
		DueDate:         time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		PeriodAmount:    money("7045.45"),
		PeriodInterest:  money("2500"),
		PeriodPrincipal: money("4545.45"),
		LoanBalance:     money("50000"),
		Status:          consts.StatusUnpaid,
	}
	now := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)

	updated, alloc, err := ApplyPayment(inst, money("8000"), decimal.Zero, now, DefaultThresholds())
	assert.NoError(t, err)
	assert.True(t, alloc.Clamped)
	assert.True(t, alloc.Applied.Equal(money("7045.45")))
	assert.True(t, updated.PaidAmount.Equal(updated.Payable()),
		"paid amount never exceeds the payable")
}

func TestApplyPaymentCollectsProposedPenaltyWhenPolicySaysSo(t *testing.T) {
	inst := Installment{
		ReferenceNumber: "ref-1",
		DueDate:         time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		PeriodAmount:    money("1000"),
		PeriodInterest:  money("1000"),
		LoanBalance:     money("20000"),
		PendingPenalty:  true,
		OpenTerm:        true,
		Status:          consts.StatusPastDue,
	}
	now := time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC)

	updated, alloc, err := ApplyPayment(inst, money("1020"), money("20"), now, DefaultThresholds())
	assert.NoError(t, err)
	assert.True(t, alloc.Penalty.Equal(money("20")), "pending penalty collected first")
	assert.True(t, alloc.Interest.Equal(money("1000")))
	assert.True(t, updated.PenaltyPaid.Equal(money("20")))
	assert.Equal(t, consts.StatusPaid, updated.Status)
}

func TestPenaltyChangesPayable(t *testing.T) {
	// A 1000 period amount carries a 20 penalty once Past Due and 50 once
	// Overdue, lifting the payable to 1020 and 1050.
	inst := Installment{
		ReferenceNumber: "ref-1",
		DueDate:         time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		PeriodAmount:    money("1000"),
		PeriodInterest:  money("1000"),
		PenaltyAmount:   money("20"),
		LoanBalance:     money("20000"),
		OpenTerm:        true,
		Status:          consts.StatusPastDue,
	}
	assert.True(t, inst.Payable().Equal(money("1020")))

	inst.PenaltyAmount = money("50")
	assert.True(t, inst.Payable().Equal(money("1050")))
}
