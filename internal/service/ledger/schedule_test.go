package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"collectionledger/internal/pkg/consts"
)

func fixedTerms() LoanTerms {
	return LoanTerms{
		LoanID:           "loan-1",
		BorrowerID:       "borrower-1",
		Principal:        decimal.NewFromInt(50000),
		MonthlyRate:      decimal.NewFromInt(5),
		TermMonths:       12,
		DisbursementDate: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerateScheduleFixedTerm(t *testing.T) {
	rows, err := GenerateSchedule(fixedTerms())
	assert.NoError(t, err)
	assert.Len(t, rows, 12)

	first := rows[0]
	assert.Equal(t, 1, first.CollectionNumber)
	assert.Equal(t, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), first.DueDate)
	assert.True(t, first.PeriodAmount.Equal(decimal.NewFromInt(2500)),
		"first period collects interest only, got %s", first.PeriodAmount)
	assert.True(t, first.PeriodPrincipal.IsZero())
	assert.True(t, first.LoanBalance.Equal(decimal.NewFromInt(50000)))

	second := rows[1]
	assert.True(t, second.PeriodInterest.Equal(decimal.NewFromInt(2500)))
	assert.True(t, second.PeriodPrincipal.Equal(decimal.RequireFromString("4545.45")))

	third := rows[2]
	assert.True(t, third.PeriodInterest.Equal(decimal.RequireFromString("2272.73")),
		"third period interest on reduced balance, got %s", third.PeriodInterest)

	// The last row absorbs the rounding remainder so principal sums exactly.
	last := rows[11]
	assert.True(t, last.PeriodPrincipal.Equal(decimal.RequireFromString("4545.50")))

	totalPrincipal := decimal.Zero
	for _, row := range rows {
		totalPrincipal = totalPrincipal.Add(row.PeriodPrincipal)
	}
	assert.True(t, totalPrincipal.Equal(decimal.NewFromInt(50000)))

	for _, row := range rows {
		assert.Equal(t, consts.StatusUnpaid, row.Status)
		assert.NotEmpty(t, row.ReferenceNumber)
		assert.NotNil(t, row.TotalPayable)
	}
}

func TestGenerateScheduleDueDatesMonthlyAndIncreasing(t *testing.T) {
	rows, err := GenerateSchedule(fixedTerms())
	assert.NoError(t, err)

	for i := 1; i < len(rows); i++ {
		assert.True(t, rows[i].DueDate.After(rows[i-1].DueDate),
			"due dates must strictly increase at row %d", i+1)
		assert.False(t, rows[i].LoanBalance.GreaterThan(rows[i-1].LoanBalance),
			"loan balance must not increase at row %d", i+1)
	}
}

func TestGenerateScheduleClampsEndOfMonth(t *testing.T) {
	terms := fixedTerms()
	terms.DisbursementDate = time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	rows, err := GenerateSchedule(terms)
	assert.NoError(t, err)

	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), rows[0].DueDate)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), rows[1].DueDate)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), rows[11].DueDate)
}

func TestGenerateScheduleTotalPayableEqualsSumOfPeriods(t *testing.T) {
	rows, err := GenerateSchedule(fixedTerms())
	assert.NoError(t, err)

	sum := decimal.Zero
	for _, row := range rows {
		sum = sum.Add(row.PeriodAmount)
	}
	assert.True(t, rows[0].TotalPayable.Equal(sum),
		"totalPayable %s must equal sum of period amounts %s", rows[0].TotalPayable, sum)
}

func TestGenerateScheduleOpenTerm(t *testing.T) {
	terms := fixedTerms()
	terms.OpenTerm = true
	terms.TermMonths = 0

	rows, err := GenerateSchedule(terms)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)

	row := rows[0]
	assert.True(t, row.OpenTerm)
	assert.True(t, row.PeriodAmount.Equal(decimal.NewFromInt(2500)))
	assert.True(t, row.PeriodPrincipal.IsZero())
	assert.Nil(t, row.TotalPayable)
	assert.Equal(t, time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC), row.DueDate)
}

func TestGenerateScheduleRejectsBadTerms(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*LoanTerms)
	}{
		{"zero principal", func(tm *LoanTerms) { tm.Principal = decimal.Zero }},
		{"negative rate", func(tm *LoanTerms) { tm.MonthlyRate = decimal.NewFromInt(-1) }},
		{"missing loan id", func(tm *LoanTerms) { tm.LoanID = "" }},
		{"single period fixed term", func(tm *LoanTerms) { tm.TermMonths = 1 }},
		{"zero disbursement date", func(tm *LoanTerms) { tm.DisbursementDate = time.Time{} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			terms := fixedTerms()
			tc.mutate(&terms)
			_, err := GenerateSchedule(terms)
			assert.ErrorIs(t, err, ErrScheduleGeneration)
		})
	}
}

func TestExtendScheduleAppendsNextOpenTermRow(t *testing.T) {
	prev := Installment{
		LoanID:           "loan-1",
		ReferenceNumber:  "ref-1",
		CollectionNumber: 3,
		DueDate:          time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		PeriodAmount:     decimal.NewFromInt(2000),
		PeriodInterest:   decimal.NewFromInt(2000),
		PaidAmount:       decimal.NewFromInt(2000),
		InterestPaid:     decimal.NewFromInt(2000),
		LoanBalance:      decimal.NewFromInt(40000),
		OpenTerm:         true,
	}

	disbursed := time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC)
	next, err := ExtendSchedule(prev, decimal.NewFromInt(5), disbursed)
	assert.NoError(t, err)
	assert.Equal(t, 4, next.CollectionNumber)
	assert.True(t, next.PeriodAmount.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, time.Date(2025, 7, 30, 0, 0, 0, 0, time.UTC), next.DueDate)
	assert.True(t, next.OpenTerm)
}

func TestExtendScheduleAnchorsOnDisbursementDay(t *testing.T) {
	disbursed := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	terms := fixedTerms()
	terms.OpenTerm = true
	terms.TermMonths = 0
	terms.DisbursementDate = disbursed

	rows, err := GenerateSchedule(terms)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), rows[0].DueDate)

	// Settle each row in turn; the clamped February due date must not
	// drag every later due date to the 28th.
	prev := rows[0]
	prev.PaidAmount = prev.PeriodAmount
	prev.InterestPaid = prev.PeriodInterest

	second, err := ExtendSchedule(prev, decimal.NewFromInt(5), disbursed)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), second.DueDate)

	second.PaidAmount = second.PeriodAmount
	second.InterestPaid = second.PeriodInterest
	third, err := ExtendSchedule(second, decimal.NewFromInt(5), disbursed)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), third.DueDate)
}

func TestExtendScheduleRejectsUnsettledOrClosed(t *testing.T) {
	disbursed := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	unsettled := Installment{OpenTerm: true, PeriodAmount: decimal.NewFromInt(100),
		LoanBalance: decimal.NewFromInt(1000)}
	_, err := ExtendSchedule(unsettled, decimal.NewFromInt(5), disbursed)
	assert.ErrorIs(t, err, ErrScheduleGeneration)

	fixedTerm := Installment{OpenTerm: false}
	_, err = ExtendSchedule(fixedTerm, decimal.NewFromInt(5), disbursed)
	assert.ErrorIs(t, err, ErrScheduleGeneration)

	paidOff := Installment{OpenTerm: true, LoanBalance: decimal.Zero}
	_, err = ExtendSchedule(paidOff, decimal.NewFromInt(5), disbursed)
	assert.ErrorIs(t, err, ErrScheduleGeneration)
}
