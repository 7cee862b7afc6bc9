package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"collectionledger/internal/pkg/consts"
	"collectionledger/utils"
)

var oneHundred = decimal.NewFromInt(100)

// GenerateSchedule builds the full installment schedule for a newly
// disbursed loan.
//
// Fixed-term loans get twelve monthly rows: the first collects interest
// only, the remaining eleven each collect an equal share of principal plus
// interest on the balance entering the period. Due dates step one calendar
// month at a time from the disbursement date with day-of-month clamping.
//
// Open-term loans get a single interest-only row; further rows are appended
// by ExtendSchedule as each one settles.
func GenerateSchedule(terms LoanTerms) ([]Installment, error) {
	if err := validateTerms(terms); err != nil {
		return nil, err
	}

	if terms.OpenTerm {
		row := openTermRow(terms.LoanID, terms.Principal, terms.MonthlyRate,
			utils.AddMonthsClamped(terms.DisbursementDate, 1), 1)
		return []Installment{row}, nil
	}

	months := terms.TermMonths
	if months == 0 {
		months = consts.FixedTermMonths
	}

	rows := make([]Installment, 0, months)
	balance := terms.Principal.Round(2)

	// Principal is repaid in equal shares over the amortizing periods;
	// the last row absorbs the rounding remainder.
	principalShare := terms.Principal.Div(decimal.NewFromInt(int64(months - 1))).Round(2)

	for n := 1; n <= months; n++ {
		interest := balance.Mul(terms.MonthlyRate).Div(oneHundred).Round(2)

		var principal decimal.Decimal
		switch {
		case n == 1:
			principal = decimal.Zero
		case n == months:
			principal = balance
		default:
			principal = principalShare
		}

		rows = append(rows, Installment{
			LoanID:           terms.LoanID,
			ReferenceNumber:  uuid.New().String(),
			CollectionNumber: n,
			DueDate:          utils.AddMonthsClamped(terms.DisbursementDate, n),
			PeriodAmount:     interest.Add(principal),
			PeriodInterest:   interest,
			PeriodPrincipal:  principal,
			LoanBalance:      balance,
			Status:           consts.StatusUnpaid,
		})

		balance = balance.Sub(principal)
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.PeriodAmount)
	}
	for i := range rows {
		t := total
		rows[i].TotalPayable = &t
		rows[i].RunningBalance = rows[i].LoanBalance.Add(rows[i].PeriodAmount)
	}

	return rows, nil
}

// ExtendSchedule appends the next open-term row once the previous one has
// settled with principal still outstanding. The new row again collects a
// month of interest on whatever principal remains.
//
// Due dates anchor on the disbursement date, not the previous row's
// clamped due date. A loan disbursed on the 31st falls due on the 28th in
// February and back on the 31st in March; stepping from the clamped date
// would drift every following month to the 28th.
func ExtendSchedule(prev Installment, monthlyRate decimal.Decimal, disbursed time.Time) (Installment, error) {
	if !prev.OpenTerm {
		return Installment{}, fmt.Errorf("%w: cannot extend a fixed-term schedule", ErrScheduleGeneration)
	}
	if !prev.Settled() {
		return Installment{}, fmt.Errorf("%w: previous installment is not settled", ErrScheduleGeneration)
	}
	if !prev.LoanBalance.IsPositive() {
		return Installment{}, fmt.Errorf("%w: loan balance is already zero", ErrScheduleGeneration)
	}

	row := openTermRow(prev.LoanID, prev.LoanBalance, monthlyRate,
		utils.AddMonthsClamped(disbursed, prev.CollectionNumber+1), prev.CollectionNumber+1)
	return row, nil
}

func openTermRow(loanID string, balance, monthlyRate decimal.Decimal, dueDate time.Time, n int) Installment {
	interest := balance.Mul(monthlyRate).Div(oneHundred).Round(2)
	return Installment{
		LoanID:           loanID,
		ReferenceNumber:  uuid.New().String(),
		CollectionNumber: n,
		DueDate:          dueDate,
		PeriodAmount:     interest,
		PeriodInterest:   interest,
		PeriodPrincipal:  decimal.Zero,
		LoanBalance:      balance.Round(2),
		RunningBalance:   balance.Round(2).Add(interest),
		Status:           consts.StatusUnpaid,
		OpenTerm:         true,
	}
}

func validateTerms(terms LoanTerms) error {
	if terms.LoanID == "" {
		return fmt.Errorf("%w: missing loan id", ErrScheduleGeneration)
	}
	if !terms.Principal.IsPositive() {
		return fmt.Errorf("%w: principal must be positive", ErrScheduleGeneration)
	}
	if !terms.MonthlyRate.IsPositive() {
		return fmt.Errorf("%w: monthly rate must be positive", ErrScheduleGeneration)
	}
	if !terms.OpenTerm && terms.TermMonths != 0 && terms.TermMonths < 2 {
		return fmt.Errorf("%w: fixed-term loans need at least two periods", ErrScheduleGeneration)
	}
	if terms.DisbursementDate.IsZero() {
		return fmt.Errorf("%w: missing disbursement date", ErrScheduleGeneration)
	}
	return nil
}
