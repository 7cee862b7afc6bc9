package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"collectionledger/internal/pkg/consts"
	"collectionledger/internal/pkg/store/models"
)

// Store documents hold money as decimal strings; these converters are the
// only place the two representations meet.

func installmentFromDoc(doc *storemodels.Installment) (Installment, error) {
	inst := Installment{
		LoanID:           doc.LoanID,
		ReferenceNumber:  doc.ReferenceNumber,
		CollectionNumber: doc.CollectionNumber,
		DueDate:          doc.DueDate,
		Status:           consts.InstallmentStatus(doc.Status),
		PendingPenalty:   doc.PendingPenalty,
		OpenTerm:         doc.OpenTerm,
		Note:             doc.Note,
		Mode:             doc.Mode,
		Collector:        doc.Collector,
		CollectorID:      doc.CollectorID,
		Version:          doc.Version,
	}

	fields := []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"periodAmount", doc.PeriodAmount, &inst.PeriodAmount},
		{"periodInterestAmount", doc.PeriodInterestAmount, &inst.PeriodInterest},
		{"periodPrincipalAmount", doc.PeriodPrincipalAmount, &inst.PeriodPrincipal},
		{"penaltyAmount", doc.PenaltyAmount, &inst.PenaltyAmount},
		{"paidAmount", doc.PaidAmount, &inst.PaidAmount},
		{"penaltyPaid", doc.PenaltyPaid, &inst.PenaltyPaid},
		{"interestPaid", doc.InterestPaid, &inst.InterestPaid},
		{"principalPaid", doc.PrincipalPaid, &inst.PrincipalPaid},
		{"loanBalance", doc.LoanBalance, &inst.LoanBalance},
		{"runningBalance", doc.RunningBalance, &inst.RunningBalance},
	}
	for _, f := range fields {
		d, err := parseMoney(f.value)
		if err != nil {
			return Installment{}, fmt.Errorf("installment %s: bad %s: %w",
				doc.ReferenceNumber, f.name, err)
		}
		*f.dst = d
	}

	if doc.TotalPayable != nil {
		d, err := parseMoney(*doc.TotalPayable)
		if err != nil {
			return Installment{}, fmt.Errorf("installment %s: bad totalPayable: %w",
				doc.ReferenceNumber, err)
		}
		inst.TotalPayable = &d
	}

	return inst, nil
}

func installmentToDoc(inst *Installment) *storemodels.Installment {
	doc := &storemodels.Installment{
		LoanID:                inst.LoanID,
		ReferenceNumber:       inst.ReferenceNumber,
		CollectionNumber:      inst.CollectionNumber,
		DueDate:               inst.DueDate,
		PeriodAmount:          inst.PeriodAmount.StringFixed(2),
		PeriodInterestAmount:  inst.PeriodInterest.StringFixed(2),
		PeriodPrincipalAmount: inst.PeriodPrincipal.StringFixed(2),
		PenaltyAmount:         inst.PenaltyAmount.StringFixed(2),
		PaidAmount:            inst.PaidAmount.StringFixed(2),
		PenaltyPaid:           inst.PenaltyPaid.StringFixed(2),
		InterestPaid:          inst.InterestPaid.StringFixed(2),
		PrincipalPaid:         inst.PrincipalPaid.StringFixed(2),
		LoanBalance:           inst.LoanBalance.StringFixed(2),
		RunningBalance:        inst.RunningBalance.StringFixed(2),
		Status:                string(inst.Status),
		PendingPenalty:        inst.PendingPenalty,
		OpenTerm:              inst.OpenTerm,
		Note:                  inst.Note,
		Mode:                  inst.Mode,
		Collector:             inst.Collector,
		CollectorID:           inst.CollectorID,
		Version:               inst.Version,
	}

	if inst.TotalPayable != nil {
		s := inst.TotalPayable.StringFixed(2)
		doc.TotalPayable = &s
	}

	return doc
}

func rowsToDocs(rows []Installment) []storemodels.Installment {
	docs := make([]storemodels.Installment, 0, len(rows))
	for i := range rows {
		docs = append(docs, *installmentToDoc(&rows[i]))
	}
	return docs
}

func receiptToDoc(r *Receipt) *storemodels.Receipt {
	return &storemodels.Receipt{
		ReceiptNumber:   r.ReceiptNumber,
		ReferenceNumber: r.ReferenceNumber,
		LoanID:          r.LoanID,
		BorrowerID:      r.BorrowerID,
		Amount:          r.Amount.StringFixed(2),
		DatePaid:        r.DatePaid,
		Mode:            r.Mode,
		Collector:       r.Collector,
	}
}

func receiptFromDoc(doc *storemodels.Receipt) (Receipt, error) {
	amount, err := parseMoney(doc.Amount)
	if err != nil {
		return Receipt{}, fmt.Errorf("receipt %s: bad amount: %w", doc.ReceiptNumber, err)
	}
	return Receipt{
		ReceiptNumber:   doc.ReceiptNumber,
		ReferenceNumber: doc.ReferenceNumber,
		LoanID:          doc.LoanID,
		BorrowerID:      doc.BorrowerID,
		Amount:          amount,
		DatePaid:        doc.DatePaid,
		Mode:            doc.Mode,
		Collector:       doc.Collector,
	}, nil
}

func endorsementToDoc(e *PenaltyEndorsement) *storemodels.PenaltyEndorsement {
	return &storemodels.PenaltyEndorsement{
		EndorsementID:   e.ID,
		ReferenceNumber: e.ReferenceNumber,
		LoanID:          e.LoanID,
		Reason:          e.Reason,
		PenaltyAmount:   e.PenaltyAmount.StringFixed(2),
		PayableAmount:   e.PayableAmount.StringFixed(2),
		Status:          string(e.Status),
		EndorsedBy:      e.EndorsedBy,
		DateEndorsed:    e.DateEndorsed,
		Remarks:         e.Remarks,
		DecidedBy:       e.DecidedBy,
		DateResolved:    e.DateResolved,
	}
}

func endorsementFromDoc(doc *storemodels.PenaltyEndorsement) (PenaltyEndorsement, error) {
	penalty, err := parseMoney(doc.PenaltyAmount)
	if err != nil {
		return PenaltyEndorsement{}, fmt.Errorf("endorsement %s: bad penaltyAmount: %w",
			doc.EndorsementID, err)
	}
	payable, err := parseMoney(doc.PayableAmount)
	if err != nil {
		return PenaltyEndorsement{}, fmt.Errorf("endorsement %s: bad payableAmount: %w",
			doc.EndorsementID, err)
	}
	return PenaltyEndorsement{
		ID:              doc.EndorsementID,
		ReferenceNumber: doc.ReferenceNumber,
		LoanID:          doc.LoanID,
		Reason:          doc.Reason,
		PenaltyAmount:   penalty,
		PayableAmount:   payable,
		Status:          consts.EndorsementStatus(doc.Status),
		EndorsedBy:      doc.EndorsedBy,
		DateEndorsed:    doc.DateEndorsed,
		Remarks:         doc.Remarks,
		DecidedBy:       doc.DecidedBy,
		DateResolved:    doc.DateResolved,
	}, nil
}

func loanToDoc(terms *LoanTerms, loanBalance decimal.Decimal, totalPayable *decimal.Decimal) *storemodels.Loan {
	doc := &storemodels.Loan{
		LoanID:           terms.LoanID,
		BorrowerID:       terms.BorrowerID,
		Principal:        terms.Principal.StringFixed(2),
		MonthlyRate:      terms.MonthlyRate.String(),
		TermMonths:       terms.TermMonths,
		OpenTerm:         terms.OpenTerm,
		DisbursementDate: terms.DisbursementDate,
		LoanBalance:      loanBalance.StringFixed(2),
	}
	if totalPayable != nil {
		s := totalPayable.StringFixed(2)
		doc.TotalPayable = &s
	}
	return doc
}

func parseMoney(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
