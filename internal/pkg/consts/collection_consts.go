package consts

type LoanVariant string

const (
	LoanVariantFixedTerm LoanVariant = "FIXED_TERM"
	LoanVariantOpenTerm  LoanVariant = "OPEN_TERM"

	// Fixed-term loans always run twelve monthly periods, the first of
	// which is interest-only.
	FixedTermMonths = 12

	PaymentModeCash   = "cash"
	PaymentModeOnline = "online"
)

type InstallmentStatus string

const (
	StatusUnpaid  InstallmentStatus = "Unpaid"
	StatusPartial InstallmentStatus = "Partial"
	StatusPaid    InstallmentStatus = "Paid"
	StatusPastDue InstallmentStatus = "Past Due"
	StatusOverdue InstallmentStatus = "Overdue"
)

type EndorsementStatus string

const (
	EndorsementPending  EndorsementStatus = "Pending"
	EndorsementApproved EndorsementStatus = "Approved"
	EndorsementRejected EndorsementStatus = "Rejected"

	EndorsementDecisionApprove = "approve"
	EndorsementDecisionReject  = "reject"
)

// Lateness bucket defaults. An installment unpaid past its due date is at
// least Past Due; once it is DefaultOverdueAfterDays late it is Overdue.
// Both are operator-overridable through the ledger config section.
const (
	DefaultPastDueAfterDays = 1
	DefaultOverdueAfterDays = 270
)
