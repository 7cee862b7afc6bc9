package ledger

import "errors"

// Typed outcomes of ledger operations. Handlers map these onto HTTP
// statuses; nothing in the ledger panics or retries on its own.
var (
	// ErrInvalidAmount rejects a payment of zero or less before any state
	// is touched.
	ErrInvalidAmount = errors.New("payment amount must be greater than zero")

	// ErrOverpaymentClamped marks a payment that exceeded what the
	// installment could absorb. The payment still commits for the clamped
	// amount; the caller is told the difference was not taken.
	ErrOverpaymentClamped = errors.New("payment amount exceeded outstanding balance and was clamped")

	// ErrInstallmentSettled rejects a payment against a row with nothing
	// left to pay.
	ErrInstallmentSettled = errors.New("installment has no outstanding balance")

	ErrInstallmentNotFound = errors.New("installment not found")

	ErrLoanNotFound = errors.New("loan not found")

	// ErrPaymentInProgress is the cross-instance guard: another payment
	// against the same reference number has not finished committing.
	ErrPaymentInProgress = errors.New("a payment for this installment is already in progress")

	ErrPenaltyAlreadyPending = errors.New("a penalty endorsement is already pending for this installment")

	ErrEndorsementNotEligible = errors.New("penalty can only be endorsed on a past due or overdue installment")

	ErrEndorsementNotFound = errors.New("penalty endorsement not found")

	ErrEndorsementAlreadyResolved = errors.New("penalty endorsement has already been resolved")

	ErrInvalidDecision = errors.New("endorsement decision must be approve or reject")

	ErrScheduleGeneration = errors.New("invalid loan terms for schedule generation")

	// ErrVersionConflict surfaces a lost optimistic-concurrency race: the
	// row changed between read and write.
	ErrVersionConflict = errors.New("installment was modified concurrently")
)
