package ledger

// EmitReceipt turns a committed payment into its immutable receipt. The
// receipt number is minted by the caller so this stays deterministic.
func EmitReceipt(receiptNumber string, payment Payment) Receipt {
	return Receipt{
		ReceiptNumber:   receiptNumber,
		ReferenceNumber: payment.ReferenceNumber,
		LoanID:          payment.LoanID,
		BorrowerID:      payment.BorrowerID,
		Amount:          payment.Amount,
		DatePaid:        payment.DatePaid,
		Mode:            payment.Mode,
		Collector:       payment.Collector,
	}
}
