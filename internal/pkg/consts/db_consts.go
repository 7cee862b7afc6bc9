package consts

const (
	InstallmentsCollection        = "installments"
	ReceiptsCollection            = "receipts"
	PenaltyEndorsementsCollection = "penaltyendorsements"
	LoansCollection               = "loans"
	PaymentsInProgressCollection  = "paymentsinprogress"
)
