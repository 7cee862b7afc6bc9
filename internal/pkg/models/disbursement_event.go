package models

// DisbursementEventMessage is the Kafka event announcing a newly disbursed
// loan. Consuming one triggers schedule generation. Amounts arrive as
// decimal strings to keep the wire format exact.
type DisbursementEventMessage struct {
	LoanID           string `json:"LOAN_ID"`
	BorrowerID       string `json:"BORROWER_ID"`
	Principal        string `json:"PRINCIPAL"`
	MonthlyRate      string `json:"MONTHLY_RATE"`
	TermMonths       int    `json:"TERM_MONTHS"`
	OpenTerm         bool   `json:"OPEN_TERM"`
	DisbursementDate string `json:"DISBURSEMENT_DATE"` // ISO date, e.g. 2025-03-15
}
