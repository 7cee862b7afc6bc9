package models

import "time"

// ReceiptNotificationPubSubMsgFormat is published after a payment commits
// so downstream notification services can message the borrower.
type ReceiptNotificationPubSubMsgFormat struct {
	Event           string    `json:"event"`
	Channel         string    `json:"channel"`
	ReceiptNumber   string    `json:"receiptNumber"`
	ReferenceNumber string    `json:"referenceNumber"`
	LoanID          string    `json:"loanId"`
	BorrowerID      string    `json:"borrowerId"`
	Amount          string    `json:"amount"`
	PenaltyPaid     string    `json:"penaltyPaid"`
	InterestPaid    string    `json:"interestPaid"`
	PrincipalPaid   string    `json:"principalPaid"`
	LoanBalance     string    `json:"loanBalance"`
	Status          string    `json:"installmentStatus"`
	Mode            string    `json:"mode"`
	DatePaid        time.Time `json:"datePaid"`
}
