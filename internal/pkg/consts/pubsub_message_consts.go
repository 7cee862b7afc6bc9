package consts

const (
	ReceiptChannel      = "CollectionLedger"
	ReceiptEventPayment = "PAYMENT_COMMITTED"
	ISODateFormat       = "2006-01-02"
)
