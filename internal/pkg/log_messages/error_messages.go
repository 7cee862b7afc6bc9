package log_messages

const (
	FailureInKafkaConsumerCreation    = "failed to create Kafka consumer %v"
	KafkaErrorConsuming               = "kafka consumer error in consuming %v"
	ErrorSerializingKafkaMessage      = "error serializing Kafka message %v"
	TopicDoesNotExists                = "pubsub topic does not exist: %v"
	ErrorMarshallingMessage           = "failed to marshal message: %v"
	ErrorInMessagePublishing          = "failed to publish message: %v"
	ErrorPubSubClientCreation         = "error creating pubsub client: %v"
	ErrorFetchingInstallmentDoc       = "error fetching document from installments mongoDB: %v"
	ErrorFetchingLoansMongoDBDoc      = "error fetching document from loans mongoDB: %v"
	EmptyDocumentFoundFromDb          = "no associated mongodb document found: %v"
	NoInstallmentForReference         = "no installment found for reference number: %s"
	NoLoanForInstallment              = "no loan found for installment: %s"
	ErrorApplyingPayment              = "error applying payment: %v"
	ErrorGeneratingSchedule           = "error generating installment schedule: %v"
	ErrorResolvingEndorsement         = "error resolving penalty endorsement: %v"
	ErrorInvalidatingStatusCache      = "failed to invalidate status cache: %v"
)
