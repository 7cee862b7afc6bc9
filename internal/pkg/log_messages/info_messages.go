package log_messages

const (
	KafkaConsumerCreated = "kafka consumer created"
	KafkaConsumerClosed  = "kafka consumer closed"
)
