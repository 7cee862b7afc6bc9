package interfaces

import (
	"context"

	sm "collectionledger/internal/pkg/models"

	kafkaclient "github.com/confluentinc/confluent-kafka-go/kafka"
)

type KafkaConsumerInterface interface {
	Subscribe(topic string) error
	Consume() (*kafkaclient.Message, error)
	Close() error
}

type KafkaConsumerServiceInterface interface {
	StartKafkaConsumer(ctx context.Context,
		consumer KafkaConsumerInterface) (*sm.DisbursementEventMessage, *kafkaclient.Message, error)
	SerializeKafkaMessage(message []byte) (*sm.DisbursementEventMessage, error)
}
