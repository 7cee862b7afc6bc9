package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"collectionledger/internal/pkg/log_messages"
	"collectionledger/internal/pkg/logger"
	"collectionledger/internal/pkg/models"
	"collectionledger/internal/service/interfaces"

	kafkaclient "github.com/confluentinc/confluent-kafka-go/kafka"
)

type KafkaConsumerService struct{}

func (k *KafkaConsumerService) StartKafkaConsumer(ctx context.Context,
	consumer interfaces.KafkaConsumerInterface) (*models.DisbursementEventMessage,
	*kafkaclient.Message, error) {
	return StartDisbursementKafkaConsumer(ctx, consumer)
}

func (k *KafkaConsumerService) SerializeKafkaMessage(message []byte) (*models.DisbursementEventMessage, error) {
	return SerializeDisbursementKafkaMessage(message)
}

// StartDisbursementKafkaConsumer blocks until one well-formed disbursement
// event arrives; malformed messages are logged and skipped.
func StartDisbursementKafkaConsumer(ctx context.Context,
	consumer interfaces.KafkaConsumerInterface) (*models.DisbursementEventMessage,
	*kafkaclient.Message, error) {

	for {
		msg, err := consumer.Consume()
		if err != nil {
			logger.CtxError(ctx, log_messages.KafkaErrorConsuming, err)
			continue
		}

		payload, err := SerializeDisbursementKafkaMessage(msg.Value)
		if err != nil {
			logger.CtxError(ctx, log_messages.ErrorSerializingKafkaMessage, err)
			continue
		}

		logger.CtxInfo(ctx, "Disbursement event received",
			slog.String("loan_id", payload.LoanID),
			slog.String("borrower_id", payload.BorrowerID),
			slog.Bool("open_term", payload.OpenTerm))

		return payload, msg, nil
	}
}

func SerializeDisbursementKafkaMessage(message []byte) (*models.DisbursementEventMessage, error) {
	var event models.DisbursementEventMessage

	if err := json.Unmarshal(message, &event); err != nil {
		return nil, err
	}
	if event.LoanID == "" {
		return nil, fmt.Errorf("disbursement event missing loan id")
	}
	return &event, nil
}
