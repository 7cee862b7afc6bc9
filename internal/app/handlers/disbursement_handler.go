package handlers

import (
	"context"
	"log/slog"
	"time"

	kafkaclient "github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"collectionledger/internal/pkg/consts"
	kafkaConsumer "collectionledger/internal/pkg/kafka/consumer"
	"collectionledger/internal/pkg/log_messages"
	"collectionledger/internal/pkg/logger"
	"collectionledger/internal/pkg/models"
	"collectionledger/internal/service/interfaces"
	"collectionledger/internal/service/kafka"
	"collectionledger/internal/service/ledger"
)

// DisbursementHandler drives the Kafka side of the service: each
// disbursement event becomes a persisted installment schedule.
type DisbursementHandler struct {
	service *ledger.Service
}

func NewDisbursementHandler(service *ledger.Service) *DisbursementHandler {
	return &DisbursementHandler{service: service}
}

func (d *DisbursementHandler) ConsumeDisbursements(
	ctx context.Context,
	consumer *kafkaConsumer.KafkaConsumer,
) error {
	var kafkaService interfaces.KafkaConsumerServiceInterface = &kafka.KafkaConsumerService{}

	for {
		payload, msg, err := kafkaService.StartKafkaConsumer(ctx, consumer)
		if err != nil {
			logger.CtxError(ctx, log_messages.KafkaErrorConsuming, err)
			return err
		}

		traceCtx := d.setupTraceContext(ctx, payload, msg)
		d.processDisbursement(traceCtx, payload)
	}
}

func (d *DisbursementHandler) setupTraceContext(ctx context.Context,
	payload any, msg *kafkaclient.Message) context.Context {
	traceID := uuid.New().String()
	traceCtx := logger.WithTraceID(ctx, traceID)

	logger.CtxInfo(traceCtx, "New disbursement event started",
		slog.String("trace_id", traceID),
		slog.Any("payload", payload),
	)

	if msg != nil {
		logger.CtxDebug(traceCtx, "Kafka message", slog.String("message", string(msg.Value)))
	}

	return traceCtx
}

func (d *DisbursementHandler) processDisbursement(ctx context.Context,
	payload *models.DisbursementEventMessage) {

	terms, err := termsFromEvent(payload)
	if err != nil {
		logger.CtxError(ctx, log_messages.ErrorGeneratingSchedule, err,
			slog.String("loan_id", payload.LoanID))
		return
	}

	if _, err := d.service.CreateSchedule(ctx, terms); err != nil {
		logger.CtxError(ctx, log_messages.ErrorGeneratingSchedule, err,
			slog.String("loan_id", payload.LoanID))
		return
	}

	logger.CtxInfo(ctx, "Disbursement processing complete",
		slog.String("loan_id", payload.LoanID))
}

func termsFromEvent(payload *models.DisbursementEventMessage) (ledger.LoanTerms, error) {
	principal, err := decimal.NewFromString(payload.Principal)
	if err != nil {
		return ledger.LoanTerms{}, err
	}
	rate, err := decimal.NewFromString(payload.MonthlyRate)
	if err != nil {
		return ledger.LoanTerms{}, err
	}
	disbursed, err := time.Parse(consts.ISODateFormat, payload.DisbursementDate)
	if err != nil {
		return ledger.LoanTerms{}, err
	}

	return ledger.LoanTerms{
		LoanID:           payload.LoanID,
		BorrowerID:       payload.BorrowerID,
		Principal:        principal,
		MonthlyRate:      rate,
		TermMonths:       payload.TermMonths,
		OpenTerm:         payload.OpenTerm,
		DisbursementDate: disbursed,
	}, nil
}
