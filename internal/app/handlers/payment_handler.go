package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"collectionledger/internal/pkg/logger"
	"collectionledger/internal/service/ledger"
)

type PaymentHandler struct {
	service *ledger.Service
}

func NewPaymentHandler(service *ledger.Service) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type paymentRequestBody struct {
	ReferenceNumber string          `json:"referenceNumber" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Mode            string          `json:"mode" binding:"required"`
	Collector       string          `json:"collector"`
	CollectorID     string          `json:"collectorId"`
}

// PostPayment applies one payment to one installment and returns the
// receipt plus the updated row. A clamped overpayment still commits and is
// reported in the response body.
func (h *PaymentHandler) PostPayment(c *gin.Context) {
	ctx := logger.WithTraceID(c.Request.Context(), uuid.New().String())

	var body paymentRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// The required binding lets a zero decimal through, so an absent or
	// non-positive amount is rejected here.
	if !body.Amount.IsPositive() {
		respondLedgerError(c, ledger.ErrInvalidAmount)
		return
	}

	logger.CtxInfo(ctx, "Payment request received",
		slog.String("reference_number", body.ReferenceNumber),
		slog.String("amount", body.Amount.String()),
		slog.String("mode", body.Mode))

	result, err := h.service.ApplyPayment(ctx, ledger.PaymentRequest{
		ReferenceNumber: body.ReferenceNumber,
		Amount:          body.Amount,
		Mode:            body.Mode,
		Collector:       body.Collector,
		CollectorID:     body.CollectorID,
	})
	if err != nil && !errors.Is(err, ledger.ErrOverpaymentClamped) {
		respondLedgerError(c, err)
		return
	}

	response := gin.H{
		"receipt":     toReceiptView(&result.Receipt),
		"installment": toInstallmentView(&result.Installment),
		"allocation": gin.H{
			"penalty":   result.Allocation.Penalty,
			"interest":  result.Allocation.Interest,
			"principal": result.Allocation.Principal,
			"applied":   result.Allocation.Applied,
		},
	}
	if result.Allocation.Clamped {
		response["warning"] = "payment amount exceeded outstanding balance; excess was not collected"
	}

	c.JSON(http.StatusOK, response)
}
