package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"collectionledger/internal/pkg/logger"
	"collectionledger/internal/service/ledger"
)

type PenaltyHandler struct {
	service *ledger.Service
}

func NewPenaltyHandler(service *ledger.Service) *PenaltyHandler {
	return &PenaltyHandler{service: service}
}

type endorsementRequestBody struct {
	ReferenceNumber string `json:"referenceNumber" binding:"required"`
	Reason          string `json:"reason" binding:"required"`
	EndorsedBy      string `json:"endorsedBy" binding:"required"`
}

// PostEndorsement opens a penalty proposal on a late installment.
func (h *PenaltyHandler) PostEndorsement(c *gin.Context) {
	ctx := logger.WithTraceID(c.Request.Context(), uuid.New().String())

	var body endorsementRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.CtxInfo(ctx, "Penalty endorsement requested",
		slog.String("reference_number", body.ReferenceNumber),
		slog.String("endorsed_by", body.EndorsedBy))

	endorsement, err := h.service.EndorsePenalty(ctx, body.ReferenceNumber, body.Reason, body.EndorsedBy)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toEndorsementView(endorsement))
}

type decisionRequestBody struct {
	Decision  string `json:"decision" binding:"required"`
	Remarks   string `json:"remarks"`
	DecidedBy string `json:"decidedBy" binding:"required"`
}

// PostDecision resolves a pending endorsement with approve or reject.
func (h *PenaltyHandler) PostDecision(c *gin.Context) {
	ctx := logger.WithTraceID(c.Request.Context(), uuid.New().String())
	endorsementID := c.Param("endorsementId")

	var body decisionRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.CtxInfo(ctx, "Penalty endorsement decision received",
		slog.String("endorsement_id", endorsementID),
		slog.String("decision", body.Decision))

	endorsement, err := h.service.DecideEndorsement(ctx, endorsementID, body.Decision, body.Remarks, body.DecidedBy)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, toEndorsementView(endorsement))
}
