package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"collectionledger/internal/pkg/logger"
	"collectionledger/internal/service/ledger"
)

type CollectionHandler struct {
	service *ledger.Service
}

func NewCollectionHandler(service *ledger.Service) *CollectionHandler {
	return &CollectionHandler{service: service}
}

// GetLoanCollections returns the full collection sheet for a loan, statuses
// derived as of now.
func (h *CollectionHandler) GetLoanCollections(c *gin.Context) {
	ctx := logger.WithTraceID(c.Request.Context(), uuid.New().String())
	loanID := c.Param("loanId")

	rows, err := h.service.ListCollections(ctx, loanID)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	views := make([]installmentView, 0, len(rows))
	for i := range rows {
		views = append(views, toInstallmentView(&rows[i]))
	}

	c.JSON(http.StatusOK, gin.H{"loanId": loanID, "collections": views})
}

// GetCollection returns a single installment by its reference number.
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	ctx := logger.WithTraceID(c.Request.Context(), uuid.New().String())
	referenceNumber := c.Param("referenceNumber")

	inst, err := h.service.GetCollection(ctx, referenceNumber)
	if err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, toInstallmentView(inst))
}

type noteRequestBody struct {
	Note string `json:"note" binding:"required"`
}

// PostNote attaches a collection note to an installment.
func (h *CollectionHandler) PostNote(c *gin.Context) {
	ctx := logger.WithTraceID(c.Request.Context(), uuid.New().String())
	referenceNumber := c.Param("referenceNumber")

	var body noteRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.AddNote(ctx, referenceNumber, body.Note); err != nil {
		respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"referenceNumber": referenceNumber, "note": body.Note})
}
