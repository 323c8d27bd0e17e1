package handlers

import (
	"errors"
	"net/http"

	"tailorbook_backend/internal/services"
	"tailorbook_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// LedgerHandler holds the ledger service.
type LedgerHandler struct {
	ledgerService services.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ls services.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ls}
}

// ApplyTransaction applies one charge or payment to a customer's balances.
func (h *LedgerHandler) ApplyTransaction(c *gin.Context) {
	customerID := c.Param("customerId")

	var req services.LedgerTransactionRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.LogError(err, "ApplyTransaction: Failed to bind request for "+customerID)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
			"Invalid request payload: "+err.Error(), utils.SeverityWarning, err.Error()))
		return
	}

	balances, err := h.ledgerService.ApplyTransaction(customerID, req)
	if err != nil {
		utils.LogError(err, "ApplyTransaction: Error for customer "+customerID)
		switch {
		case errors.Is(err, services.ErrCustomerNotFound):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound,
				"Customer not found.", utils.SeverityDanger, err.Error()))
		case errors.Is(err, services.ErrLedgerValidation):
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed,
				"Invalid transaction: "+err.Error(), utils.SeverityWarning, err.Error()))
		default:
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
				"Failed to apply transaction.", utils.SeverityDanger, "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Transaction recorded",
		"severity": utils.SeveritySuccess,
		"balances": balances,
	})
}

// GetSummary returns the shop-wide receivable/received/pending totals.
func (h *LedgerHandler) GetSummary(c *gin.Context) {
	summary, err := h.ledgerService.GetSummary()
	if err != nil {
		utils.LogError(err, "GetSummary: Error from ledgerService.GetSummary")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError,
			"Failed to compute ledger summary.", utils.SeverityDanger, "Internal error"))
		return
	}
	c.JSON(http.StatusOK, summary)
}
