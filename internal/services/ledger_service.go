package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"tailorbook_backend/internal/models"
	"tailorbook_backend/internal/repositories"
	"tailorbook_backend/pkg/utils"
)

// ErrLedgerValidation covers transaction requests the ledger refuses outright.
var ErrLedgerValidation = errors.New("ledger transaction validation error")

// LedgerTransactionRequest is one charge or payment against a customer.
// The amount arrives as a plain string from the form and is coerced like any
// other price field: malformed input becomes 0, a harmless no-op.
type LedgerTransactionRequest struct {
	Type   string `json:"type" form:"type" binding:"required"`
	Amount string `json:"amount" form:"amount"`
}

// --- LedgerService Interface ---
type LedgerService interface {
	ApplyTransaction(customerID string, req LedgerTransactionRequest) (*models.CustomerBalances, error)
	GetSummary() (*models.LedgerSummary, error)
}

// --- ledgerService Implementation ---
type ledgerService struct {
	customerRepo repositories.CustomerRepository
	db           *sql.DB
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(repo repositories.CustomerRepository, db *sql.DB) LedgerService {
	return &ledgerService{
		customerRepo: repo,
		db:           db,
	}
}

// ApplyTransaction applies one charge or payment to a customer's balances.
//
// A charge raises the outstanding balance and the lifetime billed total, and
// refreshes the activity date. A payment lowers the outstanding balance and
// raises the lifetime received total; it is never clamped at zero, so paying
// more than is owed leaves a negative outstanding balance meaning the customer
// holds credit.
func (s *ledgerService) ApplyTransaction(customerID string, req LedgerTransactionRequest) (*models.CustomerBalances, error) {
	amount := NormalizePrice(req.Amount)

	var delta models.LedgerDelta
	switch strings.ToLower(strings.TrimSpace(req.Type)) {
	case models.LedgerTypeCharge:
		delta = models.LedgerDelta{
			ChargeDelta:       amount,
			TotalDelta:        amount,
			TouchActivityDate: true,
		}
	case models.LedgerTypePayment:
		delta = models.LedgerDelta{
			ChargeDelta:  -amount,
			AdvanceDelta: amount,
		}
	default:
		return nil, fmt.Errorf("%w: unknown transaction type %q", ErrLedgerValidation, req.Type)
	}

	balances, err := s.customerRepo.ApplyLedgerDelta(s.db, customerID, delta)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to apply ledger transaction: %w", err)
	}

	utils.LogInfo("Ledger transaction applied", map[string]interface{}{
		"customer_id": customerID,
		"type":        strings.ToLower(strings.TrimSpace(req.Type)),
		"amount":      amount,
	})
	return balances, nil
}

// GetSummary recomputes the shop-wide totals from scratch on every call.
func (s *ledgerService) GetSummary() (*models.LedgerSummary, error) {
	summary, err := s.customerRepo.GetLedgerSummary()
	if err != nil {
		return nil, fmt.Errorf("failed to compute ledger summary: %w", err)
	}
	return summary, nil
}
