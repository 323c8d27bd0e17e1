package models

import "time"

// Ledger transaction types.
const (
	LedgerTypeCharge  = "charge"
	LedgerTypePayment = "payment"
)

// LedgerDelta describes one transaction as signed adjustments to a customer's
// balance columns. The repository applies it as a single atomic statement.
type LedgerDelta struct {
	ChargeDelta  int64
	TotalDelta   int64
	AdvanceDelta int64

	// TouchActivityDate refreshes the customer's activity date to today;
	// set for charges, which are dated events in their own right.
	TouchActivityDate bool
}

// CustomerBalances is the financial state of one customer after a ledger
// transaction has been applied.
type CustomerBalances struct {
	CustomerID     string    `json:"customer_id"`
	CurrentCharge  int64     `json:"current_charge"`
	TotalAmount    int64     `json:"total_amount"`
	AdvancePayment int64     `json:"advance_payment"`
	ActivityDate   time.Time `json:"activity_date"`
}

// LedgerSummary holds the shop-wide aggregate totals, recomputed from the
// stored rows on every request.
type LedgerSummary struct {
	TotalReceivable int64 `json:"total_receivable"` // sum of lifetime billed
	TotalReceived   int64 `json:"total_received"`   // sum of lifetime received
	TotalPending    int64 `json:"total_pending"`    // sum of outstanding charges
}
