package services_test

import (
	"testing"
	"time"

	"tailorbook_backend/internal/models"
	"tailorbook_backend/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedLedgerCustomer(repo *fakeCustomerRepo, customerID string, charge, total, advance int64) {
	repo.seed(models.Customer{
		CustomerID:     customerID,
		Name:           "Ledger Customer " + customerID,
		Phone:          "0300-" + customerID,
		Address:        "Main Bazaar",
		SuitCount:      1,
		ActivityDate:   time.Now().AddDate(0, 0, -30),
		CurrentCharge:  charge,
		TotalAmount:    total,
		AdvancePayment: advance,
	})
}

func TestApplyChargeRaisesBalancesAndActivityDate(t *testing.T) {
	repo := newFakeCustomerRepo()
	seedLedgerCustomer(repo, "AB001", 1000, 5000, 0)
	svc := services.NewLedgerService(repo, nil)

	before := repo.customers["AB001"].ActivityDate

	balances, err := svc.ApplyTransaction("AB001", services.LedgerTransactionRequest{Type: "charge", Amount: "500"})
	require.NoError(t, err)

	assert.Equal(t, int64(1500), balances.CurrentCharge)
	assert.Equal(t, int64(5500), balances.TotalAmount)
	assert.Equal(t, int64(0), balances.AdvancePayment)
	assert.True(t, balances.ActivityDate.After(before), "charge refreshes the activity date")
}

func TestApplyPaymentLowersChargeAndRaisesAdvance(t *testing.T) {
	repo := newFakeCustomerRepo()
	seedLedgerCustomer(repo, "AB001", 1500, 5500, 2000)
	svc := services.NewLedgerService(repo, nil)

	before := repo.customers["AB001"].ActivityDate

	balances, err := svc.ApplyTransaction("AB001", services.LedgerTransactionRequest{Type: "payment", Amount: "700"})
	require.NoError(t, err)

	assert.Equal(t, int64(800), balances.CurrentCharge)
	assert.Equal(t, int64(5500), balances.TotalAmount, "payments never lower the lifetime billed total")
	assert.Equal(t, int64(2700), balances.AdvancePayment)
	assert.Equal(t, before, balances.ActivityDate, "payments do not refresh the activity date")
}

func TestOverpaymentProducesCreditNotError(t *testing.T) {
	repo := newFakeCustomerRepo()
	seedLedgerCustomer(repo, "AB001", 800, 5500, 2700)
	svc := services.NewLedgerService(repo, nil)

	balances, err := svc.ApplyTransaction("AB001", services.LedgerTransactionRequest{Type: "payment", Amount: "2000"})
	require.NoError(t, err)
	assert.Equal(t, int64(-1200), balances.CurrentCharge, "overpayment leaves the customer in credit")
	assert.Equal(t, int64(4700), balances.AdvancePayment)
}

func TestApplyTransactionMalformedAmountIsNoOp(t *testing.T) {
	repo := newFakeCustomerRepo()
	seedLedgerCustomer(repo, "AB001", 1000, 5000, 200)
	svc := services.NewLedgerService(repo, nil)

	balances, err := svc.ApplyTransaction("AB001", services.LedgerTransactionRequest{Type: "payment", Amount: "abc"})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), balances.CurrentCharge)
	assert.Equal(t, int64(200), balances.AdvancePayment)
}

func TestApplyTransactionUnknownType(t *testing.T) {
	repo := newFakeCustomerRepo()
	seedLedgerCustomer(repo, "AB001", 0, 0, 0)
	svc := services.NewLedgerService(repo, nil)

	_, err := svc.ApplyTransaction("AB001", services.LedgerTransactionRequest{Type: "refund", Amount: "100"})
	assert.ErrorIs(t, err, services.ErrLedgerValidation)
}

func TestApplyTransactionUnknownCustomer(t *testing.T) {
	repo := newFakeCustomerRepo()
	svc := services.NewLedgerService(repo, nil)

	_, err := svc.ApplyTransaction("AB404", services.LedgerTransactionRequest{Type: "charge", Amount: "100"})
	assert.ErrorIs(t, err, services.ErrCustomerNotFound)
}

func TestLegacyBalancesTreatedAsZero(t *testing.T) {
	repo := newFakeCustomerRepo()
	// A pre-ledger row: all balances at their zero values.
	seedLedgerCustomer(repo, "AB001", 0, 0, 0)
	svc := services.NewLedgerService(repo, nil)

	balances, err := svc.ApplyTransaction("AB001", services.LedgerTransactionRequest{Type: "charge", Amount: "300"})
	require.NoError(t, err)
	assert.Equal(t, int64(300), balances.CurrentCharge)
	assert.Equal(t, int64(300), balances.TotalAmount)
}

func TestSummaryRecomputedFromRows(t *testing.T) {
	repo := newFakeCustomerRepo()
	seedLedgerCustomer(repo, "AB001", 1000, 5000, 4000)
	seedLedgerCustomer(repo, "AB002", -200, 700, 900)
	svc := services.NewLedgerService(repo, nil)

	summary, err := svc.GetSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(5700), summary.TotalReceivable)
	assert.Equal(t, int64(4900), summary.TotalReceived)
	assert.Equal(t, int64(800), summary.TotalPending)

	// Read-only queries are idempotent.
	again, err := svc.GetSummary()
	require.NoError(t, err)
	assert.Equal(t, summary, again)

	// And a transaction is reflected on the next recomputation.
	_, err = svc.ApplyTransaction("AB002", services.LedgerTransactionRequest{Type: "charge", Amount: "100"})
	require.NoError(t, err)

	after, err := svc.GetSummary()
	require.NoError(t, err)
	assert.Equal(t, int64(5800), after.TotalReceivable)
	assert.Equal(t, int64(900), after.TotalPending)
}
