package services_test

import (
	"strings"
	"time"

	"tailorbook_backend/internal/models"
	"tailorbook_backend/internal/repositories"
)

// fakeCustomerRepo is an in-memory stand-in for the SQL-backed repository.
// It keeps the same append-only issued-ID log as the real one (entries
// survive customer deletion) and applies ledger deltas with the same
// treat-absent-as-zero semantics as the real queries.
type fakeCustomerRepo struct {
	customers map[string]*models.Customer
	issued    map[string]bool // every customer ID ever issued, never pruned
	order     []string        // customer IDs in insertion order
	nextRowID int64

	// duplicateFailures makes the next N creates fail with ErrDuplicateKey,
	// simulating a concurrent create racing the ID read.
	duplicateFailures int
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{
		customers: map[string]*models.Customer{},
		issued:    map[string]bool{},
	}
}

func (f *fakeCustomerRepo) seed(customer models.Customer) {
	f.nextRowID++
	customer.ID = f.nextRowID
	f.customers[customer.CustomerID] = &customer
	f.issued[customer.CustomerID] = true
	f.order = append(f.order, customer.CustomerID)
}

func cloneCustomer(c *models.Customer) *models.Customer {
	clone := *c
	return &clone
}

func (f *fakeCustomerRepo) CreateCustomer(customer *models.Customer) (int64, error) {
	if f.duplicateFailures > 0 {
		f.duplicateFailures--
		return 0, repositories.ErrDuplicateKey
	}
	if f.issued[customer.CustomerID] {
		return 0, repositories.ErrDuplicateKey
	}
	f.nextRowID++
	customer.ID = f.nextRowID
	f.customers[customer.CustomerID] = cloneCustomer(customer)
	f.issued[customer.CustomerID] = true
	f.order = append(f.order, customer.CustomerID)
	return customer.ID, nil
}

func (f *fakeCustomerRepo) GetCustomerByCustomerID(customerID string) (*models.Customer, error) {
	customer, ok := f.customers[customerID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return cloneCustomer(customer), nil
}

func (f *fakeCustomerRepo) GetCustomers() ([]models.Customer, error) {
	customers := []models.Customer{}
	for _, id := range f.order {
		customers = append(customers, *f.customers[id])
	}
	return customers, nil
}

func (f *fakeCustomerRepo) UpdateCustomer(_ repositories.SQLExecutor, customer *models.Customer) error {
	existing, ok := f.customers[customer.CustomerID]
	if !ok {
		return repositories.ErrNotFound
	}
	updated := cloneCustomer(customer)
	updated.ID = existing.ID
	// Financial columns are not part of the update statement.
	updated.CurrentCharge = existing.CurrentCharge
	updated.TotalAmount = existing.TotalAmount
	updated.AdvancePayment = existing.AdvancePayment
	f.customers[customer.CustomerID] = updated
	return nil
}

func (f *fakeCustomerRepo) DeleteCustomer(_ repositories.SQLExecutor, customerID string) error {
	if _, ok := f.customers[customerID]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.customers, customerID)
	for i, id := range f.order {
		if id == customerID {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeCustomerRepo) GetCustomerByPhone(phone string) (*models.Customer, error) {
	for _, id := range f.order {
		if f.customers[id].Phone == phone {
			return cloneCustomer(f.customers[id]), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCustomerRepo) FindCustomerByName(fragment string) (*models.Customer, error) {
	needle := strings.ToLower(fragment)
	for _, id := range f.order {
		if strings.Contains(strings.ToLower(f.customers[id].Name), needle) {
			return cloneCustomer(f.customers[id]), nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCustomerRepo) GetLastCustomerID(prefix string) (string, error) {
	last := ""
	for id := range f.issued {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		// Numeric ordering: longer ID wins, then string comparison.
		if len(id) > len(last) || (len(id) == len(last) && id > last) {
			last = id
		}
	}
	if last == "" {
		return "", repositories.ErrNotFound
	}
	return last, nil
}

func (f *fakeCustomerRepo) ApplyLedgerDelta(_ repositories.SQLExecutor, customerID string, delta models.LedgerDelta) (*models.CustomerBalances, error) {
	customer, ok := f.customers[customerID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	customer.CurrentCharge += delta.ChargeDelta
	customer.TotalAmount += delta.TotalDelta
	customer.AdvancePayment += delta.AdvanceDelta
	if delta.TouchActivityDate {
		customer.ActivityDate = time.Now()
	}
	return &models.CustomerBalances{
		CustomerID:     customerID,
		CurrentCharge:  customer.CurrentCharge,
		TotalAmount:    customer.TotalAmount,
		AdvancePayment: customer.AdvancePayment,
		ActivityDate:   customer.ActivityDate,
	}, nil
}

func (f *fakeCustomerRepo) GetLedgerSummary() (*models.LedgerSummary, error) {
	summary := &models.LedgerSummary{}
	for _, id := range f.order {
		summary.TotalReceivable += f.customers[id].TotalAmount
		summary.TotalReceived += f.customers[id].AdvancePayment
		summary.TotalPending += f.customers[id].CurrentCharge
	}
	return summary, nil
}
