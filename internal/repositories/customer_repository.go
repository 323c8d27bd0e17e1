package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tailorbook_backend/internal/models"

	"github.com/lib/pq" // For pq.Error
)

// CustomerRepository defines the interface for customer-related database operations.
type CustomerRepository interface {
	CreateCustomer(customer *models.Customer) (int64, error)
	GetCustomerByCustomerID(customerID string) (*models.Customer, error)
	GetCustomers() ([]models.Customer, error)
	UpdateCustomer(executor SQLExecutor, customer *models.Customer) error
	DeleteCustomer(executor SQLExecutor, customerID string) error
	GetCustomerByPhone(phone string) (*models.Customer, error)
	FindCustomerByName(fragment string) (*models.Customer, error)
	GetLastCustomerID(prefix string) (string, error)
	ApplyLedgerDelta(executor SQLExecutor, customerID string, delta models.LedgerDelta) (*models.CustomerBalances, error)
	GetLedgerSummary() (*models.LedgerSummary, error)
}

type customerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new instance of CustomerRepository.
func NewCustomerRepository(db *sql.DB) CustomerRepository {
	return &customerRepository{db: db}
}

// customerColumns is the canonical select list. Financial columns are wrapped
// in COALESCE because rows written by older form revisions carry NULL there.
const customerColumns = `id, customer_id, name, phone, address, suit_count, activity_date,
	height, width, chest_width, arm, teera, collar,
	shalwar_length, poncha, shalwar_width, asan,
	style_collar, style_cuff, style_pocket, style_patti, style_daman, style_shalwar_pocket,
	size_collar, size_patti, size_cuff,
	kaj_count, pocket_size, design_button, salai,
	special_notes,
	COALESCE(current_charge, 0), COALESCE(total_amount, 0), COALESCE(advance_payment, 0),
	created_at, updated_at`

func scanCustomer(s scanner) (*models.Customer, error) {
	customer := &models.Customer{}
	err := s.Scan(
		&customer.ID, &customer.CustomerID, &customer.Name, &customer.Phone,
		&customer.Address, &customer.SuitCount, &customer.ActivityDate,
		&customer.Height, &customer.Width, &customer.ChestWidth, &customer.Arm,
		&customer.Teera, &customer.Collar,
		&customer.ShalwarLength, &customer.Poncha, &customer.ShalwarWidth, &customer.Asan,
		&customer.StyleCollar, &customer.StyleCuff, &customer.StylePocket,
		&customer.StylePatti, &customer.StyleDaman, &customer.StyleShalwarPocket,
		&customer.SizeCollar, &customer.SizePatti, &customer.SizeCuff,
		&customer.KajCount, &customer.PocketSize, &customer.DesignButton, &customer.Salai,
		&customer.SpecialNotes,
		&customer.CurrentCharge, &customer.TotalAmount, &customer.AdvancePayment,
		&customer.CreatedAt, &customer.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// CreateCustomer records the minted customer ID in the append-only issued-ID
// log and inserts the row, in one transaction. The log is never pruned on
// delete, so an ID is never reissued even after its customer is removed, and
// its primary key turns a concurrent mint of the same ID into ErrDuplicateKey
// so the caller can re-mint and retry.
func (r *customerRepository) CreateCustomer(customer *models.Customer) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("%w: starting customer creation: %v", ErrDatabaseError, err)
	}
	defer tx.Rollback()

	if err := r.recordIssuedCustomerID(tx, customer.CustomerID); err != nil {
		return 0, err
	}
	if err := r.insertCustomer(tx, customer); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: committing customer creation: %v", ErrDatabaseError, err)
	}
	return customer.ID, nil
}

func (r *customerRepository) recordIssuedCustomerID(executor SQLExecutor, customerID string) error {
	_, err := executor.Exec(`INSERT INTO issued_customer_ids (customer_id) VALUES ($1)`, customerID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: customer ID %s already issued", ErrDuplicateKey, customerID)
			}
		}
		return fmt.Errorf("%w: recording issued customer ID %s: %v", ErrDatabaseError, customerID, err)
	}
	return nil
}

func (r *customerRepository) insertCustomer(executor SQLExecutor, customer *models.Customer) error {
	query := `INSERT INTO customers
	            (customer_id, name, phone, address, suit_count, activity_date,
	             height, width, chest_width, arm, teera, collar,
	             shalwar_length, poncha, shalwar_width, asan,
	             style_collar, style_cuff, style_pocket, style_patti, style_daman, style_shalwar_pocket,
	             size_collar, size_patti, size_cuff,
	             kaj_count, pocket_size, design_button, salai,
	             special_notes,
	             current_charge, total_amount, advance_payment,
	             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
	                  $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
	                  $31, $32, $33, $34, $35)
	          RETURNING id`

	currentTime := time.Now()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = currentTime
	}
	if customer.UpdatedAt.IsZero() {
		customer.UpdatedAt = currentTime
	}

	err := executor.QueryRow(query,
		customer.CustomerID, customer.Name, customer.Phone, customer.Address,
		customer.SuitCount, customer.ActivityDate,
		customer.Height, customer.Width, customer.ChestWidth, customer.Arm,
		customer.Teera, customer.Collar,
		customer.ShalwarLength, customer.Poncha, customer.ShalwarWidth, customer.Asan,
		customer.StyleCollar, customer.StyleCuff, customer.StylePocket,
		customer.StylePatti, customer.StyleDaman, customer.StyleShalwarPocket,
		customer.SizeCollar, customer.SizePatti, customer.SizeCuff,
		customer.KajCount, customer.PocketSize, customer.DesignButton, customer.Salai,
		customer.SpecialNotes,
		customer.CurrentCharge, customer.TotalAmount, customer.AdvancePayment,
		customer.CreatedAt, customer.UpdatedAt,
	).Scan(&customer.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: creating customer: %v", ErrDatabaseError, err)
	}
	return nil
}

// GetCustomerByCustomerID retrieves a customer by their business-facing ID.
func (r *customerRepository) GetCustomerByCustomerID(customerID string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1`
	customer, err := scanCustomer(r.db.QueryRow(query, customerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting customer %s: %v", ErrDatabaseError, customerID, err)
	}
	return customer, nil
}

// GetCustomers retrieves all customers, most recent activity first.
func (r *customerRepository) GetCustomers() ([]models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY activity_date DESC, id DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying customers: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning customer: %v", ErrDatabaseError, err)
		}
		customers = append(customers, *customer)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating customer rows: %v", ErrDatabaseError, err)
	}
	return customers, nil
}

// UpdateCustomer rewrites the form-captured fields of an existing customer.
// Financial columns are deliberately not touched here; they belong to the ledger.
func (r *customerRepository) UpdateCustomer(executor SQLExecutor, customer *models.Customer) error {
	query := `UPDATE customers SET
	            name = $1, phone = $2, address = $3, suit_count = $4, activity_date = $5,
	            height = $6, width = $7, chest_width = $8, arm = $9, teera = $10, collar = $11,
	            shalwar_length = $12, poncha = $13, shalwar_width = $14, asan = $15,
	            style_collar = $16, style_cuff = $17, style_pocket = $18, style_patti = $19,
	            style_daman = $20, style_shalwar_pocket = $21,
	            size_collar = $22, size_patti = $23, size_cuff = $24,
	            kaj_count = $25, pocket_size = $26, design_button = $27, salai = $28,
	            special_notes = $29, updated_at = $30
	          WHERE customer_id = $31`

	customer.UpdatedAt = time.Now()
	result, err := executor.Exec(query,
		customer.Name, customer.Phone, customer.Address, customer.SuitCount, customer.ActivityDate,
		customer.Height, customer.Width, customer.ChestWidth, customer.Arm,
		customer.Teera, customer.Collar,
		customer.ShalwarLength, customer.Poncha, customer.ShalwarWidth, customer.Asan,
		customer.StyleCollar, customer.StyleCuff, customer.StylePocket, customer.StylePatti,
		customer.StyleDaman, customer.StyleShalwarPocket,
		customer.SizeCollar, customer.SizePatti, customer.SizeCuff,
		customer.KajCount, customer.PocketSize, customer.DesignButton, customer.Salai,
		customer.SpecialNotes, customer.UpdatedAt,
		customer.CustomerID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			if pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: %s (constraint: %s)", ErrDuplicateKey, pqErr.Message, pqErr.Constraint)
			}
		}
		return fmt.Errorf("%w: updating customer %s: %v", ErrDatabaseError, customer.CustomerID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for customer %s: %v", ErrDatabaseError, customer.CustomerID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCustomer removes a customer from the database. The customer_id is never
// reissued: the issued-ID log keeps its entry, so minting counts past it.
func (r *customerRepository) DeleteCustomer(executor SQLExecutor, customerID string) error {
	result, err := executor.Exec(`DELETE FROM customers WHERE customer_id = $1`, customerID)
	if err != nil {
		return fmt.Errorf("%w: deleting customer %s: %v", ErrDatabaseError, customerID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: getting rows affected for deleting customer %s: %v", ErrDatabaseError, customerID, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetCustomerByPhone retrieves a customer by exact phone match. When several
// rows share a phone number the oldest row wins, keeping lookups stable.
func (r *customerRepository) GetCustomerByPhone(phone string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1 ORDER BY id ASC LIMIT 1`
	customer, err := scanCustomer(r.db.QueryRow(query, phone))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting customer by phone: %v", ErrDatabaseError, err)
	}
	return customer, nil
}

// FindCustomerByName retrieves the first customer whose name contains the
// fragment, case-insensitively, in insertion order.
func (r *customerRepository) FindCustomerByName(fragment string) (*models.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE name ILIKE '%' || $1 || '%' ORDER BY id ASC LIMIT 1`
	customer, err := scanCustomer(r.db.QueryRow(query, fragment))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding customer by name: %v", ErrDatabaseError, err)
	}
	return customer, nil
}

// GetLastCustomerID returns the numerically-highest customer ID ever issued
// under the given prefix, deleted customers included. Ordering by length before
// value keeps AB1000 above AB999, which plain string ordering would get wrong.
func (r *customerRepository) GetLastCustomerID(prefix string) (string, error) {
	query := `SELECT customer_id FROM issued_customer_ids WHERE customer_id LIKE $1 || '%'
	          ORDER BY LENGTH(customer_id) DESC, customer_id DESC LIMIT 1`
	var lastID string
	err := r.db.QueryRow(query, prefix).Scan(&lastID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: getting last customer ID: %v", ErrDatabaseError, err)
	}
	return lastID, nil
}

// ApplyLedgerDelta applies one ledger transaction as a single atomic statement,
// so concurrent charges and payments on the same row cannot lose an update.
// COALESCE treats balances absent on legacy rows as zero before the delta.
func (r *customerRepository) ApplyLedgerDelta(executor SQLExecutor, customerID string, delta models.LedgerDelta) (*models.CustomerBalances, error) {
	query := `UPDATE customers SET
	            current_charge  = COALESCE(current_charge, 0) + $1,
	            total_amount    = COALESCE(total_amount, 0) + $2,
	            advance_payment = COALESCE(advance_payment, 0) + $3,
	            activity_date   = CASE WHEN $4 THEN CURRENT_DATE ELSE activity_date END,
	            updated_at      = $5
	          WHERE customer_id = $6
	          RETURNING customer_id, current_charge, total_amount, advance_payment, activity_date`

	balances := &models.CustomerBalances{}
	err := executor.QueryRow(query,
		delta.ChargeDelta, delta.TotalDelta, delta.AdvanceDelta,
		delta.TouchActivityDate, time.Now(), customerID,
	).Scan(
		&balances.CustomerID, &balances.CurrentCharge, &balances.TotalAmount,
		&balances.AdvancePayment, &balances.ActivityDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: applying ledger delta for customer %s: %v", ErrDatabaseError, customerID, err)
	}
	return balances, nil
}

// GetLedgerSummary recomputes the shop-wide totals from the stored rows.
// Nothing is cached; the result always reflects the latest committed state.
func (r *customerRepository) GetLedgerSummary() (*models.LedgerSummary, error) {
	query := `SELECT
	            COALESCE(SUM(COALESCE(total_amount, 0)), 0),
	            COALESCE(SUM(COALESCE(advance_payment, 0)), 0),
	            COALESCE(SUM(COALESCE(current_charge, 0)), 0)
	          FROM customers`

	summary := &models.LedgerSummary{}
	err := r.db.QueryRow(query).Scan(&summary.TotalReceivable, &summary.TotalReceived, &summary.TotalPending)
	if err != nil {
		return nil, fmt.Errorf("%w: computing ledger summary: %v", ErrDatabaseError, err)
	}
	return summary, nil
}
