package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"tailorbook_backend/internal/models"
	"tailorbook_backend/internal/repositories"
	"tailorbook_backend/pkg/utils"
)

// --- Custom Service Errors for Customer ---
var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrCustomerValidation  = errors.New("customer data validation error")
	ErrDateFormat          = errors.New("invalid date format, please use YYYY-MM-DD")
	ErrNoMatch             = errors.New("no customer matched the search query")
	ErrIdentifierExhausted = errors.New("could not mint a unique customer ID")
)

const dateLayout = "2006-01-02"

// maxMintAttempts bounds the re-mint loop when concurrent creates collide in
// the issued-ID log.
const maxMintAttempts = 3

// ShopConfig carries the fixed per-shop settings, loaded once at startup.
type ShopConfig struct {
	IDPrefix    string
	ShopName    string
	ShopPhone   string
	ShopAddress string
}

// CustomerFormRequest mirrors the measurement form. Numeric-ish fields arrive
// as plain strings and are coerced by the normalizer; StylePocket is the
// multi-select category and may carry zero, one or many selected options.
type CustomerFormRequest struct {
	Name      string `json:"name" form:"name" binding:"required"`
	Phone     string `json:"phone" form:"phone" binding:"required"`
	Address   string `json:"address" form:"address"`
	SuitCount string `json:"suit_count" form:"suit_count"`
	Date      string `json:"date" form:"date"` // YYYY-MM-DD; defaults to today on create

	// Price is the opening charge for the job; only honored on create.
	Price string `json:"price" form:"price"`

	// Kameez measurements.
	Height     string `json:"height" form:"height"`
	Width      string `json:"width" form:"width"`
	ChestWidth string `json:"chest_width" form:"chest_width"`
	Arm        string `json:"arm" form:"arm"`
	Teera      string `json:"teera" form:"teera"`
	Collar     string `json:"collar" form:"collar"`

	// Shalwar measurements.
	ShalwarLength string `json:"shalwar_length" form:"shalwar_length"`
	Poncha        string `json:"poncha" form:"poncha"`
	ShalwarWidth  string `json:"shalwar_width" form:"shalwar_width"`
	Asan          string `json:"asan" form:"asan"`

	// Styling choices.
	StyleCollar        string   `json:"style_collar" form:"style_collar"`
	StyleCuff          string   `json:"style_cuff" form:"style_cuff"`
	StylePocket        []string `json:"style_pocket" form:"style_pocket"`
	StylePatti         string   `json:"style_patti" form:"style_patti"`
	StyleDaman         string   `json:"style_daman" form:"style_daman"`
	StyleShalwarPocket string   `json:"style_shalwar_pocket" form:"style_shalwar_pocket"`

	// Size sub-options.
	SizeCollar string `json:"size_collar" form:"size_collar"`
	SizePatti  string `json:"size_patti" form:"size_patti"`
	SizeCuff   string `json:"size_cuff" form:"size_cuff"`

	// Later-revision styling fields.
	KajCount     string `json:"kaj_count" form:"kaj_count"`
	PocketSize   string `json:"pocket_size" form:"pocket_size"`
	DesignButton string `json:"design_button" form:"design_button"`
	Salai        string `json:"salai" form:"salai"`

	SpecialNotes string `json:"special_notes" form:"special_notes"`
}

// --- CustomerService Interface ---
type CustomerService interface {
	CreateCustomer(req CustomerFormRequest) (*models.Customer, error)
	GetCustomerByCustomerID(customerID string) (*models.Customer, error)
	GetCustomers() ([]models.Customer, error)
	UpdateCustomer(customerID string, req CustomerFormRequest) (*models.Customer, error)
	DeleteCustomer(customerID string) error
	SearchCustomer(query string) (*models.Customer, error)
	GetPrintView(customerID string) (*models.PrintView, error)
}

// --- customerService Implementation ---
type customerService struct {
	customerRepo repositories.CustomerRepository
	db           *sql.DB
	cfg          ShopConfig
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(repo repositories.CustomerRepository, db *sql.DB, cfg ShopConfig) CustomerService {
	return &customerService{
		customerRepo: repo,
		db:           db,
		cfg:          cfg,
	}
}

func (s *customerService) validateIdentity(req CustomerFormRequest) error {
	if utils.IsEmpty(req.Name) {
		return fmt.Errorf("%w: name cannot be empty", ErrCustomerValidation)
	}
	if utils.IsEmpty(req.Phone) {
		return fmt.Errorf("%w: phone cannot be empty", ErrCustomerValidation)
	}
	if utils.IsEmpty(req.Address) {
		return fmt.Errorf("%w: address cannot be empty", ErrCustomerValidation)
	}
	return nil
}

func parseFormDate(raw string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrDateFormat
	}
	return date, nil
}

// applyFormFields writes the normalized form submission onto the customer.
// Every optional field is overwritten from the submission, including empty
// ones, so a cleared field on the form clears the stored value too.
func applyFormFields(customer *models.Customer, req CustomerFormRequest) {
	customer.Name = strings.TrimSpace(req.Name)
	customer.Phone = strings.TrimSpace(req.Phone)
	customer.Address = strings.TrimSpace(req.Address)
	customer.SuitCount = NormalizeSuitCount(req.SuitCount)

	customer.Height = utils.NewNullString(strings.TrimSpace(req.Height))
	customer.Width = utils.NewNullString(strings.TrimSpace(req.Width))
	customer.ChestWidth = utils.NewNullString(strings.TrimSpace(req.ChestWidth))
	customer.Arm = utils.NewNullString(strings.TrimSpace(req.Arm))
	customer.Teera = utils.NewNullString(strings.TrimSpace(req.Teera))
	customer.Collar = utils.NewNullString(strings.TrimSpace(req.Collar))

	customer.ShalwarLength = utils.NewNullString(strings.TrimSpace(req.ShalwarLength))
	customer.Poncha = utils.NewNullString(strings.TrimSpace(req.Poncha))
	customer.ShalwarWidth = utils.NewNullString(strings.TrimSpace(req.ShalwarWidth))
	customer.Asan = utils.NewNullString(strings.TrimSpace(req.Asan))

	customer.StyleCollar = utils.NewNullString(strings.TrimSpace(req.StyleCollar))
	customer.StyleCuff = utils.NewNullString(strings.TrimSpace(req.StyleCuff))
	customer.StylePocket = CollapseMultiSelect(req.StylePocket)
	customer.StylePatti = utils.NewNullString(strings.TrimSpace(req.StylePatti))
	customer.StyleDaman = utils.NewNullString(strings.TrimSpace(req.StyleDaman))
	customer.StyleShalwarPocket = utils.NewNullString(strings.TrimSpace(req.StyleShalwarPocket))

	customer.SizeCollar = utils.NewNullString(strings.TrimSpace(req.SizeCollar))
	customer.SizePatti = utils.NewNullString(strings.TrimSpace(req.SizePatti))
	customer.SizeCuff = utils.NewNullString(strings.TrimSpace(req.SizeCuff))

	customer.KajCount = utils.NewNullString(strings.TrimSpace(req.KajCount))
	customer.PocketSize = utils.NewNullString(strings.TrimSpace(req.PocketSize))
	customer.DesignButton = utils.NewNullString(strings.TrimSpace(req.DesignButton))
	customer.Salai = utils.NewNullString(strings.TrimSpace(req.Salai))

	customer.SpecialNotes = utils.NewNullString(strings.TrimSpace(req.SpecialNotes))
}

// CreateCustomer normalizes the submission, mints a customer ID and persists
// the record. The issued-ID log closes the race between concurrent creates:
// on a duplicate-key failure the highest issued ID is re-read and a fresh
// candidate tried, up to maxMintAttempts times.
func (s *customerService) CreateCustomer(req CustomerFormRequest) (*models.Customer, error) {
	if err := s.validateIdentity(req); err != nil {
		return nil, err
	}

	activityDate, err := parseFormDate(req.Date, time.Now())
	if err != nil {
		return nil, err
	}

	customer := &models.Customer{ActivityDate: activityDate}
	applyFormFields(customer, req)

	// Opening charge for the job; later billing goes through the ledger.
	openingCharge := NormalizePrice(req.Price)
	customer.CurrentCharge = openingCharge
	customer.TotalAmount = openingCharge
	customer.AdvancePayment = 0

	for attempt := 1; attempt <= maxMintAttempts; attempt++ {
		lastID, err := s.customerRepo.GetLastCustomerID(s.cfg.IDPrefix)
		if err != nil && !errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("failed to read last customer ID: %w", err)
		}

		customer.CustomerID = NextCustomerID(s.cfg.IDPrefix, lastID)
		_, err = s.customerRepo.CreateCustomer(customer)
		if err == nil {
			return s.customerRepo.GetCustomerByCustomerID(customer.CustomerID)
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			utils.LogWarn("Customer ID collision, re-minting",
				map[string]interface{}{"customer_id": customer.CustomerID, "attempt": attempt})
			continue
		}
		return nil, fmt.Errorf("failed to create customer in repository: %w", err)
	}
	return nil, ErrIdentifierExhausted
}

func (s *customerService) GetCustomerByCustomerID(customerID string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByCustomerID(customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customer, nil
}

func (s *customerService) GetCustomers() ([]models.Customer, error) {
	customers, err := s.customerRepo.GetCustomers()
	if err != nil {
		return nil, fmt.Errorf("failed to get customers: %w", err)
	}
	return customers, nil
}

// UpdateCustomer rewrites the form-captured fields of an existing record.
// Financial balances are untouched; those change only through the ledger.
func (s *customerService) UpdateCustomer(customerID string, req CustomerFormRequest) (*models.Customer, error) {
	customer, err := s.customerRepo.GetCustomerByCustomerID(customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer for update: %w", err)
	}

	if err := s.validateIdentity(req); err != nil {
		return nil, err
	}

	activityDate, err := parseFormDate(req.Date, customer.ActivityDate)
	if err != nil {
		return nil, err
	}

	applyFormFields(customer, req)
	customer.ActivityDate = activityDate

	if err := s.customerRepo.UpdateCustomer(s.db, customer); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to update customer in repository: %w", err)
	}
	return s.customerRepo.GetCustomerByCustomerID(customerID)
}

func (s *customerService) DeleteCustomer(customerID string) error {
	err := s.customerRepo.DeleteCustomer(s.db, customerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}

// SearchCustomer resolves a free-text query to at most one customer: an exact
// phone match wins over a case-insensitive name-substring match. A miss is
// ErrNoMatch, distinct from any store failure.
func (s *customerService) SearchCustomer(query string) (*models.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrNoMatch
	}

	customer, err := s.customerRepo.GetCustomerByPhone(query)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to search by phone: %w", err)
	}

	customer, err = s.customerRepo.FindCustomerByName(query)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoMatch
		}
		return nil, fmt.Errorf("failed to search by name: %w", err)
	}
	return customer, nil
}

// GetPrintView assembles the printable measurement slip for one customer.
func (s *customerService) GetPrintView(customerID string) (*models.PrintView, error) {
	customer, err := s.GetCustomerByCustomerID(customerID)
	if err != nil {
		return nil, err
	}
	return &models.PrintView{
		ShopName:    s.cfg.ShopName,
		ShopPhone:   s.cfg.ShopPhone,
		ShopAddress: s.cfg.ShopAddress,
		PrintedAt:   time.Now().Format(dateLayout),
		Customer:    *customer,
	}, nil
}
