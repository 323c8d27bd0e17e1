package models

import "time"

// Customer represents a tailoring customer together with their measurements,
// styling choices and running financial balances. The field set is the union of
// every revision of the shop's paper form; all measurement and styling fields
// are optional and may be NULL on rows written by older revisions.
type Customer struct {
	ID         int64  `json:"id" db:"id"`
	CustomerID string `json:"customer_id" db:"customer_id"`
	Name       string `json:"name" db:"name" binding:"required"`
	Phone      string `json:"phone" db:"phone" binding:"required"`
	Address    string `json:"address" db:"address"`
	SuitCount  int    `json:"suit_count" db:"suit_count"`

	// ActivityDate is the date of the customer's latest dated event: set at
	// creation and refreshed whenever a charge is recorded.
	ActivityDate time.Time `json:"activity_date" db:"activity_date"`

	// Kameez measurements.
	Height     *string `json:"height,omitempty" db:"height"`
	Width      *string `json:"width,omitempty" db:"width"`
	ChestWidth *string `json:"chest_width,omitempty" db:"chest_width"`
	Arm        *string `json:"arm,omitempty" db:"arm"`
	Teera      *string `json:"teera,omitempty" db:"teera"` // shoulder
	Collar     *string `json:"collar,omitempty" db:"collar"`

	// Shalwar measurements.
	ShalwarLength *string `json:"shalwar_length,omitempty" db:"shalwar_length"`
	Poncha        *string `json:"poncha,omitempty" db:"poncha"`
	ShalwarWidth  *string `json:"shalwar_width,omitempty" db:"shalwar_width"` // ghair
	Asan          *string `json:"asan,omitempty" db:"asan"`                   // crotch

	// Styling choices. StylePocket is the multi-select category and holds a
	// single ", "-joined string of the selected option labels.
	StyleCollar        *string `json:"style_collar,omitempty" db:"style_collar"`
	StyleCuff          *string `json:"style_cuff,omitempty" db:"style_cuff"`
	StylePocket        *string `json:"style_pocket,omitempty" db:"style_pocket"`
	StylePatti         *string `json:"style_patti,omitempty" db:"style_patti"`
	StyleDaman         *string `json:"style_daman,omitempty" db:"style_daman"`
	StyleShalwarPocket *string `json:"style_shalwar_pocket,omitempty" db:"style_shalwar_pocket"`

	// Size sub-options bound to certain style categories.
	SizeCollar *string `json:"size_collar,omitempty" db:"size_collar"`
	SizePatti  *string `json:"size_patti,omitempty" db:"size_patti"`
	SizeCuff   *string `json:"size_cuff,omitempty" db:"size_cuff"`

	// Styling columns added by later form revisions.
	KajCount     *string `json:"kaj_count,omitempty" db:"kaj_count"`
	PocketSize   *string `json:"pocket_size,omitempty" db:"pocket_size"`
	DesignButton *string `json:"design_button,omitempty" db:"design_button"`
	Salai        *string `json:"salai,omitempty" db:"salai"`

	SpecialNotes *string `json:"special_notes,omitempty" db:"special_notes"`

	// Financial balances, maintained exclusively by the ledger after creation.
	// CurrentCharge is the outstanding balance for the active job and may go
	// negative when the customer holds credit.
	CurrentCharge  int64 `json:"current_charge" db:"current_charge"`
	TotalAmount    int64 `json:"total_amount" db:"total_amount"`
	AdvancePayment int64 `json:"advance_payment" db:"advance_payment"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// PrintView is the payload backing the printable measurement slip: the shop
// header followed by the full customer record.
type PrintView struct {
	ShopName    string   `json:"shop_name"`
	ShopPhone   string   `json:"shop_phone,omitempty"`
	ShopAddress string   `json:"shop_address,omitempty"`
	PrintedAt   string   `json:"printed_at"` // YYYY-MM-DD
	Customer    Customer `json:"customer"`
}
