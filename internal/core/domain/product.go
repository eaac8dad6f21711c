package domain

import "time"

// MovementType classifies a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// Valid reports whether the movement type is one of the known values.
func (t MovementType) Valid() bool {
	return t == MovementIn || t == MovementOut
}

// Product is a catalogue item. Deleted products are soft-deleted and hidden
// from listings but their movement history is preserved.
type Product struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SalePrice   float64   `json:"sale_price"`
	MinStock    int       `json:"min_stock"`
	Deleted     bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Inventory tracks the quantity on hand for one product.
type Inventory struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Movement records a single stock change applied to a product.
type Movement struct {
	ID        string       `json:"id"`
	ProductID string       `json:"product_id"`
	Type      MovementType `json:"type"`
	Quantity  int          `json:"quantity"`
	Notes     string       `json:"notes,omitempty"`
	UserID    string       `json:"user_id"`
	CreatedAt time.Time    `json:"created_at"`
}
