package products

import (
	"encoding/json"
	"time"
)

// Product is a single consigned listing, owned by exactly one consignor.
type Product struct {
	ID             int64           `json:"id" db:"id"`
	Name           string          `json:"name" db:"name"`
	Category       string          `json:"category" db:"category"`
	Condition      *string         `json:"condition" db:"condition"`
	Description    *string         `json:"description" db:"description"`
	Specifications json.RawMessage `json:"specifications" db:"specifications"`
	ExpectedPrice  float64         `json:"expected_price" db:"expected_price"`
	MinimumPrice   float64         `json:"minimum_price" db:"minimum_price"`
	Quantity       int             `json:"quantity" db:"quantity"`
	ImageURL       *string         `json:"image_url" db:"image_url"`
	ConsignorID    int64           `json:"consignor_id" db:"consignor_id"`
	CreatedAt      time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}
