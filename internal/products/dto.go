package products

import "encoding/json"

type CreateProductRequest struct {
	Name           string          `json:"name" validate:"notblank,max=200"`
	Category       string          `json:"category" validate:"notblank,max=100"`
	Condition      *string         `json:"condition,omitempty" validate:"omitempty,max=100"`
	ConsignorID    int64           `json:"consignor_id" validate:"required,gt=0"`
	Description    *string         `json:"description,omitempty"`
	Specifications json.RawMessage `json:"specifications,omitempty"`
	ExpectedPrice  float64         `json:"expected_price" validate:"gte=0"`
	MinimumPrice   float64         `json:"minimum_price" validate:"gte=0"`
	Quantity       int             `json:"quantity" validate:"gte=0"`
	ImageURL       *string         `json:"image_url,omitempty" validate:"omitempty,max=2048"`
}
