package products

import (
	"github.com/consignly/consignly/internal/shared"
)

const (
	defaultPrice    = 0.0
	defaultQuantity = 1
)

// ParseCreateRequest coerces a create payload. Prices that cannot be parsed become 0
// and a missing or unparsable quantity becomes 1.
func ParseCreateRequest(p shared.Payload) (CreateProductRequest, error) {
	req := CreateProductRequest{
		Name:          shared.String(p["name"]),
		Category:      shared.String(p["category"]),
		Condition:     shared.OptionalString(p["condition"]),
		Description:   shared.OptionalString(p["description"]),
		ExpectedPrice: shared.Float(p["expected_price"], defaultPrice),
		MinimumPrice:  shared.Float(p["minimum_price"], defaultPrice),
		Quantity:      shared.Int(p["quantity"], defaultQuantity),
		ImageURL:      shared.OptionalString(p["image_url"]),
	}

	if !p.Blank("consignor_id") {
		id, ok := shared.Int64(p["consignor_id"])
		if !ok {
			return CreateProductRequest{}, shared.NewFieldError("consignor_id", "must be a positive integer")
		}
		req.ConsignorID = id
	}

	specs, err := shared.RawJSON(p["specifications"])
	if err != nil {
		return CreateProductRequest{}, shared.NewFieldError("specifications", "must be valid JSON")
	}
	req.Specifications = specs

	if err := shared.ValidateStruct(req); err != nil {
		return CreateProductRequest{}, err
	}
	return req, nil
}
