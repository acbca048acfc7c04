package consignors

import (
	"github.com/consignly/consignly/internal/shared"
)

// ParseCreateRequest normalizes a create payload. is_active defaults to true.
func ParseCreateRequest(p shared.Payload) (CreateConsignorRequest, error) {
	req := CreateConsignorRequest{
		FullName:    shared.String(p["full_name"]),
		Email:       shared.OptionalString(p["email"]),
		PhoneNumber: shared.OptionalString(p["phone_number"]),
		Address:     shared.OptionalString(p["address"]),
		IsActive:    shared.Bool(p["is_active"], true),
	}
	if err := shared.ValidateStruct(req); err != nil {
		return CreateConsignorRequest{}, err
	}
	return req, nil
}
