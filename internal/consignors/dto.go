package consignors

type CreateConsignorRequest struct {
	FullName    string  `json:"full_name" validate:"notblank,max=200"`
	Email       *string `json:"email,omitempty" validate:"omitempty,max=320"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,max=50"`
	Address     *string `json:"address,omitempty"`
	IsActive    bool    `json:"is_active"`
}
