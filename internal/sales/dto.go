package sales

import "time"

// RecordSaleRequest is a validated sale before its commission is resolved.
type RecordSaleRequest struct {
	ProductID     int64      `json:"product_id" validate:"required,gt=0"`
	Amount        float64    `json:"amount" validate:"gt=0"`
	Commission    *float64   `json:"commission" validate:"omitempty,gte=0"`
	SaleDate      *time.Time `json:"sale_date"`
	PaymentMethod string     `json:"payment_method" validate:"notblank,max=50"`
}
