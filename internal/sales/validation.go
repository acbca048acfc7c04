package sales

import (
	"time"

	"github.com/spf13/cast"

	"github.com/consignly/consignly/internal/shared"
)

const defaultPaymentMethod = "cash"

// ParseRecordRequest reads a sale payload. product_id and amount are required;
// the remaining fields fall back to defaults.
func ParseRecordRequest(p shared.Payload) (RecordSaleRequest, error) {
	var req RecordSaleRequest

	if p.Blank("product_id") {
		return req, shared.NewFieldError("product_id", "is required")
	}
	id, ok := shared.Int64(p["product_id"])
	if !ok {
		return req, shared.NewFieldError("product_id", "must be an integer")
	}
	req.ProductID = id

	if p.Blank("amount") {
		return req, shared.NewFieldError("amount", "is required")
	}
	req.Amount = shared.Float(p["amount"], 0)

	if !p.Blank("commission") {
		c, ok := shared.Number(p["commission"])
		if !ok {
			return req, shared.NewFieldError("commission", "must be a number")
		}
		req.Commission = &c
	}

	if !p.Blank("sale_date") {
		t, err := cast.ToTimeInDefaultLocationE(shared.String(p["sale_date"]), time.Local)
		if err != nil {
			return req, shared.NewFieldError("sale_date", "must be a date or timestamp")
		}
		req.SaleDate = &t
	}

	req.PaymentMethod = defaultPaymentMethod
	if !p.Blank("payment_method") {
		req.PaymentMethod = shared.String(p["payment_method"])
	}

	if err := shared.ValidateStruct(req); err != nil {
		return req, err
	}
	return req, nil
}
