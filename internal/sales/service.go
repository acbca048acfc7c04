package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/consignly/consignly/internal/shared"
)

type Service struct {
	repo Repository
	rate decimal.Decimal
	now  func() time.Time
}

// NewService builds the reporting service. now defaults to time.Now.
func NewService(repo Repository, rate decimal.Decimal, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, rate: rate, now: now}
}

// ListSales returns sales in the range, newest first. Unknown ranges report all time.
func (s *Service) ListSales(ctx context.Context, dateRange string) ([]ReportRow, error) {
	window := ParseDateRange(dateRange).Window(s.now())
	rows, err := s.repo.Report(ctx, window)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []ReportRow{}
	}
	return rows, nil
}

// Record appends a sale for an existing product.
func (s *Service) Record(ctx context.Context, payload shared.Payload) (*Sale, error) {
	req, err := ParseRecordRequest(payload)
	if err != nil {
		return nil, err
	}

	sale := NewSale{
		ProductID:     req.ProductID,
		SaleDate:      s.now(),
		Amount:        req.Amount,
		Commission:    Commission(req.Amount, s.rate),
		PaymentMethod: req.PaymentMethod,
	}
	if req.SaleDate != nil {
		sale.SaleDate = *req.SaleDate
	}
	if req.Commission != nil {
		sale.Commission = *req.Commission
	}
	return s.repo.Record(ctx, sale)
}
