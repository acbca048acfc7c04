package sales

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/consignly/consignly/internal/shared"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockProduct struct {
	name          string
	consignorID   int64
	consignorName string
}

type mockRepository struct {
	products map[int64]mockProduct
	sales    []Sale
	windows  []Window
	nilRows  bool
	failWith error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		products: map[int64]mockProduct{
			1: {name: "Vintage Leather Bag", consignorID: 10, consignorName: "Emma Stone"},
			2: {name: "Designer Silk Scarf", consignorID: 11, consignorName: "Liam White"},
		},
	}
}

func (m *mockRepository) Record(ctx context.Context, sale NewSale) (*Sale, error) {
	p, ok := m.products[sale.ProductID]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", shared.ErrReferenceNotFound, sale.ProductID)
	}
	s := Sale{
		ID:            int64(len(m.sales) + 1),
		SaleDate:      sale.SaleDate,
		ProductID:     sale.ProductID,
		ConsignorID:   p.consignorID,
		Amount:        sale.Amount,
		Commission:    sale.Commission,
		PaymentMethod: sale.PaymentMethod,
		CreatedAt:     time.Now(),
	}
	m.sales = append(m.sales, s)
	return &s, nil
}

func (m *mockRepository) Report(ctx context.Context, window Window) ([]ReportRow, error) {
	m.windows = append(m.windows, window)
	if m.failWith != nil {
		return nil, shared.StorageError("sales: report", m.failWith)
	}
	if m.nilRows {
		return nil, nil
	}
	rows := []ReportRow{}
	for _, s := range m.sales {
		if window.Bounded() && (s.SaleDate.Before(window.From) || !s.SaleDate.Before(window.To)) {
			continue
		}
		p := m.products[s.ProductID]
		rows = append(rows, ReportRow{
			ID:            s.ID,
			SaleDate:      s.SaleDate,
			ProductName:   p.name,
			ConsignorName: p.consignorName,
			Amount:        s.Amount,
			Commission:    s.Commission,
			PaymentMethod: s.PaymentMethod,
			ConsignorID:   s.ConsignorID,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SaleDate.After(rows[j].SaleDate) })
	return rows, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var rate = decimal.RequireFromString("0.30")

// ============================================================================
// TESTS
// ============================================================================

func TestRecordSaleDefaults(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	repo := newMockRepository()
	svc := NewService(repo, rate, fixedClock(now))

	sale, err := svc.Record(context.Background(), shared.Payload{"product_id": 1, "amount": 120})
	require.NoError(t, err)

	assert.Equal(t, int64(10), sale.ConsignorID, "consignor comes from the product")
	assert.Equal(t, 36.0, sale.Commission)
	assert.Equal(t, "cash", sale.PaymentMethod)
	assert.Equal(t, now, sale.SaleDate)
}

func TestRecordSaleExplicitCommission(t *testing.T) {
	svc := NewService(newMockRepository(), rate, nil)

	sale, err := svc.Record(context.Background(), shared.Payload{"product_id": 2, "amount": 75, "commission": 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sale.Commission)
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, rate, nil)

	_, err := svc.Record(context.Background(), shared.Payload{"product_id": 99, "amount": 10})
	assert.ErrorIs(t, err, shared.ErrReferenceNotFound)
	assert.Empty(t, repo.sales)
}

func TestListSalesRanges(t *testing.T) {
	now := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)
	repo := newMockRepository()
	svc := NewService(repo, rate, fixedClock(now))
	ctx := context.Background()

	for _, d := range []time.Time{
		time.Date(2024, 7, 10, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC),
		time.Date(2023, 7, 10, 9, 0, 0, 0, time.UTC),
	} {
		_, err := svc.Record(ctx, shared.Payload{"product_id": 1, "amount": 10, "sale_date": d.Format(time.RFC3339)})
		require.NoError(t, err)
	}

	tests := []struct {
		dateRange string
		want      int
	}{
		{"all-time", 4},
		{"", 4},
		{"bogus", 4},
		{"this-month", 2},
		{"today", 1},
	}
	for _, tt := range tests {
		rows, err := svc.ListSales(ctx, tt.dateRange)
		require.NoError(t, err)
		assert.Len(t, rows, tt.want, tt.dateRange)
	}

	rows, err := svc.ListSales(ctx, "all-time")
	require.NoError(t, err)
	for i := 1; i < len(rows); i++ {
		assert.False(t, rows[i].SaleDate.After(rows[i-1].SaleDate), "newest first")
	}
	assert.Equal(t, "Vintage Leather Bag", rows[0].ProductName)
	assert.Equal(t, "Emma Stone", rows[0].ConsignorName)
}

func TestListSalesEvaluatesClockPerCall(t *testing.T) {
	current := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)
	repo := newMockRepository()
	svc := NewService(repo, rate, func() time.Time { return current })
	ctx := context.Background()

	_, err := svc.ListSales(ctx, "today")
	require.NoError(t, err)
	current = current.Add(24 * time.Hour)
	_, err = svc.ListSales(ctx, "today")
	require.NoError(t, err)

	require.Len(t, repo.windows, 2)
	assert.Equal(t, 31, repo.windows[0].From.Day())
	assert.Equal(t, time.February, repo.windows[1].From.Month())
}

func TestListSalesEmptyIsNotNil(t *testing.T) {
	repo := newMockRepository()
	repo.nilRows = true

	rows, err := NewService(repo, rate, nil).ListSales(context.Background(), "today")
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestListSalesStorageFailure(t *testing.T) {
	repo := newMockRepository()
	repo.failWith = fmt.Errorf("relation \"sales\" does not exist")

	_, err := NewService(repo, rate, nil).ListSales(context.Background(), "")
	assert.ErrorIs(t, err, shared.ErrStorage)
}
