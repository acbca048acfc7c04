package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/consignly/consignly/internal/platform/db"
	"github.com/consignly/consignly/internal/shared"
)

const saleColumns = "id, sale_date, product_id, consignor_id, amount, commission, payment_method, created_at"

// NewSale is a sale ready to be written; ConsignorID is taken from the product.
type NewSale struct {
	ProductID     int64
	SaleDate      time.Time
	Amount        float64
	Commission    float64
	PaymentMethod string
}

type Repository interface {
	Record(ctx context.Context, sale NewSale) (*Sale, error)
	Report(ctx context.Context, window Window) ([]ReportRow, error)
}

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

// Record inserts the sale in one statement so the consignor is copied from the
// product row that exists at write time.
func (r *repository) Record(ctx context.Context, sale NewSale) (*Sale, error) {
	const query = `
		INSERT INTO sales (sale_date, product_id, consignor_id, amount, commission, payment_method)
		SELECT $1, p.id, p.consignor_id, $3, $4, $5
		FROM products p
		WHERE p.id = $2
		RETURNING ` + saleColumns

	var s Sale
	err := r.db.QueryRow(ctx, query,
		sale.SaleDate, sale.ProductID, sale.Amount, sale.Commission, sale.PaymentMethod,
	).Scan(&s.ID, &s.SaleDate, &s.ProductID, &s.ConsignorID, &s.Amount, &s.Commission, &s.PaymentMethod, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || db.IsForeignKeyViolation(err, "") {
			return nil, fmt.Errorf("%w: product %d", shared.ErrReferenceNotFound, sale.ProductID)
		}
		if db.IsCheckViolation(err, "") {
			return nil, fmt.Errorf("%w: sale values out of range", shared.ErrValidation)
		}
		return nil, shared.StorageError("sales: record", err)
	}
	return &s, nil
}

func (r *repository) Report(ctx context.Context, window Window) ([]ReportRow, error) {
	query, args := reportQuery(window)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, shared.StorageError("sales: report", err)
	}
	defer rows.Close()

	report := []ReportRow{}
	for rows.Next() {
		var row ReportRow
		if err := rows.Scan(&row.ID, &row.SaleDate, &row.ProductName, &row.ConsignorName,
			&row.Amount, &row.Commission, &row.PaymentMethod, &row.ConsignorID); err != nil {
			return nil, shared.StorageError("sales: report", err)
		}
		report = append(report, row)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.StorageError("sales: report", err)
	}
	return report, nil
}

func reportQuery(window Window) (string, []any) {
	var b strings.Builder
	b.WriteString(`SELECT s.id, s.sale_date, p.name, c.full_name, s.amount, s.commission, s.payment_method, s.consignor_id
		FROM sales s
		JOIN products p ON s.product_id = p.id
		JOIN consignors c ON s.consignor_id = c.id`)

	var args []any
	if window.Bounded() {
		b.WriteString(" WHERE s.sale_date >= $1 AND s.sale_date < $2")
		args = append(args, window.From, window.To)
	}
	b.WriteString(" ORDER BY s.sale_date DESC")
	return b.String(), args
}
