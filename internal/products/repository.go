package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/consignly/consignly/internal/platform/db"
	"github.com/consignly/consignly/internal/platform/sqlbuild"
	"github.com/consignly/consignly/internal/shared"
)

const (
	nameConstraint      = "products_name_normalized_key"
	consignorConstraint = "products_consignor_id_fkey"

	selectColumns = "id, name, category, condition, description, specifications, expected_price, minimum_price, quantity, image_url, consignor_id, created_at, updated_at"
)

var columns = []string{
	"id", "name", "category", "condition", "description", "specifications",
	"expected_price", "minimum_price", "quantity", "image_url", "consignor_id",
	"created_at", "updated_at",
}

// table lists the columns a partial update may touch, with their coercion.
var table = sqlbuild.Table{
	Name:       "products",
	PrimaryKey: "id",
	Timestamp:  "updated_at",
	Fields: []sqlbuild.Field{
		{Key: "name", Column: "name", Kind: sqlbuild.Text, MirrorColumn: "name_normalized", Mirror: shared.NormalizeName},
		{Key: "category", Column: "category", Kind: sqlbuild.Text},
		{Key: "condition", Column: "condition", Kind: sqlbuild.NullableText},
		{Key: "description", Column: "description", Kind: sqlbuild.NullableText},
		{Key: "specifications", Column: "specifications", Kind: sqlbuild.JSON},
		{Key: "expected_price", Column: "expected_price", Kind: sqlbuild.Float, Default: defaultPrice, NonNegative: true},
		{Key: "minimum_price", Column: "minimum_price", Kind: sqlbuild.Float, Default: defaultPrice, NonNegative: true},
		{Key: "quantity", Column: "quantity", Kind: sqlbuild.Int, Default: defaultQuantity, NonNegative: true},
		{Key: "image_url", Column: "image_url", Kind: sqlbuild.NullableText},
		{Key: "consignor_id", Column: "consignor_id", Kind: sqlbuild.Reference},
	},
	Returning: columns,
}

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	NameExists(ctx context.Context, normalized string) (bool, error)
	ConsignorExists(ctx context.Context, consignorID int64) (bool, error)
	Create(ctx context.Context, req CreateProductRequest) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Update(ctx context.Context, id int64, payload shared.Payload) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db   db.DBTX
	pool db.Pool
}

func NewRepository(pool db.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
	if err != nil && shared.KindOf(err) == shared.KindStorageError {
		return shared.StorageError("products: transaction", err)
	}
	return err
}

// NameExists looks up the column the unique index covers. normalized must come from
// shared.NormalizeName, which is also what Create and Update write to it.
func (r *repository) NameExists(ctx context.Context, normalized string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM products WHERE name_normalized = $1)", normalized,
	).Scan(&exists)
	if err != nil {
		return false, shared.StorageError("products: check name", err)
	}
	return exists, nil
}

func (r *repository) ConsignorExists(ctx context.Context, consignorID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM consignors WHERE id = $1)", consignorID,
	).Scan(&exists)
	if err != nil {
		return false, shared.StorageError("products: check consignor", err)
	}
	return exists, nil
}

func (r *repository) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	const query = `
		INSERT INTO products (name, category, condition, description, specifications,
		                      expected_price, minimum_price, quantity, image_url, consignor_id,
		                      name_normalized)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + selectColumns

	p, err := scanProduct(r.db.QueryRow(ctx, query,
		req.Name, req.Category, req.Condition, req.Description, req.Specifications,
		req.ExpectedPrice, req.MinimumPrice, req.Quantity, req.ImageURL, req.ConsignorID,
		shared.NormalizeName(req.Name),
	))
	if err != nil {
		return nil, mapWriteError("products: create", err, req.Name, req.ConsignorID)
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, "SELECT "+selectColumns+" FROM products ORDER BY id")
	if err != nil {
		return nil, shared.StorageError("products: list", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, shared.StorageError("products: list", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.StorageError("products: list", err)
	}
	return products, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, "SELECT "+selectColumns+" FROM products WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %d", shared.ErrNotFound, id)
		}
		return nil, shared.StorageError("products: get", err)
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, id int64, payload shared.Payload) (*Product, error) {
	stmt, err := table.Update(id, payload)
	if err != nil {
		return nil, err
	}

	p, err := scanProduct(r.db.QueryRow(ctx, stmt.SQL, stmt.Args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: product %d", shared.ErrNotFound, id)
		}
		consignorID, _ := shared.Int64(payload["consignor_id"])
		return nil, mapWriteError("products: update", err, shared.String(payload["name"]), consignorID)
	}
	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		if db.IsForeignKeyViolation(err, "") {
			return fmt.Errorf("%w: product %d has recorded sales", shared.ErrConflict, id)
		}
		return shared.StorageError("products: delete", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: product %d", shared.ErrNotFound, id)
	}
	return nil
}

// mapWriteError turns constraint violations that slipped past the pre-checks into
// the same errors the pre-checks report.
func mapWriteError(op string, err error, name string, consignorID int64) error {
	switch {
	case db.IsUniqueViolation(err, nameConstraint):
		return fmt.Errorf("%w: product %q already exists", shared.ErrConflict, name)
	case db.IsForeignKeyViolation(err, consignorConstraint):
		return fmt.Errorf("%w: consignor %d", shared.ErrReferenceNotFound, consignorID)
	case db.IsCheckViolation(err, ""):
		return fmt.Errorf("%w: product values out of range", shared.ErrValidation)
	default:
		return shared.StorageError(op, err)
	}
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Condition, &p.Description, &p.Specifications,
		&p.ExpectedPrice, &p.MinimumPrice, &p.Quantity, &p.ImageURL, &p.ConsignorID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
