package consignors

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/consignly/consignly/internal/platform/db"
	"github.com/consignly/consignly/internal/platform/sqlbuild"
	"github.com/consignly/consignly/internal/shared"
)

const selectColumns = "id, full_name, email, phone_number, address, is_active, created_at, updated_at"

var columns = []string{"id", "full_name", "email", "phone_number", "address", "is_active", "created_at", "updated_at"}

// table lists the columns a partial update may touch.
var table = sqlbuild.Table{
	Name:       "consignors",
	PrimaryKey: "id",
	Timestamp:  "updated_at",
	Fields: []sqlbuild.Field{
		{Key: "full_name", Column: "full_name", Kind: sqlbuild.Text},
		{Key: "email", Column: "email", Kind: sqlbuild.NullableText},
		{Key: "phone_number", Column: "phone_number", Kind: sqlbuild.NullableText},
		{Key: "address", Column: "address", Kind: sqlbuild.NullableText},
		{Key: "is_active", Column: "is_active", Kind: sqlbuild.Bool, Default: true},
	},
	Returning: columns,
}

type Repository interface {
	Create(ctx context.Context, req CreateConsignorRequest) (*Consignor, error)
	List(ctx context.Context) ([]Consignor, error)
	Get(ctx context.Context, id int64) (*Consignor, error)
	Update(ctx context.Context, id int64, payload shared.Payload) (*Consignor, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db db.DBTX
}

func NewRepository(conn db.DBTX) Repository {
	return &repository{db: conn}
}

func (r *repository) Create(ctx context.Context, req CreateConsignorRequest) (*Consignor, error) {
	const query = `
		INSERT INTO consignors (full_name, email, phone_number, address, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + selectColumns

	c, err := scanConsignor(r.db.QueryRow(ctx, query,
		req.FullName, req.Email, req.PhoneNumber, req.Address, req.IsActive))
	if err != nil {
		return nil, shared.StorageError("consignors: create", err)
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context) ([]Consignor, error) {
	rows, err := r.db.Query(ctx, "SELECT "+selectColumns+" FROM consignors ORDER BY full_name ASC")
	if err != nil {
		return nil, shared.StorageError("consignors: list", err)
	}
	defer rows.Close()

	consignors := []Consignor{}
	for rows.Next() {
		c, err := scanConsignor(rows)
		if err != nil {
			return nil, shared.StorageError("consignors: list", err)
		}
		consignors = append(consignors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.StorageError("consignors: list", err)
	}
	return consignors, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Consignor, error) {
	c, err := scanConsignor(r.db.QueryRow(ctx, "SELECT "+selectColumns+" FROM consignors WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: consignor %d", shared.ErrNotFound, id)
		}
		return nil, shared.StorageError("consignors: get", err)
	}
	return &c, nil
}

func (r *repository) Update(ctx context.Context, id int64, payload shared.Payload) (*Consignor, error) {
	stmt, err := table.Update(id, payload)
	if err != nil {
		return nil, err
	}

	c, err := scanConsignor(r.db.QueryRow(ctx, stmt.SQL, stmt.Args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: consignor %d", shared.ErrNotFound, id)
		}
		return nil, shared.StorageError("consignors: update", err)
	}
	return &c, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM consignors WHERE id = $1", id)
	if err != nil {
		if db.IsForeignKeyViolation(err, "") {
			return fmt.Errorf("%w: consignor %d is still referenced by products or sales", shared.ErrConflict, id)
		}
		return shared.StorageError("consignors: delete", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: consignor %d", shared.ErrNotFound, id)
	}
	return nil
}

func scanConsignor(row pgx.Row) (Consignor, error) {
	var c Consignor
	err := row.Scan(&c.ID, &c.FullName, &c.Email, &c.PhoneNumber, &c.Address, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
