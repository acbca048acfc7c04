package db

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the statement surface shared by pools and transactions.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

// Beginner starts transactions.
type Beginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// Pool is the Database capability the repositories depend on. *pgxpool.Pool satisfies it.
type Pool interface {
	DBTX
	Beginner
	Ping(ctx context.Context) error
}

// QueryObserver receives the outcome of every statement sent through a Gateway.
type QueryObserver interface {
	ObserveQuery(statement string, elapsed time.Duration, err error)
}

// Gateway wraps a Pool, timing each statement and logging failures.
type Gateway struct {
	pool     Pool
	observer QueryObserver
	logger   *slog.Logger
}

// NewGateway wraps pool. observer and logger may be nil.
func NewGateway(pool Pool, observer QueryObserver, logger *slog.Logger) *Gateway {
	return &Gateway{pool: pool, observer: observer, logger: logger}
}

func (g *Gateway) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return observedExec(ctx, g, g.pool, sql, args)
}

func (g *Gateway) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return observedQuery(ctx, g, g.pool, sql, args)
}

func (g *Gateway) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return observedQueryRow(ctx, g, g.pool, sql, args)
}

// BeginTx starts a transaction whose statements are observed like the pool's.
func (g *Gateway) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	tx, err := g.pool.BeginTx(ctx, opts)
	if err != nil {
		g.observe("begin", 0, err)
		return nil, err
	}
	return &observedTx{Tx: tx, gateway: g}, nil
}

func (g *Gateway) Ping(ctx context.Context) error {
	return g.pool.Ping(ctx)
}

func (g *Gateway) observe(statement string, elapsed time.Duration, err error) {
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
	}
	if g.observer != nil {
		g.observer.ObserveQuery(statement, elapsed, err)
	}
	if err != nil && g.logger != nil {
		g.logger.Warn("database statement failed", slog.String("statement", statement), slog.Any("error", err))
	}
}

type observedTx struct {
	pgx.Tx
	gateway *Gateway
}

func (t *observedTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return observedExec(ctx, t.gateway, t.Tx, sql, args)
}

func (t *observedTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return observedQuery(ctx, t.gateway, t.Tx, sql, args)
}

func (t *observedTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return observedQueryRow(ctx, t.gateway, t.Tx, sql, args)
}

type observedRow struct {
	row       pgx.Row
	gateway   *Gateway
	statement string
	start     time.Time
}

// Scan is where pgx reports QueryRow errors, so timing ends here.
func (r *observedRow) Scan(dest ...any) error {
	err := r.row.Scan(dest...)
	r.gateway.observe(r.statement, time.Since(r.start), err)
	return err
}

func observedExec(ctx context.Context, g *Gateway, db DBTX, sql string, args []any) (pgconn.CommandTag, error) {
	start := time.Now()
	tag, err := db.Exec(ctx, sql, args...)
	g.observe(StatementLabel(sql), time.Since(start), err)
	return tag, err
}

func observedQuery(ctx context.Context, g *Gateway, db DBTX, sql string, args []any) (pgx.Rows, error) {
	start := time.Now()
	rows, err := db.Query(ctx, sql, args...)
	g.observe(StatementLabel(sql), time.Since(start), err)
	return rows, err
}

func observedQueryRow(ctx context.Context, g *Gateway, db DBTX, sql string, args []any) pgx.Row {
	return &observedRow{
		row:       db.QueryRow(ctx, sql, args...),
		gateway:   g,
		statement: StatementLabel(sql),
		start:     time.Now(),
	}
}

// StatementLabel reduces a SQL statement to a low-cardinality label such as
// "select", "insert products" or "update consignors".
func StatementLabel(sql string) string {
	fields := strings.Fields(strings.ToLower(sql))
	if len(fields) == 0 {
		return "unknown"
	}
	verb := fields[0]
	var table string
	switch verb {
	case "insert", "delete":
		table = wordAfter(fields, 2)
	case "update":
		table = wordAfter(fields, 1)
	}
	if table == "" {
		return verb
	}
	return verb + " " + table
}

func wordAfter(fields []string, idx int) string {
	if idx >= len(fields) {
		return ""
	}
	return strings.Trim(fields[idx], "(\"")
}
