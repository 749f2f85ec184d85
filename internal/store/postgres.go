package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JonMunkholm/suppliers/internal/core"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const supplierColumns = "id, name, email, phone, website, description, city, categories, logo_url, slug, created_at, updated_at"

// copyColumns is the column order used by BulkInsert.
var copyColumns = []string{
	"id", "name", "email", "phone", "website", "description", "city",
	"categories", "logo_url", "slug", "created_at", "updated_at",
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS suppliers (
	seq         BIGSERIAL,
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	email       TEXT NOT NULL DEFAULT '',
	phone       TEXT NOT NULL DEFAULT '',
	website     TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	city        TEXT NOT NULL DEFAULT '',
	categories  TEXT[] NOT NULL DEFAULT '{}',
	logo_url    TEXT NOT NULL DEFAULT '',
	slug        TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS suppliers_slug_idx ON suppliers (slug);
CREATE INDEX IF NOT EXISTS suppliers_categories_idx ON suppliers USING GIN (categories);
CREATE TABLE IF NOT EXISTS leads (
	id            TEXT PRIMARY KEY,
	kind          TEXT NOT NULL,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL,
	company       TEXT NOT NULL DEFAULT '',
	phone         TEXT NOT NULL DEFAULT '',
	message       TEXT NOT NULL DEFAULT '',
	opt_in        BOOLEAN NOT NULL DEFAULT FALSE,
	supplier_slug TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL
);`

// PostgresOptions configures the connection pool.
type PostgresOptions struct {
	URL             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// PostgresStore keeps suppliers in PostgreSQL. Store order is insertion order.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewPostgresStore connects, pings and creates the schema if needed.
func NewPostgresStore(ctx context.Context, opts PostgresOptions) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	if opts.MaxConns > 0 {
		poolConfig.MaxConns = int32(opts.MaxConns)
	}
	if opts.MinConns > 0 {
		poolConfig.MinConns = int32(opts.MinConns)
	}
	if opts.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = opts.MaxConnLifetime
	}
	if opts.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = opts.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := NewPostgresStoreFromPool(pool)
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewPostgresStoreFromPool wraps an existing pool. The schema is not touched.
func NewPostgresStoreFromPool(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool, now: time.Now}
}

// EnsureSchema creates the tables and indexes if they do not exist.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (p *PostgresStore) List(ctx context.Context, filter core.SupplierFilter) ([]core.Supplier, error) {
	query, args := buildListQuery(filter)
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query suppliers: %w", err)
	}
	out, err := pgx.CollectRows(rows, scanSupplier)
	if err != nil {
		return nil, fmt.Errorf("scan suppliers: %w", err)
	}
	return out, nil
}

func (p *PostgresStore) Get(ctx context.Context, id string) (core.Supplier, error) {
	return p.getOne(ctx, "id", id)
}

func (p *PostgresStore) GetBySlug(ctx context.Context, slug string) (core.Supplier, error) {
	return p.getOne(ctx, "slug", slug)
}

// getOne looks up by a fixed column name; column is never user input.
func (p *PostgresStore) getOne(ctx context.Context, column, value string) (core.Supplier, error) {
	query := "SELECT " + supplierColumns + " FROM suppliers WHERE " + column + " = $1 ORDER BY seq LIMIT 1"
	rows, err := p.pool.Query(ctx, query, value)
	if err != nil {
		return core.Supplier{}, fmt.Errorf("query supplier: %w", err)
	}
	s, err := pgx.CollectOneRow(rows, scanSupplier)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Supplier{}, core.ErrNotFound
	}
	if err != nil {
		return core.Supplier{}, fmt.Errorf("scan supplier: %w", err)
	}
	return s, nil
}

func (p *PostgresStore) Create(ctx context.Context, s core.Supplier) (core.Supplier, error) {
	s = cloneSupplier(s)
	_, err := p.pool.Exec(ctx,
		"INSERT INTO suppliers ("+supplierColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)",
		supplierValues(s)...,
	)
	if err != nil {
		return core.Supplier{}, fmt.Errorf("insert supplier: %w", err)
	}
	return s, nil
}

func (p *PostgresStore) Update(ctx context.Context, id string, u core.SupplierUpdate) (core.Supplier, error) {
	query, args := buildUpdateQuery(id, u, p.now().UTC())
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		return core.Supplier{}, fmt.Errorf("update supplier: %w", err)
	}
	s, err := pgx.CollectOneRow(rows, scanSupplier)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.Supplier{}, core.ErrNotFound
	}
	if err != nil {
		return core.Supplier{}, fmt.Errorf("scan supplier: %w", err)
	}
	return s, nil
}

func (p *PostgresStore) Delete(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, "DELETE FROM suppliers WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

// BulkInsert copies every supplier in one transaction.
func (p *PostgresStore) BulkInsert(ctx context.Context, suppliers []core.Supplier) ([]core.Supplier, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	out := make([]core.Supplier, len(suppliers))
	rows := make([][]any, len(suppliers))
	for i, s := range suppliers {
		out[i] = cloneSupplier(s)
		rows[i] = supplierValues(out[i])
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"suppliers"}, copyColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return nil, fmt.Errorf("copy suppliers: %w", err)
	}
	if int(n) != len(suppliers) {
		return nil, fmt.Errorf("copy suppliers: copied %d of %d rows", n, len(suppliers))
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit bulk insert: %w", err)
	}
	return out, nil
}

func (p *PostgresStore) SaveLead(ctx context.Context, lead core.Lead) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO leads (id, kind, name, email, company, phone, message, opt_in, supplier_slug, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		lead.ID, string(lead.Kind), lead.Name, lead.Email, lead.Company, lead.Phone,
		lead.Message, lead.OptIn, lead.SupplierSlug, lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (p *PostgresStore) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PostgresStore) Close(ctx context.Context) error {
	p.pool.Close()
	return nil
}

// buildListQuery renders the SupplierFilter as a parameterized WHERE clause.
func buildListQuery(f core.SupplierFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d OR city ILIKE $%d)", n, n, n))
	}
	if len(f.Categories) > 0 {
		args = append(args, f.Categories)
		conds = append(conds, fmt.Sprintf("categories && $%d", len(args)))
	}
	if f.City != "" {
		args = append(args, f.City)
		conds = append(conds, fmt.Sprintf("city = $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString("SELECT " + supplierColumns + " FROM suppliers")
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY seq")
	return b.String(), args
}

// buildUpdateQuery sets the non-nil fields of u plus updated_at.
func buildUpdateQuery(id string, u core.SupplierUpdate, now time.Time) (string, []any) {
	var (
		sets []string
		args []any
	)
	set := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if u.Name != nil {
		set("name", *u.Name)
	}
	if u.Email != nil {
		set("email", *u.Email)
	}
	if u.Phone != nil {
		set("phone", *u.Phone)
	}
	if u.Website != nil {
		set("website", *u.Website)
	}
	if u.Description != nil {
		set("description", *u.Description)
	}
	if u.City != nil {
		set("city", *u.City)
	}
	if u.Categories != nil {
		cats := *u.Categories
		if cats == nil {
			cats = []string{}
		}
		set("categories", cats)
	}
	if u.LogoURL != nil {
		set("logo_url", *u.LogoURL)
	}
	if u.Slug != nil {
		set("slug", *u.Slug)
	}
	set("updated_at", now)

	args = append(args, id)
	query := fmt.Sprintf("UPDATE suppliers SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), supplierColumns)
	return query, args
}

// escapeLike escapes the LIKE wildcards so search text matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func supplierValues(s core.Supplier) []any {
	return []any{
		s.ID, s.Name, s.Email, s.Phone, s.Website, s.Description, s.City,
		s.Categories, s.LogoURL, s.Slug, s.CreatedAt, s.UpdatedAt,
	}
}

func scanSupplier(row pgx.CollectableRow) (core.Supplier, error) {
	var s core.Supplier
	err := row.Scan(
		&s.ID, &s.Name, &s.Email, &s.Phone, &s.Website, &s.Description, &s.City,
		&s.Categories, &s.LogoURL, &s.Slug, &s.CreatedAt, &s.UpdatedAt,
	)
	if s.Categories == nil {
		s.Categories = []string{}
	}
	return s, err
}
