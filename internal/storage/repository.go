package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"ventas/internal/core"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// SQLiteRepository stores sales in SQLite and answers the reports with SQL.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dsn string) (*SQLiteRepository, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// An in-memory database lives and dies with its connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{
		db:      db,
		queries: New(db),
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements records.SaleWriter
func (r *SQLiteRepository) Append(ctx context.Context, s core.Sale) (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}

	seq, err := r.queries.CreateSale(ctx, CreateSaleParams{
		ID:             s.ID,
		Product:        s.Product,
		Quantity:       int64(s.Quantity),
		UnitPriceCents: s.UnitPrice.Cents,
		SoldAt:         s.Date.Format(time.RFC3339Nano),
		SaleDate:       s.Day().String(),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%w: %d", core.ErrDuplicateID, s.ID)
		}
		return "", fmt.Errorf("create sale: %w", err)
	}

	slog.DebugContext(ctx, "Sale saved to SQLite",
		"id", s.ID,
		"seq", seq,
		"product", s.Product,
		"quantity", s.Quantity,
		"unit_price_cents", s.UnitPrice.Cents)

	return strconv.FormatInt(seq, 10), nil
}

// ListSales implements records.SaleLister
func (r *SQLiteRepository) ListSales(ctx context.Context) ([]core.Sale, error) {
	rows, err := r.queries.ListSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	sales := make([]core.Sale, len(rows))
	for i, row := range rows {
		soldAt, err := time.Parse(time.RFC3339Nano, row.SoldAt)
		if err != nil {
			return nil, fmt.Errorf("parse sold_at of sale %d: %w", row.ID, err)
		}
		sales[i] = core.Sale{
			ID:        row.ID,
			Product:   row.Product,
			Quantity:  int(row.Quantity),
			UnitPrice: core.Money{Cents: row.UnitPriceCents},
			Date:      soldAt,
		}
	}
	return sales, nil
}

// Count returns the number of stored sales.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.queries.CountSales(ctx)
	if err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return n, nil
}

// SyncCatalog replaces the stored catalog with catalog.
func (r *SQLiteRepository) SyncCatalog(ctx context.Context, catalog core.Catalog) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin catalog sync: %w", err)
	}
	defer tx.Rollback()

	q := r.queries.WithTx(tx)
	if err := q.ClearCatalog(ctx); err != nil {
		return fmt.Errorf("clear catalog: %w", err)
	}

	var position int64
	for _, cat := range catalog.Categories() {
		for _, product := range cat.Products {
			if err := q.InsertCatalogEntry(ctx, InsertCatalogEntryParams{
				Product:  product,
				Category: cat.Name,
				Position: position,
			}); err != nil {
				return fmt.Errorf("insert catalog entry %q: %w", product, err)
			}
			position++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit catalog sync: %w", err)
	}

	slog.InfoContext(ctx, "Catalog synced to SQLite",
		"categories", len(catalog.CategoryNames()),
		"products", position)
	return nil
}

// CategoryTotals implements records.SummaryReader
func (r *SQLiteRepository) CategoryTotals(ctx context.Context) (map[string]core.Money, error) {
	orphan, err := r.queries.FirstUncategorizedSale(ctx)
	switch {
	case err == nil:
		return nil, fmt.Errorf("sale %d: %w: %q", orphan.ID, core.ErrUnknownProduct, orphan.Product)
	case !errors.Is(err, sql.ErrNoRows):
		return nil, fmt.Errorf("check uncategorized sales: %w", err)
	}

	sums, err := r.queries.GetCategorySums(ctx)
	if err != nil {
		return nil, fmt.Errorf("get category sums: %w", err)
	}

	totals := make(map[string]core.Money, len(sums))
	for _, cs := range sums {
		totals[cs.Category] = core.Money{Cents: cs.TotalCents}
	}
	return totals, nil
}

// TopProduct implements records.SummaryReader
func (r *SQLiteRepository) TopProduct(ctx context.Context) (core.ProductQuantity, error) {
	row, err := r.queries.GetTopProduct(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return core.ProductQuantity{}, core.ErrEmptyStore
	}
	if err != nil {
		return core.ProductQuantity{}, fmt.Errorf("get top product: %w", err)
	}
	return core.ProductQuantity{Product: row.Product, Quantity: int(row.TotalQuantity)}, nil
}

// DailyTotals implements records.SummaryReader
func (r *SQLiteRepository) DailyTotals(ctx context.Context) (map[core.Date]core.Money, error) {
	sums, err := r.queries.GetDailySums(ctx)
	if err != nil {
		return nil, fmt.Errorf("get daily sums: %w", err)
	}

	totals := make(map[core.Date]core.Money, len(sums))
	for _, ds := range sums {
		day, err := core.ParseDate(ds.SaleDate)
		if err != nil {
			return nil, fmt.Errorf("parse sale_date %q: %w", ds.SaleDate, err)
		}
		totals[day] = core.Money{Cents: ds.TotalCents}
	}
	return totals, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return false
}
