package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// Queries holds the SQL used by SQLiteRepository.
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries bound to tx.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

// Sale is a row of the sales table.
type Sale struct {
	Seq            int64
	ID             int64
	Product        string
	Quantity       int64
	UnitPriceCents int64
	SoldAt         string
	SaleDate       string
}

const createSale = `
INSERT INTO sales (id, product, quantity, unit_price_cents, sold_at, sale_date)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING seq
`

type CreateSaleParams struct {
	ID             int64
	Product        string
	Quantity       int64
	UnitPriceCents int64
	SoldAt         string
	SaleDate       string
}

func (q *Queries) CreateSale(ctx context.Context, arg CreateSaleParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, createSale,
		arg.ID,
		arg.Product,
		arg.Quantity,
		arg.UnitPriceCents,
		arg.SoldAt,
		arg.SaleDate,
	)
	var seq int64
	err := row.Scan(&seq)
	return seq, err
}

const listSales = `
SELECT seq, id, product, quantity, unit_price_cents, sold_at, sale_date
FROM sales
ORDER BY seq
`

func (q *Queries) ListSales(ctx context.Context) ([]Sale, error) {
	rows, err := q.db.QueryContext(ctx, listSales)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Sale
	for rows.Next() {
		var i Sale
		if err := rows.Scan(
			&i.Seq,
			&i.ID,
			&i.Product,
			&i.Quantity,
			&i.UnitPriceCents,
			&i.SoldAt,
			&i.SaleDate,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countSales = `SELECT COUNT(*) FROM sales`

func (q *Queries) CountSales(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countSales).Scan(&n)
	return n, err
}

const clearCatalog = `DELETE FROM catalog`

func (q *Queries) ClearCatalog(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, clearCatalog)
	return err
}

const insertCatalogEntry = `
INSERT INTO catalog (product, category, position) VALUES (?, ?, ?)
`

type InsertCatalogEntryParams struct {
	Product  string
	Category string
	Position int64
}

func (q *Queries) InsertCatalogEntry(ctx context.Context, arg InsertCatalogEntryParams) error {
	_, err := q.db.ExecContext(ctx, insertCatalogEntry, arg.Product, arg.Category, arg.Position)
	return err
}

const firstUncategorizedSale = `
SELECT s.id, s.product
FROM sales s
LEFT JOIN catalog c ON c.product = s.product
WHERE c.product IS NULL
ORDER BY s.seq
LIMIT 1
`

type FirstUncategorizedSaleRow struct {
	ID      int64
	Product string
}

func (q *Queries) FirstUncategorizedSale(ctx context.Context) (FirstUncategorizedSaleRow, error) {
	var i FirstUncategorizedSaleRow
	err := q.db.QueryRowContext(ctx, firstUncategorizedSale).Scan(&i.ID, &i.Product)
	return i, err
}

const getCategorySums = `
SELECT c.category, SUM(s.quantity * s.unit_price_cents) AS total_cents
FROM sales s
JOIN catalog c ON c.product = s.product
GROUP BY c.category
ORDER BY MIN(c.position)
`

type GetCategorySumsRow struct {
	Category   string
	TotalCents int64
}

func (q *Queries) GetCategorySums(ctx context.Context) ([]GetCategorySumsRow, error) {
	rows, err := q.db.QueryContext(ctx, getCategorySums)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetCategorySumsRow
	for rows.Next() {
		var i GetCategorySumsRow
		if err := rows.Scan(&i.Category, &i.TotalCents); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Ties on quantity go to the product whose first sale came earliest.
const getTopProduct = `
SELECT product, SUM(quantity) AS total_quantity, MIN(seq) AS first_seq
FROM sales
GROUP BY product
ORDER BY total_quantity DESC, first_seq ASC
LIMIT 1
`

type GetTopProductRow struct {
	Product       string
	TotalQuantity int64
	FirstSeq      int64
}

func (q *Queries) GetTopProduct(ctx context.Context) (GetTopProductRow, error) {
	var i GetTopProductRow
	err := q.db.QueryRowContext(ctx, getTopProduct).Scan(&i.Product, &i.TotalQuantity, &i.FirstSeq)
	return i, err
}

const getDailySums = `
SELECT sale_date, SUM(quantity * unit_price_cents) AS total_cents
FROM sales
GROUP BY sale_date
ORDER BY sale_date
`

type GetDailySumsRow struct {
	SaleDate   string
	TotalCents int64
}

func (q *Queries) GetDailySums(ctx context.Context) ([]GetDailySumsRow, error) {
	rows, err := q.db.QueryContext(ctx, getDailySums)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetDailySumsRow
	for rows.Next() {
		var i GetDailySumsRow
		if err := rows.Scan(&i.SaleDate, &i.TotalCents); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
