// Package report assembles the three sales reports and renders them as text.
package report

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"ventas/internal/aggregate"
	"ventas/internal/core"
)

// Report holds the three aggregate views over one snapshot of sales.
type Report struct {
	SaleCount  int
	ByCategory []core.CategoryAmount
	Top        core.ProductQuantity
	// HasTop is false when there were no sales to rank.
	HasTop bool
	Daily  []core.DailyAmount
}

// Build computes the report sections concurrently. sales is only read.
// An empty store yields a report without a top product; an unknown product
// fails the whole build.
func Build(ctx context.Context, sales []core.Sale, catalog core.Catalog) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, err
	}

	var (
		totals map[string]core.Money
		top    core.ProductQuantity
		hasTop bool
		daily  map[core.Date]core.Money
		g      errgroup.Group
	)

	g.Go(func() error {
		var err error
		totals, err = aggregate.TotalsByCategory(sales, catalog)
		if err != nil {
			return fmt.Errorf("totals by category: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		top, err = aggregate.TopProduct(sales)
		switch {
		case err == nil:
			hasTop = true
		case errors.Is(err, core.ErrEmptyStore):
		default:
			return fmt.Errorf("top product: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		daily = aggregate.DailyTotals(sales)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	return Report{
		SaleCount:  len(sales),
		ByCategory: aggregate.SortedCategories(totals, catalog),
		Top:        top,
		HasTop:     hasTop,
		Daily:      aggregate.SortedDays(daily),
	}, nil
}

// Currency formats an amount as $1,234.56.
func Currency(m core.Money) string {
	return "$" + humanize.FormatFloat("#,###.##", m.Float64())
}

// Render writes the report with the last days daily rows.
func Render(w io.Writer, r Report, days int) error {
	ew := &errWriter{w: w}

	ew.printf("=== Reporte de Ventas ===\n")
	ew.printf("\n      Ventas\n")
	for _, c := range r.ByCategory {
		ew.printf("%s: %s\n", c.Name, Currency(c.Amount))
	}

	if r.HasTop {
		ew.printf("\nProducto más vendido: %s \n%d unidades de %s\n", r.Top.Product, r.Top.Quantity, r.Top.Product)
	} else {
		ew.printf("\nProducto más vendido: sin ventas\n")
	}

	ew.printf("\nVentas de los ultimos %d dias:\n", days)
	for _, d := range aggregate.LastDays(r.Daily, days) {
		ew.printf("%s: %s\n", d.Date, Currency(d.Amount))
	}

	return ew.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
