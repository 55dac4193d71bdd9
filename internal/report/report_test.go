package report

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ventas/internal/core"
	"ventas/internal/generator"
)

func at(y, m, d, h int) time.Time {
	return time.Date(y, time.Month(m), d, h, 0, 0, 0, time.UTC)
}

func TestBuild(t *testing.T) {
	catalog := core.DefaultCatalog()
	sales := []core.Sale{
		{ID: 1, Product: "TV", Quantity: 2, UnitPrice: core.Money{Cents: 100000}, Date: at(2025, 3, 1, 9)},
		{ID: 2, Product: "Mesa", Quantity: 5, UnitPrice: core.Money{Cents: 2000}, Date: at(2025, 3, 1, 18)},
		{ID: 3, Product: "Camisa", Quantity: 1, UnitPrice: core.Money{Cents: 1550}, Date: at(2025, 3, 2, 12)},
	}

	r, err := Build(context.Background(), sales, catalog)
	require.NoError(t, err)

	assert.Equal(t, 3, r.SaleCount)
	assert.Equal(t, []core.CategoryAmount{
		{Name: "Electrónica", Amount: core.Money{Cents: 200000}},
		{Name: "Ropa", Amount: core.Money{Cents: 1550}},
		{Name: "Hogar", Amount: core.Money{Cents: 10000}},
	}, r.ByCategory)
	assert.True(t, r.HasTop)
	assert.Equal(t, core.ProductQuantity{Product: "Mesa", Quantity: 5}, r.Top)
	assert.Equal(t, []core.DailyAmount{
		{Date: core.NewDate(2025, 3, 1), Amount: core.Money{Cents: 210000}},
		{Date: core.NewDate(2025, 3, 2), Amount: core.Money{Cents: 1550}},
	}, r.Daily)
}

func TestBuildEmptyStore(t *testing.T) {
	r, err := Build(context.Background(), nil, core.DefaultCatalog())
	require.NoError(t, err)
	assert.False(t, r.HasTop)
	assert.Empty(t, r.ByCategory)
	assert.Empty(t, r.Daily)
}

func TestBuildUnknownProduct(t *testing.T) {
	sales := []core.Sale{{ID: 1, Product: "Tractor", Quantity: 1, UnitPrice: core.Money{Cents: 1}, Date: at(2025, 1, 1, 1)}}
	_, err := Build(context.Background(), sales, core.DefaultCatalog())
	assert.ErrorIs(t, err, core.ErrUnknownProduct)
}

func TestBuildCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Build(ctx, nil, core.DefaultCatalog())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBuildIsDeterministic(t *testing.T) {
	catalog := core.DefaultCatalog()
	gen, err := generator.New(catalog, generator.WithSeed(11))
	require.NoError(t, err)
	sales, err := gen.Generate(400)
	require.NoError(t, err)

	first, err := Build(context.Background(), sales, catalog)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Build(context.Background(), sales, catalog)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCurrency(t *testing.T) {
	cases := map[int64]string{
		0:         "$0.00",
		5:         "$0.05",
		2500:      "$25.00",
		123456789: "$1,234,567.89",
	}
	for cents, want := range cases {
		assert.Equal(t, want, Currency(core.Money{Cents: cents}))
	}
}

func TestRender(t *testing.T) {
	r := Report{
		ByCategory: []core.CategoryAmount{
			{Name: "Electrónica", Amount: core.Money{Cents: 1234567}},
			{Name: "Hogar", Amount: core.Money{Cents: 990}},
		},
		Top:    core.ProductQuantity{Product: "Laptop", Quantity: 87},
		HasTop: true,
	}
	for d := 1; d <= 7; d++ {
		r.Daily = append(r.Daily, core.DailyAmount{Date: core.NewDate(2026, 10, d), Amount: core.Money{Cents: int64(d) * 100}})
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, r, 5))

	want := strings.Join([]string{
		"=== Reporte de Ventas ===",
		"",
		"      Ventas",
		"Electrónica: $12,345.67",
		"Hogar: $9.90",
		"",
		"Producto más vendido: Laptop ",
		"87 unidades de Laptop",
		"",
		"Ventas de los ultimos 5 dias:",
		"2026-10-03: $3.00",
		"2026-10-04: $4.00",
		"2026-10-05: $5.00",
		"2026-10-06: $6.00",
		"2026-10-07: $7.00",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestRenderWithoutSales(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, Report{}, 5))
	assert.Contains(t, buf.String(), "Producto más vendido: sin ventas")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderReportsWriteError(t *testing.T) {
	err := Render(failingWriter{}, Report{}, 5)
	assert.EqualError(t, err, "disk full")
}
