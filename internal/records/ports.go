package records

import (
	"context"
	"ventas/internal/core"
)

// Ports for record store adapters.
type (
	SaleWriter interface {
		Append(ctx context.Context, s core.Sale) (ref string, err error)
	}

	// SaleLister returns every stored sale in insertion order.
	SaleLister interface {
		ListSales(ctx context.Context) ([]core.Sale, error)
	}

	// CatalogSyncer receives the catalog the store should classify sales with.
	CatalogSyncer interface {
		SyncCatalog(ctx context.Context, catalog core.Catalog) error
	}

	// SummaryReader computes the reports inside the store itself.
	SummaryReader interface {
		// CategoryTotals fails with core.ErrUnknownProduct if a sale has no category.
		CategoryTotals(ctx context.Context) (map[string]core.Money, error)
		// TopProduct fails with core.ErrEmptyStore when nothing was sold.
		TopProduct(ctx context.Context) (core.ProductQuantity, error)
		DailyTotals(ctx context.Context) (map[core.Date]core.Money, error)
	}
)
