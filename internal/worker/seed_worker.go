package worker

import (
	"context"
	"fmt"

	"ventas/internal/core"
	applog "ventas/internal/log"
	"ventas/internal/records"
)

// DefaultBatchSize is used when a non-positive batch size is given.
const DefaultBatchSize = 50

// SeedWorker appends sales to a store in batches, logging progress per batch.
// It logs through the logger carried by the context.
type SeedWorker struct {
	writer    records.SaleWriter
	batchSize int
}

func NewSeedWorker(writer records.SaleWriter, batchSize int) *SeedWorker {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &SeedWorker{
		writer:    writer,
		batchSize: batchSize,
	}
}

// Load appends sales in order and returns how many were stored. It stops at
// the first failing sale or when ctx is cancelled between batches; sales
// already appended stay in the store.
func (w *SeedWorker) Load(ctx context.Context, sales []core.Sale) (int, error) {
	logger := applog.FromContext(ctx)
	if len(sales) == 0 {
		logger.DebugContext(ctx, "No sales to load")
		return 0, nil
	}

	loaded := 0
	for start := 0; start < len(sales); start += w.batchSize {
		if err := ctx.Err(); err != nil {
			return loaded, err
		}

		end := min(start+w.batchSize, len(sales))
		for _, sale := range sales[start:end] {
			if _, err := w.writer.Append(ctx, sale); err != nil {
				fields := applog.NewFields().
					WithSale(sale.ID, sale.Product, sale.Quantity, sale.Total().Cents).
					WithOperation(applog.OpSeed).
					WithError(err)
				logger.ErrorContext(ctx, "Failed to append sale", fields.ToSlice()...)
				return loaded, fmt.Errorf("append sale %d: %w", sale.ID, err)
			}
			loaded++
		}

		logger.DebugContext(ctx, "Batch loaded",
			"batch_start", start,
			"batch_size", end-start,
			"loaded", loaded,
			"total", len(sales))
	}

	return loaded, nil
}
