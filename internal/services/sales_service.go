package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ventas/internal/aggregate"
	"ventas/internal/cache"
	"ventas/internal/core"
	"ventas/internal/generator"
	applog "ventas/internal/log"
	"ventas/internal/records"
	"ventas/internal/report"
	"ventas/internal/worker"
)

var ErrReportMismatch = errors.New("sql summary differs from in-memory aggregation")

const (
	reportCacheSize = 8
	reportCacheTTL  = 5 * time.Minute
)

// Store is what SalesService needs from a record store backend.
type Store interface {
	records.SaleWriter
	records.SaleLister
}

// SalesService seeds a store with generated sales and builds reports from it.
type SalesService struct {
	store      Store
	generator  *generator.Generator
	catalog    core.Catalog
	logger     *applog.Logger
	backend    string
	crossCheck bool
	batchSize  int
	reports    cache.Cache[report.Report]
}

// Option configures a SalesService.
type Option func(*SalesService)

// WithLogger sets the service logger.
func WithLogger(l *applog.Logger) Option {
	return func(s *SalesService) { s.logger = l }
}

// WithBackendName labels log lines with the store backend in use.
func WithBackendName(name string) Option {
	return func(s *SalesService) { s.backend = name }
}

// WithCrossCheck verifies reports against the store's own SQL summaries when
// the store provides them.
func WithCrossCheck(enabled bool) Option {
	return func(s *SalesService) { s.crossCheck = enabled }
}

// WithBatchSize sets how many sales are appended per batch while seeding.
func WithBatchSize(n int) Option {
	return func(s *SalesService) { s.batchSize = n }
}

// WithReportCache replaces the default report cache.
func WithReportCache(c cache.Cache[report.Report]) Option {
	return func(s *SalesService) { s.reports = c }
}

func NewSalesService(store Store, gen *generator.Generator, catalog core.Catalog, opts ...Option) *SalesService {
	s := &SalesService{
		store:     store,
		generator: gen,
		catalog:   catalog,
		backend:   "unknown",
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = applog.New(applog.DefaultConfig())
	}
	if s.reports == nil {
		s.reports = cache.NewLRUCache[report.Report](reportCacheSize, reportCacheTTL)
	}
	s.logger = s.logger.WithComponent(applog.ComponentService)
	return s
}

// Seed generates n sales and appends them to the store.
func (s *SalesService) Seed(ctx context.Context, n int) error {
	if s.generator == nil {
		return errors.New("seed: no generator configured")
	}
	start := time.Now()

	if syncer, ok := s.store.(records.CatalogSyncer); ok {
		if err := syncer.SyncCatalog(ctx, s.catalog); err != nil {
			return fmt.Errorf("sync catalog: %w", err)
		}
	}

	// Stores are append-only, so new IDs continue after the highest stored one.
	existing, err := s.store.ListSales(ctx)
	if err != nil {
		return fmt.Errorf("list existing sales: %w", err)
	}
	var lastID int64
	for _, sale := range existing {
		lastID = max(lastID, sale.ID)
	}

	sales, err := s.generator.GenerateFrom(lastID+1, n)
	if err != nil {
		return fmt.Errorf("generate sales: %w", err)
	}
	loadCtx := applog.WithContext(ctx, s.logger.WithComponent(applog.ComponentGenerator))
	if _, err := worker.NewSeedWorker(s.store, s.batchSize).Load(loadCtx, sales); err != nil {
		return err
	}

	applog.NewStructuredLogger(s.logger).LogSeeded(ctx, len(sales), s.backend, s.generator.Seed(), time.Since(start).Milliseconds())
	return nil
}

// BuildReport reads the store and computes the report.
func (s *SalesService) BuildReport(ctx context.Context) (report.Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := s.logger.With(applog.FieldRunID, runID)
	sl := applog.NewStructuredLogger(logger)

	sales, err := s.store.ListSales(ctx)
	if err != nil {
		sl.LogError(ctx, "Failed to list sales", err, applog.ComponentStorage, applog.OpList, nil)
		return report.Report{}, fmt.Errorf("list sales: %w", err)
	}

	if c, ok := s.reports.(interface{ CleanExpired() int }); ok {
		if n := c.CleanExpired(); n > 0 {
			logger.DebugContext(ctx, "Expired reports dropped", "count", n)
		}
	}
	key := reportKey(sales)
	if cached, ok := s.reports.Get(key); ok {
		logger.DebugContext(ctx, "Report served from cache", "key", key)
		return cached, nil
	}

	r, err := report.Build(ctx, sales, s.catalog)
	if err != nil {
		sl.LogError(ctx, "Failed to build report", err, applog.ComponentReport, applog.OpAggregate,
			applog.NewFields().WithRunID(runID))
		return report.Report{}, err
	}

	if s.crossCheck {
		summaries, ok := s.store.(records.SummaryReader)
		if !ok {
			logger.WarnContext(ctx, "Cross check requested but store has no SQL summaries")
		} else if err := crossCheck(ctx, summaries, sales, s.catalog); err != nil {
			sl.LogError(ctx, "Cross check failed", err, applog.ComponentReport, applog.OpCrossCheck,
				applog.NewFields().WithRunID(runID))
			return report.Report{}, err
		} else {
			logger.InfoContext(ctx, "Cross check passed", applog.FieldOperation, applog.OpCrossCheck)
		}
	}

	s.reports.Set(key, r)
	sl.LogReportBuilt(ctx, runID, r.SaleCount, len(r.ByCategory), len(r.Daily), r.Top.Product, r.Top.Quantity,
		time.Since(start).Milliseconds())
	return r, nil
}

// reportKey identifies a store snapshot. Stores are append-only with unique
// IDs, so the count and the last ID pin down the contents.
func reportKey(sales []core.Sale) string {
	if len(sales) == 0 {
		return "empty"
	}
	return fmt.Sprintf("%d:%d", len(sales), sales[len(sales)-1].ID)
}

// crossCheck compares the store's SQL summaries with the in-memory aggregation.
func crossCheck(ctx context.Context, summaries records.SummaryReader, sales []core.Sale, catalog core.Catalog) error {
	wantTotals, err := aggregate.TotalsByCategory(sales, catalog)
	if err != nil {
		return err
	}
	gotTotals, err := summaries.CategoryTotals(ctx)
	if err != nil {
		return fmt.Errorf("sql category totals: %w", err)
	}
	if len(gotTotals) != len(wantTotals) {
		return fmt.Errorf("%w: %d categories vs %d", ErrReportMismatch, len(gotTotals), len(wantTotals))
	}
	for name, want := range wantTotals {
		if got := gotTotals[name]; got != want {
			return fmt.Errorf("%w: category %q has %d cents vs %d", ErrReportMismatch, name, got.Cents, want.Cents)
		}
	}

	wantTop, wantErr := aggregate.TopProduct(sales)
	gotTop, gotErr := summaries.TopProduct(ctx)
	wantEmpty := errors.Is(wantErr, core.ErrEmptyStore)
	gotEmpty := errors.Is(gotErr, core.ErrEmptyStore)
	switch {
	case wantEmpty && gotEmpty:
	case wantEmpty != gotEmpty:
		return fmt.Errorf("%w: store empty in one view only", ErrReportMismatch)
	case gotErr != nil:
		return fmt.Errorf("sql top product: %w", gotErr)
	case gotTop != wantTop:
		return fmt.Errorf("%w: top product %+v vs %+v", ErrReportMismatch, gotTop, wantTop)
	}

	wantDaily := aggregate.DailyTotals(sales)
	gotDaily, err := summaries.DailyTotals(ctx)
	if err != nil {
		return fmt.Errorf("sql daily totals: %w", err)
	}
	if len(gotDaily) != len(wantDaily) {
		return fmt.Errorf("%w: %d days vs %d", ErrReportMismatch, len(gotDaily), len(wantDaily))
	}
	for day, want := range wantDaily {
		if got := gotDaily[day]; got != want {
			return fmt.Errorf("%w: day %s has %d cents vs %d", ErrReportMismatch, day, got.Cents, want.Cents)
		}
	}
	return nil
}

// Close releases the store when it holds resources.
func (s *SalesService) Close() error {
	if c, ok := s.store.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("close store: %w", err)
		}
	}
	return nil
}
