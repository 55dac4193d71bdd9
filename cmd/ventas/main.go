package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"ventas/internal/backend"
	"ventas/internal/cli"
	"ventas/internal/config"
	"ventas/internal/generator"
	applog "ventas/internal/log"
	"ventas/internal/report"
	"ventas/internal/services"
)

func main() {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		applog.New(applog.DefaultConfig()).Error("Startup failed",
			applog.FieldOperation, applog.OpStartup, applog.FieldError, err)
		os.Exit(1)
	}

	logger := cli.SetupLogger(cfg.LogLevel)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	if err := run(ctx, cfg, logger, os.Stdout); err != nil {
		logger.Error("Report generation failed", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *applog.Logger, out io.Writer) error {
	catalog, err := cfg.Catalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	minPrice, maxPrice, err := cfg.PriceRange()
	if err != nil {
		return err
	}

	genOpts := []generator.Option{
		generator.WithMaxQuantity(cfg.MaxQuantity),
		generator.WithPriceRange(minPrice, maxPrice),
		generator.WithDaysBack(cfg.DaysBack),
	}
	if cfg.Seed != 0 {
		genOpts = append(genOpts, generator.WithSeed(cfg.Seed))
	}
	gen, err := generator.New(catalog, genOpts...)
	if err != nil {
		return fmt.Errorf("create generator: %w", err)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	result, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return fmt.Errorf("create backend: %w", err)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Warn("Backend cleanup failed", "error", err)
			}
		}()
	}

	svc := services.NewSalesService(result.Backend, gen, catalog,
		services.WithLogger(logger),
		services.WithBackendName(backendCfg.Type.String()),
		services.WithCrossCheck(cfg.CrossCheck),
		services.WithBatchSize(cfg.BatchSize),
	)

	if err := svc.Seed(ctx, cfg.SalesCount); err != nil {
		return fmt.Errorf("seed sales: %w", err)
	}

	r, err := svc.BuildReport(ctx)
	if err != nil {
		return fmt.Errorf("build report: %w", err)
	}

	return report.Render(out, r, cfg.ReportDays)
}
