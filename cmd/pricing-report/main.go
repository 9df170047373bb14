package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"pricingcli/internal/config"
	"pricingcli/internal/dataset"
	"pricingcli/internal/exporter"
	"pricingcli/internal/infrastructure"
	"pricingcli/internal/pricing"
	"pricingcli/internal/reports"
)

func main() {
	dataDir := flag.String("data", "", "directory of table CSV files (defaults to config csv_dir)")
	configFile := flag.String("config", "", "path to YAML config file")
	csvOut := flag.String("csv-out", "", "write recommendations to this CSV file (relative to export dir)")
	xlsxOut := flag.String("xlsx-out", "", "write an Excel workbook of the analysis to this path")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogFile()

	if *dataDir == "" {
		*dataDir = cfg.Data.CSVDir
	}

	// Every record logged during this run carries the same run id
	ctx := infrastructure.WithRunID(context.Background(), uuid.NewString())

	logger.InfoContext(ctx, "starting pricing analysis",
		slog.String("data_dir", *dataDir))

	store, err := dataset.LoadDir(ctx, *dataDir, logger)
	if err != nil {
		logger.ErrorContext(ctx, "failed to load CSV tables", slog.String("error", err.Error()))
		os.Exit(1)
	}

	params := engineParams(cfg.Engine)
	engine, err := pricing.NewEngine(params, logger)
	if err != nil {
		logger.ErrorContext(ctx, "failed to create rule engine", slog.String("error", err.Error()))
		os.Exit(1)
	}

	runner := reports.NewRunner(store, engine, params, os.Stdout, logger)
	if err := runner.Run(ctx); err != nil {
		// Analysis errors are already reported on the console and in the
		// log; sections printed before the failure stand, and the process
		// still exits zero.
		return
	}

	if *csvOut != "" || *xlsxOut != "" {
		if err := runExports(ctx, cfg, store, engine, *csvOut, *xlsxOut); err != nil {
			logger.ErrorContext(ctx, "export failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.InfoContext(ctx, "pricing analysis completed")
}

// runExports recomputes the joined views and recommendations and writes the
// requested export files.
func runExports(ctx context.Context, cfg *config.Config, store *dataset.Store, engine *pricing.Engine, csvOut, xlsxOut string) error {
	products, err := store.Products()
	if err != nil {
		return err
	}
	inventory, err := store.Inventory()
	if err != nil {
		return err
	}
	demand, err := store.DemandMetrics()
	if err != nil {
		return err
	}
	compPrices, err := store.CompetitorPrices()
	if err != nil {
		return err
	}

	latest, ok := pricing.LatestDemandDate(demand)
	if !ok {
		return nil // nothing to export without demand data
	}

	views := pricing.BuildViews(products, inventory, demand, compPrices, latest)
	recommendations := engine.Evaluate(ctx, views)

	if csvOut != "" {
		writer := exporter.NewCSVWriter(cfg.Data.ExportDir)
		if err := writer.WriteRecommendationsCSV(csvOut, recommendations); err != nil {
			return err
		}
	}

	if xlsxOut != "" {
		if err := exporter.WriteWorkbook(xlsxOut, views, recommendations); err != nil {
			return err
		}
	}

	return nil
}

// engineParams maps the configuration section onto rule engine parameters
func engineParams(cfg config.EngineConfig) pricing.Params {
	return pricing.Params{
		HighDemandScore:     cfg.HighDemandScore,
		HighDemandMinStock:  cfg.HighDemandMinStock,
		HighDemandRaise:     cfg.HighDemandRaise,
		LowDemandScore:      cfg.LowDemandScore,
		LowDemandMinStock:   cfg.LowDemandMinStock,
		LowDemandCut:        cfg.LowDemandCut,
		CompetitorTolerance: cfg.CompetitorTolerance,
		CompetitorUndercut:  cfg.CompetitorUndercut,
		LowStockDemandScore: cfg.LowStockDemandScore,
		LowStockRaise:       cfg.LowStockRaise,
	}
}
