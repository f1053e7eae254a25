package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"tenurecli/internal/chart"
	"tenurecli/internal/config"
	"tenurecli/internal/correlation"
	"tenurecli/internal/dataprocessing"
	"tenurecli/internal/exporter"
	"tenurecli/internal/fetch"
	"tenurecli/internal/infrastructure"
	"tenurecli/pkg/contracts"
)

func main() {
	skipDownload := flag.Bool("skip-download", false, "reuse an already downloaded workbook")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	ctx := context.Background()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("failed to initialize paths", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	if err := run(ctx, cfg, paths, logger, *skipDownload); err != nil {
		logger.Error("pipeline failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the whole pipeline as a strict sequence: fetch, parse, export
// tidy tables, correlate, render charts. Any failure aborts the run.
func run(ctx context.Context, cfg *config.Config, paths *config.Paths, logger *slog.Logger, skipDownload bool) error {
	start := time.Now()

	if err := paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}

	logger.InfoContext(ctx, "tenure report pipeline starting",
		"version", contracts.Version,
		"source_url", cfg.Source.URL,
		"skip_download", skipDownload,
	)

	if !skipDownload {
		downloader := fetch.NewDownloader(cfg.Source.Timeout, logger)
		if _, err := downloader.Download(ctx, cfg.Source.URL, paths.WorkbookFile); err != nil {
			return fmt.Errorf("fetch workbook: %w", err)
		}
	}

	f, err := dataprocessing.OpenWorkbook(paths.WorkbookFile)
	if err != nil {
		return err
	}
	defer f.Close()

	trends, err := dataprocessing.ParseTenureTrends(f, config.TenureTrendsLayout)
	if err != nil {
		return fmt.Errorf("parse tenure trends: %w", err)
	}
	income, err := dataprocessing.ParseTenureByIncome(f, config.TenureIncomeLayout)
	if err != nil {
		return fmt.Errorf("parse tenure by income: %w", err)
	}

	logger.InfoContext(ctx, "workbook parsed",
		"trend_observations", len(trends),
		"income_observations", len(income),
	)

	writer := exporter.NewCSVWriter(paths)
	if err := writer.WriteTenureLong(paths.TenureLongCSV, trends); err != nil {
		return fmt.Errorf("write long table: %w", err)
	}
	if err := writer.WriteTenureWide(paths.TenureWideCSV, dataprocessing.PivotWide(trends)); err != nil {
		return fmt.Errorf("write wide table: %w", err)
	}
	if err := writer.WriteTenureIncome(paths.TenureIncomeCSV, income); err != nil {
		return fmt.Errorf("write income table: %w", err)
	}

	engine := correlation.NewEngine(logger)
	groups, err := engine.Compute(ctx, income)
	if err != nil {
		return fmt.Errorf("compute correlations: %w", err)
	}
	if err := writer.WriteCorrelations(paths.CorrelationCSV, correlation.Flatten(groups)); err != nil {
		return fmt.Errorf("write correlation table: %w", err)
	}

	if err := chart.StackedAreaByCountry(trends, paths.AreaChartPNG); err != nil {
		return fmt.Errorf("render area chart: %w", err)
	}
	if err := chart.PointLineByQuintile(income, paths.IncomeChartPNG); err != nil {
		return fmt.Errorf("render income chart: %w", err)
	}
	if err := chart.CorrelationHeatmap(groups, paths.HeatmapPNG, paths.HeatmapSVG); err != nil {
		return fmt.Errorf("render correlation heatmap: %w", err)
	}
	if err := chart.RenderNetworks(ctx, groups, paths.NetworkDir, cfg.Charts.EdgeThreshold, cfg.Charts.NetworkWorkers, logger); err != nil {
		return fmt.Errorf("render network diagrams: %w", err)
	}

	logger.InfoContext(ctx, "tenure report pipeline finished",
		"groups", len(groups),
		"elapsed", time.Since(start).String(),
	)
	return nil
}
