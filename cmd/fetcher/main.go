package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"tenurecli/internal/config"
	"tenurecli/internal/fetch"
	"tenurecli/internal/infrastructure"
	"tenurecli/pkg/contracts"
)

func main() {
	out := flag.String("out", "", "destination file (defaults to data/downloads relative to executable)")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if *out == "" {
		*out = paths.WorkbookFile
	}
	if err := paths.EnsureDirectories(); err != nil {
		slog.Error("failed to create required directories", "error", err)
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

	downloader := fetch.NewDownloader(cfg.Source.Timeout, logger)
	if _, err := downloader.Download(context.Background(), cfg.Source.URL, *out); err != nil {
		logger.Error("download failed", "error", err)
		os.Exit(1)
	}
}
