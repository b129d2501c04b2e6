package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"catalog/internal/cache"
	"catalog/internal/config"
	"catalog/internal/database"
	"catalog/internal/importer"
	"catalog/internal/repository"
	"catalog/internal/service"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	file := pflag.StringP("file", "f", "", "CSV file to import (.csv or .csv.gz)")
	useS3 := pflag.Bool("s3", false, "read the file from the configured S3 bucket, falling back to local disk")
	pflag.Parse()

	if *file == "" {
		pflag.Usage()
		return fmt.Errorf("--file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger, cfg.Server.ServiceName+"-import")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	initCtx, initCancel := context.WithTimeout(ctx, cfg.Database.InitTimeout)
	err = database.EnsureSchema(initCtx, db)
	initCancel()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	source, err := newSource(ctx, cfg.Import, *useS3 || cfg.Import.S3Enabled, logger)
	if err != nil {
		return err
	}

	productCache := cache.New(ctx, cfg.Cache, logger)
	defer productCache.Close()

	productRepo := repository.NewProductRepository(db, logger)
	productService := service.NewProductService(productRepo, productCache, logger)

	result, err := importer.New(productService, source, logger).Import(ctx, *file)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d products, skipped %d rows\n", result.Imported, result.Skipped)
	return nil
}

func newSource(ctx context.Context, cfg config.ImportConfig, useS3 bool, logger zerolog.Logger) (importer.Source, error) {
	local := importer.NewFileSource(logger)
	if !useS3 {
		return local, nil
	}

	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("IMPORT_S3_BUCKET is required to import from S3")
	}

	s3Source, err := importer.NewS3Source(ctx, cfg.S3Bucket, cfg.S3Region, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("S3 unavailable, importing from local file system only")
		return local, nil
	}

	return importer.NewFallbackSource(s3Source, local, cfg.S3Prefix, logger), nil
}
