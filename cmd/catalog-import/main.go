package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/fdg312/food-tracker/internal/blob"
	"github.com/fdg312/food-tracker/internal/config"
	"github.com/fdg312/food-tracker/internal/foods"
	"github.com/fdg312/food-tracker/internal/logger"
	"github.com/fdg312/food-tracker/internal/storage/postgres"
)

func main() {
	file := flag.String("file", "", "path to the nutrition CSV")
	blobKey := flag.String("blob-key", "", "object key of the CSV in the blob store (S3)")
	batch := flag.Int("batch", 0, "upsert batch size (default CATALOG_IMPORT_BATCH_SIZE)")
	flag.Parse()

	if (*file == "") == (*blobKey == "") {
		fmt.Fprintln(os.Stderr, "usage: catalog-import -file <path> | -blob-key <key> [-batch N]")
		os.Exit(2)
	}

	if err := logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV")); err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.L()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("catalog import needs DATABASE_URL; the in-memory catalog does not outlive the process")
	}
	if *batch <= 0 {
		*batch = cfg.CatalogImportBatchSize
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	src, err := openSource(ctx, cfg, *file, *blobKey)
	if err != nil {
		log.Fatal("open source", zap.Error(err))
	}
	defer src.Close()

	store, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("connect postgres", zap.Error(err))
	}
	defer store.Close()

	started := time.Now()
	stats, err := foods.ImportCSV(ctx, src, store.Catalog(), *batch)
	if err != nil {
		log.Fatal("import failed", zap.Error(err))
	}

	total, err := store.Catalog().CountFoods(ctx)
	if err != nil {
		log.Warn("count foods", zap.Error(err))
	}
	log.Info("catalog import done",
		zap.Int("rows", stats.Rows),
		zap.Int("inserted", stats.Inserted),
		zap.Int("updated", stats.Updated),
		zap.Int("skipped", stats.Skipped),
		zap.Int("catalog_size", total),
		zap.Duration("took", time.Since(started)),
	)
}

// openSource returns the CSV either from disk or from the configured blob store.
func openSource(ctx context.Context, cfg *config.Config, file, blobKey string) (io.ReadCloser, error) {
	if file != "" {
		return os.Open(file)
	}

	store, mode, err := blob.NewBlobStore(ctx, cfg.Blob, logger.NewPrintfLogger(logger.L()))
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, errors.New("-blob-key needs BLOB_MODE=s3 or a configured auto mode, got " + mode)
	}

	data, err := store.GetObject(ctx, blobKey)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", blobKey, err)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
