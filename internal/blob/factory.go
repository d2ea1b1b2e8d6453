package blob

import (
	"context"
	"fmt"
	"strings"

	appcfg "github.com/fdg312/food-tracker/internal/config"
)

// Logger is satisfied by *log.Logger and logger.PrintfLogger.
type Logger interface {
	Printf(format string, v ...any)
}

// NewBlobStore picks a store for cfg.Mode. It returns a nil Store in local
// mode; callers treat that as "no object storage".
//
//	local: never S3
//	auto:  S3 when fully configured, otherwise local
//	s3:    S3 or an error
func NewBlobStore(ctx context.Context, cfg appcfg.BlobConfig, logger Logger) (Store, string, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.Mode))
	if mode == "" {
		mode = appcfg.BlobModeLocal
	}

	switch mode {
	case appcfg.BlobModeLocal:
		logf(logger, "blob: mode=local (forced)")
		return nil, appcfg.BlobModeLocal, nil

	case appcfg.BlobModeAuto:
		if !cfg.S3.IsConfigured() {
			level, code, msg := cfg.S3.Diagnostics()
			logf(logger, "blob.s3: level=%s code=%s %s", level, code, msg)
			logf(logger, "blob.s3: %s", cfg.S3.DiagnosticsSummary())
			logf(logger, "blob: mode=local (auto, S3 not configured)")
			return nil, appcfg.BlobModeLocal, nil
		}
		store, err := openS3(ctx, cfg.S3, logger)
		if err != nil {
			logf(logger, "blob.s3: init_failed=%q, fallback=local", err.Error())
			return nil, appcfg.BlobModeLocal, nil
		}
		logf(logger, "blob: mode=s3 (auto, configured)")
		return store, appcfg.BlobModeS3, nil

	case appcfg.BlobModeS3:
		if missing := cfg.S3.MissingRequired(); len(missing) > 0 {
			logf(logger, "blob.s3: code=s3_config_incomplete missing=%v", missing)
			logf(logger, "blob.s3: %s", cfg.S3.DiagnosticsSummary())
			return nil, "", fmt.Errorf("BLOB_MODE=s3 requested but missing required config: %s", strings.Join(missing, ", "))
		}
		store, err := openS3(ctx, cfg.S3, logger)
		if err != nil {
			return nil, "", fmt.Errorf("BLOB_MODE=s3 init failed: %w", err)
		}
		logf(logger, "blob: mode=s3 (forced)")
		return store, appcfg.BlobModeS3, nil

	default:
		return nil, "", fmt.Errorf("unsupported blob mode: %s", mode)
	}
}

func openS3(ctx context.Context, cfg appcfg.S3Config, logger Logger) (*S3Store, error) {
	logf(logger, "blob.s3: code=s3_ready %s", cfg.DiagnosticsSummary())
	return NewS3Store(ctx, cfg)
}

func logf(logger Logger, format string, v ...any) {
	if logger == nil {
		return
	}
	logger.Printf(format, v...)
}
