package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/fdg312/food-tracker/internal/config"
	"github.com/fdg312/food-tracker/internal/dbmigrate"
	"github.com/fdg312/food-tracker/internal/httpserver"
	"github.com/fdg312/food-tracker/internal/logger"
)

func main() {
	if err := logger.Init(envOr("LOG_LEVEL", "debug"), envOr("APP_ENV", os.Getenv("ENV"))); err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.L()

	cfg := config.Load()
	printStartupBanner(log, cfg)

	if err := validateProductionConfig(cfg); err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.RunMigrationsOnStartup {
		target, err := dbmigrate.SelectTarget(cfg, true)
		if err != nil {
			log.Fatal("startup migrations", zap.Error(err))
		}
		log.Info("startup migrations", zap.String("command", "up"), zap.String("using", target.Source))
		if err := dbmigrate.Run(ctx, "up", target.URL, dbmigrate.DefaultMigrationsDir); err != nil {
			log.Fatal("startup migrations failed", zap.Error(err))
		}
		log.Info("startup migrations completed")
	}

	server, err := httpserver.New(cfg)
	if err != nil {
		log.Fatal("server init failed", zap.Error(err))
	}
	defer server.Close()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", zap.Error(err))
		}
	}
}

// printStartupBanner logs the resolved configuration once. Secrets are
// reported only as "set" / "not set".
func printStartupBanner(log *zap.Logger, cfg *config.Config) {
	log.Info("food tracker api",
		zap.String("env", cfg.Env),
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
	)
	log.Info("config: database",
		zap.String("runtime_url", describeDBURL(cfg.DatabaseURL, cfg.DatabaseURLPooled)),
		zap.String("pooled", config.SetOrNot(cfg.DatabaseURLPooled)),
		zap.String("direct", config.SetOrNot(cfg.DatabaseURLDirect)),
		zap.Bool("migrations_on_startup", cfg.RunMigrationsOnStartup),
	)
	log.Info("config: auth",
		zap.String("auth_mode", cfg.AuthMode),
		zap.Bool("auth_required", cfg.AuthRequired),
		zap.String("jwt_secret", secretStatus(cfg.JWTSecret, "change_me")),
		zap.String("jwt_issuer", cfg.JWTIssuer),
		zap.Int("jwt_ttl_minutes", cfg.JWTTTLMinutes),
	)
	log.Info("config: blob",
		zap.String("blob_mode", cfg.Blob.Mode),
		zap.String("s3", cfg.Blob.S3.DiagnosticsSummary()),
	)
	log.Info("config: diary",
		zap.String("food_search_mode", cfg.FoodSearchMode),
		zap.Float64("entry_default_quantity_g", cfg.EntryDefaultQuantityG),
		zap.Int("water_max_ml_per_day", cfg.WaterMaxMlPerDay),
		zap.Int("reports_max_range_days", cfg.ReportsMaxRangeDays),
	)
	log.Info("config: http",
		zap.Strings("cors_allowed_origins", cfg.CORSAllowedOrigins),
		zap.Int("rate_limit_rps", cfg.RateLimitRPS),
		zap.Int("rate_limit_burst", cfg.RateLimitBurst),
	)
}

// validateProductionConfig rejects settings that are only acceptable locally.
func validateProductionConfig(cfg *config.Config) error {
	isProd := cfg.Env == "production" || cfg.Env == "staging"

	if cfg.Blob.Mode == config.BlobModeS3 {
		if missing := cfg.Blob.S3.MissingRequired(); len(missing) > 0 {
			return fmt.Errorf("BLOB_MODE=s3 but S3 config is incomplete, missing: %s", strings.Join(missing, ", "))
		}
	}
	if isProd && cfg.AuthRequired && cfg.JWTSecret == "change_me" {
		return fmt.Errorf("JWT_SECRET must not be 'change_me' in %s with AUTH_REQUIRED=1", cfg.Env)
	}
	if isProd && cfg.AuthMode == "dev" {
		return errors.New("AUTH_MODE=dev is not allowed in " + cfg.Env)
	}
	if isProd && cfg.DatabaseURL == "" {
		return fmt.Errorf("no DATABASE_URL configured in %s", cfg.Env)
	}
	return nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func secretStatus(v, insecureDefault string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "not set"
	}
	if v == insecureDefault {
		return fmt.Sprintf("set (insecure default '%s')", insecureDefault)
	}
	return "set (custom)"
}

func describeDBURL(runtime, pooled string) string {
	if runtime == "" {
		return "not set (in-memory storage)"
	}
	if pooled != "" && runtime == pooled {
		return "set (via DATABASE_URL_POOLED)"
	}
	return "set"
}
