package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fdg312/food-tracker/internal/logger"
	"go.uber.org/zap"
)

const (
	BlobModeLocal = "local"
	BlobModeS3    = "s3"
	BlobModeAuto  = "auto"
)

const (
	SearchModeSubstring = "substring"
	SearchModePrefix    = "prefix"
)

type S3Config struct {
	Endpoint          string
	Region            string
	Bucket            string
	AccessKeyID       string
	SecretAccessKey   string
	PublicBaseURL     string // optional; used when PreferPublicURL is set
	PresignTTLSeconds int
	PreferPublicURL   bool
}

func (c S3Config) MissingRequired() []string {
	missing := make([]string, 0, 5)
	if strings.TrimSpace(c.Endpoint) == "" {
		missing = append(missing, "S3_ENDPOINT")
	}
	if strings.TrimSpace(c.Region) == "" {
		missing = append(missing, "S3_REGION")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		missing = append(missing, "S3_BUCKET")
	}
	if strings.TrimSpace(c.AccessKeyID) == "" {
		missing = append(missing, "S3_ACCESS_KEY_ID")
	}
	if strings.TrimSpace(c.SecretAccessKey) == "" {
		missing = append(missing, "S3_SECRET_ACCESS_KEY")
	}
	return missing
}

func (c S3Config) IsConfigured() bool {
	return len(c.MissingRequired()) == 0
}

func (c S3Config) Diagnostics() (level string, code string, msg string) {
	allEmpty := strings.TrimSpace(c.Endpoint) == "" &&
		strings.TrimSpace(c.Region) == "" &&
		strings.TrimSpace(c.Bucket) == "" &&
		strings.TrimSpace(c.AccessKeyID) == "" &&
		strings.TrimSpace(c.SecretAccessKey) == ""

	if allEmpty {
		return "INFO", "s3_not_configured", "not configured (all empty)"
	}

	missing := c.MissingRequired()
	if len(missing) > 0 {
		return "WARN", "s3_partial_config", fmt.Sprintf("partial config, missing=%v", missing)
	}

	return "INFO", "s3_ready", "ready"
}

// DiagnosticsSummary returns a detailed summary for logging (no secrets)
func (c S3Config) DiagnosticsSummary() string {
	return fmt.Sprintf("endpoint=%s region=%s bucket=%s public_base_url=%s presign_ttl=%ds prefer_public_url=%t access_key_id=%s secret_access_key=%s",
		nonEmptyOrDash(c.Endpoint),
		nonEmptyOrDash(c.Region),
		nonEmptyOrDash(c.Bucket),
		nonEmptyOrDash(c.PublicBaseURL),
		c.PresignTTLSeconds,
		c.PreferPublicURL,
		SetOrNot(c.AccessKeyID),
		SetOrNot(c.SecretAccessKey),
	)
}

// SetOrNot masks a secret for logs.
func SetOrNot(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not set"
	}
	return "set"
}

func nonEmptyOrDash(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "-"
	}
	return v
}

type BlobConfig struct {
	Mode string // local|s3|auto
	S3   S3Config
}

// Config содержит конфигурацию приложения
type Config struct {
	Env      string // local | staging | production
	Port     int
	LogLevel string

	// Database
	DatabaseURL       string // runtime connection (resolved: pooled > url > direct)
	DatabaseURLRaw    string // DATABASE_URL as provided
	DatabaseURLPooled string // DATABASE_URL_POOLED as provided
	DatabaseURLDirect string // for migrations / DDL (may be empty)

	// CORS
	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	// Rate Limiting
	RateLimitRPS   int
	RateLimitBurst int

	Blob BlobConfig

	// Food catalog / diary
	FoodSearchMode         string // substring | prefix
	EntryDefaultQuantityG  float64
	WaterMaxMlPerDay       int
	ReportsMaxRangeDays    int
	CatalogImportBatchSize int

	// Authentication
	AuthMode      string // none | dev
	AuthRequired  bool
	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int

	// Migrations
	RunMigrationsOnStartup bool
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	log := logger.L()

	// APP_ENV (fallback to ENV for backward compat, default: local)
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = os.Getenv("ENV")
	}
	if env == "" {
		env = "local"
	}

	port := envInt("PORT", 8080)

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "debug"
	}

	// ---------- Database ----------
	// Priority: DATABASE_URL_POOLED > DATABASE_URL > DATABASE_URL_DIRECT
	dbPooled := strings.TrimSpace(os.Getenv("DATABASE_URL_POOLED"))
	dbURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	dbDirect := strings.TrimSpace(os.Getenv("DATABASE_URL_DIRECT"))

	runtimeDB := dbPooled
	if runtimeDB == "" {
		runtimeDB = dbURL
	}
	if runtimeDB == "" {
		runtimeDB = dbDirect
	}

	// ---------- Blob / S3 ----------
	s3PresignTTL := envInt("S3_PRESIGN_TTL_SECONDS", 900)
	if s3PresignTTL <= 0 {
		s3PresignTTL = 900
	}

	blobCfg := BlobConfig{
		Mode: parseEnum("BLOB_MODE", BlobModeLocal, BlobModeLocal, BlobModeS3, BlobModeAuto),
		S3: S3Config{
			Endpoint:          strings.TrimSpace(os.Getenv("S3_ENDPOINT")),
			Region:            strings.TrimSpace(os.Getenv("S3_REGION")),
			Bucket:            strings.TrimSpace(os.Getenv("S3_BUCKET")),
			AccessKeyID:       strings.TrimSpace(os.Getenv("S3_ACCESS_KEY_ID")),
			SecretAccessKey:   strings.TrimSpace(os.Getenv("S3_SECRET_ACCESS_KEY")),
			PublicBaseURL:     strings.TrimSpace(os.Getenv("S3_PUBLIC_BASE_URL")),
			PresignTTLSeconds: s3PresignTTL,
			PreferPublicURL:   parseBoolEnv("S3_PREFER_PUBLIC_URL"),
		},
	}

	// ---------- Domain ----------
	searchMode := parseEnum("FOOD_SEARCH_MODE", SearchModeSubstring, SearchModeSubstring, SearchModePrefix)

	defaultQty := envFloat("ENTRY_DEFAULT_QUANTITY_G", 100)
	if defaultQty < 0 {
		log.Warn("negative ENTRY_DEFAULT_QUANTITY_G, fallback to 100", zap.Float64("value", defaultQty))
		defaultQty = 100
	}

	waterMax := envInt("WATER_MAX_ML_PER_DAY", 8000)
	if waterMax <= 0 {
		waterMax = 8000
	}

	reportsMaxRange := envInt("REPORTS_MAX_RANGE_DAYS", 90)
	if reportsMaxRange <= 0 {
		reportsMaxRange = 90
	}

	importBatch := envInt("CATALOG_IMPORT_BATCH_SIZE", 500)
	if importBatch <= 0 {
		importBatch = 500
	}

	// ---------- Auth ----------
	authMode := parseEnum("AUTH_MODE", "none", "none", "dev")
	authRequired := authMode != "none" && parseBoolEnv("AUTH_REQUIRED")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "change_me"
	}
	if jwtSecret == "change_me" && env != "local" {
		log.Warn("JWT_SECRET is set to 'change_me' in non-local environment", zap.String("env", env))
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "food-tracker"
	}

	// JWT_TTL_MINUTES (default: 10080 = 7 days)
	jwtTTLMinutes := envInt("JWT_TTL_MINUTES", 10080)

	return &Config{
		Env:               env,
		Port:              port,
		LogLevel:          logLevel,
		DatabaseURL:       runtimeDB,
		DatabaseURLRaw:    dbURL,
		DatabaseURLPooled: dbPooled,
		DatabaseURLDirect: dbDirect,

		CORSAllowedOrigins:   parseCORSOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"), env),
		CORSAllowCredentials: os.Getenv("CORS_ALLOW_CREDENTIALS") == "1",

		RateLimitRPS:   envInt("RATE_LIMIT_RPS", 0),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 0),

		Blob: blobCfg,

		FoodSearchMode:         searchMode,
		EntryDefaultQuantityG:  defaultQty,
		WaterMaxMlPerDay:       waterMax,
		ReportsMaxRangeDays:    reportsMaxRange,
		CatalogImportBatchSize: importBatch,

		AuthMode:      authMode,
		AuthRequired:  authRequired,
		JWTSecret:     jwtSecret,
		JWTIssuer:     jwtIssuer,
		JWTTTLMinutes: jwtTTLMinutes,

		RunMigrationsOnStartup: parseBoolEnv("RUN_MIGRATIONS_ON_STARTUP"),
	}
}

// parseCORSOrigins parses CORS_ALLOWED_ORIGINS env var.
// In local mode, defaults to localhost origins if empty.
func parseCORSOrigins(raw, env string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if env == "local" {
			return []string{"http://localhost:3000", "http://localhost:8081"}
		}
		return nil // prod: deny by default
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

// parseEnum reads a lowercased env value and falls back when it is not one of allowed.
func parseEnum(key string, defaultVal string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return defaultVal
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	logger.L().Warn("unknown config value, using fallback",
		zap.String("key", key),
		zap.String("value", v),
		zap.String("fallback", defaultVal),
	)
	return defaultVal
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultVal
	}
	return v
}

func parseBoolEnv(key string) bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	return v == "1" || v == "true" || v == "yes" || v == "on"
}
