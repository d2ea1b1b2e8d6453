package dbmigrate

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/fdg312/food-tracker/internal/logger"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Commands accepted by Run.
var Commands = []string{"up", "status", "down"}

// IsCommand reports whether command is one of Commands.
func IsCommand(command string) bool {
	for _, c := range Commands {
		if c == command {
			return true
		}
	}
	return false
}

// gooseLogger routes goose output into zap.
type gooseLogger struct {
	s *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) { l.s.Infof(format, v...) }
func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.s.Fatalf(format, v...) }

// Run применяет goose команду к базе по dbURL
func Run(ctx context.Context, command string, dbURL string, migrationsDir string) error {
	if !IsCommand(command) {
		return fmt.Errorf("unsupported migrate command %q", command)
	}
	if dbURL == "" {
		return ErrNoDatabaseURL
	}
	if migrationsDir == "" {
		migrationsDir = DefaultMigrationsDir
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}

	goose.SetLogger(gooseLogger{s: logger.L().Named("goose").Sugar()})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	logger.L().Info("running migrations", zap.String("command", command), zap.String("dir", migrationsDir))
	if err := goose.RunContext(ctx, command, db, migrationsDir); err != nil {
		return fmt.Errorf("goose %s failed: %w", command, err)
	}
	return nil
}
