package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/fdg312/food-tracker/internal/config"
	"github.com/fdg312/food-tracker/internal/dbmigrate"
	"github.com/fdg312/food-tracker/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: go run ./cmd/migrate [%s]\n", strings.Join(dbmigrate.Commands, "|"))
		os.Exit(2)
	}
	command := os.Args[1]
	if !dbmigrate.IsCommand(command) {
		fmt.Fprintf(os.Stderr, "unsupported command %q (allowed: %s)\n", command, strings.Join(dbmigrate.Commands, ", "))
		os.Exit(2)
	}

	if err := logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("APP_ENV")); err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.L()

	cfg := config.Load()
	target, err := dbmigrate.SelectTarget(cfg, false)
	if err != nil {
		log.Fatal("migrate", zap.Error(err))
	}
	if target.Warning != "" {
		log.Warn("migrate", zap.String("warning", target.Warning))
	}

	log.Info("migrate", zap.String("command", command), zap.String("using", target.Source))
	if err := dbmigrate.Run(context.Background(), command, target.URL, dbmigrate.DefaultMigrationsDir); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}
	log.Info("migrate completed", zap.String("command", command))
}
