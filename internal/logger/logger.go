package logger

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	global = zap.NewNop()
)

// Init builds the process-wide logger. APP_ENV=local gets a console encoder,
// everything else JSON.
func Init(level, env string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	var cfg zap.Config
	if env == "" || env == "local" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build zap logger: %w", err)
	}

	Set(l)
	return nil
}

// Set replaces the global logger. Tests use it with zaptest/observer style loggers.
func Set(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	global = l
	mu.Unlock()
}

// L returns the global logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

// Sync flushes buffered entries.
func Sync() {
	_ = L().Sync()
}

// PrintfLogger adapts a zap logger to the Printf interface used by the blob factory.
type PrintfLogger struct {
	sugar *zap.SugaredLogger
}

func NewPrintfLogger(l *zap.Logger) *PrintfLogger {
	if l == nil {
		l = L()
	}
	return &PrintfLogger{sugar: l.Sugar()}
}

func (p *PrintfLogger) Printf(format string, v ...any) {
	p.sugar.Infof(format, v...)
}
