// Package main provides the entry point for the trade journal backend.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sherintbrody/journal-backend/internal/analytics"
	"github.com/sherintbrody/journal-backend/internal/api"
	"github.com/sherintbrody/journal-backend/internal/config"
	"github.com/sherintbrody/journal-backend/internal/journal"
	"github.com/sherintbrody/journal-backend/pkg/types"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	configPath := flag.String("config", "", "Path to config file (YAML)")
	logLevel := flag.String("log-level", "", "Log level override (debug, info, warn, error)")
	dataDir := flag.String("data", "", "Data directory override")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		// Logger is not up yet.
		os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *dataDir != "" {
		cfg.Journal.DataDir = *dataDir
	}

	logger := setupLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Starting journal backend",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("dataDir", cfg.Journal.DataDir),
	)

	store, err := journal.NewStore(logger, cfg.Journal.DataDir)
	if err != nil {
		logger.Fatal("Failed to initialize journal store", zap.Error(err))
	}

	engine := analytics.NewEngine(logger, cfg.Analytics)
	metrics := api.NewMetrics()
	hub := api.NewHub(logger, metrics)

	// Every journal change pushes the trade and a fresh report to
	// subscribed clients.
	store.OnChange(func(trade types.TradeRecord) {
		hub.BroadcastTradeUpdate(trade)
		report := engine.Analyze(store.List(), types.PeriodAll, time.Now())
		hub.BroadcastAnalytics(report)
	})

	server := api.NewServer(logger, &cfg.Server, store, engine, hub, metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hub.Run()

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", zap.Error(err))
			cancel()
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}
	logger.Info("Shutdown complete")
}

func setupLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Encoding:    "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}
	return logger
}
