package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/itmlabs/itmview/internal/config"
	"github.com/itmlabs/itmview/internal/server"
	"github.com/itmlabs/itmview/internal/shortinterest"
	"github.com/itmlabs/itmview/internal/store"
	"github.com/itmlabs/itmview/internal/view"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Setup logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	// Load config
	cfg, err := config.LoadServerConfig()
	if err != nil {
		logger.Error("failed to load config", zap.Error(err))
		return 1
	}

	logger.Info("configuration loaded",
		zap.String("port", cfg.Port),
		zap.String("reportPath", cfg.ReportPath),
		zap.String("shortInterestPath", cfg.ShortInterestPath),
		zap.Int64("maxReportBytes", cfg.MaxReportBytes),
		zap.Duration("uploadInterval", cfg.UploadInterval),
	)

	// Short-interest flags are loaded once and immutable thereafter
	flags := shortinterest.Load(cfg.ShortInterestPath, logger)

	// Load the default report if present; uploads can replace it later
	st := store.New(logger)
	start := time.Now()
	if err := st.LoadDefault(cfg.ReportPath, cfg.MaxReportBytes); err != nil {
		logger.Error("failed to load default report", zap.Error(err))
		return 1
	}
	logger.Info("store initialized", zap.Duration("duration", time.Since(start)))

	// Create server
	srv := server.NewServer(st, view.NewBuilder(flags), cfg, logger)
	router := server.NewRouter(srv, logger)

	// Setup HTTP server
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful HTTP server shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return 1
	}

	logger.Info("server stopped")
	return 0
}
