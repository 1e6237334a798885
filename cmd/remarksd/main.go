package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/annotatr/remarks-service/internal/async"
	"github.com/annotatr/remarks-service/internal/common"
	"github.com/annotatr/remarks-service/internal/jobstore"
	"github.com/annotatr/remarks-service/internal/processor"
	"github.com/annotatr/remarks-service/internal/remarks"
	"github.com/annotatr/remarks-service/internal/server"
	"github.com/annotatr/remarks-service/internal/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	files, err := storage.NewLocal(cfg.Storage.UploadDir, cfg.Storage.ResultDir, logger)
	if err != nil {
		logger.Error("storage init failed", "error", err)
		os.Exit(1)
	}

	store := jobstore.NewMemory(logger)
	alloc := remarks.NewAllocator()
	proc := processor.New(store, files, alloc, cfg.Processing.MinRowCount, logger)
	queue := async.NewProcessorQueue(proc, logger,
		async.WithWorkers(cfg.Processing.Workers),
		async.WithQueueSize(cfg.Processing.QueueSize),
		async.WithProcessTimeout(cfg.Processing.ProcessTimeout),
	)

	handler := server.NewHandler(store, files, queue, logger)
	router := server.NewRouter(handler, cfg.Server.CORSOrigin)

	srv := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown incomplete", "error", err)
	}
	queue.Shutdown(shutdownCtx)
	logger.Info("stopped")
}
