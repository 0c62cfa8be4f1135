package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/rossgrat/iot-telemetry-backend/internal/api"
	"github.com/rossgrat/iot-telemetry-backend/internal/config"
	"github.com/rossgrat/iot-telemetry-backend/internal/ingest"
	"github.com/rossgrat/iot-telemetry-backend/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	slog.InfoContext(ctx, "Starting service...")

	// .env is optional; real deployments configure through the environment
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	db, err := store.Init(ctx, store.Config{
		ConnString:     cfg.DatabaseURL,
		MigrationsPath: cfg.MigrationsPath,
	})
	if err != nil {
		panic(err)
	}
	defer db.Close()

	msgLog, closeMsgLog, err := openMessageLog(cfg.LogDir)
	if err != nil {
		panic(err)
	}
	defer closeMsgLog()

	ingestor := ingest.New(ingest.Config{
		BrokerURL:    cfg.BrokerURL,
		Topic:        cfg.Topic,
		ClientID:     cfg.ClientID,
		QueueSize:    cfg.QueueSize,
		Workers:      cfg.Workers,
		DrainTimeout: cfg.DrainTimeout,
		Store:        db,
		MessageLog:   msgLog,
	})

	wg := sync.WaitGroup{}
	wg.Go(func() {
		if err := ingestor.Run(ctx); err != nil {
			slog.ErrorContext(ctx, "Ingestion stopped with error", "error", err)
			cancel()
		}
	})

	queryAPI := api.New(api.Config{DB: db})
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: queryAPI.Router(),
	}
	go func() {
		slog.InfoContext(ctx, "HTTP server listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.ErrorContext(ctx, "HTTP server error", "error", err)
			cancel()
		}
	}()

	go func() {
		<-sigs
		cancel()
	}()

	// Ingestion drains its queue before Run returns; the deferred
	// db.Close runs after that.
	wg.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
}

// openMessageLog sets up the durable per-message log that receives
// rejections and ingestion failures.
func openMessageLog(dir string) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(filepath.Join(dir, "messages.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}))
	return logger, func() { f.Close() }, nil
}
