package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"spendlog/internal/backend"
	"spendlog/internal/cli"
	"spendlog/internal/events"
	apphttp "spendlog/internal/http"
	applog "spendlog/internal/log"
	"spendlog/internal/store"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	factory := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger)
	result, err := factory.CreateBackend(ctx, backend.Config{
		Type:         backend.Type(cfg.StorageBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		FilePath:     cfg.SlotFilePath,
		SlotKey:      cfg.SlotKey,
	})
	if err != nil {
		logger.Error("Failed to initialize storage backend",
			applog.FieldError, err,
			applog.FieldBackend, cfg.StorageBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer result.Cleanup()
	}

	st := store.New(ctx, result.Slot)

	// Change events are optional; without AMQP the publisher is a no-op.
	var client *events.Client
	if cfg.AMQPURL != "" {
		client, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without change events",
				applog.FieldError, err)
			client = nil
		} else {
			logger.WithComponent(applog.ComponentEvents).Info("Initialized AMQP change events",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}
	publisher := events.NewPublisher(client)
	defer publisher.Close()
	st.Subscribe(publisher.OnStoreEvent)

	srv := apphttp.NewServer(":"+cfg.Port, st)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting spendlog server",
			applog.FieldOperation, applog.OpStartup,
			"port", cfg.Port,
			applog.FieldBackend, cfg.StorageBackend,
			"records", st.Len())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully", applog.FieldOperation, applog.OpShutdown)
}
