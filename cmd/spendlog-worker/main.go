package main

import (
	"context"
	"errors"
	"os"

	"spendlog/internal/cli"
	"spendlog/internal/events"
	applog "spendlog/internal/log"
	"spendlog/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(applog.ComponentWorker)
	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
		os.Exit(1)
	}

	auditWorker, err := worker.NewAuditWorker(cfg.AuditLogPath)
	if err != nil {
		logger.Error("Failed to open audit log", applog.FieldError, err, applog.FieldPath, cfg.AuditLogPath)
		os.Exit(1)
	}
	defer auditWorker.Close()

	ctx, cancel := cli.SignalContext(logger)
	defer cancel()

	logger.Info("Starting spendlog-worker",
		applog.FieldOperation, applog.OpStartup,
		"exchange", cfg.AMQPExchange,
		"queue", cfg.AMQPQueue,
		"audit_log", cfg.AuditLogPath)

	err = events.ConsumeWithReconnect(ctx, cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue,
		func(msg *events.RecordEventMessage) error {
			return auditWorker.HandleEvent(ctx, msg)
		})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker error", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker stopped gracefully", applog.FieldOperation, applog.OpShutdown)
}
