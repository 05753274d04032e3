package app

import (
	"context"
	"errors"

	"go-employee-admin/internal/config"
	"go-employee-admin/internal/messaging/kafka"
	"go-employee-admin/internal/messaging/kafka/producer"
	"go-employee-admin/internal/metrics"
	"go-employee-admin/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker publishes pending outbox rows to Kafka until ctx is cancelled.
func RunWorker(ctx context.Context, cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}
	if cfg.Database.Driver == "sqlite" {
		return errors.New("the outbox worker needs DB_DRIVER=postgres")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := kafka.Migrate(gormDB); err != nil {
		return err
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Broker, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	m := metrics.New("employee_admin_worker")
	stopMetrics := serveMetrics(cfg.Kafka.MetricsPort, m, logger)
	defer stopMetrics()

	producer.ProcessOutboxEvents(
		ctx,
		kafka.NewOutboxRepository(sqlDB),
		kafkaWriter,
		m,
		logger,
		cfg.Kafka.PollInterval,
	)

	logger.Info("worker shutting down")
	return nil
}
