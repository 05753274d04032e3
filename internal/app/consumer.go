package app

import (
	"context"
	"errors"

	"go-employee-admin/internal/config"
	"go-employee-admin/internal/department"
	"go-employee-admin/internal/employee"
	"go-employee-admin/internal/events"
	"go-employee-admin/internal/messaging/kafka/consumer"
	"go-employee-admin/internal/metrics"
	"go-employee-admin/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer drops the shared Redis caches whenever an employee or
// department changes, until ctx is cancelled.
func RunConsumer(ctx context.Context, cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.Kafka.Broker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.Kafka.Broker},
		Topic:          events.LifecycleTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.LastOffset,
	})
	defer reader.Close()

	m := metrics.New("employee_admin_consumer")
	stopMetrics := serveMetrics(cfg.Kafka.MetricsPort, m, logger)
	defer stopMetrics()

	consumer.ConsumeLifecycle(
		ctx,
		reader,
		consumer.InvalidateCaches(rdb, m, employee.EmployeeOptionsKey, department.DepartmentsCacheKey),
		logger,
	)

	logger.Info("consumer shutting down")
	return nil
}
