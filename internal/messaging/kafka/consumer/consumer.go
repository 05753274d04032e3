package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-employee-admin/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// LifecycleHandler reacts to one employee or department lifecycle event.
type LifecycleHandler func(ctx context.Context, env events.Envelope, payload []byte) error

// Observer is told about every invalidation the consumer performs.
type Observer interface {
	ObserveInvalidation(eventType string)
}

const handleAttempts = 3

var retryBackoff = 500 * time.Millisecond

// ConsumeLifecycle reads the lifecycle topic until ctx is cancelled.
// Undecodable messages are committed and skipped. A failing handler is
// retried up to handleAttempts times, then the message is committed anyway:
// the reader does not redeliver within a session, so an uncommitted message
// would only come back after a restart.
func ConsumeLifecycle(
	ctx context.Context,
	reader MessageReader,
	handle LifecycleHandler,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.lifecycle")
	log.Info("lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("lifecycle consumer stopped")
				return
			}
			log.Error("fetch lifecycle message failed", zap.Error(err))
			continue
		}

		handleMessage(ctx, reader, msg, handle, log)
	}
}

func handleMessage(
	ctx context.Context,
	reader MessageReader,
	msg kafkago.Message,
	handle LifecycleHandler,
	log *zap.Logger,
) {
	var env events.Envelope
	if err := json.Unmarshal(msg.Value, &env); err != nil || env.EventType == "" {
		log.Error("decode lifecycle event failed", zap.Int64("offset", msg.Offset), zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	if err := handleWithRetry(ctx, env, msg.Value, handle); err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Error("handle lifecycle event failed, skipping",
			zap.String("event_type", env.EventType),
			zap.String("request_id", env.RequestID),
			zap.Int("attempts", handleAttempts),
			zap.Error(err),
		)
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit lifecycle message failed", zap.Error(err))
		return
	}

	log.Debug("lifecycle event handled",
		zap.String("event_type", env.EventType),
		zap.String("request_id", env.RequestID),
	)
}

func handleWithRetry(ctx context.Context, env events.Envelope, payload []byte, handle LifecycleHandler) error {
	var err error
	for attempt := 1; attempt <= handleAttempts; attempt++ {
		if err = handle(ctx, env, payload); err == nil {
			return nil
		}
		if attempt == handleAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	return err
}

// InvalidateCaches returns a handler that drops keys from Redis on every
// lifecycle event.
func InvalidateCaches(rdb *redis.Client, observer Observer, keys ...string) LifecycleHandler {
	return func(ctx context.Context, env events.Envelope, _ []byte) error {
		if err := rdb.Del(ctx, keys...).Err(); err != nil {
			return err
		}
		if observer != nil {
			observer.ObserveInvalidation(env.EventType)
		}
		return nil
	}
}
