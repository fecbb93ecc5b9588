// Package workers holds the background loops of the bot process.
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/sbilibin2017/gw-exchange-bot/internal/logger"
	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

//go:generate mockgen -source=broadcast.go -destination=broadcast_mock_test.go -package=workers

// KafkaWriter defines an interface for writing messages to Kafka.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// KafkaReader is the consumer-group part of kafka.Reader.
type KafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// BroadcastDeliverer delivers a queued broadcast.
type BroadcastDeliverer interface {
	Deliver(ctx context.Context, job models.BroadcastJob) error
}

// BroadcastPublisher queues broadcast jobs on a Kafka topic.
type BroadcastPublisher struct {
	writer KafkaWriter
}

func NewBroadcastPublisher(writer KafkaWriter) *BroadcastPublisher {
	return &BroadcastPublisher{writer: writer}
}

// Publish writes job keyed by its broadcast id.
func (p *BroadcastPublisher) Publish(ctx context.Context, job models.BroadcastJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		logger.Log.Errorw("failed to marshal broadcast job", "broadcast_id", job.BroadcastID, "error", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(job.BroadcastID, 10)),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish broadcast job", "broadcast_id", job.BroadcastID, "error", err)
		return err
	}

	logger.Log.Infow("broadcast job published", "broadcast_id", job.BroadcastID, "recipients", len(job.ChatIDs))
	return nil
}

// BroadcastConsumer reads broadcast jobs and delivers them. A message is
// committed once delivery finished or was given up on.
type BroadcastConsumer struct {
	reader     KafkaReader
	deliverer  BroadcastDeliverer
	attempts   int
	retryDelay time.Duration
}

func NewBroadcastConsumer(reader KafkaReader, deliverer BroadcastDeliverer, attempts int, retryDelay time.Duration) *BroadcastConsumer {
	if attempts < 1 {
		attempts = 1
	}
	return &BroadcastConsumer{
		reader:     reader,
		deliverer:  deliverer,
		attempts:   attempts,
		retryDelay: retryDelay,
	}
}

// Run consumes until ctx is cancelled.
func (c *BroadcastConsumer) Run(ctx context.Context) error {
	logger.Log.Infow("broadcast consumer started")
	defer logger.Log.Infow("broadcast consumer stopped")

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			logger.Log.Errorw("failed to fetch broadcast job", "error", err)
			return err
		}

		c.handle(ctx, msg)

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Log.Errorw("failed to commit broadcast job", "offset", msg.Offset, "error", err)
			return err
		}
	}
}

func (c *BroadcastConsumer) handle(ctx context.Context, msg kafka.Message) {
	var job models.BroadcastJob
	if err := json.Unmarshal(msg.Value, &job); err != nil {
		logger.Log.Errorw("dropping malformed broadcast job", "offset", msg.Offset, "value", string(msg.Value), "error", err)
		return
	}

	for attempt := 1; attempt <= c.attempts; attempt++ {
		err := c.deliverer.Deliver(ctx, job)
		if err == nil {
			return
		}
		logger.Log.Errorw("broadcast delivery failed",
			"broadcast_id", job.BroadcastID,
			"attempt", attempt,
			"error", err,
		)
		if attempt == c.attempts {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(c.retryDelay):
		}
	}
}
