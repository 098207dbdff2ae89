// Package feed consumes transaction snapshots published by the execution
// engine on a Kafka topic. Only the newest snapshot per checkout is kept.
package feed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/vitwit/cartcheckout/logger"
	"github.com/vitwit/cartcheckout/metrics"
	"github.com/vitwit/cartcheckout/types"
	"github.com/vitwit/cartcheckout/utils"
)

// DefaultKey is used for messages published without a key.
const DefaultKey = "default"

// Handler is called with every accepted snapshot.
type Handler func(ctx context.Context, key string, tx *types.Transaction)

// messageReader is the subset of *kafka.Reader the consumer needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer streams snapshots from Kafka into a LatestStore.
type Consumer struct {
	reader  messageReader
	store   *LatestStore
	handler Handler
	log     logger.Logger
	metrics metrics.Recorder
	poll    time.Duration
}

// NewConsumer builds a consumer group reader for cfg.
func NewConsumer(cfg types.FeedConfig, handler Handler, log logger.Logger, rec metrics.Recorder) (*Consumer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, errors.New("at least one broker is required")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, errors.New("snapshot topic must not be empty")
	}
	if strings.TrimSpace(cfg.GroupID) == "" {
		return nil, errors.New("consumer group must not be empty")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		GroupID:     cfg.GroupID,
		Topic:       cfg.Topic,
		StartOffset: kafka.LastOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})

	return newConsumer(reader, cfg.PollTimeout, handler, log, rec), nil
}

func newConsumer(reader messageReader, poll time.Duration, handler Handler, log logger.Logger, rec metrics.Recorder) *Consumer {
	if poll <= 0 {
		poll = 5 * time.Second
	}
	if log == nil {
		log = logger.NoopLogger{}
	}
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Consumer{
		reader:  reader,
		store:   NewLatestStore(),
		handler: handler,
		log:     log,
		metrics: rec,
		poll:    poll,
	}
}

// Store exposes the latest snapshots.
func (c *Consumer) Store() *LatestStore {
	return c.store
}

// Run fetches until ctx is cancelled. Decoding failures are logged and the
// message is committed so it is not redelivered.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		fetchCtx, cancel := context.WithTimeout(ctx, c.poll)
		msg, err := c.reader.FetchMessage(fetchCtx)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, context.DeadlineExceeded) {
				continue
			}
			return &types.CheckoutError{
				Code:    types.ErrFeedError,
				Message: fmt.Sprintf("fetch snapshot: %v", err),
			}
		}

		if err := c.Handle(ctx, msg); err != nil {
			c.log.Warn("snapshot_decode_failed", map[string]any{
				"topic":     msg.Topic,
				"partition": msg.Partition,
				"offset":    msg.Offset,
				"err":       err.Error(),
			})
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			c.log.Error("snapshot_commit_failed", map[string]any{"offset": msg.Offset, "err": err.Error()})
		}
	}
}

// Handle decodes one message and forwards it when it is the newest snapshot
// for its key.
func (c *Consumer) Handle(ctx context.Context, msg kafka.Message) error {
	tx, err := utils.ParseTransaction(msg.Value)
	if err != nil {
		c.metrics.IncCounter(metrics.SnapshotDropped, map[string]string{"phase": "invalid"})
		return err
	}

	key := string(msg.Key)
	if key == "" {
		key = DefaultKey
	}

	if !c.store.Put(key, msg.Partition, msg.Offset, tx) {
		c.metrics.IncCounter(metrics.SnapshotDropped, map[string]string{"phase": "stale"})
		c.log.Debug("snapshot_stale", map[string]any{"checkout": key, "offset": msg.Offset})
		return nil
	}

	if c.handler != nil {
		c.handler(ctx, key, tx)
	}
	return nil
}

// Close shuts down the underlying reader.
func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}
