package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/emkopo/employee_lending_app/internal/core/domain"
	portssvc "github.com/emkopo/employee_lending_app/internal/core/ports/services"
	"github.com/panjf2000/ants/v2"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter is the subset of kafka.Writer the publisher uses.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher delivers loan events to a Kafka topic through a bounded
// worker pool. Delivery is fire-and-forget: the ledger mutation has already
// committed, so a failed or dropped publish is logged and never surfaced.
type KafkaPublisher struct {
	writer    KafkaWriter
	pool      *ants.Pool
	logger    *slog.Logger
	writeWait time.Duration
}

var _ portssvc.EventPublisher = (*KafkaPublisher)(nil)

// NewKafkaPublisher builds a publisher writing to topic on brokers. workers
// bounds the number of in-flight publishes; when the pool is saturated the
// event is dropped rather than blocking the calling operation.
func NewKafkaPublisher(brokers []string, topic string, writeWait time.Duration, workers int, logger *slog.Logger) (*KafkaPublisher, error) {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: writeWait,
	}

	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		_ = writer.Close()
		return nil, err
	}

	return &KafkaPublisher{
		writer:    writer,
		pool:      pool,
		logger:    logger,
		writeWait: writeWait,
	}, nil
}

// Publish serializes the event and hands it to the worker pool. The write uses
// a fresh timeout context so a cancelled request context cannot abort delivery
// of an event whose mutation already committed.
func (p *KafkaPublisher) Publish(ctx context.Context, event domain.LoanEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to serialize loan event",
			slog.String("event_id", event.EventID),
			slog.String("event_type", string(event.Type)),
			slog.Any("error", err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.LoanID), // Per-loan ordering
		Value: payload,
		Time:  event.OccurredAt,
	}

	err = p.pool.Submit(func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), p.writeWait)
		defer cancel()

		if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
			p.logger.Error("failed to publish loan event",
				slog.String("event_id", event.EventID),
				slog.String("event_type", string(event.Type)),
				slog.String("loan_id", event.LoanID),
				slog.Any("error", err))
			return
		}
		p.logger.Debug("loan event published",
			slog.String("event_id", event.EventID),
			slog.String("event_type", string(event.Type)),
			slog.String("loan_id", event.LoanID))
	})
	if err != nil {
		p.logger.Warn("event worker pool saturated, dropping loan event",
			slog.String("event_id", event.EventID),
			slog.String("event_type", string(event.Type)),
			slog.Any("error", err))
	}
}

// Close drains the worker pool and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	p.pool.Release()
	return p.writer.Close()
}
