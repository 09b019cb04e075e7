package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"hrcore/internal/platform/kafka/producer"
	"hrcore/pkg/platform/middleware/request"
)

// HeaderEventType carries the event type so consumers can filter without decoding.
const HeaderEventType = "event_type"

// Producer is the subset of the Kafka producer the publisher needs.
type Producer interface {
	ProduceAsync(ctx context.Context, msg *producer.Message) error
}

// KafkaPublisher writes events to a topic keyed by employee ID, so every event for
// one employee lands on the same partition in order.
type KafkaPublisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger
	metrics  *Metrics
}

// KafkaOption configures KafkaPublisher.
type KafkaOption func(*KafkaPublisher)

func WithLogger(logger *slog.Logger) KafkaOption {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

func WithMetrics(m *Metrics) KafkaOption {
	return func(p *KafkaPublisher) {
		p.metrics = m
	}
}

func NewKafka(prod Producer, topic string, opts ...KafkaOption) *KafkaPublisher {
	p := &KafkaPublisher{producer: prod, topic: topic, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) {
	if event.RequestID == "" {
		event.RequestID = request.GetRequestID(ctx)
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.fail(ctx, event, err)
		return
	}

	msg := &producer.Message{
		Topic:   p.topic,
		Key:     []byte(event.EmployeeID),
		Value:   value,
		Headers: map[string]string{HeaderEventType: string(event.Type)},
	}
	if err := p.producer.ProduceAsync(ctx, msg); err != nil {
		p.fail(ctx, event, err)
		return
	}
	if p.metrics != nil {
		p.metrics.IncPublished(event.Type)
	}
}

func (p *KafkaPublisher) fail(ctx context.Context, event Event, err error) {
	p.logger.WarnContext(ctx, "failed to publish lifecycle event",
		"event_type", event.Type,
		"employee_id", event.EmployeeID,
		"error", err,
	)
	if p.metrics != nil {
		p.metrics.IncFailed(event.Type)
	}
}

var _ Publisher = (*KafkaPublisher)(nil)
