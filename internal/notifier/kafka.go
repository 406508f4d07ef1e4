package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nortia/backoffice/internal/model"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type orderEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   *model.Order `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

// KafkaPublisher emits order lifecycle events for downstream consumers
// (fulfillment, analytics). Publish failures are logged and swallowed.
type KafkaPublisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: log,
	}
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) OrderCreated(ctx context.Context, order *model.Order) {
	p.publish(ctx, "OrderCreated", order)
}

func (p *KafkaPublisher) OrderStatusChanged(ctx context.Context, order *model.Order, prev model.OrderStatus) {
	p.publish(ctx, "OrderStatusChanged", order)
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType string, order *model.Order) {
	event := orderEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Payload:   order,
		Timestamp: time.Now(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal order event", zap.Error(err))
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID),
		Value: value,
	})
	if err != nil {
		p.logger.Error("failed to publish order event",
			zap.String("event_type", eventType),
			zap.String("order_id", order.ID),
			zap.Error(err),
		)
	}
}
