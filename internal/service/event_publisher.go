package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/pkg/kafka"
	"github.com/orderhub/backend/pkg/logger"
	"github.com/orderhub/backend/pkg/retry"
	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing order lifecycle events
type EventPublisher interface {
	// PublishOrderCreated publishes an order created event
	PublishOrderCreated(ctx context.Context, order *domain.Order) error

	// PublishOrderCancelled publishes an order cancelled event
	PublishOrderCancelled(ctx context.Context, order *domain.Order) error

	// PublishOrderStatusChanged publishes an order status change event
	PublishOrderStatusChanged(ctx context.Context, order *domain.Order) error

	// Close closes the event publisher
	Close() error
}

// KafkaEventPublisher implements EventPublisher using Kafka. Publish
// failures are retried with backoff; exhausted events go to a dead
// letter topic.
type KafkaEventPublisher struct {
	producer    *kafka.Producer
	retrier     *retry.Retrier
	dlq         *retry.DLQPublisher
	topic       string
	serviceName string
}

// EventPublisherConfig contains configuration for the event publisher
type EventPublisherConfig struct {
	Brokers     []string
	Topic       string
	ServiceName string
	ClientID    string
}

// NewKafkaEventPublisher creates a new Kafka event publisher
func NewKafkaEventPublisher(ctx context.Context, cfg *EventPublisherConfig) (*KafkaEventPublisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("event publisher config is required")
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = "order-events"
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "order-service"
	}

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "order-service-producer"
	}

	producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:       cfg.Brokers,
		ClientID:      clientID,
		MaxRetries:    3,
		RetryInterval: 2 * time.Second,
		BatchSize:     100,
		LingerMs:      10,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	retrier := retry.New(&retry.Config{
		MaxRetries:      3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		Multiplier:      2.0,
		JitterFactor:    0.1,
	})

	return &KafkaEventPublisher{
		producer:    producer,
		retrier:     retrier,
		dlq:         retry.NewDLQPublisher(producer, &retry.DLQConfig{Source: serviceName}),
		topic:       topic,
		serviceName: serviceName,
	}, nil
}

// PublishOrderCreated publishes an order created event
func (p *KafkaEventPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	return p.publishEvent(ctx, domain.OrderEventCreated, order)
}

// PublishOrderCancelled publishes an order cancelled event
func (p *KafkaEventPublisher) PublishOrderCancelled(ctx context.Context, order *domain.Order) error {
	return p.publishEvent(ctx, domain.OrderEventCancelled, order)
}

// PublishOrderStatusChanged publishes an order status change event
func (p *KafkaEventPublisher) PublishOrderStatusChanged(ctx context.Context, order *domain.Order) error {
	return p.publishEvent(ctx, domain.OrderEventStatusChanged, order)
}

// Close closes the event publisher
func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		p.producer.Close()
	}
	return nil
}

// publishEvent publishes an order event to Kafka
func (p *KafkaEventPublisher) publishEvent(ctx context.Context, eventType domain.OrderEventType, order *domain.Order) error {
	eventID := uuid.New().String()
	event := domain.NewOrderEvent(eventType, order, eventID)

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	headers := map[string]string{
		"event_type":   string(eventType),
		"event_id":     eventID,
		"source":       p.serviceName,
		"content_type": "application/json",
	}

	msg := &kafka.Message{
		Topic:     p.topic,
		Key:       []byte(event.Key()),
		Value:     value,
		Headers:   headers,
		Timestamp: time.Now(),
	}

	result := p.retrier.Do(ctx, func(ctx context.Context) error {
		return p.producer.Produce(ctx, msg)
	})
	if result.Err == nil {
		return nil
	}

	if dlqErr := p.dlq.Publish(ctx, p.topic, event.Key(), value, headers, result); dlqErr != nil {
		logger.Get().Error("failed to dead letter order event",
			zap.String("event_id", eventID),
			zap.String("event_type", string(eventType)),
			zap.Error(dlqErr))
	}

	return fmt.Errorf("failed to publish %s event after %d attempts: %w", eventType, result.Attempts, result.LastError)
}

// NoOpEventPublisher is a no-op implementation of EventPublisher, used when
// brokers are unreachable and in tests
type NoOpEventPublisher struct{}

// NewNoOpEventPublisher creates a new no-op event publisher
func NewNoOpEventPublisher() *NoOpEventPublisher {
	return &NoOpEventPublisher{}
}

// PublishOrderCreated is a no-op
func (p *NoOpEventPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	return nil
}

// PublishOrderCancelled is a no-op
func (p *NoOpEventPublisher) PublishOrderCancelled(ctx context.Context, order *domain.Order) error {
	return nil
}

// PublishOrderStatusChanged is a no-op
func (p *NoOpEventPublisher) PublishOrderStatusChanged(ctx context.Context, order *domain.Order) error {
	return nil
}

// Close is a no-op
func (p *NoOpEventPublisher) Close() error {
	return nil
}
