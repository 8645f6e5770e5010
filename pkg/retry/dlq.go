package retry

import (
	"context"
	"fmt"
	"time"
)

// DLQMessage is the envelope written to a dead letter topic after
// retries are exhausted.
type DLQMessage struct {
	ID             string            `json:"id"`
	OriginalTopic  string            `json:"original_topic"`
	OriginalKey    string            `json:"original_key"`
	Payload        []byte            `json:"payload"`
	Headers        map[string]string `json:"headers,omitempty"`
	Error          string            `json:"error"`
	Attempts       int               `json:"attempts"`
	FirstAttemptAt time.Time         `json:"first_attempt_at"`
	LastAttemptAt  time.Time         `json:"last_attempt_at"`
	DeadLetteredAt time.Time         `json:"dead_lettered_at"`
	Source         string            `json:"source"`
}

// JSONProducer publishes a JSON-encoded message to a topic.
// *kafka.Producer satisfies this interface.
type JSONProducer interface {
	ProduceJSON(ctx context.Context, topic, key string, data interface{}, headers map[string]string) error
}

// DLQConfig configures dead letter publishing
type DLQConfig struct {
	// TopicSuffix is appended to the original topic name (default: ".dlq")
	TopicSuffix string
	// Source identifies the producing service in the DLQ envelope
	Source string
}

// DLQPublisher writes failed messages to a dead letter topic
type DLQPublisher struct {
	producer JSONProducer
	config   *DLQConfig
}

// NewDLQPublisher creates a dead letter publisher
func NewDLQPublisher(producer JSONProducer, config *DLQConfig) *DLQPublisher {
	if config == nil {
		config = &DLQConfig{}
	}
	if config.TopicSuffix == "" {
		config.TopicSuffix = ".dlq"
	}

	return &DLQPublisher{producer: producer, config: config}
}

// Publish writes a dead letter message derived from a retry result
func (p *DLQPublisher) Publish(ctx context.Context, originalTopic, key string, payload []byte, headers map[string]string, result *Result) error {
	msg := &DLQMessage{
		OriginalTopic:  originalTopic,
		OriginalKey:    key,
		Payload:        payload,
		Headers:        headers,
		Attempts:       result.Attempts,
		FirstAttemptAt: result.FirstAttemptAt,
		LastAttemptAt:  result.LastAttemptAt,
		DeadLetteredAt: time.Now(),
		Source:         p.config.Source,
	}
	if id, ok := headers["event_id"]; ok {
		msg.ID = id
	}
	if result.LastError != nil {
		msg.Error = result.LastError.Error()
	}

	dlqTopic := originalTopic + p.config.TopicSuffix
	dlqHeaders := map[string]string{
		"original_topic": originalTopic,
		"source":         p.config.Source,
	}

	if err := p.producer.ProduceJSON(ctx, dlqTopic, key, msg, dlqHeaders); err != nil {
		return fmt.Errorf("failed to dead letter message for %s: %w", originalTopic, err)
	}

	return nil
}
