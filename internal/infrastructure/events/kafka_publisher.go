// Package events publishes domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Envelope is the JSON value of every message.
type Envelope struct {
	Type       string    `json:"type"`
	UserID     string    `json:"user_id"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload"`
}

// KafkaPublisher is best effort: failures are logged and never reach the caller's request.
type KafkaPublisher struct {
	writer KafkaWriter
	logger *logrus.Logger
}

func NewKafkaPublisher(writer KafkaWriter, logger *logrus.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, logger: logger}
}

// Publish keys the message by user so one user's events stay ordered within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, eventType, userID string, payload any) {
	if p == nil || p.writer == nil {
		return
	}
	data, err := json.Marshal(Envelope{Type: eventType, UserID: userID, OccurredAt: time.Now().UTC(), Payload: payload})
	if err != nil {
		p.logger.WithError(err).WithField("event", eventType).Error("marshal event failed")
		return
	}
	msg := kafka.Message{
		Key:     []byte(userID),
		Value:   data,
		Headers: []kafka.Header{{Key: "type", Value: []byte(eventType)}},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithError(err).WithField("event", eventType).Warn("publish event failed")
		return
	}
	p.logger.WithField("event", eventType).WithField("user_id", userID).Debug("event published")
}
