// Package events streams request lifecycle events to Kafka for downstream
// analytics. Publishing is best-effort everywhere: a broker outage must
// never fail a dispatch or a reminder run.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	TypeRequestCreated    = "request.created"
	TypeQuoteSent         = "quote.sent"
	TypeReminderSent      = "reminder.sent"
	TypeInterestConfirmed = "interest.confirmed"
	TypeInterestDeclined  = "interest.declined"
)

type Event struct {
	Type      string    `json:"type"`
	RequestID string    `json:"request_id"`
	Kind      string    `json:"kind"`
	Tier      int       `json:"tier,omitempty"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// KafkaPublisher is a thin wrapper around a segmentio/kafka-go Writer.
type KafkaPublisher struct {
	w *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaPublisher{w: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.RequestID),
		Value: b,
	})
}

func (p *KafkaPublisher) Close() error { return p.w.Close() }

// NopPublisher is used when the event stream is disabled in config.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
