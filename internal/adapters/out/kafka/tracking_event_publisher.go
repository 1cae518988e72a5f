// Package kafka publishes committed tracking log entries to a Kafka topic so
// that notification and analytics consumers can follow parcels without
// polling the database.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parceldelivery/internal/core/domain/model/tracking"

	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is implemented by *kafkago.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// TrackingEventMessage is the JSON value of every published message. The key
// is the tracking id, so one parcel's entries stay on one partition in order.
type TrackingEventMessage struct {
	ID         string    `json:"id"`
	TrackingID string    `json:"trackingId"`
	Status     string    `json:"status"`
	Detail     string    `json:"detail"`
	CreatedAt  time.Time `json:"createdAt"`
}

type TrackingEventPublisher struct {
	writer messageWriter
}

func NewTrackingEventPublisher(brokers []string, topic string) *TrackingEventPublisher {
	return &TrackingEventPublisher{
		writer: &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireOne,
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
	}
}

// Publish writes the entries as one batch.
func (p *TrackingEventPublisher) Publish(ctx context.Context, events ...*tracking.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafkago.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(TrackingEventMessage{
			ID:         e.ID().String(),
			TrackingID: e.TrackingID().String(),
			Status:     e.Status(),
			Detail:     e.Detail(),
			CreatedAt:  e.CreatedAt(),
		})
		if err != nil {
			return fmt.Errorf("encode tracking event %s: %w", e.ID(), err)
		}
		msgs = append(msgs, kafkago.Message{
			Key:   []byte(e.TrackingID().String()),
			Value: value,
			Time:  e.CreatedAt(),
		})
	}

	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *TrackingEventPublisher) Close() error {
	return p.writer.Close()
}

// NopTrackingEventPublisher drops every entry. It is used when no brokers are
// configured.
type NopTrackingEventPublisher struct{}

func (NopTrackingEventPublisher) Publish(context.Context, ...*tracking.Event) error { return nil }

func (NopTrackingEventPublisher) Close() error { return nil }
