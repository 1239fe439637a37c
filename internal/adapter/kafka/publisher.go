// Package kafka publishes completed dashboard snapshots for downstream
// consumers on the storm-data platform.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/meso/internal/config"
	"github.com/couchcryptid/meso/internal/dashboard"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher produces snapshot messages to a Kafka topic.
// It implements dashboard.SnapshotPublisher.
type Publisher struct {
	writer  *kafkago.Writer
	station string
	logger  *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured snapshot topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSnapshotTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, station: cfg.NBMStation, logger: logger}
}

// PublishSnapshot serializes and publishes one completed activation's snapshot.
func (p *Publisher) PublishSnapshot(ctx context.Context, snap dashboard.Snapshot) error {
	msg, err := serializeSnapshot(p.station, snap)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	p.logger.Debug("snapshot published", "topic", p.writer.Topic, "generated_at", snap.GeneratedAt)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeSnapshot marshals a snapshot into a Kafka message. Keying by
// station keeps one location's snapshots on one partition, in order.
func serializeSnapshot(station string, snap dashboard.Snapshot) (kafkago.Message, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize snapshot: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(station),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "station", Value: []byte(station)},
			{Key: "generated_at", Value: []byte(snap.GeneratedAt.Format(time.RFC3339))},
			{Key: "outlook", Value: []byte(snap.Outlook.String())},
		},
	}, nil
}
