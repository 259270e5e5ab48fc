package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/sragwatch/srag-data-etl/internal/config"
	"github.com/sragwatch/srag-data-etl/internal/domain"
)

// Writer publishes report bundles to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

func (w *Writer) Name() string { return "kafka" }

// PublishReport serializes the bundle and produces it as a single message
// keyed by the snapshot's max date, so report consumers compact per day.
func (w *Writer) PublishReport(ctx context.Context, bundle domain.ReportBundle) error {
	msg, err := serializeToMessage(bundle)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msg)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a ReportBundle into a Kafka message.
func serializeToMessage(bundle domain.ReportBundle) (kafkago.Message, error) {
	data, err := json.Marshal(bundle)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report bundle: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(bundle.MaxDate.Format(time.DateOnly)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "max_date", Value: []byte(bundle.MaxDate.Format(time.DateOnly))},
			{Key: "generated_at", Value: []byte(bundle.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
