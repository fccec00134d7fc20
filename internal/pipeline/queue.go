package pipeline

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/Pratik-0309/thumbnail-generator/internal/models"
)

// Queue publishes generation tasks for the worker.
type Queue struct {
	writer *kafka.Writer
}

func NewQueue(cfg *models.Config) *Queue {
	return &Queue{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers: []string{cfg.KafkaBroker},
			Topic:   cfg.KafkaTopic,
		}),
	}
}

func (q *Queue) Enqueue(ctx context.Context, id string) error {
	const op = "pipeline.Enqueue"
	if err := q.writer.WriteMessages(ctx, kafka.Message{Value: []byte(id)}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (q *Queue) Close() error {
	return q.writer.Close()
}
