// Package pipeline runs the thumbnail generation pipeline for queued
// requests: load the pending record, fetch the background from the
// image service, optionally draw the title overlay, publish the asset,
// and record the outcome.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/Pratik-0309/thumbnail-generator/internal/catalog"
	"github.com/Pratik-0309/thumbnail-generator/internal/models"
	"github.com/Pratik-0309/thumbnail-generator/internal/overlay"
)

// maxSeed bounds the per-request generation seed: [0, 1_000_000).
const maxSeed = 1_000_000

type Store interface {
	GetThumbnail(ctx context.Context, id uuid.UUID) (*models.Thumbnail, error)
	UpdateThumbnailResult(ctx context.Context, id uuid.UUID, imageURL, status string) error
}

type ImageFetcher interface {
	Fetch(ctx context.Context, prompt string, width, height, seed int) ([]byte, error)
}

type AssetPublisher interface {
	Publish(ctx context.Context, img []byte) (url, key string, err error)
}

type Worker struct {
	cfg       *models.Config
	store     Store
	fetcher   ImageFetcher
	publisher AssetPublisher
	log       *logrus.Logger
}

func NewWorker(cfg *models.Config, store Store, fetcher ImageFetcher, publisher AssetPublisher, log *logrus.Logger) *Worker {
	return &Worker{cfg: cfg, store: store, fetcher: fetcher, publisher: publisher, log: log}
}

// Run consumes generation tasks until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{w.cfg.KafkaBroker},
		Topic:   w.cfg.KafkaTopic,
		GroupID: w.cfg.KafkaGroupID,
	})
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			w.log.WithError(err).Error("error reading generation task")
			continue
		}
		if err := w.Process(ctx, string(msg.Value)); err != nil {
			w.log.WithError(err).Error("error processing generation task")
		}
	}
}

// Process executes the pipeline for one queued record id. Any stage
// failure marks the record as errored; there are no retries beyond the
// fetcher's own bounded retry.
func (w *Worker) Process(ctx context.Context, idStr string) error {
	const op = "pipeline.Process"

	id, err := uuid.Parse(idStr)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rec, err := w.store.GetThumbnail(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rec.Status != models.StatusPending {
		return nil // already processed
	}

	url, err := w.generate(ctx, rec)
	if err != nil {
		if updErr := w.store.UpdateThumbnailResult(ctx, id, "", models.StatusError); updErr != nil {
			w.log.WithError(updErr).Error("failed to mark record as errored")
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := w.store.UpdateThumbnailResult(ctx, id, url, models.StatusDone); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w.log.WithFields(logrus.Fields{"id": id, "url": url}).Info("thumbnail generated")
	return nil
}

func (w *Worker) generate(ctx context.Context, rec *models.Thumbnail) (string, error) {
	width, height := catalog.Dimensions(rec.AspectRatio)
	seed := rand.Intn(maxSeed)

	img, err := w.fetcher.Fetch(ctx, rec.PromptUsed, width, height, seed)
	if err != nil {
		return "", err
	}

	if rec.TextOverlay {
		img, err = overlay.Render(img, rec.Title)
		if err != nil {
			return "", err
		}
	}

	url, _, err := w.publisher.Publish(ctx, img)
	if err != nil {
		return "", err
	}
	return url, nil
}
