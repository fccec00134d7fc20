package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image/color"
	"io"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pratik-0309/thumbnail-generator/internal/models"
)

type fakeStore struct {
	rec           *models.Thumbnail
	getErr        error
	updatedURL    string
	updatedStatus string
	updated       bool
}

func (f *fakeStore) GetThumbnail(ctx context.Context, id uuid.UUID) (*models.Thumbnail, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.rec, nil
}

func (f *fakeStore) UpdateThumbnailResult(ctx context.Context, id uuid.UUID, imageURL, status string) error {
	f.updated = true
	f.updatedURL = imageURL
	f.updatedStatus = status
	return nil
}

type fakeFetcher struct {
	data      []byte
	err       error
	gotPrompt string
	gotWidth  int
	gotHeight int
	gotSeed   int
}

func (f *fakeFetcher) Fetch(ctx context.Context, prompt string, width, height, seed int) ([]byte, error) {
	f.gotPrompt = prompt
	f.gotWidth = width
	f.gotHeight = height
	f.gotSeed = seed
	return f.data, f.err
}

type fakePublisher struct {
	url string
	err error
}

func (f *fakePublisher) Publish(ctx context.Context, img []byte) (string, string, error) {
	if f.err != nil {
		return "", "", f.err
	}
	return f.url, "thumbnails/thumb-test.png", nil
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.PNG))
	return buf.Bytes()
}

func testWorker(store Store, fetcher ImageFetcher, pub AssetPublisher) *Worker {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewWorker(&models.Config{}, store, fetcher, pub, log)
}

func pendingRecord(overlay bool) *models.Thumbnail {
	return &models.Thumbnail{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Title:       "How I Built a Startup in 30 Days",
		Style:       "Minimalist",
		AspectRatio: "16:9",
		PromptUsed:  "the composed prompt",
		TextOverlay: overlay,
		Status:      models.StatusPending,
	}
}

func TestProcessSuccessWithoutOverlay(t *testing.T) {
	rec := pendingRecord(false)
	store := &fakeStore{rec: rec}
	fetcher := &fakeFetcher{data: []byte("raw-image")}
	pub := &fakePublisher{url: "https://cdn.example.com/thumb-test.png"}

	err := testWorker(store, fetcher, pub).Process(context.Background(), rec.ID.String())
	require.NoError(t, err)

	assert.Equal(t, "the composed prompt", fetcher.gotPrompt)
	assert.Equal(t, 1280, fetcher.gotWidth)
	assert.Equal(t, 720, fetcher.gotHeight)
	assert.GreaterOrEqual(t, fetcher.gotSeed, 0)
	assert.Less(t, fetcher.gotSeed, maxSeed)

	assert.Equal(t, models.StatusDone, store.updatedStatus)
	assert.Equal(t, "https://cdn.example.com/thumb-test.png", store.updatedURL)
}

func TestProcessSuccessWithOverlay(t *testing.T) {
	rec := pendingRecord(true)
	store := &fakeStore{rec: rec}
	fetcher := &fakeFetcher{data: testPNG(t, 1280, 720)}
	pub := &fakePublisher{url: "https://cdn.example.com/thumb-test.png"}

	err := testWorker(store, fetcher, pub).Process(context.Background(), rec.ID.String())
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, store.updatedStatus)
}

func TestProcessFetchFailureMarksError(t *testing.T) {
	rec := pendingRecord(false)
	store := &fakeStore{rec: rec}
	fetcher := &fakeFetcher{err: errors.New("upstream down")}

	err := testWorker(store, fetcher, &fakePublisher{}).Process(context.Background(), rec.ID.String())
	require.Error(t, err)

	assert.Equal(t, models.StatusError, store.updatedStatus)
	assert.Empty(t, store.updatedURL)
}

func TestProcessOverlayDecodeFailureMarksError(t *testing.T) {
	rec := pendingRecord(true)
	store := &fakeStore{rec: rec}
	fetcher := &fakeFetcher{data: []byte("not an image")}

	err := testWorker(store, fetcher, &fakePublisher{}).Process(context.Background(), rec.ID.String())
	require.Error(t, err)
	assert.Equal(t, models.StatusError, store.updatedStatus)
}

func TestProcessPublishFailureMarksError(t *testing.T) {
	rec := pendingRecord(false)
	store := &fakeStore{rec: rec}
	fetcher := &fakeFetcher{data: []byte("raw-image")}
	pub := &fakePublisher{err: errors.New("upload failed")}

	err := testWorker(store, fetcher, pub).Process(context.Background(), rec.ID.String())
	require.Error(t, err)
	assert.Equal(t, models.StatusError, store.updatedStatus)
}

func TestProcessSkipsNonPendingRecord(t *testing.T) {
	rec := pendingRecord(false)
	rec.Status = models.StatusDone
	store := &fakeStore{rec: rec}
	fetcher := &fakeFetcher{data: []byte("raw-image")}

	err := testWorker(store, fetcher, &fakePublisher{}).Process(context.Background(), rec.ID.String())
	require.NoError(t, err)
	assert.False(t, store.updated, "finished records must not be reprocessed")
}

func TestProcessBadID(t *testing.T) {
	err := testWorker(&fakeStore{}, &fakeFetcher{}, &fakePublisher{}).Process(context.Background(), "not-a-uuid")
	assert.Error(t, err)
}
