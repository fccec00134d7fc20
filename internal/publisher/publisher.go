// Package publisher persists a rendered image to a temp file, uploads it
// to the remote media host, and cleans the temp file up on every exit
// path so local disk never accumulates.
package publisher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Uploader is the remote media host contract.
type Uploader interface {
	Upload(ctx context.Context, key string, path string) (url string, err error)
	Delete(ctx context.Context, key string) error
}

type Publisher struct {
	storagePath string
	uploader    Uploader
}

func New(storagePath string, uploader Uploader) *Publisher {
	return &Publisher{storagePath: storagePath, uploader: uploader}
}

// Publish writes the image to a uniquely named temp file, uploads it,
// and removes the temp file whether or not the upload succeeded.
// It returns the hosted URL and the remote asset key.
func (p *Publisher) Publish(ctx context.Context, img []byte) (string, string, error) {
	const op = "publisher.Publish"

	if err := os.MkdirAll(p.storagePath, 0755); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	name := fmt.Sprintf("thumb-%s.png", uuid.New())
	tmpPath := filepath.Join(p.storagePath, name)
	if err := os.WriteFile(tmpPath, img, 0644); err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	defer os.Remove(tmpPath)

	key := "thumbnails/" + name
	url, err := p.uploader.Upload(ctx, key, tmpPath)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}
	return url, key, nil
}

// Delete removes a remote asset.
func (p *Publisher) Delete(ctx context.Context, key string) error {
	const op = "publisher.Delete"
	if err := p.uploader.Delete(ctx, key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// KeyFromURL derives the remote asset key from a hosted image URL: the
// last path segment belongs to the thumbnails/ prefix.
func KeyFromURL(url string) string {
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx == len(url)-1 {
		return ""
	}
	return "thumbnails/" + url[idx+1:]
}
