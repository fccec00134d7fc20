// Package generator is the HTTP client for the external text-to-image
// service. The prompt is URL-encoded into the request path and the
// service answers with raw image bytes.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrGeneration is returned for any upstream failure: network error,
// non-success status, or an empty body.
var ErrGeneration = errors.New("image generation failed")

const fetchAttempts = 2

type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     *logrus.Logger
}

func NewClient(baseURL string, timeout time.Duration, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		timeout: timeout,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Fetch requests one image for the prompt at the given size. Each
// attempt is bounded by the configured timeout; a failed attempt is
// retried once before the whole call fails.
func (c *Client) Fetch(ctx context.Context, prompt string, width, height, seed int) ([]byte, error) {
	const op = "generator.Fetch"

	endpoint := fmt.Sprintf("%s/prompt/%s?width=%d&height=%d&seed=%d&model=flux&nologo=true",
		c.baseURL, url.PathEscape(prompt), width, height, seed)

	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		data, err := c.fetchOnce(ctx, endpoint)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		c.log.WithFields(logrus.Fields{"attempt": attempt, "error": err}).Warn("image generation attempt failed")
	}
	return nil, fmt.Errorf("%s: %w: %v", op, ErrGeneration, lastErr)
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("empty response body")
	}
	return data, nil
}
