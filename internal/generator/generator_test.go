package generator

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestFetchSuccess(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte("image-bytes"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	data, err := c.Fetch(context.Background(), "a prompt with spaces", 1280, 720, 42)

	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
	assert.True(t, strings.HasPrefix(gotPath, "/prompt/"))
	assert.Equal(t, "1280", gotQuery["width"][0])
	assert.Equal(t, "720", gotQuery["height"][0])
	assert.Equal(t, "42", gotQuery["seed"][0])
	assert.Equal(t, "flux", gotQuery["model"][0])
	assert.Equal(t, "true", gotQuery["nologo"][0])
}

func TestFetchRetriesOnceThenFails(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	_, err := c.Fetch(context.Background(), "p", 1024, 1024, 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGeneration)
	assert.Equal(t, 2, calls)
}

func TestFetchRecoversOnRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	data, err := c.Fetch(context.Background(), "p", 1024, 1024, 1)

	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), data)
	assert.Equal(t, 2, calls)
}

func TestFetchEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, testLogger())
	_, err := c.Fetch(context.Background(), "p", 1024, 1024, 1)

	assert.ErrorIs(t, err, ErrGeneration)
}

func TestFetchCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, time.Second, testLogger())
	_, err := c.Fetch(ctx, "p", 1024, 1024, 1)

	assert.ErrorIs(t, err, ErrGeneration)
}
