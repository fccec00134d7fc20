package publisher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	uploadErr  error
	deleteErr  error
	gotKey     string
	gotPath    string
	pathExists bool
	deletedKey string
}

func (f *fakeUploader) Upload(ctx context.Context, key, path string) (string, error) {
	f.gotKey = key
	f.gotPath = path
	_, err := os.Stat(path)
	f.pathExists = err == nil
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return "https://cdn.example.com/" + filepath.Base(path), nil
}

func (f *fakeUploader) Delete(ctx context.Context, key string) error {
	f.deletedKey = key
	return f.deleteErr
}

func TestPublishRemovesTempFileOnSuccess(t *testing.T) {
	dir := t.TempDir()
	up := &fakeUploader{}
	p := New(dir, up)

	url, key, err := p.Publish(context.Background(), []byte("png-bytes"))
	require.NoError(t, err)

	assert.NotEmpty(t, url)
	assert.True(t, up.pathExists, "temp file must exist during upload")
	assert.Equal(t, "thumbnails/"+filepath.Base(up.gotPath), key)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp file must be removed after publish")
}

func TestPublishRemovesTempFileOnUploadFailure(t *testing.T) {
	dir := t.TempDir()
	up := &fakeUploader{uploadErr: errors.New("upload failed")}
	p := New(dir, up)

	_, _, err := p.Publish(context.Background(), []byte("png-bytes"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "temp file must be removed after failed publish")
}

func TestPublishCreatesStorageDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	p := New(dir, &fakeUploader{})

	_, _, err := p.Publish(context.Background(), []byte("png-bytes"))
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPublishUniqueTempNames(t *testing.T) {
	dir := t.TempDir()
	up := &fakeUploader{}
	p := New(dir, up)

	_, _, err := p.Publish(context.Background(), []byte("a"))
	require.NoError(t, err)
	first := up.gotPath

	_, _, err = p.Publish(context.Background(), []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, first, up.gotPath)
}

func TestDelete(t *testing.T) {
	up := &fakeUploader{}
	p := New(t.TempDir(), up)

	require.NoError(t, p.Delete(context.Background(), "thumbnails/thumb-x.png"))
	assert.Equal(t, "thumbnails/thumb-x.png", up.deletedKey)

	up.deleteErr = errors.New("remote down")
	assert.Error(t, p.Delete(context.Background(), "thumbnails/thumb-x.png"))
}

func TestKeyFromURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{name: "hosted url", url: "https://cdn.example.com/thumbnails/thumb-abc.png", want: "thumbnails/thumb-abc.png"},
		{name: "no path", url: "thumb.png", want: ""},
		{name: "trailing slash", url: "https://cdn.example.com/", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KeyFromURL(tt.url))
		})
	}
}
