package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnailMarshalAddsIsGenerating(t *testing.T) {
	tests := []struct {
		status string
		want   bool
	}{
		{status: StatusPending, want: true},
		{status: StatusDone, want: false},
		{status: StatusError, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			data, err := json.Marshal(Thumbnail{ID: uuid.New(), Status: tt.status})
			require.NoError(t, err)

			var out map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &out))
			assert.Equal(t, tt.want, out["isGenerating"])
			assert.Equal(t, tt.status, out["status"])
		})
	}
}

func TestUserHidesSecrets(t *testing.T) {
	data, err := json.Marshal(User{Name: "A", PasswordHash: "hash", RefreshToken: "token"})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "hash")
	assert.NotContains(t, string(data), "token")
}
