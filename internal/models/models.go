package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Thumbnail generation status values.
const (
	StatusPending  = "pending"
	StatusDone     = "done"
	StatusError    = "error"
	StatusDeleting = "deleting"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Thumbnail struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user"`
	Title       string    `json:"title"`
	Style       string    `json:"style"`
	AspectRatio string    `json:"aspect_ratio"`
	ColorScheme string    `json:"color_scheme,omitempty"`
	UserPrompt  string    `json:"user_prompt,omitempty"`
	PromptUsed  string    `json:"prompt_used"`
	TextOverlay bool      `json:"text_overlay"`
	ImageURL    string    `json:"image_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// IsGenerating reports whether the record is still in flight.
func (t *Thumbnail) IsGenerating() bool {
	return t.Status == StatusPending
}

// MarshalJSON adds the derived isGenerating flag next to the raw status.
func (t Thumbnail) MarshalJSON() ([]byte, error) {
	type alias Thumbnail
	return json.Marshal(struct {
		alias
		IsGenerating bool `json:"isGenerating"`
	}{alias(t), t.IsGenerating()})
}

type GenerateRequest struct {
	Title       string `json:"title"`
	Style       string `json:"style"`
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
	ColorScheme string `json:"color_scheme"`
	TextOverlay *bool  `json:"text_overlay"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
