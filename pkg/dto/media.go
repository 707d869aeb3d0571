package dto

import (
	"github.com/google/uuid"

	"github.com/your-org/vibecheck/internal/models"
)

type CreateMediaRequest struct {
	UserID    uuid.UUID `json:"user_id" binding:"required"`
	MediaType string    `json:"media_type" binding:"required,oneof=image video"`
	Mime      string    `json:"mime" binding:"required"`
	SizeBytes int64     `json:"size_bytes"`
}

// CreateMediaResponse carries the presigned PUT URL the client uploads to.
// Analysis starts only after the complete call.
type CreateMediaResponse struct {
	Media     MediaResponse `json:"media"`
	UploadURL string        `json:"upload_url"`
}

type MediaResponse struct {
	ID        uuid.UUID            `json:"id"`
	UserID    uuid.UUID            `json:"user_id"`
	MediaType string               `json:"media_type"`
	Mime      string               `json:"mime"`
	SizeBytes int64                `json:"size_bytes"`
	Metadata  models.MediaMetadata `json:"metadata"`
	CreatedAt string               `json:"created_at"`
}

type DownloadResponse struct {
	URL string `json:"url"`
}

type SimilarMediaResponse struct {
	Matches []MediaMatch `json:"matches"`
}

type MediaMatch struct {
	MediaID uuid.UUID `json:"media_id"`
	UserID  uuid.UUID `json:"user_id"`
	Score   float32   `json:"score"`
}
