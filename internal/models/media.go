package models

import (
	"time"

	"github.com/google/uuid"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Media is one uploaded artifact. StorageKey points at the raw bytes in object
// storage and is never interpreted by the perception core. Metadata accumulates
// the namespaced output of each pipeline stage via merge-patch.
type Media struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	UserID       uuid.UUID     `json:"user_id" db:"user_id"`
	MediaType    MediaType     `json:"media_type" db:"media_type"`
	StorageKey   string        `json:"storage_key" db:"storage_key"`
	ThumbnailKey string        `json:"thumbnail_key,omitempty" db:"thumbnail_key"`
	SizeBytes    int64         `json:"size_bytes" db:"size_bytes"`
	Mime         string        `json:"mime" db:"mime"`
	Metadata     MediaMetadata `json:"metadata" db:"metadata"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

// AnalysisTask is the queue payload that asks a worker to run all signal
// collectors against one media item.
type AnalysisTask struct {
	MediaID    uuid.UUID `json:"media_id"`
	UserID     uuid.UUID `json:"user_id"`
	StorageKey string    `json:"storage_key"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// AnalysisEvent is published once a worker has finished a media item. Signals
// lists the collectors that produced output; failed collectors are simply
// absent.
type AnalysisEvent struct {
	MediaID      uuid.UUID `json:"media_id"`
	UserID       uuid.UUID `json:"user_id"`
	Signals      []string  `json:"signals"`
	OverallScore int       `json:"overall_score"`
	CompletedAt  time.Time `json:"completed_at"`
}
