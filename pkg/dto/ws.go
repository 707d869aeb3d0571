package dto

import (
	"time"

	"github.com/google/uuid"
)

// WSEvent is the message pushed to WebSocket clients when a media item
// finishes analysis.
type WSEvent struct {
	Type         string    `json:"type"`
	UserID       uuid.UUID `json:"user_id"`
	MediaID      uuid.UUID `json:"media_id"`
	Signals      []string  `json:"signals"`
	OverallScore int       `json:"overall_score"`
	CompletedAt  time.Time `json:"completed_at"`
}
