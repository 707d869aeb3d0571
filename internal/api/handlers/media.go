package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/your-org/vibecheck/internal/models"
	"github.com/your-org/vibecheck/internal/queue"
	"github.com/your-org/vibecheck/internal/storage"
	"github.com/your-org/vibecheck/pkg/dto"
)

type MediaHandler struct {
	db       *storage.PostgresStore
	minio    *storage.MinIOStore
	producer *queue.Producer
}

func NewMediaHandler(db *storage.PostgresStore, minio *storage.MinIOStore, producer *queue.Producer) *MediaHandler {
	return &MediaHandler{db: db, minio: minio, producer: producer}
}

func mediaResponse(m *models.Media) dto.MediaResponse {
	return dto.MediaResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		MediaType: string(m.MediaType),
		Mime:      m.Mime,
		SizeBytes: m.SizeBytes,
		Metadata:  m.Metadata,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}

// Create registers a media record and hands back a presigned PUT URL. The
// object does not exist yet; analysis starts on the complete call.
func (h *MediaHandler) Create(c *gin.Context) {
	var req dto.CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.db.GetUser(c.Request.Context(), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	media := &models.Media{
		ID:        uuid.New(),
		UserID:    req.UserID,
		MediaType: models.MediaType(req.MediaType),
		Mime:      req.Mime,
		SizeBytes: req.SizeBytes,
	}
	media.StorageKey = fmt.Sprintf("media/%s/%s", media.UserID, media.ID)

	if err := h.db.CreateMedia(c.Request.Context(), media); err != nil {
		respondError(c, err)
		return
	}

	uploadURL, err := h.minio.PresignUpload(c.Request.Context(), media.StorageKey)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.CreateMediaResponse{
		Media:     mediaResponse(media),
		UploadURL: uploadURL,
	})
}

// Complete enqueues the analysis task once the client has uploaded the bytes.
func (h *MediaHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	media, err := h.db.GetMedia(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if media == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	task := models.AnalysisTask{
		MediaID:    media.ID,
		UserID:     media.UserID,
		StorageKey: media.StorageKey,
		EnqueuedAt: time.Now().UTC(),
	}
	if err := h.producer.PublishAnalysisTask(c.Request.Context(), media.ID.String(), task); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "queued", "media_id": media.ID})
}

func (h *MediaHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	media, err := h.db.GetMedia(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if media == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	c.JSON(http.StatusOK, mediaResponse(media))
}

// Download returns a presigned GET URL for the raw object.
func (h *MediaHandler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid media id"})
		return
	}

	media, err := h.db.GetMedia(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if media == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		return
	}

	url, err := h.minio.PresignDownload(c.Request.Context(), media.StorageKey)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DownloadResponse{URL: url})
}

// ListForUser returns a user's media, newest first.
func (h *MediaHandler) ListForUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	media, err := h.db.ListUserMedia(c.Request.Context(), userID, 50)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.MediaResponse, 0, len(media))
	for i := range media {
		resp = append(resp, mediaResponse(&media[i]))
	}
	c.JSON(http.StatusOK, gin.H{"media": resp, "total": len(resp)})
}
