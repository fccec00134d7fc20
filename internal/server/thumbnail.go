package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Pratik-0309/thumbnail-generator/internal/models"
	"github.com/Pratik-0309/thumbnail-generator/internal/prompt"
	"github.com/Pratik-0309/thumbnail-generator/internal/publisher"
	"github.com/Pratik-0309/thumbnail-generator/internal/storage"
)

// handleGenerate validates the request, creates the pending record, and
// queues it for the generation worker. The caller polls the record until
// it stops generating.
func (s *Server) handleGenerate(c *gin.Context) {
	userID := currentUser(c)

	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Title == "" || req.Style == "" {
		fail(c, http.StatusBadRequest, "Title and style are required")
		return
	}
	if req.AspectRatio == "" {
		req.AspectRatio = "16:9"
	}
	textOverlay := true
	if req.TextOverlay != nil {
		textOverlay = *req.TextOverlay
	}

	record := &models.Thumbnail{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		Style:       req.Style,
		AspectRatio: req.AspectRatio,
		ColorScheme: req.ColorScheme,
		UserPrompt:  req.Prompt,
		PromptUsed:  prompt.Compose(req.Title, req.Style, req.ColorScheme, req.Prompt),
		TextOverlay: textOverlay,
		Status:      models.StatusPending,
	}
	if err := s.db.CreateThumbnail(c.Request.Context(), record); err != nil {
		s.log.WithError(err).Error("create thumbnail record")
		fail(c, http.StatusInternalServerError, "Failed to generate thumbnail")
		return
	}

	if err := s.queue.Enqueue(c.Request.Context(), record.ID.String()); err != nil {
		s.log.WithError(err).Error("enqueue generation task")
		if updErr := s.db.SetThumbnailStatus(c.Request.Context(), record.ID, models.StatusError); updErr != nil {
			s.log.WithError(updErr).Error("mark record as errored")
		}
		fail(c, http.StatusInternalServerError, "Failed to generate thumbnail")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Thumbnail generation started",
		"thumbnail": record,
	})
}

// handleDelete removes a record and its hosted asset. The record is
// marked as deleting first; if the remote delete fails the record stays
// in that state so a later pass can reconcile it.
func (s *Server) handleDelete(c *gin.Context) {
	userID := currentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Thumbnail not found")
		return
	}

	record, err := s.db.GetThumbnail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fail(c, http.StatusNotFound, "Thumbnail not found")
			return
		}
		s.log.WithError(err).Error("get thumbnail")
		fail(c, http.StatusInternalServerError, "Failed to delete thumbnail.")
		return
	}
	if record.UserID != userID {
		fail(c, http.StatusForbidden, "Unauthorized to delete this thumbnail")
		return
	}

	if record.ImageURL != "" {
		if err := s.db.SetThumbnailStatus(c.Request.Context(), id, models.StatusDeleting); err != nil {
			s.log.WithError(err).Error("mark thumbnail as deleting")
			fail(c, http.StatusInternalServerError, "Failed to delete thumbnail.")
			return
		}
		key := publisher.KeyFromURL(record.ImageURL)
		if err := s.remover.Delete(c.Request.Context(), key); err != nil {
			s.log.WithError(err).Error("delete remote asset")
			fail(c, http.StatusInternalServerError, "Failed to delete thumbnail.")
			return
		}
	}

	if err := s.db.DeleteThumbnail(c.Request.Context(), id); err != nil {
		s.log.WithError(err).Error("delete thumbnail record")
		fail(c, http.StatusInternalServerError, "Failed to delete thumbnail.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Thumbnail deleted successfully"})
}

func (s *Server) handleList(c *gin.Context) {
	userID := currentUser(c)

	thumbnails, err := s.db.ListThumbnails(c.Request.Context(), userID)
	if err != nil {
		s.log.WithError(err).Error("list thumbnails")
		fail(c, http.StatusInternalServerError, "Failed to fetch thumbnail.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Thumbnail fetched Successfully.",
		"thumbnails": thumbnails,
	})
}

func (s *Server) handleGet(c *gin.Context) {
	userID := currentUser(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, "Thumbnail not found.")
		return
	}

	record, err := s.db.GetThumbnail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fail(c, http.StatusNotFound, "Thumbnail not found.")
			return
		}
		s.log.WithError(err).Error("get thumbnail")
		fail(c, http.StatusInternalServerError, "Failed to fetch thumbnail.")
		return
	}
	if record.UserID != userID {
		fail(c, http.StatusForbidden, "Unauthorized access to this thumbnail.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Thumbnail fetch Successfully.",
		"thumbnail": record,
	})
}
