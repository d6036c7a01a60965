// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/hannalind/quizroom/cliparse"
	"github.com/hannalind/quizroom/middleware"
	"github.com/hannalind/quizroom/models"
)

type MediaHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewMediaHandler(db *sql.DB, cfg cliparse.Config) *MediaHandler {
	return &MediaHandler{db: db, cfg: cfg}
}

// CreateMedia handles POST /media. The base row and its matching subtype row
// are written in one transaction; a base row without its subtype row is an
// inconsistent state the schema alone does not prevent.
func (h *MediaHandler) CreateMedia(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMediaRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	switch req.Type {
	case models.MediaImage, models.MediaVideo, models.MediaGif:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "type must be image, video or gif")
		return
	}
	if req.URL == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	now := time.Now()
	var mediaID int64
	err = tx.QueryRow(`
		INSERT INTO media (type, url, created_at)
		VALUES ($1, $2, $3)
		RETURNING media_id
	`, req.Type, req.URL, now).Scan(&mediaID)

	if err != nil {
		slog.Error("failed to insert media", "error", err)
		writeDBError(w, err, "Failed to create media")
		return
	}

	media := models.Media{MediaID: mediaID, Type: req.Type, URL: req.URL, CreatedAt: now}

	switch req.Type {
	case models.MediaImage:
		_, err = tx.Exec(`
			INSERT INTO media_image (media_id, width, height, alt_text)
			VALUES ($1, $2, $3, $4)
		`, mediaID, req.Width, req.Height, req.AltText)
		media.Image = &models.MediaImageDetail{Width: req.Width, Height: req.Height, AltText: req.AltText}
	case models.MediaVideo:
		_, err = tx.Exec(`
			INSERT INTO media_video (media_id, duration_seconds, resolution)
			VALUES ($1, $2, $3)
		`, mediaID, req.DurationSeconds, req.Resolution)
		media.Video = &models.MediaVideoDetail{DurationSeconds: req.DurationSeconds, Resolution: req.Resolution}
	case models.MediaGif:
		_, err = tx.Exec(`
			INSERT INTO media_gif (media_id, width, height, loop_count)
			VALUES ($1, $2, $3, $4)
		`, mediaID, req.Width, req.Height, req.LoopCount)
		media.Gif = &models.MediaGifDetail{Width: req.Width, Height: req.Height, LoopCount: req.LoopCount}
	}

	if err != nil {
		slog.Error("failed to insert media subtype", "error", err, "media_id", mediaID, "type", req.Type)
		writeDBError(w, err, "Failed to create media")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create media")
		return
	}

	slog.Info("media created", "media_id", mediaID, "type", req.Type)
	middleware.JSONResponse(w, http.StatusCreated, media)
}

// GetMedia handles GET /media/{id}: base row joined with its subtype row.
func (h *MediaHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var media models.Media
	err := h.db.QueryRow(`
		SELECT media_id, type, url, created_at FROM media WHERE media_id = $1
	`, mediaID).Scan(&media.MediaID, &media.Type, &media.URL, &media.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Media not found")
		return
	}
	if err != nil {
		slog.Error("failed to query media", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	switch media.Type {
	case models.MediaImage:
		var d models.MediaImageDetail
		err = h.db.QueryRow(`
			SELECT width, height, alt_text FROM media_image WHERE media_id = $1
		`, mediaID).Scan(&d.Width, &d.Height, &d.AltText)
		if err == nil {
			media.Image = &d
		}
	case models.MediaVideo:
		var d models.MediaVideoDetail
		err = h.db.QueryRow(`
			SELECT duration_seconds, resolution FROM media_video WHERE media_id = $1
		`, mediaID).Scan(&d.DurationSeconds, &d.Resolution)
		if err == nil {
			media.Video = &d
		}
	case models.MediaGif:
		var d models.MediaGifDetail
		err = h.db.QueryRow(`
			SELECT width, height, loop_count FROM media_gif WHERE media_id = $1
		`, mediaID).Scan(&d.Width, &d.Height, &d.LoopCount)
		if err == nil {
			media.Gif = &d
		}
	}

	if err == sql.ErrNoRows {
		// Base row without subtype row: tolerated on read, flagged loudly.
		slog.Warn("media row missing its subtype row", "media_id", mediaID, "type", media.Type)
	} else if err != nil {
		slog.Error("failed to query media subtype", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, media)
}

// DeleteMedia handles DELETE /media/{id}. The subtype row cascades; content
// referencing the media keeps its rows with media_id set to null.
func (h *MediaHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	mediaID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.db.Exec(`DELETE FROM media WHERE media_id = $1`, mediaID)
	if err != nil {
		slog.Error("failed to delete media", "error", err, "media_id", mediaID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete media")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Media not found")
		return
	}

	slog.Info("media deleted", "media_id", mediaID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Media deleted"})
}
