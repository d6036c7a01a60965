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

type StoryHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewStoryHandler(db *sql.DB, cfg cliparse.Config) *StoryHandler {
	return &StoryHandler{db: db, cfg: cfg}
}

// CreateStory handles POST /stories
func (h *StoryHandler) CreateStory(w http.ResponseWriter, r *http.Request) {
	var req models.CreateStoryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	now := time.Now()

	var storyID int64
	err := h.db.QueryRow(`
		INSERT INTO story (creator_id, title, created_at)
		VALUES ($1, $2, $3)
		RETURNING story_id
	`, req.CreatorID, req.Title, now).Scan(&storyID)

	if err != nil {
		slog.Error("failed to insert story", "error", err, "creator_id", req.CreatorID)
		writeDBError(w, err, "Failed to create story")
		return
	}

	slog.Info("story created", "story_id", storyID, "creator_id", req.CreatorID)

	middleware.JSONResponse(w, http.StatusCreated, models.Story{
		StoryID:   storyID,
		CreatorID: req.CreatorID,
		Title:     req.Title,
		CreatedAt: now,
	})
}

// ListStories handles GET /stories with an optional ?creator_id= filter
func (h *StoryHandler) ListStories(w http.ResponseWriter, r *http.Request) {
	q := `SELECT story_id, creator_id, title, created_at FROM story`
	var args []any
	if creator := r.URL.Query().Get("creator_id"); creator != "" {
		q += ` WHERE creator_id = $1`
		args = append(args, creator)
	}
	q += ` ORDER BY story_id DESC`

	rows, err := h.db.Query(q, args...)
	if err != nil {
		slog.Error("failed to query stories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	stories := []models.Story{}
	for rows.Next() {
		var s models.Story
		if err := rows.Scan(&s.StoryID, &s.CreatorID, &s.Title, &s.CreatedAt); err != nil {
			slog.Error("failed to scan story", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		stories = append(stories, s)
	}

	middleware.JSONResponse(w, http.StatusOK, stories)
}

// GetStory handles GET /stories/{id} and returns the story with its
// content blocks in display order.
func (h *StoryHandler) GetStory(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var story models.Story
	err := h.db.QueryRow(`
		SELECT story_id, creator_id, title, created_at FROM story WHERE story_id = $1
	`, storyID).Scan(&story.StoryID, &story.CreatorID, &story.Title, &story.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Story not found")
		return
	}
	if err != nil {
		slog.Error("failed to query story", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT content_id, story_id, sort_order, body, media_id
		FROM story_content
		WHERE story_id = $1
		ORDER BY sort_order, content_id
	`, storyID)
	if err != nil {
		slog.Error("failed to query story contents", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	contents := []models.StoryContent{}
	for rows.Next() {
		var c models.StoryContent
		if err := rows.Scan(&c.ContentID, &c.StoryID, &c.SortOrder, &c.Body, &c.MediaID); err != nil {
			slog.Error("failed to scan story content", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		contents = append(contents, c)
	}

	middleware.JSONResponse(w, http.StatusOK, models.StoryWithContents{
		Story:    story,
		Contents: contents,
	})
}

// AddContent handles POST /stories/{id}/contents
func (h *StoryHandler) AddContent(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.AddStoryContentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sortOrder := 1
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	var contentID int64
	err := h.db.QueryRow(`
		INSERT INTO story_content (story_id, sort_order, body, media_id)
		VALUES ($1, $2, $3, $4)
		RETURNING content_id
	`, storyID, sortOrder, req.Body, req.MediaID).Scan(&contentID)

	if err != nil {
		slog.Error("failed to insert story content", "error", err, "story_id", storyID)
		writeDBError(w, err, "Failed to add story content")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.StoryContent{
		ContentID: contentID,
		StoryID:   storyID,
		SortOrder: sortOrder,
		Body:      req.Body,
		MediaID:   req.MediaID,
	})
}

// DeleteContent handles DELETE /stories/{id}/contents/{contentID}
func (h *StoryHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	contentID, ok := pathID(w, r, "contentID")
	if !ok {
		return
	}

	res, err := h.db.Exec(`
		DELETE FROM story_content WHERE content_id = $1 AND story_id = $2
	`, contentID, storyID)
	if err != nil {
		slog.Error("failed to delete story content", "error", err, "content_id", contentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete story content")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Story content not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Story content deleted"})
}

// DeleteStory handles DELETE /stories/{id}. Content blocks cascade away.
func (h *StoryHandler) DeleteStory(w http.ResponseWriter, r *http.Request) {
	storyID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.db.Exec(`DELETE FROM story WHERE story_id = $1`, storyID)
	if err != nil {
		slog.Error("failed to delete story", "error", err, "story_id", storyID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete story")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Story not found")
		return
	}

	slog.Info("story deleted", "story_id", storyID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Story deleted"})
}
