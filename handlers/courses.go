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

type CourseHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewCourseHandler(db *sql.DB, cfg cliparse.Config) *CourseHandler {
	return &CourseHandler{db: db, cfg: cfg}
}

// CreateCourse handles POST /courses
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	now := time.Now()

	var courseID int64
	err := h.db.QueryRow(`
		INSERT INTO course (creator_id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING course_id
	`, req.CreatorID, req.Name, req.Description, now).Scan(&courseID)

	if err != nil {
		slog.Error("failed to insert course", "error", err, "creator_id", req.CreatorID)
		writeDBError(w, err, "Failed to create course")
		return
	}

	slog.Info("course created", "course_id", courseID, "creator_id", req.CreatorID)

	middleware.JSONResponse(w, http.StatusCreated, models.Course{
		CourseID:    courseID,
		CreatorID:   req.CreatorID,
		Name:        req.Name,
		Description: req.Description,
		CreatedAt:   now,
	})
}

// ListCourses handles GET /courses with an optional ?creator_id= filter
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	q := `SELECT course_id, creator_id, name, description, created_at FROM course`
	var args []any
	if creator := r.URL.Query().Get("creator_id"); creator != "" {
		q += ` WHERE creator_id = $1`
		args = append(args, creator)
	}
	q += ` ORDER BY course_id DESC`

	rows, err := h.db.Query(q, args...)
	if err != nil {
		slog.Error("failed to query courses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	courses := []models.Course{}
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.CourseID, &c.CreatorID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			slog.Error("failed to scan course", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		courses = append(courses, c)
	}

	middleware.JSONResponse(w, http.StatusOK, courses)
}

// GetCourse handles GET /courses/{id} and returns the course with its
// content entries in course order.
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var course models.Course
	err := h.db.QueryRow(`
		SELECT course_id, creator_id, name, description, created_at FROM course WHERE course_id = $1
	`, courseID).Scan(&course.CourseID, &course.CreatorID, &course.Name, &course.Description, &course.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Course not found")
		return
	}
	if err != nil {
		slog.Error("failed to query course", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT course_content_id, course_id, content_type, content_id, content_order
		FROM course_content
		WHERE course_id = $1
		ORDER BY content_order, course_content_id
	`, courseID)
	if err != nil {
		slog.Error("failed to query course contents", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	contents := []models.CourseContent{}
	for rows.Next() {
		var cc models.CourseContent
		if err := rows.Scan(&cc.CourseContentID, &cc.CourseID, &cc.ContentType, &cc.ContentID, &cc.ContentOrder); err != nil {
			slog.Error("failed to scan course content", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		contents = append(contents, cc)
	}

	middleware.JSONResponse(w, http.StatusOK, models.CourseWithContents{
		Course:   course,
		Contents: contents,
	})
}

// AddContent handles POST /courses/{id}/contents. The (content_type,
// content_id) pair is polymorphic and has no foreign key, so the target
// row is checked here before inserting.
func (h *CourseHandler) AddContent(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.AddCourseContentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var targetQuery string
	switch req.ContentType {
	case models.ContentStory:
		targetQuery = `SELECT 1 FROM story WHERE story_id = $1`
	case models.ContentQuiz:
		targetQuery = `SELECT 1 FROM quiz WHERE quiz_id = $1`
	case models.ContentMedia:
		targetQuery = `SELECT 1 FROM media WHERE media_id = $1`
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "content_type must be story, quiz or media")
		return
	}

	var one int
	err := h.db.QueryRow(targetQuery, req.ContentID).Scan(&one)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Referenced content does not exist")
		return
	}
	if err != nil {
		slog.Error("failed to check content target", "error", err, "content_type", req.ContentType)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	contentOrder := 1
	if req.ContentOrder != nil {
		contentOrder = *req.ContentOrder
	}

	var courseContentID int64
	err = h.db.QueryRow(`
		INSERT INTO course_content (course_id, content_type, content_id, content_order)
		VALUES ($1, $2, $3, $4)
		RETURNING course_content_id
	`, courseID, req.ContentType, req.ContentID, contentOrder).Scan(&courseContentID)

	if err != nil {
		slog.Error("failed to insert course content", "error", err, "course_id", courseID)
		writeDBError(w, err, "Failed to add course content")
		return
	}

	slog.Info("course content added", "course_id", courseID, "content_type", req.ContentType, "content_id", req.ContentID)

	middleware.JSONResponse(w, http.StatusCreated, models.CourseContent{
		CourseContentID: courseContentID,
		CourseID:        courseID,
		ContentType:     req.ContentType,
		ContentID:       req.ContentID,
		ContentOrder:    contentOrder,
	})
}

// DeleteContent handles DELETE /courses/{id}/contents/{contentID}
func (h *CourseHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	courseContentID, ok := pathID(w, r, "contentID")
	if !ok {
		return
	}

	res, err := h.db.Exec(`
		DELETE FROM course_content WHERE course_content_id = $1 AND course_id = $2
	`, courseContentID, courseID)
	if err != nil {
		slog.Error("failed to delete course content", "error", err, "course_content_id", courseContentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete course content")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Course content not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Course content deleted"})
}

// DeleteCourse handles DELETE /courses/{id}. Content entries cascade away;
// the referenced stories, quizzes and media stay.
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.db.Exec(`DELETE FROM course WHERE course_id = $1`, courseID)
	if err != nil {
		slog.Error("failed to delete course", "error", err, "course_id", courseID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete course")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Course not found")
		return
	}

	slog.Info("course deleted", "course_id", courseID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Course deleted"})
}
