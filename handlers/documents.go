// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hannalind/quizroom/auth"
	"github.com/hannalind/quizroom/cliparse"
	"github.com/hannalind/quizroom/middleware"
	"github.com/hannalind/quizroom/models"
)

type DocumentHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewDocumentHandler(db *sql.DB, cfg cliparse.Config) *DocumentHandler {
	return &DocumentHandler{db: db, cfg: cfg}
}

// CreateDocument handles POST /users/{id}/documents. The storage key is
// generated server-side; clients upload against it separately.
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CreateDocumentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FileName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file_name is required")
		return
	}
	if req.FileSize < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "file_size must not be negative")
		return
	}

	storageKey := auth.NewStorageKey()
	now := time.Now()

	var documentID int64
	err := h.db.QueryRow(`
		INSERT INTO documents (user_id, file_name, file_size, mime_type, storage_key, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING document_id
	`, userID, req.FileName, req.FileSize, req.MimeType, storageKey, now).Scan(&documentID)

	if err != nil {
		slog.Error("failed to insert document", "error", err, "user_id", userID)
		writeDBError(w, err, "Failed to create document")
		return
	}

	slog.Info("document created", "document_id", documentID, "user_id", userID,
		"size", humanize.IBytes(uint64(req.FileSize)))

	middleware.JSONResponse(w, http.StatusCreated, models.Document{
		DocumentID: documentID,
		UserID:     userID,
		FileName:   req.FileName,
		FileSize:   req.FileSize,
		MimeType:   req.MimeType,
		StorageKey: storageKey,
		UploadedAt: now,
	})
}

// ListDocuments handles GET /users/{id}/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT document_id, user_id, file_name, file_size, mime_type, storage_key, uploaded_at
		FROM documents
		WHERE user_id = $1
		ORDER BY uploaded_at DESC, document_id DESC
	`, userID)
	if err != nil {
		slog.Error("failed to query documents", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	listings := []models.DocumentListing{}
	for rows.Next() {
		var d models.Document
		if err := rows.Scan(&d.DocumentID, &d.UserID, &d.FileName, &d.FileSize, &d.MimeType, &d.StorageKey, &d.UploadedAt); err != nil {
			slog.Error("failed to scan document", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		listings = append(listings, models.DocumentListing{
			Document:  d,
			SizeHuman: humanize.IBytes(uint64(d.FileSize)),
		})
	}

	middleware.JSONResponse(w, http.StatusOK, listings)
}

// DeleteDocument handles DELETE /documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	documentID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.db.Exec(`DELETE FROM documents WHERE document_id = $1`, documentID)
	if err != nil {
		slog.Error("failed to delete document", "error", err, "document_id", documentID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete document")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Document not found")
		return
	}

	slog.Info("document deleted", "document_id", documentID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Document deleted"})
}

// CreateSupportCase handles POST /support-cases. user_id is optional so
// logged-out visitors can still file reports.
func (h *DocumentHandler) CreateSupportCase(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSupportCaseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Subject == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "subject is required")
		return
	}

	now := time.Now()

	var caseID int64
	err := h.db.QueryRow(`
		INSERT INTO support_case (user_id, subject, body, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING case_id
	`, req.UserID, req.Subject, req.Body, now).Scan(&caseID)

	if err != nil {
		slog.Error("failed to insert support case", "error", err)
		writeDBError(w, err, "Failed to create support case")
		return
	}

	slog.Info("support case created", "case_id", caseID)

	middleware.JSONResponse(w, http.StatusCreated, models.SupportCase{
		CaseID:    caseID,
		UserID:    req.UserID,
		Subject:   req.Subject,
		Body:      req.Body,
		Status:    models.CaseOpen,
		CreatedAt: now,
	})
}

// ListSupportCases handles GET /support-cases with an optional ?status= filter
func (h *DocumentHandler) ListSupportCases(w http.ResponseWriter, r *http.Request) {
	q := `SELECT case_id, user_id, subject, body, status, created_at FROM support_case`
	var args []any
	if status := r.URL.Query().Get("status"); status != "" {
		if status != models.CaseOpen && status != models.CaseClosed {
			middleware.ErrorResponse(w, http.StatusBadRequest, "status must be open or closed")
			return
		}
		q += ` WHERE status = $1`
		args = append(args, status)
	}
	q += ` ORDER BY case_id DESC`

	rows, err := h.db.Query(q, args...)
	if err != nil {
		slog.Error("failed to query support cases", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	cases := []models.SupportCase{}
	for rows.Next() {
		var c models.SupportCase
		if err := rows.Scan(&c.CaseID, &c.UserID, &c.Subject, &c.Body, &c.Status, &c.CreatedAt); err != nil {
			slog.Error("failed to scan support case", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		cases = append(cases, c)
	}

	middleware.JSONResponse(w, http.StatusOK, cases)
}

// PatchSupportCase handles PATCH /support-cases/{id} to open or close a case.
func (h *DocumentHandler) PatchSupportCase(w http.ResponseWriter, r *http.Request) {
	caseID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.PatchSupportCaseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Status != models.CaseOpen && req.Status != models.CaseClosed {
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be open or closed")
		return
	}

	res, err := h.db.Exec(`UPDATE support_case SET status = $1 WHERE case_id = $2`, req.Status, caseID)
	if err != nil {
		slog.Error("failed to update support case", "error", err, "case_id", caseID)
		writeDBError(w, err, "Failed to update support case")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Support case not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Support case updated"})
}
