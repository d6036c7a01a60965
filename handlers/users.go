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

type UserHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

const userColumns = `user_id, username, email, password_hash, language, is_verified, is_active, created_at, current_subscription_id`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.UserID, &u.Username, &u.Email, &u.PasswordHash, &u.Language,
		&u.IsVerified, &u.IsActive, &u.CreatedAt, &u.CurrentSubscriptionID,
	)
	return u, err
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}
	if req.PasswordHash == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password_hash is required")
		return
	}
	if req.Language == "" {
		req.Language = models.DefaultLanguage
	}

	now := time.Now()
	var userID int64
	err := h.db.QueryRow(`
		INSERT INTO users (username, email, password_hash, language, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING user_id
	`, req.Username, req.Email, req.PasswordHash, req.Language, now).Scan(&userID)

	if err != nil {
		slog.Error("failed to insert user", "error", err, "username", req.Username)
		writeDBError(w, err, "Failed to create user")
		return
	}

	slog.Info("user created", "user_id", userID, "username", req.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.User{
		UserID:     userID,
		Username:   req.Username,
		Email:      req.Email,
		Language:   req.Language,
		IsVerified: false,
		IsActive:   true,
		CreatedAt:  now,
	})
}

// ListUsers handles GET /users with an optional ?active= filter
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if active := r.URL.Query().Get("active"); active == "true" || active == "false" {
		q += ` WHERE is_active = $1`
		args = append(args, active == "true")
	}
	q += ` ORDER BY user_id DESC`

	rows, err := h.db.Query(q, args...)
	if err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			slog.Error("failed to scan user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		users = append(users, u)
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

// GetUser handles GET /users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	u, err := scanUser(h.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID))
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, u)
}

// UpdateUser handles PUT /users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Username == "" || req.Email == "" || req.PasswordHash == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username, email and password_hash are required")
		return
	}

	res, err := h.db.Exec(`
		UPDATE users
		SET username = $1, email = $2, password_hash = $3, language = $4,
		    is_verified = $5, is_active = $6
		WHERE user_id = $7
	`, req.Username, req.Email, req.PasswordHash, req.Language, req.IsVerified, req.IsActive, userID)

	if err != nil {
		slog.Error("failed to update user", "error", err, "user_id", userID)
		writeDBError(w, err, "Failed to update user")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	u, err := scanUser(h.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID))
	if err != nil {
		slog.Error("failed to read back user", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, u)
}

// PatchUser handles PATCH /users/{id}: partial update of is_active,
// is_verified, and language.
func (h *UserHandler) PatchUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.PatchUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.db.Exec(`
		UPDATE users
		SET is_active = COALESCE($1, is_active),
		    is_verified = COALESCE($2, is_verified),
		    language = COALESCE($3, language)
		WHERE user_id = $4
	`, req.IsActive, req.IsVerified, req.Language, userID)

	if err != nil {
		slog.Error("failed to patch user", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	u, err := scanUser(h.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID))
	if err != nil {
		slog.Error("failed to read back user", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, u)
}

// DeleteUser handles DELETE /users/{id}. Owned content (quizzes, stories,
// courses, subscriptions, documents) cascades; students referencing the user
// as teacher and session participants are nulled instead.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.db.Exec(`DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		slog.Error("failed to delete user", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	slog.Info("user deleted", "user_id", userID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "User deleted"})
}

// CreateStudentProfile handles POST /users/{id}/student.
// At most one row per user; the primary key enforces it.
func (h *UserHandler) CreateStudentProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CreateStudentProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO user_student (user_id, teacher_id, grade_level)
		VALUES ($1, $2, $3)
	`, userID, req.TeacherID, req.GradeLevel)

	if err != nil {
		slog.Error("failed to insert student profile", "error", err, "user_id", userID)
		writeDBError(w, err, "Failed to create student profile")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.StudentProfile{
		UserID:     userID,
		TeacherID:  req.TeacherID,
		GradeLevel: req.GradeLevel,
	})
}

// CreateTeacherProfile handles POST /users/{id}/teacher
func (h *UserHandler) CreateTeacherProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CreateTeacherProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO user_teacher (user_id, school_name, subject)
		VALUES ($1, $2, $3)
	`, userID, req.SchoolName, req.Subject)

	if err != nil {
		slog.Error("failed to insert teacher profile", "error", err, "user_id", userID)
		writeDBError(w, err, "Failed to create teacher profile")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.TeacherProfile{
		UserID:     userID,
		SchoolName: req.SchoolName,
		Subject:    req.Subject,
	})
}

// CreateCompanyProfile handles POST /users/{id}/company
func (h *UserHandler) CreateCompanyProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CreateCompanyProfileRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.CompanyName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "company_name is required")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO user_company (user_id, company_name, org_number)
		VALUES ($1, $2, $3)
	`, userID, req.CompanyName, req.OrgNumber)

	if err != nil {
		slog.Error("failed to insert company profile", "error", err, "user_id", userID)
		writeDBError(w, err, "Failed to create company profile")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CompanyProfile{
		UserID:      userID,
		CompanyName: req.CompanyName,
		OrgNumber:   req.OrgNumber,
	})
}

// AssignRole handles POST /users/{id}/roles. Idempotent: assigning the same
// role twice is a no-op thanks to the composite primary key.
func (h *UserHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.AssignRoleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO user_role (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, userID, req.RoleID)

	if err != nil {
		slog.Error("failed to assign role", "error", err, "user_id", userID, "role_id", req.RoleID)
		writeDBError(w, err, "Failed to assign role")
		return
	}

	slog.Info("role assigned", "user_id", userID, "role_id", req.RoleID)
	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{Message: "Role assigned"})
}

// ListUserRoles handles GET /users/{id}/roles
func (h *UserHandler) ListUserRoles(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT r.role_id, r.name, r.description
		FROM role r
		JOIN user_role ur ON ur.role_id = r.role_id
		WHERE ur.user_id = $1
		ORDER BY r.role_id
	`, userID)
	if err != nil {
		slog.Error("failed to query user roles", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	roles := []models.Role{}
	for rows.Next() {
		var role models.Role
		if err := rows.Scan(&role.RoleID, &role.Name, &role.Description); err != nil {
			slog.Error("failed to scan role", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		roles = append(roles, role)
	}

	middleware.JSONResponse(w, http.StatusOK, roles)
}
