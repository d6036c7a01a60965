// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/hannalind/quizroom/cliparse"
	"github.com/hannalind/quizroom/middleware"
	"github.com/hannalind/quizroom/models"
)

type RoleHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewRoleHandler(db *sql.DB, cfg cliparse.Config) *RoleHandler {
	return &RoleHandler{db: db, cfg: cfg}
}

// CreateRole handles POST /roles
func (h *RoleHandler) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req models.CreateRoleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	var roleID int64
	err := h.db.QueryRow(`
		INSERT INTO role (name, description)
		VALUES ($1, $2)
		RETURNING role_id
	`, req.Name, req.Description).Scan(&roleID)

	if err != nil {
		slog.Error("failed to insert role", "error", err, "name", req.Name)
		writeDBError(w, err, "Failed to create role")
		return
	}

	slog.Info("role created", "role_id", roleID, "name", req.Name)
	middleware.JSONResponse(w, http.StatusCreated, models.Role{
		RoleID:      roleID,
		Name:        req.Name,
		Description: req.Description,
	})
}

// ListRoles handles GET /roles
func (h *RoleHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT role_id, name, description FROM role ORDER BY role_id`)
	if err != nil {
		slog.Error("failed to query roles", "error", err)
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

// UpdateRole handles PUT /roles/{id}
func (h *RoleHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	roleID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CreateRoleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	res, err := h.db.Exec(`
		UPDATE role SET name = $1, description = $2 WHERE role_id = $3
	`, req.Name, req.Description, roleID)
	if err != nil {
		slog.Error("failed to update role", "error", err, "role_id", roleID)
		writeDBError(w, err, "Failed to update role")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Role not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.Role{
		RoleID:      roleID,
		Name:        req.Name,
		Description: req.Description,
	})
}

// DeleteRole handles DELETE /roles/{id}. Permission grants and user
// assignments cascade away with the role.
func (h *RoleHandler) DeleteRole(w http.ResponseWriter, r *http.Request) {
	roleID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.db.Exec(`DELETE FROM role WHERE role_id = $1`, roleID)
	if err != nil {
		slog.Error("failed to delete role", "error", err, "role_id", roleID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete role")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Role not found")
		return
	}

	slog.Info("role deleted", "role_id", roleID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Role deleted"})
}

// CreatePermission handles POST /permissions
func (h *RoleHandler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePermissionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	var permissionID int64
	err := h.db.QueryRow(`
		INSERT INTO permission (name, description)
		VALUES ($1, $2)
		RETURNING permission_id
	`, req.Name, req.Description).Scan(&permissionID)

	if err != nil {
		slog.Error("failed to insert permission", "error", err, "name", req.Name)
		writeDBError(w, err, "Failed to create permission")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.Permission{
		PermissionID: permissionID,
		Name:         req.Name,
		Description:  req.Description,
	})
}

// ListPermissions handles GET /permissions
func (h *RoleHandler) ListPermissions(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT permission_id, name, description FROM permission ORDER BY permission_id`)
	if err != nil {
		slog.Error("failed to query permissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	permissions := []models.Permission{}
	for rows.Next() {
		var p models.Permission
		if err := rows.Scan(&p.PermissionID, &p.Name, &p.Description); err != nil {
			slog.Error("failed to scan permission", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		permissions = append(permissions, p)
	}

	middleware.JSONResponse(w, http.StatusOK, permissions)
}

// GrantPermission handles POST /roles/{id}/permissions. Idempotent via the
// composite primary key.
func (h *RoleHandler) GrantPermission(w http.ResponseWriter, r *http.Request) {
	roleID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.GrantPermissionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO role_permission (role_id, permission_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, roleID, req.PermissionID)

	if err != nil {
		slog.Error("failed to grant permission", "error", err, "role_id", roleID, "permission_id", req.PermissionID)
		writeDBError(w, err, "Failed to grant permission")
		return
	}

	slog.Info("permission granted", "role_id", roleID, "permission_id", req.PermissionID)
	middleware.JSONResponse(w, http.StatusCreated, models.MessageResponse{Message: "Permission granted"})
}
