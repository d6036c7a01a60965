// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/hannalind/quizroom/models"
	"github.com/hannalind/quizroom/testutil"
)

func TestCreateRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewRoleHandler(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.CreateRole(w, testutil.MakeRequest("POST", "/roles",
		models.CreateRoleRequest{Name: "teacher"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	t.Run("duplicate name", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CreateRole(w, testutil.MakeRequest("POST", "/roles",
			models.CreateRoleRequest{Name: "teacher"}, nil))
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("missing name", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CreateRole(w, testutil.MakeRequest("POST", "/roles",
			models.CreateRoleRequest{}, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestGrantPermission_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewRoleHandler(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.CreateRole(w, testutil.MakeRequest("POST", "/roles",
		models.CreateRoleRequest{Name: "teacher"}, nil))
	var role models.Role
	testutil.AssertJSON(t, w, &role)

	w = httptest.NewRecorder()
	handler.CreatePermission(w, testutil.MakeRequest("POST", "/permissions",
		models.CreatePermissionRequest{Name: "quiz.create"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var perm models.Permission
	testutil.AssertJSON(t, w, &perm)

	idStr := strconv.FormatInt(role.RoleID, 10)
	grant := func() *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/roles/"+idStr+"/permissions",
			models.GrantPermissionRequest{PermissionID: perm.PermissionID}, nil)
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		handler.GrantPermission(w, req)
		return w
	}

	testutil.AssertStatus(t, grant(), http.StatusCreated)
	// Granting again is a no-op, not an error
	testutil.AssertStatus(t, grant(), http.StatusCreated)

	var count int
	if err := db.QueryRow(`
		SELECT COUNT(*) FROM role_permission WHERE role_id = $1
	`, role.RoleID).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected a single grant row, got %d", count)
	}
}

func TestDeleteRole_CleansUpGrants(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewRoleHandler(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.CreateRole(w, testutil.MakeRequest("POST", "/roles",
		models.CreateRoleRequest{Name: "teacher"}, nil))
	var role models.Role
	testutil.AssertJSON(t, w, &role)

	w = httptest.NewRecorder()
	handler.CreatePermission(w, testutil.MakeRequest("POST", "/permissions",
		models.CreatePermissionRequest{Name: "quiz.create"}, nil))
	var perm models.Permission
	testutil.AssertJSON(t, w, &perm)

	idStr := strconv.FormatInt(role.RoleID, 10)
	req := testutil.MakeRequest("POST", "/roles/"+idStr+"/permissions",
		models.GrantPermissionRequest{PermissionID: perm.PermissionID}, nil)
	req.SetPathValue("id", idStr)
	handler.GrantPermission(httptest.NewRecorder(), req)

	req = testutil.MakeRequest("DELETE", "/roles/"+idStr, nil, nil)
	req.SetPathValue("id", idStr)
	w = httptest.NewRecorder()
	handler.DeleteRole(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var count int
	if err := db.QueryRow(`
		SELECT COUNT(*) FROM role_permission WHERE role_id = $1
	`, role.RoleID).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("Expected grants gone with the role, found %d", count)
	}

	// The permission itself survives
	if err := db.QueryRow(`
		SELECT COUNT(*) FROM permission WHERE permission_id = $1
	`, perm.PermissionID).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Error("Expected permission to survive role deletion")
	}
}
