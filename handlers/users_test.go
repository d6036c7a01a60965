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

func TestCreateUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewUserHandler(db, cfg)

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.User)
	}{
		{
			name: "valid user creation",
			requestBody: models.CreateUserRequest{
				Username:     "anna.berg",
				Email:        "anna@test.example",
				PasswordHash: "$2a$10$hash",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.User) {
				if resp.UserID == 0 {
					t.Error("Expected non-zero user_id")
				}
				if resp.Language != "sv" {
					t.Errorf("Expected default language sv, got %q", resp.Language)
				}
				if !resp.IsActive {
					t.Error("Expected new user to be active")
				}
				if resp.IsVerified {
					t.Error("Expected new user to be unverified")
				}

				var count int
				if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE user_id = $1`, resp.UserID).Scan(&count); err != nil {
					t.Fatal(err)
				}
				if count != 1 {
					t.Error("Expected user row in database")
				}
			},
		},
		{
			name: "explicit language kept",
			requestBody: models.CreateUserRequest{
				Username:     "john",
				Email:        "john@test.example",
				PasswordHash: "x",
				Language:     "en",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.User) {
				if resp.Language != "en" {
					t.Errorf("Expected language en, got %q", resp.Language)
				}
			},
		},
		{
			name:           "missing username",
			requestBody:    models.CreateUserRequest{Email: "x@test.example", PasswordHash: "x"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing email",
			requestBody:    models.CreateUserRequest{Username: "x", PasswordHash: "x"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing password hash",
			requestBody:    models.CreateUserRequest{Username: "x", Email: "x@test.example"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			requestBody:    "{not json",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/users", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.CreateUser(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.checkResponse != nil {
				var resp models.User
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewUserHandler(db, testutil.GetTestConfig())

	body := models.CreateUserRequest{Username: "dup", Email: "dup@test.example", PasswordHash: "x"}

	w := httptest.NewRecorder()
	handler.CreateUser(w, testutil.MakeRequest("POST", "/users", body, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Same username, different email
	body.Email = "other@test.example"
	w = httptest.NewRecorder()
	handler.CreateUser(w, testutil.MakeRequest("POST", "/users", body, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestGetUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewUserHandler(db, testutil.GetTestConfig())

	userID := testutil.CreateTestUser(t, db)

	t.Run("existing user", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/users/1", nil, nil)
		req.SetPathValue("id", strconv.FormatInt(userID, 10))
		w := httptest.NewRecorder()

		handler.GetUser(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.User
		testutil.AssertJSON(t, w, &resp)
		if resp.UserID != userID {
			t.Errorf("Expected user_id %d, got %d", userID, resp.UserID)
		}
		// Password hash must never leak through JSON
		if resp.PasswordHash != "" {
			t.Error("Password hash leaked into JSON response")
		}
	})

	t.Run("missing user", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/users/99999", nil, nil)
		req.SetPathValue("id", "99999")
		w := httptest.NewRecorder()

		handler.GetUser(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/users/abc", nil, nil)
		req.SetPathValue("id", "abc")
		w := httptest.NewRecorder()

		handler.GetUser(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestPatchUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewUserHandler(db, testutil.GetTestConfig())

	userID := testutil.CreateTestUser(t, db)
	idStr := strconv.FormatInt(userID, 10)

	deactivate := false
	req := testutil.MakeRequest("PATCH", "/users/"+idStr, models.PatchUserRequest{IsActive: &deactivate}, nil)
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()

	handler.PatchUser(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.User
	testutil.AssertJSON(t, w, &resp)
	if resp.IsActive {
		t.Error("Expected user to be deactivated")
	}
	// Untouched fields survive the patch
	if resp.Language != "sv" {
		t.Errorf("Expected language to stay sv, got %q", resp.Language)
	}
	if resp.IsVerified {
		t.Error("Expected is_verified to stay false")
	}
}

func TestPatchUser_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewUserHandler(db, testutil.GetTestConfig())

	lang := "en"
	req := testutil.MakeRequest("PATCH", "/users/424242", models.PatchUserRequest{Language: &lang}, nil)
	req.SetPathValue("id", "424242")
	w := httptest.NewRecorder()

	handler.PatchUser(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeleteUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewUserHandler(db, testutil.GetTestConfig())

	userID := testutil.CreateTestUser(t, db)
	quizID := testutil.CreateTestQuiz(t, db, userID)
	idStr := strconv.FormatInt(userID, 10)

	req := testutil.MakeRequest("DELETE", "/users/"+idStr, nil, nil)
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()

	handler.DeleteUser(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	// Owned quizzes cascade with the account
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM quiz WHERE quiz_id = $1`, quizID).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Error("Expected owned quiz to cascade with user deletion")
	}

	// Deleting again is a 404
	w = httptest.NewRecorder()
	req = testutil.MakeRequest("DELETE", "/users/"+idStr, nil, nil)
	req.SetPathValue("id", idStr)
	handler.DeleteUser(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestCreateStudentProfile(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewUserHandler(db, testutil.GetTestConfig())

	teacherID := testutil.CreateTestUser(t, db)
	studentID := testutil.CreateTestUser(t, db)
	idStr := strconv.FormatInt(studentID, 10)

	req := testutil.MakeRequest("POST", "/users/"+idStr+"/student",
		models.CreateStudentProfileRequest{TeacherID: &teacherID, GradeLevel: "7"}, nil)
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()

	handler.CreateStudentProfile(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	// A second profile for the same user hits the primary key
	req = testutil.MakeRequest("POST", "/users/"+idStr+"/student",
		models.CreateStudentProfileRequest{GradeLevel: "8"}, nil)
	req.SetPathValue("id", idStr)
	w = httptest.NewRecorder()

	handler.CreateStudentProfile(w, req)

	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestCreateStudentProfile_UnknownTeacher(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewUserHandler(db, testutil.GetTestConfig())

	studentID := testutil.CreateTestUser(t, db)
	idStr := strconv.FormatInt(studentID, 10)
	ghost := int64(99999)

	req := testutil.MakeRequest("POST", "/users/"+idStr+"/student",
		models.CreateStudentProfileRequest{TeacherID: &ghost, GradeLevel: "7"}, nil)
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()

	handler.CreateStudentProfile(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestAssignRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	userHandler := NewUserHandler(db, cfg)
	roleHandler := NewRoleHandler(db, cfg)

	userID := testutil.CreateTestUser(t, db)
	idStr := strconv.FormatInt(userID, 10)

	w := httptest.NewRecorder()
	roleHandler.CreateRole(w, testutil.MakeRequest("POST", "/roles", models.CreateRoleRequest{Name: "teacher"}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var role models.Role
	testutil.AssertJSON(t, w, &role)

	assign := func() *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/users/"+idStr+"/roles", models.AssignRoleRequest{RoleID: role.RoleID}, nil)
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		userHandler.AssignRole(w, req)
		return w
	}

	testutil.AssertStatus(t, assign(), http.StatusCreated)
	// Assigning twice is idempotent
	testutil.AssertStatus(t, assign(), http.StatusCreated)

	req := testutil.MakeRequest("GET", "/users/"+idStr+"/roles", nil, nil)
	req.SetPathValue("id", idStr)
	w = httptest.NewRecorder()
	userHandler.ListUserRoles(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var roles []models.Role
	testutil.AssertJSON(t, w, &roles)
	if len(roles) != 1 {
		t.Fatalf("Expected 1 role, got %d", len(roles))
	}
	if roles[0].Name != "teacher" {
		t.Errorf("Expected role teacher, got %q", roles[0].Name)
	}
}

func TestListUsers_ActiveFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewUserHandler(db, testutil.GetTestConfig())

	activeID := testutil.CreateTestUser(t, db)
	inactiveID := testutil.CreateTestUser(t, db)
	if _, err := db.Exec(`UPDATE users SET is_active = FALSE WHERE user_id = $1`, inactiveID); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	handler.ListUsers(w, testutil.MakeRequest("GET", "/users?active=true", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	var users []models.User
	testutil.AssertJSON(t, w, &users)
	if len(users) != 1 {
		t.Fatalf("Expected 1 active user, got %d", len(users))
	}
	if users[0].UserID != activeID {
		t.Errorf("Expected user %d, got %d", activeID, users[0].UserID)
	}

	// Without the filter both appear
	w = httptest.NewRecorder()
	handler.ListUsers(w, testutil.MakeRequest("GET", "/users", nil, nil))
	testutil.AssertJSON(t, w, &users)
	if len(users) != 2 {
		t.Errorf("Expected 2 users, got %d", len(users))
	}
}
