// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hannalind/quizroom/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "quizroom API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// Handlers decide 400/401/404; the router only has to match. A 405
	// here means the pattern is missing or registered under the wrong
	// method.
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		// Accounts
		{"POST", "/users"},
		{"GET", "/users"},
		{"GET", "/users/1"},
		{"PATCH", "/users/1"},
		{"DELETE", "/users/1"},
		{"POST", "/users/1/student"},
		{"POST", "/users/1/teacher"},
		{"POST", "/users/1/company"},
		{"POST", "/users/1/roles"},
		{"GET", "/users/1/roles"},

		// Access control
		{"POST", "/roles"},
		{"GET", "/roles"},
		{"POST", "/permissions"},
		{"POST", "/roles/1/permissions"},

		// Media
		{"POST", "/media"},
		{"GET", "/media/1"},

		// Billing
		{"POST", "/plans"},
		{"POST", "/features"},
		{"POST", "/plans/1/features"},
		{"POST", "/subscriptions"},
		{"GET", "/users/1/subscriptions"},
		{"PATCH", "/subscriptions/1"},
		{"POST", "/subscriptions/1/payments"},

		// Quizzes
		{"POST", "/quizzes"},
		{"GET", "/quizzes"},
		{"GET", "/quizzes/1/questions"},
		{"POST", "/questions"},
		{"PUT", "/questions/1"},
		{"GET", "/questions/1/answers"},
		{"POST", "/answers"},
		{"PUT", "/answers/1"},
		{"GET", "/creation-methods"},

		// Stories and courses
		{"POST", "/stories"},
		{"GET", "/stories/1"},
		{"POST", "/stories/1/contents"},
		{"DELETE", "/stories/1/contents/1"},
		{"POST", "/courses"},
		{"GET", "/courses/1"},
		{"POST", "/courses/1/contents"},
		{"DELETE", "/courses/1/contents/1"},

		// Game sessions
		{"POST", "/sessions"},
		{"GET", "/sessions/1"},
		{"GET", "/sessions/code/ABC123"},
		{"POST", "/sessions/1/join"},
		{"GET", "/sessions/1/participants"},
		{"POST", "/sessions/1/participants/1/answers"},
		{"GET", "/sessions/1/participants/1/answers"},
		{"PATCH", "/sessions/1/participants/1/score"},
		{"POST", "/sessions/1/advance"},
		{"POST", "/sessions/1/end"},
		{"GET", "/sessions/1/leaderboard"},

		// Documents and support
		{"POST", "/users/1/documents"},
		{"GET", "/users/1/documents"},
		{"DELETE", "/documents/1"},
		{"POST", "/support-cases"},
		{"GET", "/support-cases"},
		{"PATCH", "/support-cases/1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"DELETE", "/sessions/1/leaderboard"},
		{"PUT", "/support-cases/1"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	db := testutil.SetupTestDB(t)

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	// A non-numeric {id} should be rejected by the handler, proving the
	// parameter reached it.
	req := httptest.NewRequest("GET", "/users/not-a-number", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-numeric id, got %d", w.Code)
	}
}
