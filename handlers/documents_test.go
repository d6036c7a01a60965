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

func TestCreateDocument(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewDocumentHandler(db, testutil.GetTestConfig())

	userID := testutil.CreateTestUser(t, db)
	idStr := strconv.FormatInt(userID, 10)

	create := func(body models.CreateDocumentRequest) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/users/"+idStr+"/documents", body, nil)
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		handler.CreateDocument(w, req)
		return w
	}

	w := create(models.CreateDocumentRequest{FileName: "lesson-plan.pdf", FileSize: 245760, MimeType: "application/pdf"})
	testutil.AssertStatus(t, w, http.StatusCreated)

	var doc models.Document
	testutil.AssertJSON(t, w, &doc)
	if doc.StorageKey == "" {
		t.Error("Expected server-generated storage key")
	}

	t.Run("storage keys are unique", func(t *testing.T) {
		w := create(models.CreateDocumentRequest{FileName: "lesson-plan.pdf", FileSize: 245760, MimeType: "application/pdf"})
		testutil.AssertStatus(t, w, http.StatusCreated)

		var second models.Document
		testutil.AssertJSON(t, w, &second)
		if second.StorageKey == doc.StorageKey {
			t.Error("Expected a fresh storage key per upload")
		}
	})

	t.Run("missing file name", func(t *testing.T) {
		w := create(models.CreateDocumentRequest{FileSize: 100, MimeType: "text/plain"})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("negative size", func(t *testing.T) {
		w := create(models.CreateDocumentRequest{FileName: "x.txt", FileSize: -1, MimeType: "text/plain"})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestListDocuments_HumanSizes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewDocumentHandler(db, testutil.GetTestConfig())

	userID := testutil.CreateTestUser(t, db)
	idStr := strconv.FormatInt(userID, 10)

	req := testutil.MakeRequest("POST", "/users/"+idStr+"/documents",
		models.CreateDocumentRequest{FileName: "big.bin", FileSize: 1048576, MimeType: "application/octet-stream"}, nil)
	req.SetPathValue("id", idStr)
	handler.CreateDocument(httptest.NewRecorder(), req)

	req = testutil.MakeRequest("GET", "/users/"+idStr+"/documents", nil, nil)
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()

	handler.ListDocuments(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var listings []models.DocumentListing
	testutil.AssertJSON(t, w, &listings)
	if len(listings) != 1 {
		t.Fatalf("Expected 1 document, got %d", len(listings))
	}
	if listings[0].SizeHuman != "1.0 MiB" {
		t.Errorf("Expected size_human 1.0 MiB, got %q", listings[0].SizeHuman)
	}
}

func TestSupportCaseLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewDocumentHandler(db, testutil.GetTestConfig())

	// Anonymous case, no user_id
	w := httptest.NewRecorder()
	handler.CreateSupportCase(w, testutil.MakeRequest("POST", "/support-cases",
		models.CreateSupportCaseRequest{Subject: "Quiz will not start", Body: "It hangs on the lobby."}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var sc models.SupportCase
	testutil.AssertJSON(t, w, &sc)
	if sc.Status != models.CaseOpen {
		t.Errorf("Expected new case to be open, got %q", sc.Status)
	}
	if sc.UserID != nil {
		t.Errorf("Expected anonymous case, got user_id %v", *sc.UserID)
	}

	idStr := strconv.FormatInt(sc.CaseID, 10)

	t.Run("invalid status", func(t *testing.T) {
		req := testutil.MakeRequest("PATCH", "/support-cases/"+idStr,
			models.PatchSupportCaseRequest{Status: "resolved"}, nil)
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		handler.PatchSupportCase(w, req)
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("close", func(t *testing.T) {
		req := testutil.MakeRequest("PATCH", "/support-cases/"+idStr,
			models.PatchSupportCaseRequest{Status: models.CaseClosed}, nil)
		req.SetPathValue("id", idStr)
		w := httptest.NewRecorder()
		handler.PatchSupportCase(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("status filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListSupportCases(w, testutil.MakeRequest("GET", "/support-cases?status=open", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var cases []models.SupportCase
		testutil.AssertJSON(t, w, &cases)
		if len(cases) != 0 {
			t.Errorf("Expected no open cases after closing, got %d", len(cases))
		}
	})

	t.Run("bogus filter", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListSupportCases(w, testutil.MakeRequest("GET", "/support-cases?status=pending", nil, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("missing subject", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.CreateSupportCase(w, testutil.MakeRequest("POST", "/support-cases",
			models.CreateSupportCaseRequest{Body: "no subject"}, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}
