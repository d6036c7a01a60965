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

func TestCreateMedia(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewMediaHandler(db, testutil.GetTestConfig())

	tests := []struct {
		name           string
		requestBody    models.CreateMediaRequest
		expectedStatus int
		checkResponse  func(t *testing.T, resp *models.Media)
	}{
		{
			name: "image",
			requestBody: models.CreateMediaRequest{
				Type: "image", URL: "https://cdn.test/a.png",
				Width: 800, Height: 600, AltText: "A map",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.Media) {
				if resp.Image == nil {
					t.Fatal("Expected image detail")
				}
				if resp.Image.Width != 800 || resp.Image.Height != 600 {
					t.Errorf("Unexpected dimensions %dx%d", resp.Image.Width, resp.Image.Height)
				}
				if resp.Video != nil || resp.Gif != nil {
					t.Error("Expected only the image subtype to be set")
				}

				var count int
				if err := db.QueryRow(`SELECT COUNT(*) FROM media_image WHERE media_id = $1`, resp.MediaID).Scan(&count); err != nil {
					t.Fatal(err)
				}
				if count != 1 {
					t.Error("Expected media_image row")
				}
			},
		},
		{
			name: "video",
			requestBody: models.CreateMediaRequest{
				Type: "video", URL: "https://cdn.test/b.mp4",
				DurationSeconds: 120, Resolution: "1080p",
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.Media) {
				if resp.Video == nil {
					t.Fatal("Expected video detail")
				}
				if resp.Video.DurationSeconds != 120 {
					t.Errorf("Expected duration 120, got %d", resp.Video.DurationSeconds)
				}
			},
		},
		{
			name: "gif",
			requestBody: models.CreateMediaRequest{
				Type: "gif", URL: "https://cdn.test/c.gif",
				Width: 480, Height: 480, LoopCount: 3,
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, resp *models.Media) {
				if resp.Gif == nil {
					t.Fatal("Expected gif detail")
				}
				if resp.Gif.LoopCount != 3 {
					t.Errorf("Expected loop_count 3, got %d", resp.Gif.LoopCount)
				}
			},
		},
		{
			name:           "unknown type",
			requestBody:    models.CreateMediaRequest{Type: "audio", URL: "https://cdn.test/d.mp3"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing url",
			requestBody:    models.CreateMediaRequest{Type: "image"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/media", tt.requestBody, nil)
			w := httptest.NewRecorder()

			handler.CreateMedia(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.checkResponse != nil {
				var resp models.Media
				testutil.AssertJSON(t, w, &resp)
				tt.checkResponse(t, &resp)
			}
		})
	}
}

func TestGetMedia(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewMediaHandler(db, testutil.GetTestConfig())

	mediaID := testutil.CreateTestMedia(t, db)
	idStr := strconv.FormatInt(mediaID, 10)

	req := testutil.MakeRequest("GET", "/media/"+idStr, nil, nil)
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()

	handler.GetMedia(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.Media
	testutil.AssertJSON(t, w, &resp)
	if resp.Type != "image" {
		t.Errorf("Expected type image, got %q", resp.Type)
	}
	if resp.Image == nil {
		t.Fatal("Expected image detail joined in")
	}
	if resp.Image.AltText != "test" {
		t.Errorf("Expected alt_text 'test', got %q", resp.Image.AltText)
	}
}

func TestGetMedia_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewMediaHandler(db, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/media/777", nil, nil)
	req.SetPathValue("id", "777")
	w := httptest.NewRecorder()

	handler.GetMedia(w, req)

	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestDeleteMedia(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewMediaHandler(db, testutil.GetTestConfig())

	mediaID := testutil.CreateTestMedia(t, db)
	idStr := strconv.FormatInt(mediaID, 10)

	req := testutil.MakeRequest("DELETE", "/media/"+idStr, nil, nil)
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()

	handler.DeleteMedia(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	// Subtype row goes down with the base row
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM media_image WHERE media_id = $1`, mediaID).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Error("Expected subtype row to cascade away")
	}
}

func TestDeleteMedia_DetachesFromQuiz(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewMediaHandler(db, testutil.GetTestConfig())

	creatorID := testutil.CreateTestUser(t, db)
	mediaID := testutil.CreateTestMedia(t, db)

	var quizID int64
	if err := db.QueryRow(`
		INSERT INTO quiz (name, creator_id, media_id) VALUES ('q', $1, $2) RETURNING quiz_id
	`, creatorID, mediaID).Scan(&quizID); err != nil {
		t.Fatal(err)
	}

	idStr := strconv.FormatInt(mediaID, 10)
	req := testutil.MakeRequest("DELETE", "/media/"+idStr, nil, nil)
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()

	handler.DeleteMedia(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	// The quiz survives with its media reference nulled
	var gotMedia *int64
	if err := db.QueryRow(`SELECT media_id FROM quiz WHERE quiz_id = $1`, quizID).Scan(&gotMedia); err != nil {
		t.Fatal(err)
	}
	if gotMedia != nil {
		t.Error("Expected quiz media_id to be NULL after media deletion")
	}
}
