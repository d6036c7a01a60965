// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/hannalind/quizroom/cliparse"
	"github.com/hannalind/quizroom/db"
	"github.com/hannalind/quizroom/models"
)

// SetupTestDB creates a fresh SQLite database with the full schema. The
// file lives in t.TempDir so every test starts empty and cleanup is free.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "quizroom_test.db")
	conn, err := db.Open(db.DriverSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn, db.DriverSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3270,
		DatabaseDriver:  db.DriverSQLite,
		DatabaseURL:     "test.db",
		HostKeySalt:     "test-host-salt",
		ParticipantSalt: "test-participant-salt",
	}
}

var userSeq int

// CreateTestUser inserts a user with a unique username/email and returns its ID.
func CreateTestUser(t *testing.T, conn *sql.DB) int64 {
	t.Helper()

	userSeq++
	username := fmt.Sprintf("user%d", userSeq)

	var userID int64
	err := conn.QueryRow(`
		INSERT INTO users (username, email, password_hash, language, created_at)
		VALUES ($1, $2, 'x', $3, $4)
		RETURNING user_id
	`, username, username+"@test.example", models.DefaultLanguage, time.Now()).Scan(&userID)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// CreateTestQuiz inserts a quiz owned by creatorID and returns its ID.
func CreateTestQuiz(t *testing.T, conn *sql.DB, creatorID int64) int64 {
	t.Helper()

	var quizID int64
	err := conn.QueryRow(`
		INSERT INTO quiz (name, creator_id) VALUES ('Test Quiz', $1) RETURNING quiz_id
	`, creatorID).Scan(&quizID)
	if err != nil {
		t.Fatalf("Failed to create test quiz: %v", err)
	}

	return quizID
}

// CreateTestQuestion adds a question with one correct and one wrong answer,
// making the quiz playable. Returns the question ID and the correct answer ID.
func CreateTestQuestion(t *testing.T, conn *sql.DB, quizID int64) (questionID, correctAnswerID int64) {
	t.Helper()

	err := conn.QueryRow(`
		INSERT INTO quiz_question (quiz_id, question_text, question_type)
		VALUES ($1, 'Test question?', 'multiple_choice')
		RETURNING question_id
	`, quizID).Scan(&questionID)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	err = conn.QueryRow(`
		INSERT INTO quiz_answer (question_id, answer_text, is_correct, sort_order)
		VALUES ($1, 'Right', TRUE, 1)
		RETURNING answer_id
	`, questionID).Scan(&correctAnswerID)
	if err != nil {
		t.Fatalf("Failed to create test answer: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO quiz_answer (question_id, answer_text, is_correct, sort_order)
		VALUES ($1, 'Wrong', FALSE, 2)
	`, questionID)
	if err != nil {
		t.Fatalf("Failed to create test answer: %v", err)
	}

	return questionID, correctAnswerID
}

// CreateTestSession inserts a running game session and returns its ID and
// access code.
func CreateTestSession(t *testing.T, conn *sql.DB, quizID, hostID int64) (sessionID int64, accessCode string) {
	t.Helper()

	userSeq++
	accessCode = fmt.Sprintf("TST%03d", userSeq)

	err := conn.QueryRow(`
		INSERT INTO game_session (quiz_id, host_id, access_code, started_at)
		VALUES ($1, $2, $3, $4)
		RETURNING session_id
	`, quizID, hostID, accessCode, time.Now()).Scan(&sessionID)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return sessionID, accessCode
}

// CreateTestParticipant joins a session under the given nickname.
func CreateTestParticipant(t *testing.T, conn *sql.DB, sessionID int64, nickname string) int64 {
	t.Helper()

	var participantID int64
	err := conn.QueryRow(`
		INSERT INTO session_participant (session_id, nickname, joined_at)
		VALUES ($1, $2, $3)
		RETURNING participant_id
	`, sessionID, nickname, time.Now()).Scan(&participantID)
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}

	return participantID
}

// CreateTestMedia inserts an image media row with its subtype and returns its ID.
func CreateTestMedia(t *testing.T, conn *sql.DB) int64 {
	t.Helper()

	var mediaID int64
	err := conn.QueryRow(`
		INSERT INTO media (type, url, created_at) VALUES ('image', 'https://test.example/a.png', $1)
		RETURNING media_id
	`, time.Now()).Scan(&mediaID)
	if err != nil {
		t.Fatalf("Failed to create test media: %v", err)
	}

	_, err = conn.Exec(`
		INSERT INTO media_image (media_id, width, height, alt_text) VALUES ($1, 100, 100, 'test')
	`, mediaID)
	if err != nil {
		t.Fatalf("Failed to create test media subtype: %v", err)
	}

	return mediaID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
