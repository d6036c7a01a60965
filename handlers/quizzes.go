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

type QuizHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewQuizHandler(db *sql.DB, cfg cliparse.Config) *QuizHandler {
	return &QuizHandler{db: db, cfg: cfg}
}

// CreateQuiz handles POST /quizzes
func (h *QuizHandler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuizRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.CreationMethodID == nil {
		// Default to manual; resolved by name so the id can drift.
		var manual int64
		err := h.db.QueryRow(`
			SELECT creation_method_id FROM creation_method WHERE name = 'manual'
		`).Scan(&manual)
		if err != nil {
			slog.Error("failed to resolve default creation method", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		req.CreationMethodID = &manual
	}

	var quizID int64
	err := h.db.QueryRow(`
		INSERT INTO quiz (name, creation_method_id, creator_id, media_id)
		VALUES ($1, $2, $3, $4)
		RETURNING quiz_id
	`, req.Name, req.CreationMethodID, req.CreatorID, req.MediaID).Scan(&quizID)

	if err != nil {
		slog.Error("failed to insert quiz", "error", err, "creator_id", req.CreatorID)
		writeDBError(w, err, "Failed to create quiz")
		return
	}

	slog.Info("quiz created", "quiz_id", quizID, "creator_id", req.CreatorID)

	middleware.JSONResponse(w, http.StatusCreated, models.Quiz{
		QuizID:           quizID,
		Name:             req.Name,
		CreationMethodID: req.CreationMethodID,
		CreatorID:        req.CreatorID,
		MediaID:          req.MediaID,
	})
}

// ListQuizzes handles GET /quizzes with an optional ?creator_id= filter
func (h *QuizHandler) ListQuizzes(w http.ResponseWriter, r *http.Request) {
	q := `SELECT quiz_id, name, creation_method_id, creator_id, media_id FROM quiz`
	var args []any
	if creator := r.URL.Query().Get("creator_id"); creator != "" {
		q += ` WHERE creator_id = $1`
		args = append(args, creator)
	}
	q += ` ORDER BY quiz_id DESC`

	rows, err := h.db.Query(q, args...)
	if err != nil {
		slog.Error("failed to query quizzes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	quizzes := []models.Quiz{}
	for rows.Next() {
		var quiz models.Quiz
		if err := rows.Scan(&quiz.QuizID, &quiz.Name, &quiz.CreationMethodID, &quiz.CreatorID, &quiz.MediaID); err != nil {
			slog.Error("failed to scan quiz", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		quizzes = append(quizzes, quiz)
	}

	middleware.JSONResponse(w, http.StatusOK, quizzes)
}

// GetQuiz handles GET /quizzes/{id}
func (h *QuizHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var quiz models.Quiz
	err := h.db.QueryRow(`
		SELECT quiz_id, name, creation_method_id, creator_id, media_id
		FROM quiz
		WHERE quiz_id = $1
	`, quizID).Scan(&quiz.QuizID, &quiz.Name, &quiz.CreationMethodID, &quiz.CreatorID, &quiz.MediaID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Quiz not found")
		return
	}
	if err != nil {
		slog.Error("failed to query quiz", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, quiz)
}

// UpdateQuiz handles PUT /quizzes/{id}
func (h *QuizHandler) UpdateQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateQuizRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	res, err := h.db.Exec(`
		UPDATE quiz SET name = $1, creation_method_id = $2, media_id = $3 WHERE quiz_id = $4
	`, req.Name, req.CreationMethodID, req.MediaID, quizID)
	if err != nil {
		slog.Error("failed to update quiz", "error", err, "quiz_id", quizID)
		writeDBError(w, err, "Failed to update quiz")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Quiz not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Quiz updated"})
}

// DeleteQuiz handles DELETE /quizzes/{id}. Questions, answers, and game
// sessions cascade away with the quiz.
func (h *QuizHandler) DeleteQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.db.Exec(`DELETE FROM quiz WHERE quiz_id = $1`, quizID)
	if err != nil {
		slog.Error("failed to delete quiz", "error", err, "quiz_id", quizID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete quiz")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Quiz not found")
		return
	}

	slog.Info("quiz deleted", "quiz_id", quizID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Quiz deleted"})
}

// ListQuestions handles GET /quizzes/{id}/questions.
// sort_order is not unique; question_id breaks ties for a stable order.
func (h *QuizHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	quizID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT question_id, quiz_id, question_text, question_type, time_limit, points, sort_order, media_id
		FROM quiz_question
		WHERE quiz_id = $1
		ORDER BY sort_order, question_id
	`, quizID)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	questions := []models.QuizQuestion{}
	for rows.Next() {
		var qq models.QuizQuestion
		if err := rows.Scan(&qq.QuestionID, &qq.QuizID, &qq.QuestionText, &qq.QuestionType,
			&qq.TimeLimit, &qq.Points, &qq.SortOrder, &qq.MediaID); err != nil {
			slog.Error("failed to scan question", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		questions = append(questions, qq)
	}

	middleware.JSONResponse(w, http.StatusOK, questions)
}

// CreateQuestion handles POST /questions
func (h *QuizHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.QuestionText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_text is required")
		return
	}
	if req.QuestionType == "" {
		req.QuestionType = models.QuestionMultipleChoice
	}
	switch req.QuestionType {
	case models.QuestionMultipleChoice, models.QuestionBoolean, models.QuestionSlider:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_type must be multiple_choice, boolean or slider")
		return
	}

	timeLimit := 30
	if req.TimeLimit != nil {
		timeLimit = *req.TimeLimit
	}
	points := 1000
	if req.Points != nil {
		points = *req.Points
	}
	sortOrder := 1
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	var questionID int64
	err := h.db.QueryRow(`
		INSERT INTO quiz_question (quiz_id, question_text, question_type, time_limit, points, sort_order, media_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING question_id
	`, req.QuizID, req.QuestionText, req.QuestionType, timeLimit, points, sortOrder, req.MediaID).Scan(&questionID)

	if err != nil {
		slog.Error("failed to insert question", "error", err, "quiz_id", req.QuizID)
		writeDBError(w, err, "Failed to create question")
		return
	}

	slog.Info("question created", "question_id", questionID, "quiz_id", req.QuizID)

	middleware.JSONResponse(w, http.StatusCreated, models.QuizQuestion{
		QuestionID:   questionID,
		QuizID:       req.QuizID,
		QuestionText: req.QuestionText,
		QuestionType: req.QuestionType,
		TimeLimit:    timeLimit,
		Points:       points,
		SortOrder:    sortOrder,
		MediaID:      req.MediaID,
	})
}

// UpdateQuestion handles PUT /questions/{id}. The question stays on its
// quiz; type changes are permitted, readiness is re-checked at session start.
func (h *QuizHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.QuestionText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_text is required")
		return
	}
	switch req.QuestionType {
	case models.QuestionMultipleChoice, models.QuestionBoolean, models.QuestionSlider:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_type must be multiple_choice, boolean or slider")
		return
	}

	res, err := h.db.Exec(`
		UPDATE quiz_question
		SET question_text = $1, question_type = $2, time_limit = $3, points = $4, sort_order = $5, media_id = $6
		WHERE question_id = $7
	`, req.QuestionText, req.QuestionType, req.TimeLimit, req.Points, req.SortOrder, req.MediaID, questionID)
	if err != nil {
		slog.Error("failed to update question", "error", err, "question_id", questionID)
		writeDBError(w, err, "Failed to update question")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Question updated"})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *QuizHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.db.Exec(`DELETE FROM quiz_question WHERE question_id = $1`, questionID)
	if err != nil {
		slog.Error("failed to delete question", "error", err, "question_id", questionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete question")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Question deleted"})
}

// ListAnswers handles GET /questions/{id}/answers
func (h *QuizHandler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT answer_id, question_id, answer_text, is_correct, sort_order, media_id
		FROM quiz_answer
		WHERE question_id = $1
		ORDER BY sort_order, answer_id
	`, questionID)
	if err != nil {
		slog.Error("failed to query answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	answers := []models.QuizAnswer{}
	for rows.Next() {
		var a models.QuizAnswer
		if err := rows.Scan(&a.AnswerID, &a.QuestionID, &a.AnswerText, &a.IsCorrect, &a.SortOrder, &a.MediaID); err != nil {
			slog.Error("failed to scan answer", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		answers = append(answers, a)
	}

	middleware.JSONResponse(w, http.StatusOK, answers)
}

// CreateAnswer handles POST /answers. Slider questions take a continuous
// value at play time and carry no discrete answer rows.
func (h *QuizHandler) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.AnswerText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "answer_text is required")
		return
	}

	var questionType string
	err := h.db.QueryRow(`
		SELECT question_type FROM quiz_question WHERE question_id = $1
	`, req.QuestionID).Scan(&questionType)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if questionType == models.QuestionSlider {
		middleware.ErrorResponse(w, http.StatusConflict, "Slider questions have no discrete answers")
		return
	}

	sortOrder := 1
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	var answerID int64
	err = h.db.QueryRow(`
		INSERT INTO quiz_answer (question_id, answer_text, is_correct, sort_order, media_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING answer_id
	`, req.QuestionID, req.AnswerText, req.IsCorrect, sortOrder, req.MediaID).Scan(&answerID)

	if err != nil {
		slog.Error("failed to insert answer", "error", err, "question_id", req.QuestionID)
		writeDBError(w, err, "Failed to create answer")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.QuizAnswer{
		AnswerID:   answerID,
		QuestionID: req.QuestionID,
		AnswerText: req.AnswerText,
		IsCorrect:  req.IsCorrect,
		SortOrder:  sortOrder,
		MediaID:    req.MediaID,
	})
}

// UpdateAnswer handles PUT /answers/{id}. The answer stays on its question.
func (h *QuizHandler) UpdateAnswer(w http.ResponseWriter, r *http.Request) {
	answerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.AnswerText == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "answer_text is required")
		return
	}

	res, err := h.db.Exec(`
		UPDATE quiz_answer
		SET answer_text = $1, is_correct = $2, sort_order = $3, media_id = $4
		WHERE answer_id = $5
	`, req.AnswerText, req.IsCorrect, req.SortOrder, req.MediaID, answerID)
	if err != nil {
		slog.Error("failed to update answer", "error", err, "answer_id", answerID)
		writeDBError(w, err, "Failed to update answer")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Answer not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Answer updated"})
}

// DeleteAnswer handles DELETE /answers/{id}
func (h *QuizHandler) DeleteAnswer(w http.ResponseWriter, r *http.Request) {
	answerID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	res, err := h.db.Exec(`DELETE FROM quiz_answer WHERE answer_id = $1`, answerID)
	if err != nil {
		slog.Error("failed to delete answer", "error", err, "answer_id", answerID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete answer")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Answer not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Answer deleted"})
}

// ListCreationMethods handles GET /creation-methods. The rows ship with the
// schema; clients use them to fill the quiz creation form.
func (h *QuizHandler) ListCreationMethods(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT creation_method_id, name FROM creation_method ORDER BY creation_method_id
	`)
	if err != nil {
		slog.Error("failed to query creation methods", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	methods := []models.CreationMethod{}
	for rows.Next() {
		var m models.CreationMethod
		if err := rows.Scan(&m.CreationMethodID, &m.Name); err != nil {
			slog.Error("failed to scan creation method", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		methods = append(methods, m)
	}

	middleware.JSONResponse(w, http.StatusOK, methods)
}
