// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hannalind/quizroom/auth"
	"github.com/hannalind/quizroom/cliparse"
	"github.com/hannalind/quizroom/db"
	"github.com/hannalind/quizroom/middleware"
	"github.com/hannalind/quizroom/models"
)

type SessionHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewSessionHandler(db *sql.DB, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{db: db, cfg: cfg}
}

// accessCodeRetries bounds collision retries when generating codes. With a
// 27-character alphabet and 6 positions collisions are rare even at scale.
const accessCodeRetries = 5

// CreateSession handles POST /sessions. The quiz must be playable: at least
// one question, and every non-slider question needs exactly one correct
// answer. The response carries the host key; it is shown once and never
// stored.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var questionCount int
	err := h.db.QueryRow(`
		SELECT COUNT(*) FROM quiz_question WHERE quiz_id = $1
	`, req.QuizID).Scan(&questionCount)
	if err != nil {
		slog.Error("failed to count questions", "error", err, "quiz_id", req.QuizID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if questionCount == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Quiz has no questions")
		return
	}

	var unplayable int
	err = h.db.QueryRow(`
		SELECT COUNT(*)
		FROM quiz_question q
		WHERE q.quiz_id = $1
		  AND q.question_type != 'slider'
		  AND (SELECT COUNT(*) FROM quiz_answer a WHERE a.question_id = q.question_id AND a.is_correct) != 1
	`, req.QuizID).Scan(&unplayable)
	if err != nil {
		slog.Error("failed to check quiz readiness", "error", err, "quiz_id", req.QuizID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if unplayable > 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Every choice question needs exactly one correct answer")
		return
	}

	now := time.Now()

	var session models.GameSession
	for attempt := 0; ; attempt++ {
		code, err := auth.GenerateAccessCode()
		if err != nil {
			slog.Error("failed to generate access code", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
			return
		}

		var sessionID int64
		err = h.db.QueryRow(`
			INSERT INTO game_session (quiz_id, host_id, access_code, started_at)
			VALUES ($1, $2, $3, $4)
			RETURNING session_id
		`, req.QuizID, req.HostID, code, now).Scan(&sessionID)

		if err == nil {
			session = models.GameSession{
				SessionID:  sessionID,
				QuizID:     req.QuizID,
				HostID:     req.HostID,
				AccessCode: code,
				StartedAt:  now,
			}
			break
		}
		if db.IsUnique(err) && attempt < accessCodeRetries {
			continue
		}
		slog.Error("failed to insert session", "error", err, "quiz_id", req.QuizID)
		writeDBError(w, err, "Failed to create session")
		return
	}

	slog.Info("session created", "session_id", session.SessionID, "quiz_id", req.QuizID, "access_code", session.AccessCode)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		Session: session,
		HostKey: auth.GenerateHostKey(session.SessionID, h.cfg.HostKeySalt),
	})
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	session, err := h.fetchSession(`WHERE session_id = $1`, sessionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, session)
}

// GetSessionByCode handles GET /sessions/code/{code}. This is the lookup
// players use before joining.
func (h *SessionHandler) GetSessionByCode(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(r.PathValue("code"))

	session, err := h.fetchSession(`WHERE access_code = $1`, code)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session by code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, session)
}

func (h *SessionHandler) fetchSession(where string, arg any) (models.GameSession, error) {
	var s models.GameSession
	err := h.db.QueryRow(`
		SELECT session_id, quiz_id, host_id, access_code, started_at, ended_at, current_question_index
		FROM game_session `+where,
		arg).Scan(&s.SessionID, &s.QuizID, &s.HostID, &s.AccessCode, &s.StartedAt, &s.EndedAt, &s.CurrentQuestionIndex)
	return s, err
}

// JoinSession handles POST /sessions/{id}/join. Nicknames are unique per
// session; the participant token in the response authorizes later answer
// submissions.
func (h *SessionHandler) JoinSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.JoinSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Nickname == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "nickname is required")
		return
	}

	session, err := h.fetchSession(`WHERE session_id = $1`, sessionID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if session.EndedAt != nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Session has ended")
		return
	}

	now := time.Now()

	var participantID int64
	err = h.db.QueryRow(`
		INSERT INTO session_participant (session_id, user_id, nickname, joined_at)
		VALUES ($1, $2, $3, $4)
		RETURNING participant_id
	`, sessionID, req.UserID, req.Nickname, now).Scan(&participantID)

	if err != nil {
		if db.IsUnique(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Nickname already taken in this session")
			return
		}
		slog.Error("failed to insert participant", "error", err, "session_id", sessionID)
		writeDBError(w, err, "Failed to join session")
		return
	}

	slog.Info("participant joined", "participant_id", participantID, "session_id", sessionID, "nickname", req.Nickname)

	middleware.JSONResponse(w, http.StatusCreated, models.JoinSessionResponse{
		Participant: models.SessionParticipant{
			ParticipantID: participantID,
			SessionID:     sessionID,
			UserID:        req.UserID,
			Nickname:      req.Nickname,
			JoinedAt:      now,
		},
		ParticipantToken: auth.GenerateParticipantToken(participantID, h.cfg.ParticipantSalt),
	})
}

// ListParticipants handles GET /sessions/{id}/participants
func (h *SessionHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT participant_id, session_id, user_id, nickname, score, joined_at
		FROM session_participant
		WHERE session_id = $1
		ORDER BY joined_at, participant_id
	`, sessionID)
	if err != nil {
		slog.Error("failed to query participants", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	participants := []models.SessionParticipant{}
	for rows.Next() {
		var p models.SessionParticipant
		if err := rows.Scan(&p.ParticipantID, &p.SessionID, &p.UserID, &p.Nickname, &p.Score, &p.JoinedAt); err != nil {
			slog.Error("failed to scan participant", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		participants = append(participants, p)
	}

	middleware.JSONResponse(w, http.StatusOK, participants)
}

// SubmitAnswer handles POST /sessions/{id}/participants/{participantID}/answers.
// Requires X-Participant-Token. Correctness and points are snapshotted at
// submission time and the participant's score is bumped in the same
// transaction.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	participantID, ok := pathID(w, r, "participantID")
	if !ok {
		return
	}

	token := r.Header.Get("X-Participant-Token")
	if err := auth.ValidateParticipantToken(participantID, token, h.cfg.ParticipantSalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid participant token")
		return
	}

	var req models.SubmitAnswerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// The participant must belong to this session, and the session must
	// still be running.
	var endedAt *time.Time
	var quizID int64
	err = tx.QueryRow(`
		SELECT gs.ended_at, gs.quiz_id
		FROM session_participant sp
		JOIN game_session gs ON gs.session_id = sp.session_id
		WHERE sp.participant_id = $1 AND sp.session_id = $2
	`, participantID, sessionID).Scan(&endedAt, &quizID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found in this session")
		return
	}
	if err != nil {
		slog.Error("failed to query participant session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if endedAt != nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Session has ended")
		return
	}

	var questionType string
	var questionPoints int
	err = tx.QueryRow(`
		SELECT question_type, points FROM quiz_question WHERE question_id = $1 AND quiz_id = $2
	`, req.QuestionID, quizID).Scan(&questionType, &questionPoints)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found in this session's quiz")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	isCorrect := false
	pointsAwarded := 0

	switch questionType {
	case models.QuestionSlider:
		if req.SliderValue == nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "slider_value is required for slider questions")
			return
		}
		// Sliders have no stored correct value; the host judges them
		// manually via the score endpoint.
	default:
		if req.ChosenAnswerID == nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "chosen_answer_id is required")
			return
		}
		err = tx.QueryRow(`
			SELECT is_correct FROM quiz_answer WHERE answer_id = $1 AND question_id = $2
		`, *req.ChosenAnswerID, req.QuestionID).Scan(&isCorrect)

		if err == sql.ErrNoRows {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Answer does not belong to this question")
			return
		}
		if err != nil {
			slog.Error("failed to query answer", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if isCorrect {
			pointsAwarded = questionPoints
		}
	}

	now := time.Now()

	var answerID int64
	err = tx.QueryRow(`
		INSERT INTO participant_answer (participant_id, question_id, chosen_answer_id, slider_value, is_correct, points_awarded, answered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING participant_answer_id
	`, participantID, req.QuestionID, req.ChosenAnswerID, req.SliderValue, isCorrect, pointsAwarded, now).Scan(&answerID)

	if err != nil {
		if db.IsUnique(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Question already answered")
			return
		}
		slog.Error("failed to insert answer", "error", err, "participant_id", participantID)
		writeDBError(w, err, "Failed to submit answer")
		return
	}

	var totalScore int
	err = tx.QueryRow(`
		UPDATE session_participant SET score = score + $1 WHERE participant_id = $2
		RETURNING score
	`, pointsAwarded, participantID).Scan(&totalScore)
	if err != nil {
		slog.Error("failed to update score", "error", err, "participant_id", participantID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit answer")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit answer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit answer")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitAnswerResponse{
		ParticipantAnswerID: answerID,
		IsCorrect:           isCorrect,
		PointsAwarded:       pointsAwarded,
		TotalScore:          totalScore,
	})
}

// ListParticipantAnswers handles GET /sessions/{id}/participants/{participantID}/answers.
// Returns the submitted answers with their snapshotted correctness and
// points, in submission order.
func (h *SessionHandler) ListParticipantAnswers(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	participantID, ok := pathID(w, r, "participantID")
	if !ok {
		return
	}

	var one int
	err := h.db.QueryRow(`
		SELECT 1 FROM session_participant WHERE participant_id = $1 AND session_id = $2
	`, participantID, sessionID).Scan(&one)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found in this session")
		return
	}
	if err != nil {
		slog.Error("failed to query participant", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT participant_answer_id, participant_id, question_id, chosen_answer_id, slider_value, is_correct, points_awarded, answered_at
		FROM participant_answer
		WHERE participant_id = $1
		ORDER BY answered_at, participant_answer_id
	`, participantID)
	if err != nil {
		slog.Error("failed to query participant answers", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	answers := []models.ParticipantAnswer{}
	for rows.Next() {
		var pa models.ParticipantAnswer
		if err := rows.Scan(&pa.ParticipantAnswerID, &pa.ParticipantID, &pa.QuestionID,
			&pa.ChosenAnswerID, &pa.SliderValue, &pa.IsCorrect, &pa.PointsAwarded, &pa.AnsweredAt); err != nil {
			slog.Error("failed to scan participant answer", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		answers = append(answers, pa)
	}

	middleware.JSONResponse(w, http.StatusOK, answers)
}

// AdvanceQuestion handles POST /sessions/{id}/advance. Host only.
func (h *SessionHandler) AdvanceQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !h.requireHostKey(w, r, sessionID) {
		return
	}

	var index int
	err := h.db.QueryRow(`
		UPDATE game_session
		SET current_question_index = current_question_index + 1
		WHERE session_id = $1 AND ended_at IS NULL
		RETURNING current_question_index
	`, sessionID).Scan(&index)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusConflict, "Session not found or already ended")
		return
	}
	if err != nil {
		slog.Error("failed to advance session", "error", err, "session_id", sessionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to advance session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]int{"current_question_index": index})
}

// EndSession handles POST /sessions/{id}/end. Host only. Ending twice is a
// conflict, not an error to paper over.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !h.requireHostKey(w, r, sessionID) {
		return
	}

	res, err := h.db.Exec(`
		UPDATE game_session SET ended_at = $1 WHERE session_id = $2 AND ended_at IS NULL
	`, time.Now(), sessionID)
	if err != nil {
		slog.Error("failed to end session", "error", err, "session_id", sessionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to end session")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Session not found or already ended")
		return
	}

	slog.Info("session ended", "session_id", sessionID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Session ended"})
}

// Leaderboard handles GET /sessions/{id}/leaderboard. Rank is dense: tied
// scores share a rank.
func (h *SessionHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT participant_id, nickname, score
		FROM session_participant
		WHERE session_id = $1
		ORDER BY score DESC, joined_at, participant_id
	`, sessionID)
	if err != nil {
		slog.Error("failed to query leaderboard", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	rank := 0
	lastScore := -1
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ParticipantID, &e.Nickname, &e.Score); err != nil {
			slog.Error("failed to scan leaderboard entry", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if e.Score != lastScore {
			rank++
			lastScore = e.Score
		}
		e.Rank = rank
		entries = append(entries, e)
	}

	middleware.JSONResponse(w, http.StatusOK, entries)
}

// UpdateParticipantScore handles PATCH /sessions/{id}/participants/{participantID}/score.
// Host only. Used to hand out points for slider questions.
func (h *SessionHandler) UpdateParticipantScore(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	participantID, ok := pathID(w, r, "participantID")
	if !ok {
		return
	}
	if !h.requireHostKey(w, r, sessionID) {
		return
	}

	var req models.UpdateScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.db.Exec(`
		UPDATE session_participant SET score = $1 WHERE participant_id = $2 AND session_id = $3
	`, req.Score, participantID, sessionID)
	if err != nil {
		slog.Error("failed to update participant score", "error", err, "participant_id", participantID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update score")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found in this session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Score updated"})
}

// DeleteParticipant handles DELETE /sessions/{id}/participants/{participantID}.
// Host only. The participant's answers cascade away.
func (h *SessionHandler) DeleteParticipant(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	participantID, ok := pathID(w, r, "participantID")
	if !ok {
		return
	}
	if !h.requireHostKey(w, r, sessionID) {
		return
	}

	res, err := h.db.Exec(`
		DELETE FROM session_participant WHERE participant_id = $1 AND session_id = $2
	`, participantID, sessionID)
	if err != nil {
		slog.Error("failed to delete participant", "error", err, "participant_id", participantID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to remove participant")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found in this session")
		return
	}

	slog.Info("participant removed", "participant_id", participantID, "session_id", sessionID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Participant removed"})
}

// DeleteSession handles DELETE /sessions/{id}. Host only. Participants and
// their answers cascade away.
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if !h.requireHostKey(w, r, sessionID) {
		return
	}

	res, err := h.db.Exec(`DELETE FROM game_session WHERE session_id = $1`, sessionID)
	if err != nil {
		slog.Error("failed to delete session", "error", err, "session_id", sessionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	slog.Info("session deleted", "session_id", sessionID)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Session deleted"})
}

func (h *SessionHandler) requireHostKey(w http.ResponseWriter, r *http.Request, sessionID int64) bool {
	key := r.Header.Get("X-Host-Key")
	if err := auth.ValidateHostKey(sessionID, key, h.cfg.HostKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid host key")
		return false
	}
	return true
}
