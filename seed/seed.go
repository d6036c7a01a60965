// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hannalind/quizroom/auth"
	"github.com/hannalind/quizroom/models"
)

// Run loads the baseline fixtures into an empty database. Everything goes
// in one transaction so a partial seed never survives a failure.
func Run(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	s := &seeder{tx: tx, now: time.Now()}

	steps := []func() error{
		s.roles,
		s.media,
		s.plans,
		s.users,
		s.subscriptions,
		s.creationMethods,
		s.quizzes,
		s.stories,
		s.courses,
		s.sessions,
		s.documents,
		s.supportCases,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	slog.Info("seed data loaded", "rows", humanize.Comma(s.rows))
	return nil
}

type seeder struct {
	tx   *sql.Tx
	now  time.Time
	rows int64

	// IDs captured along the way; later steps reference earlier rows.
	roleIDs   map[string]int64
	mediaIDs  map[string]int64
	planIDs   map[string]int64
	userIDs   map[string]int64
	methodIDs map[string]int64
	quizID    int64
	questions []seededQuestion
	storyID   int64
	sessionID int64
}

type seededQuestion struct {
	id            int64
	questionType  string
	correctAnswer int64
}

func (s *seeder) exec(query string, args ...any) error {
	if _, err := s.tx.Exec(query, args...); err != nil {
		return fmt.Errorf("seed exec failed: %w", err)
	}
	s.rows++
	return nil
}

func (s *seeder) insertReturning(query string, args ...any) (int64, error) {
	var id int64
	if err := s.tx.QueryRow(query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("seed insert failed: %w", err)
	}
	s.rows++
	return id, nil
}

func (s *seeder) roles() error {
	s.roleIDs = make(map[string]int64)
	for _, r := range []struct{ name, desc string }{
		{"admin", "Full platform access"},
		{"teacher", "Create and host content"},
		{"student", "Play and follow courses"},
	} {
		id, err := s.insertReturning(`
			INSERT INTO role (name, description) VALUES ($1, $2) RETURNING role_id
		`, r.name, r.desc)
		if err != nil {
			return err
		}
		s.roleIDs[r.name] = id
	}

	perms := map[string]string{
		"manage_users":   "Create, update and delete accounts",
		"create_content": "Author quizzes, stories and courses",
		"host_sessions":  "Start and run live game sessions",
		"play_sessions":  "Join sessions and submit answers",
	}
	permIDs := make(map[string]int64)
	for name, desc := range perms {
		id, err := s.insertReturning(`
			INSERT INTO permission (name, description) VALUES ($1, $2) RETURNING permission_id
		`, name, desc)
		if err != nil {
			return err
		}
		permIDs[name] = id
	}

	grants := []struct{ role, perm string }{
		{"admin", "manage_users"},
		{"admin", "create_content"},
		{"admin", "host_sessions"},
		{"admin", "play_sessions"},
		{"teacher", "create_content"},
		{"teacher", "host_sessions"},
		{"teacher", "play_sessions"},
		{"student", "play_sessions"},
	}
	for _, g := range grants {
		if err := s.exec(`
			INSERT INTO role_permission (role_id, permission_id) VALUES ($1, $2)
		`, s.roleIDs[g.role], permIDs[g.perm]); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) media() error {
	s.mediaIDs = make(map[string]int64)

	id, err := s.insertReturning(`
		INSERT INTO media (type, url, created_at) VALUES ($1, $2, $3) RETURNING media_id
	`, models.MediaImage, "https://cdn.quizroom.example/img/geography.png", s.now)
	if err != nil {
		return err
	}
	if err := s.exec(`
		INSERT INTO media_image (media_id, width, height, alt_text) VALUES ($1, 1280, 720, 'World map')
	`, id); err != nil {
		return err
	}
	s.mediaIDs["cover"] = id

	id, err = s.insertReturning(`
		INSERT INTO media (type, url, created_at) VALUES ($1, $2, $3) RETURNING media_id
	`, models.MediaVideo, "https://cdn.quizroom.example/video/intro.mp4", s.now)
	if err != nil {
		return err
	}
	if err := s.exec(`
		INSERT INTO media_video (media_id, duration_seconds, resolution) VALUES ($1, 94, '1080p')
	`, id); err != nil {
		return err
	}
	s.mediaIDs["intro"] = id

	id, err = s.insertReturning(`
		INSERT INTO media (type, url, created_at) VALUES ($1, $2, $3) RETURNING media_id
	`, models.MediaGif, "https://cdn.quizroom.example/gif/confetti.gif", s.now)
	if err != nil {
		return err
	}
	if err := s.exec(`
		INSERT INTO media_gif (media_id, width, height, loop_count) VALUES ($1, 480, 480, 0)
	`, id); err != nil {
		return err
	}
	s.mediaIDs["confetti"] = id

	return nil
}

func (s *seeder) plans() error {
	s.planIDs = make(map[string]int64)
	for _, p := range []struct {
		name  string
		price float64
		desc  string
	}{
		{"free", 0, "Up to 3 quizzes, 10 players per session"},
		{"pro", 79, "Unlimited quizzes, 100 players per session"},
		{"school", 499, "Site licence with teacher management"},
	} {
		id, err := s.insertReturning(`
			INSERT INTO subscription_plan (name, price, description) VALUES ($1, $2, $3) RETURNING plan_id
		`, p.name, p.price, p.desc)
		if err != nil {
			return err
		}
		s.planIDs[p.name] = id
	}

	featureIDs := make(map[string]int64)
	for _, f := range []struct{ name, desc string }{
		{"max_quizzes", "Quizzes a user may keep"},
		{"max_players", "Players per live session"},
		{"ai_generation", "Generate quizzes from a prompt"},
	} {
		id, err := s.insertReturning(`
			INSERT INTO features (name, description) VALUES ($1, $2) RETURNING feature_id
		`, f.name, f.desc)
		if err != nil {
			return err
		}
		featureIDs[f.name] = id
	}

	overrides := []struct{ plan, feature, value string }{
		{"free", "max_quizzes", "3"},
		{"free", "max_players", "10"},
		{"pro", "max_players", "100"},
		{"pro", "ai_generation", "true"},
		{"school", "ai_generation", "true"},
	}
	for _, o := range overrides {
		if err := s.exec(`
			INSERT INTO subscription_features (plan_id, feature_id, value) VALUES ($1, $2, $3)
		`, s.planIDs[o.plan], featureIDs[o.feature], o.value); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) users() error {
	s.userIDs = make(map[string]int64)
	for _, u := range []struct {
		key, username, email string
		verified             bool
	}{
		{"admin", "admin", "admin@quizroom.example", true},
		{"anna", "anna.berg", "anna.berg@skola.example", true},
		{"erik", "erik.lund", "erik.lund@skola.example", false},
		{"acme", "acme-ab", "it@acme.example", true},
	} {
		id, err := s.insertReturning(`
			INSERT INTO users (username, email, password_hash, language, is_verified, is_active, created_at)
			VALUES ($1, $2, $3, $4, $5, TRUE, $6)
			RETURNING user_id
		`, u.username, u.email, "$2a$10$seedseedseedseedseedse", models.DefaultLanguage, u.verified, s.now)
		if err != nil {
			return err
		}
		s.userIDs[u.key] = id
	}

	if err := s.exec(`
		INSERT INTO user_teacher (user_id, school_name, subject) VALUES ($1, 'Vasaskolan', 'Geography')
	`, s.userIDs["anna"]); err != nil {
		return err
	}
	if err := s.exec(`
		INSERT INTO user_student (user_id, teacher_id, grade_level) VALUES ($1, $2, '7')
	`, s.userIDs["erik"], s.userIDs["anna"]); err != nil {
		return err
	}
	if err := s.exec(`
		INSERT INTO user_company (user_id, company_name, org_number) VALUES ($1, 'Acme AB', '556677-8899')
	`, s.userIDs["acme"]); err != nil {
		return err
	}

	assignments := []struct{ user, role string }{
		{"admin", "admin"},
		{"anna", "teacher"},
		{"erik", "student"},
	}
	for _, a := range assignments {
		if err := s.exec(`
			INSERT INTO user_role (user_id, role_id) VALUES ($1, $2)
		`, s.userIDs[a.user], s.roleIDs[a.role]); err != nil {
			return err
		}
	}
	return nil
}

// subscriptions inserts the subscription and then back-patches the user's
// current_subscription_id, same two-phase write the billing handler does.
func (s *seeder) subscriptions() error {
	subID, err := s.insertReturning(`
		INSERT INTO subscription (user_id, plan_id, status, started_at)
		VALUES ($1, $2, $3, $4)
		RETURNING subscription_id
	`, s.userIDs["anna"], s.planIDs["pro"], models.SubStatusActive, s.now)
	if err != nil {
		return err
	}
	if err := s.exec(`
		UPDATE users SET current_subscription_id = $1 WHERE user_id = $2
	`, subID, s.userIDs["anna"]); err != nil {
		return err
	}
	return s.exec(`
		INSERT INTO payment (subscription_id, amount, transaction_ref, paid_at)
		VALUES ($1, 79, $2, $3)
	`, subID, auth.NewStorageKey(), s.now)
}

// The baseline methods ship with the schema; look their IDs up instead
// of inserting.
func (s *seeder) creationMethods() error {
	s.methodIDs = make(map[string]int64)
	for _, name := range []string{"manual", "ai_generated", "imported"} {
		var id int64
		if err := s.tx.QueryRow(`
			SELECT creation_method_id FROM creation_method WHERE name = $1
		`, name).Scan(&id); err != nil {
			return fmt.Errorf("look up creation method %s: %w", name, err)
		}
		s.methodIDs[name] = id
	}
	return nil
}

func (s *seeder) quizzes() error {
	quizID, err := s.insertReturning(`
		INSERT INTO quiz (name, creation_method_id, creator_id, media_id)
		VALUES ($1, $2, $3, $4)
		RETURNING quiz_id
	`, "European Capitals", s.methodIDs["manual"], s.userIDs["anna"], s.mediaIDs["cover"])
	if err != nil {
		return err
	}
	s.quizID = quizID

	type answer struct {
		text    string
		correct bool
	}
	questions := []struct {
		text         string
		questionType string
		sortOrder    int
		answers      []answer
	}{
		{
			text: "What is the capital of Sweden?", questionType: models.QuestionMultipleChoice, sortOrder: 1,
			answers: []answer{{"Stockholm", true}, {"Gothenburg", false}, {"Oslo", false}, {"Malmö", false}},
		},
		{
			text: "Reykjavík is the northernmost capital in Europe.", questionType: models.QuestionBoolean, sortOrder: 2,
			answers: []answer{{"True", true}, {"False", false}},
		},
		{
			text: "How many countries border Germany?", questionType: models.QuestionSlider, sortOrder: 3,
		},
	}

	for _, q := range questions {
		questionID, err := s.insertReturning(`
			INSERT INTO quiz_question (quiz_id, question_text, question_type, time_limit, points, sort_order)
			VALUES ($1, $2, $3, 30, 1000, $4)
			RETURNING question_id
		`, quizID, q.text, q.questionType, q.sortOrder)
		if err != nil {
			return err
		}
		sq := seededQuestion{id: questionID, questionType: q.questionType}
		for i, a := range q.answers {
			answerID, err := s.insertReturning(`
				INSERT INTO quiz_answer (question_id, answer_text, is_correct, sort_order)
				VALUES ($1, $2, $3, $4)
				RETURNING answer_id
			`, questionID, a.text, a.correct, i+1)
			if err != nil {
				return err
			}
			if a.correct {
				sq.correctAnswer = answerID
			}
		}
		s.questions = append(s.questions, sq)
	}
	return nil
}

func (s *seeder) stories() error {
	storyID, err := s.insertReturning(`
		INSERT INTO story (creator_id, title, created_at)
		VALUES ($1, $2, $3)
		RETURNING story_id
	`, s.userIDs["anna"], "Why Capitals Move", s.now)
	if err != nil {
		return err
	}
	s.storyID = storyID

	blocks := []struct {
		sortOrder int
		body      string
		media     string
	}{
		{1, "Capitals are not fixed: countries relocate them for politics, geography or growth.", ""},
		{2, "Watch how Brasília was planned from scratch in the 1950s.", "intro"},
		{3, "Next up: test yourself on the capitals of Europe.", ""},
	}
	for _, b := range blocks {
		var mediaID any
		if b.media != "" {
			mediaID = s.mediaIDs[b.media]
		}
		if err := s.exec(`
			INSERT INTO story_content (story_id, sort_order, body, media_id) VALUES ($1, $2, $3, $4)
		`, storyID, b.sortOrder, b.body, mediaID); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) courses() error {
	courseID, err := s.insertReturning(`
		INSERT INTO course (creator_id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING course_id
	`, s.userIDs["anna"], "Geography 7", "Autumn term geography for grade 7", s.now)
	if err != nil {
		return err
	}

	contents := []struct {
		contentType string
		contentID   int64
		order       int
	}{
		{models.ContentStory, s.storyID, 1},
		{models.ContentQuiz, s.quizID, 2},
		{models.ContentMedia, s.mediaIDs["intro"], 3},
	}
	for _, c := range contents {
		if err := s.exec(`
			INSERT INTO course_content (course_id, content_type, content_id, content_order)
			VALUES ($1, $2, $3, $4)
		`, courseID, c.contentType, c.contentID, c.order); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) sessions() error {
	sessionID, err := s.insertReturning(`
		INSERT INTO game_session (quiz_id, host_id, access_code, started_at)
		VALUES ($1, $2, $3, $4)
		RETURNING session_id
	`, s.quizID, s.userIDs["anna"], "SEED42", s.now)
	if err != nil {
		return err
	}
	s.sessionID = sessionID

	erikID := s.userIDs["erik"]
	participants := []struct {
		userID   any
		nickname string
	}{
		{erikID, "erik"},
		{nil, "blixten"},
	}
	var participantIDs []int64
	for _, p := range participants {
		id, err := s.insertReturning(`
			INSERT INTO session_participant (session_id, user_id, nickname, joined_at)
			VALUES ($1, $2, $3, $4)
			RETURNING participant_id
		`, sessionID, p.userID, p.nickname, s.now)
		if err != nil {
			return err
		}
		participantIDs = append(participantIDs, id)
	}

	// First participant answers the first question correctly.
	first := s.questions[0]
	if err := s.exec(`
		INSERT INTO participant_answer (participant_id, question_id, chosen_answer_id, is_correct, points_awarded, answered_at)
		VALUES ($1, $2, $3, TRUE, 1000, $4)
	`, participantIDs[0], first.id, first.correctAnswer, s.now); err != nil {
		return err
	}
	return s.exec(`
		UPDATE session_participant SET score = 1000 WHERE participant_id = $1
	`, participantIDs[0])
}

func (s *seeder) documents() error {
	return s.exec(`
		INSERT INTO documents (user_id, file_name, file_size, mime_type, storage_key, uploaded_at)
		VALUES ($1, 'lesson-plan.pdf', 482133, 'application/pdf', $2, $3)
	`, s.userIDs["anna"], auth.NewStorageKey(), s.now)
}

func (s *seeder) supportCases() error {
	return s.exec(`
		INSERT INTO support_case (user_id, subject, body, status, created_at)
		VALUES ($1, 'Cannot verify email', 'The verification link expires immediately.', $2, $3)
	`, s.userIDs["erik"], models.CaseOpen, s.now)
}
