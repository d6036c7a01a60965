// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB, driver string) error {
	ddl, err := SchemaFor(driver)
	if err != nil {
		return err
	}
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SchemaFor returns the DDL for the given driver. The schema is maintained
// once in PostgreSQL flavor; the SQLite variant is a mechanical rewrite.
func SchemaFor(driver string) (string, error) {
	switch driver {
	case DriverPostgres:
		return schema, nil
	case DriverSQLite:
		return sqliteRewriter.Replace(schema), nil
	default:
		return "", fmt.Errorf("unknown database driver %q", driver)
	}
}

// SQLite has no SERIAL; a single-column INTEGER PRIMARY KEY aliases the
// rowid and auto-increments, matching SERIAL semantics closely enough.
var sqliteRewriter = strings.NewReplacer(
	"SERIAL PRIMARY KEY", "INTEGER PRIMARY KEY",
	"BIGINT", "INTEGER",
)

const schema = `
-- Access control
CREATE TABLE IF NOT EXISTS role (
    role_id SERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT
);

CREATE TABLE IF NOT EXISTS permission (
    permission_id SERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT
);

CREATE TABLE IF NOT EXISTS role_permission (
    role_id INTEGER NOT NULL REFERENCES role(role_id) ON DELETE CASCADE,
    permission_id INTEGER NOT NULL REFERENCES permission(permission_id) ON DELETE CASCADE,
    PRIMARY KEY (role_id, permission_id)
);

-- Media: base row with a type discriminant plus exactly one subtype row.
-- The pairing is enforced by the media handler, not by the schema.
CREATE TABLE IF NOT EXISTS media (
    media_id SERIAL PRIMARY KEY,
    type TEXT NOT NULL CHECK (type IN ('image', 'video', 'gif')),
    url TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS media_image (
    media_id INTEGER PRIMARY KEY REFERENCES media(media_id) ON DELETE CASCADE,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    alt_text TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS media_video (
    media_id INTEGER PRIMARY KEY REFERENCES media(media_id) ON DELETE CASCADE,
    duration_seconds INTEGER NOT NULL,
    resolution TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS media_gif (
    media_id INTEGER PRIMARY KEY REFERENCES media(media_id) ON DELETE CASCADE,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    loop_count INTEGER NOT NULL DEFAULT 0
);

-- Subscription catalog
CREATE TABLE IF NOT EXISTS subscription_plan (
    plan_id SERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    price DECIMAL(10,2) NOT NULL,
    description TEXT
);

CREATE TABLE IF NOT EXISTS features (
    feature_id SERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    description TEXT
);

-- Sparse override table: a row exists only for plans that customize a feature.
CREATE TABLE IF NOT EXISTS subscription_features (
    plan_id INTEGER NOT NULL REFERENCES subscription_plan(plan_id) ON DELETE CASCADE,
    feature_id INTEGER NOT NULL REFERENCES features(feature_id) ON DELETE CASCADE,
    value TEXT NOT NULL,
    PRIMARY KEY (plan_id, feature_id)
);

-- Identity. current_subscription_id closes a cycle with subscription and
-- carries no foreign key; the billing handler back-patches it inside the
-- same transaction that inserts the subscription.
CREATE TABLE IF NOT EXISTS users (
    user_id SERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    language TEXT NOT NULL DEFAULT 'sv',
    is_verified BOOLEAN NOT NULL DEFAULT FALSE,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    current_subscription_id INTEGER
);

CREATE TABLE IF NOT EXISTS user_student (
    user_id INTEGER PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE,
    teacher_id INTEGER REFERENCES users(user_id) ON DELETE SET NULL,
    grade_level TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS user_teacher (
    user_id INTEGER PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE,
    school_name TEXT NOT NULL DEFAULT '',
    subject TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS user_company (
    user_id INTEGER PRIMARY KEY REFERENCES users(user_id) ON DELETE CASCADE,
    company_name TEXT NOT NULL,
    org_number TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS user_role (
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    role_id INTEGER NOT NULL REFERENCES role(role_id) ON DELETE CASCADE,
    PRIMARY KEY (user_id, role_id)
);

-- Billing
CREATE TABLE IF NOT EXISTS subscription (
    subscription_id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    plan_id INTEGER NOT NULL REFERENCES subscription_plan(plan_id),
    status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'cancelled', 'expired')),
    started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    expires_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_subscription_user_id ON subscription(user_id);

CREATE TABLE IF NOT EXISTS payment (
    payment_id SERIAL PRIMARY KEY,
    subscription_id INTEGER NOT NULL REFERENCES subscription(subscription_id) ON DELETE CASCADE,
    amount DECIMAL(10,2) NOT NULL,
    transaction_ref TEXT NOT NULL UNIQUE,
    paid_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_payment_subscription_id ON payment(subscription_id);

-- Content authoring
CREATE TABLE IF NOT EXISTS creation_method (
    creation_method_id SERIAL PRIMARY KEY,
    name TEXT NOT NULL UNIQUE
);

-- Quiz creation falls back to 'manual' when no method is given, so the
-- lookup rows ship with the schema rather than with optional seed data.
INSERT INTO creation_method (name) VALUES ('manual'), ('ai_generated'), ('imported')
ON CONFLICT (name) DO NOTHING;

CREATE TABLE IF NOT EXISTS quiz (
    quiz_id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    creation_method_id INTEGER REFERENCES creation_method(creation_method_id) ON DELETE SET NULL,
    creator_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    media_id INTEGER REFERENCES media(media_id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_quiz_creator_id ON quiz(creator_id);

CREATE TABLE IF NOT EXISTS quiz_question (
    question_id SERIAL PRIMARY KEY,
    quiz_id INTEGER NOT NULL REFERENCES quiz(quiz_id) ON DELETE CASCADE,
    question_text TEXT NOT NULL,
    question_type TEXT NOT NULL DEFAULT 'multiple_choice' CHECK (question_type IN ('multiple_choice', 'boolean', 'slider')),
    time_limit INTEGER NOT NULL DEFAULT 30,
    points INTEGER NOT NULL DEFAULT 1000,
    sort_order INTEGER NOT NULL DEFAULT 1,
    media_id INTEGER REFERENCES media(media_id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_quiz_question_quiz_id ON quiz_question(quiz_id);

CREATE TABLE IF NOT EXISTS quiz_answer (
    answer_id SERIAL PRIMARY KEY,
    question_id INTEGER NOT NULL REFERENCES quiz_question(question_id) ON DELETE CASCADE,
    answer_text TEXT NOT NULL,
    is_correct BOOLEAN NOT NULL DEFAULT FALSE,
    sort_order INTEGER NOT NULL DEFAULT 1,
    media_id INTEGER REFERENCES media(media_id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_quiz_answer_question_id ON quiz_answer(question_id);

CREATE TABLE IF NOT EXISTS story (
    story_id SERIAL PRIMARY KEY,
    creator_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    title TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_story_creator_id ON story(creator_id);

CREATE TABLE IF NOT EXISTS story_content (
    content_id SERIAL PRIMARY KEY,
    story_id INTEGER NOT NULL REFERENCES story(story_id) ON DELETE CASCADE,
    sort_order INTEGER NOT NULL DEFAULT 1,
    body TEXT NOT NULL DEFAULT '',
    media_id INTEGER REFERENCES media(media_id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_story_content_story_id ON story_content(story_id);

CREATE TABLE IF NOT EXISTS course (
    course_id SERIAL PRIMARY KEY,
    creator_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    description TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_course_creator_id ON course(creator_id);

-- Polymorphic (content_type, content_id) pair. No foreign key is possible
-- across heterogeneous targets; the course handler validates the target row
-- exists before inserting.
CREATE TABLE IF NOT EXISTS course_content (
    course_content_id SERIAL PRIMARY KEY,
    course_id INTEGER NOT NULL REFERENCES course(course_id) ON DELETE CASCADE,
    content_type TEXT NOT NULL CHECK (content_type IN ('story', 'quiz', 'media')),
    content_id INTEGER NOT NULL,
    content_order INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_course_content_course_id ON course_content(course_id);

-- Live gameplay
CREATE TABLE IF NOT EXISTS game_session (
    session_id SERIAL PRIMARY KEY,
    quiz_id INTEGER NOT NULL REFERENCES quiz(quiz_id) ON DELETE CASCADE,
    host_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    access_code TEXT NOT NULL UNIQUE,
    started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    ended_at TIMESTAMP,
    current_question_index INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_game_session_access_code ON game_session(access_code);

-- user_id is nullable: anonymous players, and deleting a user keeps the
-- participant's score history.
CREATE TABLE IF NOT EXISTS session_participant (
    participant_id SERIAL PRIMARY KEY,
    session_id INTEGER NOT NULL REFERENCES game_session(session_id) ON DELETE CASCADE,
    user_id INTEGER REFERENCES users(user_id) ON DELETE SET NULL,
    nickname TEXT NOT NULL,
    score INTEGER NOT NULL DEFAULT 0,
    joined_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (session_id, nickname)
);

CREATE INDEX IF NOT EXISTS idx_session_participant_session_id ON session_participant(session_id);

-- is_correct/points_awarded are a snapshot taken at answer time so history
-- survives later edits to the quiz.
CREATE TABLE IF NOT EXISTS participant_answer (
    participant_answer_id SERIAL PRIMARY KEY,
    participant_id INTEGER NOT NULL REFERENCES session_participant(participant_id) ON DELETE CASCADE,
    question_id INTEGER NOT NULL REFERENCES quiz_question(question_id) ON DELETE CASCADE,
    chosen_answer_id INTEGER REFERENCES quiz_answer(answer_id) ON DELETE SET NULL,
    slider_value DOUBLE PRECISION,
    is_correct BOOLEAN NOT NULL DEFAULT FALSE,
    points_awarded INTEGER NOT NULL DEFAULT 0,
    answered_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (participant_id, question_id)
);

CREATE INDEX IF NOT EXISTS idx_participant_answer_question_id ON participant_answer(question_id);

-- Ancillary
CREATE TABLE IF NOT EXISTS documents (
    document_id SERIAL PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
    file_name TEXT NOT NULL,
    file_size BIGINT NOT NULL,
    mime_type TEXT NOT NULL,
    storage_key TEXT NOT NULL UNIQUE,
    uploaded_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_documents_user_id ON documents(user_id);

CREATE TABLE IF NOT EXISTS support_case (
    case_id SERIAL PRIMARY KEY,
    user_id INTEGER REFERENCES users(user_id) ON DELETE SET NULL,
    subject TEXT NOT NULL,
    body TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_support_case_user_id ON support_case(user_id);
`
