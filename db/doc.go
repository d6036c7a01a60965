// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation, and the mapping of
driver errors onto the application's integrity-error taxonomy.

# Drivers

Two drivers are supported:

	db.Open(db.DriverPostgres, "postgres://...")  // production
	db.Open(db.DriverSQLite, "file:dev.db")       // development and tests

SQLite connections get foreign_keys(1) and busy_timeout pragmas appended to
the DSN so cascade behavior matches PostgreSQL.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn, db.DriverPostgres); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is maintained in PostgreSQL flavor; SchemaFor rewrites it for SQLite
(SERIAL becomes INTEGER PRIMARY KEY).

# Table Groups

  - role, permission, role_permission: access control
  - media + media_image/media_video/media_gif: discriminated base/subtype pair
  - subscription_plan, features, subscription_features: catalog
  - users + user_student/user_teacher/user_company, user_role: identity
  - subscription, payment: billing
  - creation_method, quiz, quiz_question, quiz_answer, story, story_content,
    course, course_content: content authoring
  - game_session, session_participant, participant_answer: live gameplay
  - documents, support_case: ancillary

# Delete Behavior

Ownership edges cascade (user → quiz → question → answer, story → content,
session → participant → answer). Reference edges null out instead:
user_student.teacher_id, session_participant.user_id, media references on
content, support_case.user_id.

users.current_subscription_id deliberately has no foreign key: it closes a
cycle with subscription and is back-patched in a transaction by the billing
handler.

# Error Taxonomy

Translate converts pq and sqlite constraint errors into sentinels:

	if db.IsUnique(err) { ... }        // duplicate username/email
	if db.IsForeignKey(err) { ... }    // referencing a missing row
	if db.IsCheck(err) { ... }         // value outside an enumerated set
*/
package db
