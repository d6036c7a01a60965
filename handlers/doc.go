// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quizroom API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - UserHandler: Accounts, profile specializations, role assignment
  - RoleHandler: Roles, permissions, and grants
  - MediaHandler: Media rows with their image/video/gif subtype rows
  - BillingHandler: Plans, features, subscriptions, payments
  - QuizHandler: Quizzes, questions, and answers
  - StoryHandler: Stories and their ordered content blocks
  - CourseHandler: Courses and their polymorphic content entries
  - SessionHandler: Live game sessions, participants, and answers
  - DocumentHandler: Uploaded documents and support cases

Handlers are created via constructor functions that accept *sql.DB and Config:

	userHandler := handlers.NewUserHandler(db, cfg)

# Game Flow

A host starts a session for a playable quiz and keeps the returned key:

	POST /sessions                 → CreateSession (returns host_key)
	GET  /sessions/code/{code}     → GetSessionByCode
	POST /sessions/{id}/join       → JoinSession (returns participant_token)
	POST /sessions/{id}/.../answers → SubmitAnswer
	POST /sessions/{id}/advance    → AdvanceQuestion (host)
	POST /sessions/{id}/end        → EndSession (host)
	GET  /sessions/{id}/leaderboard → Leaderboard

Host operations require the X-Host-Key header; answer submission requires
X-Participant-Token. Both keys are deterministic HMACs (see package auth),
so nothing secret is stored server-side.

# Scoring

Answer correctness and points are snapshotted into participant_answer at
submission time. Editing a quiz afterwards never rewrites history. Slider
questions record the submitted value with zero points; the host awards
points manually through the score endpoint.

# Error Handling

Handlers translate constraint violations via the db package: unique
violations become 409, foreign key and check violations become 400.
Everything else is a 500 with a generic message; details go to the log,
not the client.
*/
package handlers
