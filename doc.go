// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quizroom API server.

Quizroom is a classroom quiz platform: teachers author quizzes, stories
and courses, then host live game sessions that players join with a short
access code and play for points.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 3270 -d "postgres://..."

SQLite works for local development:

	go run main.go -t sqlite -d quizroom.db -seed

# Configuration

Required settings:

  - DATABASE_URL (-d): Database connection string or file path
  - HOST_KEY_SALT (-host-salt): Secret for session host key HMAC
  - PARTICIPANT_SALT (-participant-salt): Secret for participant tokens

Optional settings:

  - PORT (-p): Server port (default: 3270)
  - DATABASE_DRIVER (-t): postgres (default) or sqlite
  - -seed: Load baseline fixtures after schema creation

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (users, billing, quizzes, sessions, ...)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Access codes, host keys, participant tokens
  - db: Drivers, schema creation, constraint error translation
  - seed: Development fixtures

The schema is created on startup and is idempotent; existing tables are
left alone.
*/
package main
