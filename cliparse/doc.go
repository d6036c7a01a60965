// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first if present.

# Config Fields

  - Port: Server listen port (default: 3270)
  - DatabaseURL: Connection string (required)
  - DatabaseDriver: postgres or sqlite (default: postgres)
  - HostKeySalt: Secret for session host key HMAC (required)
  - ParticipantSalt: Secret for participant token HMAC (required)
  - Seed: Load baseline fixtures on startup

# CLI Flags

	-p                 Server port
	-d                 Database URL
	-t                 Database driver
	-host-salt         Host key salt
	-participant-salt  Participant token salt
	-seed              Load baseline fixtures

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_DRIVER  → -t
	HOST_KEY_SALT    → -host-salt
	PARTICIPANT_SALT → -participant-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - DATABASE_DRIVER must be postgres or sqlite
  - HOST_KEY_SALT must be provided
  - PARTICIPANT_SALT must be provided
*/
package cliparse
