// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token and key generation for live game sessions.

# Host Keys

Host keys use HMAC-SHA256 to create deterministic, verifiable keys:

	hostKey := auth.GenerateHostKey(sessionID, salt)
	err := auth.ValidateHostKey(sessionID, hostKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same session ID and salt always produce the same key. This allows
validation without storing the key in the database.

# Participant Tokens

Participants receive a token when joining a session and present it via the
X-Participant-Token header when submitting answers:

	token := auth.GenerateParticipantToken(participantID, salt)
	err := auth.ValidateParticipantToken(participantID, token, salt)

Same HMAC construction as host keys, keyed on the participant ID.

# Access Codes

Access codes are the short codes players type to join a session:

	code, err := auth.GenerateAccessCode()

Six characters from an alphabet without lookalike characters (0/O, 1/I) or
vowels. Codes are random; the game_session table's UNIQUE constraint catches
collisions and the caller retries.

# Storage Keys

Random UUIDs for stored objects:

	key := auth.NewStorageKey()

Used for document storage keys and payment transaction references.
*/
package auth
