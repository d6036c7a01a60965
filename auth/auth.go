// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidHostKey          = errors.New("invalid host key")
	ErrInvalidParticipantToken = errors.New("invalid participant token")
)

// Access codes avoid 0/O, 1/I and vowels: unambiguous when read aloud, and
// no accidental words.
const accessCodeAlphabet = "23456789BCDFGHJKMNPQRSTVWXZ"

// AccessCodeLength is the length of generated session access codes.
const AccessCodeLength = 6

// GenerateAccessCode creates a short human-enterable code for joining a
// game session. Uniqueness is enforced by the game_session table; callers
// retry on collision.
func GenerateAccessCode() (string, error) {
	b := make([]byte, AccessCodeLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate access code: %w", err)
	}
	for i := range b {
		b[i] = accessCodeAlphabet[int(b[i])%len(accessCodeAlphabet)]
	}
	return string(b), nil
}

// GenerateHostKey creates an HMAC-based key for managing a game session.
// Deterministic from the session ID and salt, so validation needs no storage.
func GenerateHostKey(sessionID int64, salt string) string {
	return hmacKey("session:"+strconv.FormatInt(sessionID, 10), salt)
}

// ValidateHostKey checks that the provided host key is valid for the session.
func ValidateHostKey(sessionID int64, hostKey, salt string) error {
	expected := GenerateHostKey(sessionID, salt)
	if !hmac.Equal([]byte(hostKey), []byte(expected)) {
		return ErrInvalidHostKey
	}
	return nil
}

// GenerateParticipantToken creates the token a participant presents when
// submitting answers. Deterministic from the participant ID and salt.
func GenerateParticipantToken(participantID int64, salt string) string {
	return hmacKey("participant:"+strconv.FormatInt(participantID, 10), salt)
}

// ValidateParticipantToken checks a participant token.
func ValidateParticipantToken(participantID int64, token, salt string) error {
	expected := GenerateParticipantToken(participantID, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidParticipantToken
	}
	return nil
}

// NewStorageKey returns a random key for stored objects (document files,
// payment transaction refs).
func NewStorageKey() string {
	return uuid.NewString()
}

func hmacKey(subject, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(subject))
	sum := h.Sum(nil)
	// URL-safe base64 without padding for cleaner keys
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}
