// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateAccessCode(t *testing.T) {
	code, err := GenerateAccessCode()
	if err != nil {
		t.Fatalf("GenerateAccessCode() error = %v", err)
	}
	if len(code) != AccessCodeLength {
		t.Errorf("GenerateAccessCode() length = %d, want %d", len(code), AccessCodeLength)
	}
	for _, c := range code {
		if !strings.ContainsRune(accessCodeAlphabet, c) {
			t.Errorf("GenerateAccessCode() contains char outside alphabet: %c", c)
		}
	}

	// Two codes colliding is possible but vanishingly unlikely
	other, _ := GenerateAccessCode()
	if code == other {
		t.Error("GenerateAccessCode() produced duplicate codes (extremely unlikely)")
	}
}

func TestGenerateHostKey(t *testing.T) {
	tests := []struct {
		name      string
		sessionID int64
		salt      string
	}{
		{"standard", 42, "secret-salt"},
		{"zero session", 0, "salt"},
		{"empty salt", 7, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateHostKey(tt.sessionID, tt.salt)

			if key == "" {
				t.Error("GenerateHostKey() returned empty string")
			}

			// Deterministic
			if key != GenerateHostKey(tt.sessionID, tt.salt) {
				t.Error("GenerateHostKey() is not deterministic")
			}

			// Different sessions get different keys
			if key == GenerateHostKey(tt.sessionID+1, tt.salt) {
				t.Error("GenerateHostKey() produced same key for different sessions")
			}
		})
	}
}

func TestValidateHostKey(t *testing.T) {
	const salt = "test-salt"
	key := GenerateHostKey(99, salt)

	if err := ValidateHostKey(99, key, salt); err != nil {
		t.Errorf("ValidateHostKey() rejected valid key: %v", err)
	}
	if err := ValidateHostKey(100, key, salt); err != ErrInvalidHostKey {
		t.Errorf("ValidateHostKey() accepted key for wrong session, err = %v", err)
	}
	if err := ValidateHostKey(99, key, "other-salt"); err != ErrInvalidHostKey {
		t.Errorf("ValidateHostKey() accepted key under wrong salt, err = %v", err)
	}
	if err := ValidateHostKey(99, "", salt); err != ErrInvalidHostKey {
		t.Errorf("ValidateHostKey() accepted empty key, err = %v", err)
	}
}

func TestParticipantToken(t *testing.T) {
	const salt = "participant-salt"
	token := GenerateParticipantToken(5, salt)

	if token == "" {
		t.Fatal("GenerateParticipantToken() returned empty string")
	}
	if err := ValidateParticipantToken(5, token, salt); err != nil {
		t.Errorf("ValidateParticipantToken() rejected valid token: %v", err)
	}
	if err := ValidateParticipantToken(6, token, salt); err != ErrInvalidParticipantToken {
		t.Errorf("ValidateParticipantToken() accepted token for wrong participant, err = %v", err)
	}

	// Host keys and participant tokens live in separate namespaces even
	// with a shared salt
	if GenerateHostKey(5, salt) == token {
		t.Error("host key and participant token collide for same ID and salt")
	}
}

func TestNewStorageKey(t *testing.T) {
	k1 := NewStorageKey()
	k2 := NewStorageKey()

	if k1 == "" {
		t.Fatal("NewStorageKey() returned empty string")
	}
	if k1 == k2 {
		t.Error("NewStorageKey() produced duplicate keys")
	}
	if len(k1) != 36 {
		t.Errorf("NewStorageKey() length = %d, want 36 (UUID)", len(k1))
	}
}
