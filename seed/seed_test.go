// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package seed

import (
	"testing"

	"github.com/hannalind/quizroom/testutil"
)

func TestRun(t *testing.T) {
	db := testutil.SetupTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	counts := []struct {
		table string
		want  int
	}{
		{"role", 3},
		{"permission", 4},
		{"media", 3},
		{"subscription_plan", 3},
		{"features", 3},
		{"users", 4},
		{"subscription", 1},
		{"payment", 1},
		{"creation_method", 3},
		{"quiz", 1},
		{"quiz_question", 3},
		{"story", 1},
		{"story_content", 3},
		{"course", 1},
		{"course_content", 3},
		{"game_session", 1},
		{"session_participant", 2},
		{"documents", 1},
		{"support_case", 1},
	}

	for _, c := range counts {
		var got int
		if err := db.QueryRow(`SELECT COUNT(*) FROM ` + c.table).Scan(&got); err != nil {
			t.Fatalf("Count %s: %v", c.table, err)
		}
		if got != c.want {
			t.Errorf("Table %s: expected %d rows, got %d", c.table, c.want, got)
		}
	}
}

func TestRun_BackPatchesSubscription(t *testing.T) {
	db := testutil.SetupTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	// The subscribed user's row must point back at the subscription
	var matches int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM users u
		JOIN subscription s ON s.subscription_id = u.current_subscription_id
		WHERE s.user_id = u.user_id
	`).Scan(&matches)
	if err != nil {
		t.Fatal(err)
	}
	if matches != 1 {
		t.Errorf("Expected exactly one user with a back-patched subscription, got %d", matches)
	}
}

func TestRun_SessionIsScored(t *testing.T) {
	db := testutil.SetupTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	// The seeded answer snapshot must agree with the participant's score
	var score, awarded int
	err := db.QueryRow(`
		SELECT sp.score, pa.points_awarded
		FROM session_participant sp
		JOIN participant_answer pa ON pa.participant_id = sp.participant_id
	`).Scan(&score, &awarded)
	if err != nil {
		t.Fatal(err)
	}
	if score != awarded {
		t.Errorf("Expected participant score %d to match awarded points %d", score, awarded)
	}
	if awarded == 0 {
		t.Error("Expected the seeded answer to have earned points")
	}
}

func TestRun_FailsOnSecondRun(t *testing.T) {
	db := testutil.SetupTestDB(t)

	if err := Run(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	// Unique usernames and access codes make reseeding a hard error
	// rather than silent duplication.
	if err := Run(db); err == nil {
		t.Error("Expected second seed run to fail on unique constraints")
	}

	var users int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&users); err != nil {
		t.Fatal(err)
	}
	if users != 4 {
		t.Errorf("Expected failed reseed to leave the original 4 users, got %d", users)
	}
}
