// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("DATABASE_URL", "postgres://test")
	os.Setenv("HOST_KEY_SALT", "test-salt")
	os.Setenv("PARTICIPANT_SALT", "test-participant")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseDriver != "postgres" {
		t.Errorf("expected default driver postgres, got %s", cfg.DatabaseDriver)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "test.db", "-t", "sqlite", "-host-salt", "s1", "-participant-salt", "s2"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseDriver != "sqlite" {
		t.Errorf("expected driver sqlite, got %s", cfg.DatabaseDriver)
	}
}

func TestParseFlags_MissingDatabaseURL(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-host-salt", "s1", "-participant-salt", "s2"})
	if err == nil {
		t.Error("expected error for missing database URL")
	}
}

func TestParseFlags_InvalidDriver(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-d", "test.db", "-t", "mysql", "-host-salt", "s1", "-participant-salt", "s2"})
	if err == nil {
		t.Error("expected error for unsupported driver")
	}
}

func TestParseFlags_MissingSalts(t *testing.T) {
	os.Clearenv()

	_, err := ParseFlags([]string{"-d", "test.db"})
	if err == nil {
		t.Error("expected error for missing salts")
	}

	_, err = ParseFlags([]string{"-d", "test.db", "-host-salt", "s1"})
	if err == nil {
		t.Error("expected error for missing participant salt")
	}
}

func TestParseFlags_SeedFlag(t *testing.T) {
	os.Clearenv()

	cfg, err := ParseFlags([]string{"-d", "test.db", "-t", "sqlite", "-host-salt", "s1", "-participant-salt", "s2", "-seed"})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Seed {
		t.Error("expected Seed to be set")
	}

	cfg, err = ParseFlags([]string{"-d", "test.db", "-t", "sqlite", "-host-salt", "s1", "-participant-salt", "s2"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed {
		t.Error("expected Seed to default to false")
	}
}
