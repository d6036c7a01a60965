package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseDriver  string
	HostKeySalt     string
	ParticipantSalt string
	Seed            bool
}

// ParseFlags validates flags, applies .env and environment fallbacks, and
// returns the server configuration.
func ParseFlags(args []string) (Config, error) {
	// Local development keeps secrets in a .env file; absence is fine.
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("quizroom", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseDriver, "t", "", "Database driver (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.HostKeySalt, "host-salt", "", "Host key salt (prefer env)")
	fs.StringVar(&cfg.ParticipantSalt, "participant-salt", "", "Participant token salt (prefer env)")

	// One-shot actions
	fs.BoolVar(&cfg.Seed, "seed", false, "Load baseline fixtures after schema creation")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3270 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseDriver == "" {
		cfg.DatabaseDriver = os.Getenv("DATABASE_DRIVER")
		if cfg.DatabaseDriver == "" {
			cfg.DatabaseDriver = "postgres"
		}
	}
	if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "sqlite" {
		return Config{}, errors.New("database driver must be postgres or sqlite")
	}

	// Secrets - MUST be provided
	if cfg.HostKeySalt == "" {
		cfg.HostKeySalt = os.Getenv("HOST_KEY_SALT")
	}
	if cfg.HostKeySalt == "" {
		return Config{}, errors.New("HOST_KEY_SALT required")
	}

	if cfg.ParticipantSalt == "" {
		cfg.ParticipantSalt = os.Getenv("PARTICIPANT_SALT")
	}
	if cfg.ParticipantSalt == "" {
		return Config{}, errors.New("PARTICIPANT_SALT required")
	}

	return cfg, nil
}
