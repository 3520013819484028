// Package config loads environment-driven settings for the debate engine.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	for _, env := range []string{"OPENAI_API_KEY"} {
		if os.Getenv(env) == "" {
			log.Printf("Warning: %s environment variable not set\n", env)
		}
	}
}

// Settings is the typed view of the process environment.
type Settings struct {
	NATSUrl           string
	APIPort           int
	DataDir           string
	MaxRounds         int
	ConflictThreshold float64
	VoteWeight        float64
	EvidenceWeight    float64
	FairnessThreshold float64
	AvailableModels   []string // empty means all backends considered available
}

// Load reads settings from the environment with defaults.
func Load() Settings {
	return Settings{
		NATSUrl:           envString("NATS_URL", "nats://localhost:4222"),
		APIPort:           envInt("SYMPOSIUM_API_PORT", 8080),
		DataDir:           envString("SYMPOSIUM_DATA_DIR", "./data"),
		MaxRounds:         envInt("SYMPOSIUM_MAX_ROUNDS", 3),
		ConflictThreshold: envFloat("SYMPOSIUM_CONFLICT_THRESHOLD", 7.0),
		VoteWeight:        envFloat("SYMPOSIUM_VOTE_WEIGHT", 0.6),
		EvidenceWeight:    envFloat("SYMPOSIUM_EVIDENCE_WEIGHT", 0.4),
		FairnessThreshold: envFloat("SYMPOSIUM_FAIRNESS_THRESHOLD", 0.85),
		AvailableModels:   envList("SYMPOSIUM_AVAILABLE_MODELS"),
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Warning: invalid %s value %q, using %d", key, v, fallback)
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("Warning: invalid %s value %q, using %g", key, v, fallback)
	}
	return fallback
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
