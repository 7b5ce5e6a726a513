package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/indepthg/gita-qa/internal/qa"
)

// Config holds all configuration for the application.
type Config struct {
	DBPath string

	LLMBaseURL      string
	LLMModelName    string
	LLMAPIKey       string
	LLMPreloadModel bool

	EmbeddingBaseURL   string
	EmbeddingModelName string

	// Qdrant is optional: semantic recall is enabled only when QDRANT_URL
	// is set. With it unset the engine answers from full-text search alone.
	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int

	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	DefaultTopic   string
	NoMatchMessage string
	AnswerTiers    []string
	RegenPause     time.Duration
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		DBPath:             getEnv("DB_PATH", "./data/gita-qa.db"),
		LLMBaseURL:         getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:       getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		LLMAPIKey:          getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		QdrantURL:          getEnv("QDRANT_URL", ""),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "verses"),
		APIPort:            getEnv("API_PORT", "9000"),
		DefaultTopic:       getEnv("TOPIC_DEFAULT", "gita"),
		NoMatchMessage:     getEnv("NO_MATCH_MESSAGE", qa.DefaultNoMatchMessage),
	}

	cfg.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", "text"))
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json")
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	preload := getEnv("LLM_PRELOAD_MODEL", "false")
	cfg.LLMPreloadModel, err = strconv.ParseBool(preload)
	if err != nil {
		return nil, fmt.Errorf("LLM_PRELOAD_MODEL must be a boolean: %w", err)
	}

	// Vector size must match the embeddings model output, so it is required
	// whenever Qdrant is configured. A size change means recreating the
	// collection.
	if cfg.QdrantURL != "" {
		vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
		if vectorSizeStr == "" {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required when QDRANT_URL is set")
		}
		vectorSize, err := strconv.Atoi(vectorSizeStr)
		if err != nil {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
		}
		if vectorSize <= 0 {
			return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
		}
		cfg.QdrantVectorSize = vectorSize
	}

	cfg.AnswerTiers = splitList(getEnv("ANSWER_TIERS", "long,short"))
	if len(cfg.AnswerTiers) == 0 {
		return nil, fmt.Errorf("ANSWER_TIERS must list at least one tier")
	}

	pauseStr := getEnv("REGEN_PAUSE", "0s")
	cfg.RegenPause, err = time.ParseDuration(pauseStr)
	if err != nil {
		return nil, fmt.Errorf("REGEN_PAUSE must be a duration like 500ms: %w", err)
	}
	if cfg.RegenPause < 0 {
		return nil, fmt.Errorf("REGEN_PAUSE must not be negative")
	}

	// Create ./data directory if it doesn't exist (for future DB file)
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma-separated value, trimming blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
