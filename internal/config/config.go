// Package config loads application configuration from the environment,
// with optional .env file support for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Search backend selection values for SEARCH_BACKEND.
const (
	SearchBackendAzure  = "azure"
	SearchBackendQdrant = "qdrant"
)

// Config holds all configuration for the application.
type Config struct {
	// OpenAI-compatible completion and embedding endpoint.
	OpenAIBaseURL  string
	OpenAIAPIKey   string
	ChatModel      string
	EmbeddingModel string

	// SearchBackend selects the document index implementation:
	// "azure" (full text + vector + semantic) or "qdrant" (vector only).
	SearchBackend string

	// Azure AI Search settings, used when SearchBackend is "azure".
	SearchEndpoint  string
	SearchAPIKey    string
	SearchIndex     string
	SourcePageField string
	ContentField    string
	QueryLanguage   string
	QuerySpeller    string

	// Qdrant settings, used when SearchBackend is "qdrant".
	QdrantURL        string
	QdrantCollection string

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root (where go.mod is)
	_ = godotenv.Load() // Try current directory

	// Try to find project root by looking for go.mod
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
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		ChatModel:      getEnv("CHATGPT_MODEL", "gpt-35-turbo"),
		EmbeddingModel: getEnv("EMBEDDING_MODEL", "text-embedding-ada-002"),

		SearchBackend: getEnv("SEARCH_BACKEND", SearchBackendAzure),

		SearchEndpoint:  getEnv("AZURE_SEARCH_ENDPOINT", ""),
		SearchAPIKey:    getEnv("AZURE_SEARCH_API_KEY", ""),
		SearchIndex:     getEnv("AZURE_SEARCH_INDEX", ""),
		SourcePageField: getEnv("KB_FIELDS_SOURCEPAGE", "sourcepage"),
		ContentField:    getEnv("KB_FIELDS_CONTENT", "content"),
		QueryLanguage:   getEnv("QUERY_LANGUAGE", "zh-cn"),
		QuerySpeller:    getEnv("QUERY_SPELLER", "none"),

		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "documents"),

		APIPort:   getEnv("API_PORT", "9000"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	logLevel, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = logLevel

	// Validate required fields
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}

	switch cfg.SearchBackend {
	case SearchBackendAzure:
		if cfg.SearchEndpoint == "" {
			return nil, fmt.Errorf("AZURE_SEARCH_ENDPOINT is required when SEARCH_BACKEND is %q", SearchBackendAzure)
		}
		if cfg.SearchAPIKey == "" {
			return nil, fmt.Errorf("AZURE_SEARCH_API_KEY is required when SEARCH_BACKEND is %q", SearchBackendAzure)
		}
		if cfg.SearchIndex == "" {
			return nil, fmt.Errorf("AZURE_SEARCH_INDEX is required when SEARCH_BACKEND is %q", SearchBackendAzure)
		}
	case SearchBackendQdrant:
		if cfg.QdrantURL == "" {
			return nil, fmt.Errorf("QDRANT_URL is required when SEARCH_BACKEND is %q", SearchBackendQdrant)
		}
	default:
		return nil, fmt.Errorf("SEARCH_BACKEND must be %q or %q, got %q", SearchBackendAzure, SearchBackendQdrant, cfg.SearchBackend)
	}

	return cfg, nil
}

// parseLogLevel maps a LOG_LEVEL value to a slog level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be debug, info, warn or error, got %q", level)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
