package infra

import (
	"fmt"
	"os"
	"strconv"
)

// Config is read once at startup. Missing required settings are fatal
// there; nothing falls back to a degraded mode at request time.
type Config struct {
	Port        string
	PostgresURL string

	OpenAIAPIKey        string
	EmbeddingModel      string
	EmbeddingDimensions int
	CompletionModel     string

	GeminiAPIKey string
	GeminiModel  string

	SanityProjectID     string
	SanityDataset       string
	SanityAPIVersion    string
	SanityAPIToken      string
	SanityWebhookSecret string

	JWTSecret string

	MaxSearchResults    int
	SimilarityThreshold float64
	PreferLocalBusiness bool
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		PostgresURL:         os.Getenv("POSTGRES_URL"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		CompletionModel:     getEnv("COMPLETION_MODEL", "gpt-4o-mini"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		GeminiModel:         getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		SanityProjectID:     os.Getenv("SANITY_PROJECT_ID"),
		SanityDataset:       getEnv("SANITY_DATASET", "production"),
		SanityAPIVersion:    getEnv("SANITY_API_VERSION", "2024-01-01"),
		SanityAPIToken:      os.Getenv("SANITY_API_TOKEN"),
		SanityWebhookSecret: os.Getenv("SANITY_WEBHOOK_SECRET"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
	}

	cfg.EmbeddingDimensions = getEnvInt("EMBEDDING_DIMENSIONS", 1536)
	cfg.MaxSearchResults = getEnvInt("MAX_SEARCH_RESULTS", 5)
	cfg.PreferLocalBusiness = os.Getenv("PREFER_LOCAL_BUSINESS") == "true"

	threshold := getEnv("SIMILARITY_THRESHOLD", "0.7")
	parsed, err := strconv.ParseFloat(threshold, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SIMILARITY_THRESHOLD %q: %w", threshold, err)
	}
	cfg.SimilarityThreshold = parsed

	if cfg.PostgresURL == "" {
		return nil, fmt.Errorf("POSTGRES_URL is required")
	}
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.SanityProjectID == "" {
		return nil, fmt.Errorf("SANITY_PROJECT_ID is required")
	}
	if cfg.SanityWebhookSecret == "" {
		return nil, fmt.Errorf("SANITY_WEBHOOK_SECRET is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
