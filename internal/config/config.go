// ABOUTME: Centralized configuration for the restaurant assistant
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the assistant
type Config struct {
	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	MaxRetries     int
	RetryDelay     time.Duration

	// Data settings
	CatalogPath string
	IndexPath   string

	// Cache and memory bounds
	MaxCacheEntries      int
	MaxSessions          int
	MaxHistoryPerSession int

	// Retrieval and prompt limits
	RetrievalTopK        int
	MaxMatches           int
	AnalysisHistoryLimit int
	ChatHistoryLimit     int

	// HTTP server settings
	ListenAddr     string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		OpenAIKey:            os.Getenv("OPENAI_API_KEY"),
		ChatModel:            getEnv("TABLESCOUT_MODEL", "gpt-3.5-turbo"),
		EmbeddingModel:       getEnv("TABLESCOUT_EMBEDDING_MODEL", "text-embedding-3-small"),
		MaxRetries:           getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:           getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		CatalogPath:          getEnv("TABLESCOUT_CATALOG", "restaurant_data.json"),
		IndexPath:            os.Getenv("TABLESCOUT_INDEX"),
		MaxCacheEntries:      getEnvInt("TABLESCOUT_MAX_CACHE_ENTRIES", 100),
		MaxSessions:          getEnvInt("TABLESCOUT_MAX_SESSIONS", 50),
		MaxHistoryPerSession: getEnvInt("TABLESCOUT_MAX_HISTORY", 15),
		RetrievalTopK:        getEnvInt("TABLESCOUT_RETRIEVAL_TOP_K", 5),
		MaxMatches:           getEnvInt("TABLESCOUT_MAX_MATCHES", 3),
		AnalysisHistoryLimit: getEnvInt("TABLESCOUT_ANALYSIS_HISTORY", 5),
		ChatHistoryLimit:     getEnvInt("TABLESCOUT_CHAT_HISTORY", 3),
		ListenAddr:           getEnv("TABLESCOUT_LISTEN_ADDR", ":8080"),
		RateLimitRPS:         getEnvFloat("TABLESCOUT_RATE_LIMIT_RPS", 5),
		RateLimitBurst:       getEnvInt("TABLESCOUT_RATE_LIMIT_BURST", 10),
	}

	return cfg, cfg.Validate()
}

// Validate checks configuration bounds
func (c *Config) Validate() error {
	if c.MaxCacheEntries <= 0 {
		return fmt.Errorf("TABLESCOUT_MAX_CACHE_ENTRIES must be positive, got %d", c.MaxCacheEntries)
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("TABLESCOUT_MAX_SESSIONS must be positive, got %d", c.MaxSessions)
	}
	if c.MaxHistoryPerSession <= 0 {
		return fmt.Errorf("TABLESCOUT_MAX_HISTORY must be positive, got %d", c.MaxHistoryPerSession)
	}
	if c.MaxMatches <= 0 || c.MaxMatches > c.RetrievalTopK {
		return fmt.Errorf("TABLESCOUT_MAX_MATCHES must be 1-%d, got %d", c.RetrievalTopK, c.MaxMatches)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
