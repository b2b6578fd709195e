// ABOUTME: Main entry point for the assistant HTTP server
// ABOUTME: Wires config, LLM client, index, memory, and the chat API
package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/harper/tablescout/internal/api"
	"github.com/harper/tablescout/internal/assistant"
	"github.com/harper/tablescout/internal/config"
	"github.com/harper/tablescout/internal/index"
	"github.com/harper/tablescout/internal/llm"
	"github.com/harper/tablescout/internal/memory"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY not set")
	}

	client, err := llm.NewOpenAIClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		log.Fatalf("Failed to create OpenAI client: %v", err)
	}

	indexPath := cfg.IndexPath
	if indexPath == "" {
		indexPath = index.DefaultPath()
	}
	store, err := index.Open(indexPath, client)
	if err != nil {
		log.Fatalf("Failed to open restaurant index: %v", err)
	}
	defer store.Close()
	if store.Len() == 0 {
		log.Printf("Warning: restaurant index is empty - run `tablescout index` first")
	}

	a := assistant.New(
		client, client, client, store,
		memory.NewResponseCache(cfg.MaxCacheEntries),
		memory.NewConversationMemory(cfg.MaxSessions, cfg.MaxHistoryPerSession),
		assistant.Config{
			RetrievalTopK:        cfg.RetrievalTopK,
			MaxMatches:           cfg.MaxMatches,
			AnalysisHistoryLimit: cfg.AnalysisHistoryLimit,
			ChatHistoryLimit:     cfg.ChatHistoryLimit,
		},
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	handler := api.NewHandler(a, cfg.RateLimitRPS, cfg.RateLimitBurst)
	handler.Register(e)

	log.Printf("Assistant server starting on %s...", cfg.ListenAddr)
	if err := e.Start(cfg.ListenAddr); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
