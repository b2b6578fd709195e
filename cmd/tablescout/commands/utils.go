// ABOUTME: Shared bootstrap and helpers for CLI commands
// ABOUTME: Assembles the assistant from config, LLM client, index, and memory
package commands

import (
	"fmt"

	"github.com/harper/tablescout/internal/assistant"
	"github.com/harper/tablescout/internal/config"
	"github.com/harper/tablescout/internal/index"
	"github.com/harper/tablescout/internal/llm"
	"github.com/harper/tablescout/internal/memory"
)

// runtime bundles the assembled components a command needs
type runtime struct {
	cfg           *config.Config
	client        *llm.OpenAIClient
	store         *index.Store
	conversations *memory.ConversationMemory
	assistant     *assistant.Assistant
}

// close releases held resources
func (r *runtime) close() {
	if r.store != nil {
		_ = r.store.Close()
	}
}

// buildRuntime loads config and wires up the full assistant stack
func buildRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	client, err := llm.NewOpenAIClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: cfg.EmbeddingModel,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("creating OpenAI client: %w", err)
	}

	indexPath := cfg.IndexPath
	if indexPath == "" {
		indexPath = index.DefaultPath()
	}
	store, err := index.Open(indexPath, client)
	if err != nil {
		return nil, fmt.Errorf("opening restaurant index: %w", err)
	}

	conversations := memory.NewConversationMemory(cfg.MaxSessions, cfg.MaxHistoryPerSession)
	a := assistant.New(
		client, client, client, store,
		memory.NewResponseCache(cfg.MaxCacheEntries),
		conversations,
		assistant.Config{
			RetrievalTopK:        cfg.RetrievalTopK,
			MaxMatches:           cfg.MaxMatches,
			AnalysisHistoryLimit: cfg.AnalysisHistoryLimit,
			ChatHistoryLimit:     cfg.ChatHistoryLimit,
		},
	)

	return &runtime{cfg: cfg, client: client, store: store, conversations: conversations, assistant: a}, nil
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
