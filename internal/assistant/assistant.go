// ABOUTME: Assistant wires the classifier, router, and handlers into one pipeline
// ABOUTME: Collaborator interfaces are declared here, consumer-side
package assistant

import (
	"context"
	"log/slog"

	"github.com/harper/tablescout/internal/memory"
	"github.com/harper/tablescout/internal/models"
)

// TextGenerator produces a complete reply in one call
type TextGenerator interface {
	Generate(ctx context.Context, systemPrompt string, history []models.Message, userContent string, temperature float32) (string, error)
}

// StreamingGenerator produces a reply while pushing text fragments onto a
// channel, returning the accumulated full text
type StreamingGenerator interface {
	GenerateStream(ctx context.Context, systemPrompt string, history []models.Message, userContent string, temperature float32, tokens chan<- string) (string, error)
}

// QueryAnalyzer runs the structured intent classification and extraction call
type QueryAnalyzer interface {
	AnalyzeQuery(ctx context.Context, message, historyContext string) (*models.AnalysisResult, error)
}

// Retriever returns ranked candidate documents for a text query. It may
// return fewer than topK results and may repeat restaurant ids.
type Retriever interface {
	Search(ctx context.Context, query string, topK int) ([]models.Document, error)
}

// Config holds the assistant's tunable limits
type Config struct {
	RetrievalTopK        int     // candidates fetched per retrieval call
	MaxMatches           int     // unique matches kept after dedup
	AnalysisHistoryLimit int     // prior turns given to the analyzer
	ChatHistoryLimit     int     // prior turns given to reply generation
	ReplyTemperature     float32 // temperature for reply generation
}

// DefaultConfig returns the standard assistant limits
func DefaultConfig() Config {
	return Config{
		RetrievalTopK:        5,
		MaxMatches:           3,
		AnalysisHistoryLimit: 5,
		ChatHistoryLimit:     3,
		ReplyTemperature:     0.2,
	}
}

// Assistant is the conversational workflow orchestrator. One instance is
// shared by all requests; the response cache and conversation memory are the
// only mutable state, each guarded by its own lock.
type Assistant struct {
	gen           TextGenerator
	streamGen     StreamingGenerator
	analyzer      QueryAnalyzer
	retriever     Retriever
	cache         *memory.ResponseCache
	conversations *memory.ConversationMemory
	cfg           Config
	log           *slog.Logger
}

// New creates an Assistant. Zero-valued Config fields fall back to defaults.
func New(gen TextGenerator, streamGen StreamingGenerator, analyzer QueryAnalyzer, retriever Retriever, cache *memory.ResponseCache, conversations *memory.ConversationMemory, cfg Config) *Assistant {
	defaults := DefaultConfig()
	if cfg.RetrievalTopK <= 0 {
		cfg.RetrievalTopK = defaults.RetrievalTopK
	}
	if cfg.MaxMatches <= 0 {
		cfg.MaxMatches = defaults.MaxMatches
	}
	if cfg.AnalysisHistoryLimit <= 0 {
		cfg.AnalysisHistoryLimit = defaults.AnalysisHistoryLimit
	}
	if cfg.ChatHistoryLimit <= 0 {
		cfg.ChatHistoryLimit = defaults.ChatHistoryLimit
	}
	if cfg.ReplyTemperature <= 0 {
		cfg.ReplyTemperature = defaults.ReplyTemperature
	}

	return &Assistant{
		gen:           gen,
		streamGen:     streamGen,
		analyzer:      analyzer,
		retriever:     retriever,
		cache:         cache,
		conversations: conversations,
		cfg:           cfg,
		log:           slog.With("component", "assistant"),
	}
}

// replyGenerator is the generation capability a single pipeline run uses for
// its handler's reply. The streaming and non-streaming entry points bind
// different implementations explicitly; nothing shared is ever reassigned.
type replyGenerator func(ctx context.Context, systemPrompt string, history []models.Message, userContent string) (string, error)
