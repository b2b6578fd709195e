// ABOUTME: Tests for chat message assembly and analysis response parsing
// ABOUTME: Exercises code fence stripping and role mapping without API calls
package llm

import (
	"errors"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/harper/tablescout/internal/models"
)

func TestNewOpenAIClientRequiresAPIKey(t *testing.T) {
	if _, err := NewOpenAIClient(&ClientConfig{}); err == nil {
		t.Error("NewOpenAIClient() error = nil, want error for missing API key")
	}
}

func TestNewOpenAIClientDefaultsEmptyModels(t *testing.T) {
	// the wiring the entry points use when only chat settings are configured
	c, err := NewOpenAIClient(&ClientConfig{
		APIKey:     "test-key",
		ChatModel:  "gpt-3.5-turbo",
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewOpenAIClient() error = %v", err)
	}
	if c.embeddingModel != DefaultEmbeddingModel {
		t.Errorf("embeddingModel = %q, want %q", c.embeddingModel, DefaultEmbeddingModel)
	}

	c, err = NewOpenAIClient(&ClientConfig{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("NewOpenAIClient() error = %v", err)
	}
	if c.chatModel != DefaultChatModel {
		t.Errorf("chatModel = %q, want %q", c.chatModel, DefaultChatModel)
	}
}

func TestNewOpenAIClientUsesConfiguredModels(t *testing.T) {
	c, err := NewOpenAIClient(&ClientConfig{
		APIKey:         "test-key",
		ChatModel:      "gpt-4o-mini",
		EmbeddingModel: "text-embedding-3-large",
	})
	if err != nil {
		t.Fatalf("NewOpenAIClient() error = %v", err)
	}
	if c.chatModel != "gpt-4o-mini" {
		t.Errorf("chatModel = %q, want %q", c.chatModel, "gpt-4o-mini")
	}
	if c.embeddingModel != openai.EmbeddingModel("text-embedding-3-large") {
		t.Errorf("embeddingModel = %q, want %q", c.embeddingModel, "text-embedding-3-large")
	}
}

func TestChatMessages(t *testing.T) {
	history := []models.Message{
		{Role: models.RoleUser, Content: "any Thai places?"},
		{Role: models.RoleAssistant, Content: "Try Thai Palace."},
	}

	msgs := chatMessages("you are helpful", history, "what about sushi?")

	if len(msgs) != 4 {
		t.Fatalf("len(msgs) = %d, want 4", len(msgs))
	}
	if msgs[0].Role != openai.ChatMessageRoleSystem || msgs[0].Content != "you are helpful" {
		t.Errorf("msgs[0] = %+v, want system prompt", msgs[0])
	}
	if msgs[1].Role != openai.ChatMessageRoleUser {
		t.Errorf("msgs[1].Role = %q, want user", msgs[1].Role)
	}
	if msgs[2].Role != openai.ChatMessageRoleAssistant {
		t.Errorf("msgs[2].Role = %q, want assistant", msgs[2].Role)
	}
	if msgs[3].Role != openai.ChatMessageRoleUser || msgs[3].Content != "what about sushi?" {
		t.Errorf("msgs[3] = %+v, want trailing user content", msgs[3])
	}
}

func TestChatMessagesNoHistory(t *testing.T) {
	msgs := chatMessages("sys", nil, "hi")
	if len(msgs) != 2 {
		t.Fatalf("len(msgs) = %d, want 2", len(msgs))
	}
}

func TestParseAnalysis(t *testing.T) {
	result, err := parseAnalysis("```json\n{\"intent\": \"restaurant_recommendation\", \"extracted_info\": {\"cuisine_type\": \"Thai\", \"location\": \"downtown\"}}\n```")
	if err != nil {
		t.Fatalf("parseAnalysis() error = %v", err)
	}
	if result.Intent != models.IntentRecommendation {
		t.Errorf("Intent = %q, want %q", result.Intent, models.IntentRecommendation)
	}
	if len(result.ExtractedInfo.CuisineType) != 1 || result.ExtractedInfo.CuisineType[0] != "Thai" {
		t.Errorf("CuisineType = %v, want [Thai]", result.ExtractedInfo.CuisineType)
	}
	if result.ExtractedInfo.Location != "downtown" {
		t.Errorf("Location = %q, want %q", result.ExtractedInfo.Location, "downtown")
	}
}

func TestParseAnalysisInvalidJSON(t *testing.T) {
	_, err := parseAnalysis("Sorry, I can't help with that.")
	if !errors.Is(err, ErrParse) {
		t.Errorf("parseAnalysis() error = %v, want ErrParse", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare json", `{"intent": "casual_conversation"}`, `{"intent": "casual_conversation"}`},
		{"json fence", "```json\n{\"intent\": \"x\"}\n```", `{"intent": "x"}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n{\"a\": 1}\n ", `{"a": 1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.input); got != tt.want {
				t.Errorf("stripCodeFence(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
