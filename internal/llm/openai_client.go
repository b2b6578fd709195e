// ABOUTME: OpenAI client for reply generation, query analysis, and embeddings
// ABOUTME: Streaming delivers tokens through a caller-supplied channel
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/harper/tablescout/internal/models"
	"github.com/harper/tablescout/internal/util"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// DefaultChatModel is the default model for chat completions
	DefaultChatModel = "gpt-3.5-turbo"
	// DefaultEmbeddingModel is the default model for embeddings
	DefaultEmbeddingModel = openai.SmallEmbedding3
)

// ErrParse marks a structured-extraction response that was not valid JSON,
// as opposed to a failed API call
var ErrParse = errors.New("analysis response is not valid JSON")

// ClientConfig holds configuration for the OpenAI client
type ClientConfig struct {
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	MaxRetries     int
	RetryDelay     time.Duration
}

// OpenAIClient wraps the OpenAI API for the assistant's three LLM roles:
// reply generation, structured query analysis, and document embeddings
type OpenAIClient struct {
	client         *openai.Client
	chatModel      string
	embeddingModel openai.EmbeddingModel
	maxRetries     int
	retryDelay     time.Duration
	log            *slog.Logger
}

// NewOpenAIClient creates a client from the given configuration. Empty model
// fields fall back to the defaults.
func NewOpenAIClient(config *ClientConfig) (*OpenAIClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	chatModel := config.ChatModel
	if chatModel == "" {
		chatModel = DefaultChatModel
	}
	embeddingModel := openai.EmbeddingModel(config.EmbeddingModel)
	if embeddingModel == "" {
		embeddingModel = DefaultEmbeddingModel
	}

	return &OpenAIClient{
		client:         openai.NewClient(config.APIKey),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		maxRetries:     config.MaxRetries,
		retryDelay:     config.RetryDelay,
		log:            slog.With("component", "llm"),
	}, nil
}

// chatMessages assembles the request message list from a system prompt,
// prior conversation turns, and the current user content
func chatMessages(systemPrompt string, history []models.Message, userContent string) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, m := range history {
		role := openai.ChatMessageRoleUser
		if m.Role == models.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		msgs = append(msgs, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	msgs = append(msgs, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userContent,
	})
	return msgs
}

// Generate produces a single completion. The call is made once; failures are
// the caller's to absorb or propagate per its own policy.
func (c *OpenAIClient) Generate(ctx context.Context, systemPrompt string, history []models.Message, userContent string, temperature float32) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    chatMessages(systemPrompt, history, userContent),
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateStream produces a completion while pushing each text fragment onto
// tokens as it arrives. The channel is not closed here; ownership stays with
// the caller. Returns the accumulated full text.
func (c *OpenAIClient) GenerateStream(ctx context.Context, systemPrompt string, history []models.Message, userContent string, temperature float32, tokens chan<- string) (string, error) {
	stream, err := c.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    chatMessages(systemPrompt, history, userContent),
		Temperature: temperature,
		Stream:      true,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion stream: %w", err)
	}
	defer stream.Close()

	var sb strings.Builder
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sb.String(), fmt.Errorf("chat completion stream: %w", err)
		}
		if len(resp.Choices) == 0 {
			continue
		}
		delta := resp.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		sb.WriteString(delta)
		tokens <- delta
	}
	return sb.String(), nil
}

const analysisPromptTemplate = `Analyze the user's message for a restaurant chatbot by:

1. CLASSIFYING THE INTENT into exactly one of these categories:
   - restaurant_recommendation: User is looking for restaurant suggestions
   - specific_restaurant_info: User is asking about a specific restaurant or set of restaurants
   - casual_conversation: General greetings, farewells, or off-topic conversation

2. EXTRACTING INFORMATION relevant to their request (include only if mentioned or implied):
   - cuisine_type: Type of cuisine (e.g., Chinese, Italian, Japanese)
   - food_type: Specific food or dish (e.g., pasta, sushi, pizza)
   - location: City, neighborhood, area, address, cross street, country etc.
   - special_features: Any special requirements (e.g., outdoor dining, payment options etc.)
   - restaurant_names: List of names of specific restaurants if mentioned, only applies when the intent is specific_restaurant_info

Be interpretive - if the user says "nice Italian place in NYC", extract the cuisine_type (Italian), location (NYC) and a rating signal (nice).

Recent conversation history (consider this for context):
%s

Respond with a JSON object containing both "intent" and "extracted_info" fields.

Example response format:
{
    "intent": "restaurant_recommendation" OR "specific_restaurant_info" OR "casual_conversation",
    "extracted_info": {
        "cuisine_type": ["list of cuisines mentioned or empty list"],
        "food_type": ["list of food types mentioned or empty list"],
        "location": "location mentioned or empty string if none",
        "special_features": ["list of special features mentioned or empty list"],
        "restaurant_names": ["list of restaurant names mentioned or empty list"]
    }
}

Only include fields that are explicitly mentioned or clearly implied in the user's message and return a strictly JSON response with no additional text as shown above in the response format.`

// AnalyzeQuery runs the structured intent-and-extraction call at temperature 0.
// A JSON parse failure is reported wrapped in ErrParse so callers can tell it
// apart from a failed API call.
func (c *OpenAIClient) AnalyzeQuery(ctx context.Context, message, historyContext string) (*models.AnalysisResult, error) {
	systemPrompt := fmt.Sprintf(analysisPromptTemplate, historyContext)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("analysis completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("analysis completion: no choices returned")
	}

	result, err := parseAnalysis(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	c.log.Debug("query analysis complete", "intent", result.Intent)
	return result, nil
}

// parseAnalysis decodes the model's analysis response, tolerating a markdown
// code fence around the JSON
func parseAnalysis(content string) (*models.AnalysisResult, error) {
	content = stripCodeFence(content)

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &result, nil
}

// stripCodeFence removes a surrounding markdown code fence if the model
// wrapped its JSON in one
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// GenerateEmbedding generates an embedding vector with retry and backoff.
// Used only by the index build, never on the request path.
func (c *OpenAIClient) GenerateEmbedding(text string) ([]float64, error) {
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

		resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
			Input: []string{text},
			Model: c.embeddingModel,
		})
		cancel()

		if err != nil {
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}
		if len(resp.Data) == 0 {
			lastErr = fmt.Errorf("attempt %d: no embeddings returned", attempt+1)
			continue
		}

		embedding32 := resp.Data[0].Embedding
		embedding64 := make([]float64, len(embedding32))
		for i, v := range embedding32 {
			embedding64[i] = float64(v)
		}
		return embedding64, nil
	}

	return nil, fmt.Errorf("failed to generate embedding after %d attempts: %w", c.maxRetries+1, lastErr)
}
