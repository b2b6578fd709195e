// ABOUTME: Shared test doubles for assistant pipeline tests
// ABOUTME: Call-counting mocks for the generator, analyzer, and retriever
package assistant

import (
	"context"
	"fmt"
	"sync"

	"github.com/harper/tablescout/internal/memory"
	"github.com/harper/tablescout/internal/models"
)

type mockGenerator struct {
	mu      sync.Mutex
	calls   int
	reply   string
	err     error
	lastSys string
	lastUsr string
}

func (m *mockGenerator) Generate(ctx context.Context, systemPrompt string, history []models.Message, userContent string, temperature float32) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastSys = systemPrompt
	m.lastUsr = userContent
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

type mockStreamGenerator struct {
	tokens []string
	err    error
}

func (m *mockStreamGenerator) GenerateStream(ctx context.Context, systemPrompt string, history []models.Message, userContent string, temperature float32, tokens chan<- string) (string, error) {
	var full string
	for _, tok := range m.tokens {
		tokens <- tok
		full += tok
	}
	if m.err != nil {
		return full, m.err
	}
	return full, nil
}

type mockAnalyzer struct {
	mu     sync.Mutex
	calls  int
	result *models.AnalysisResult
	err    error
}

func (m *mockAnalyzer) AnalyzeQuery(ctx context.Context, message, historyContext string) (*models.AnalysisResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockAnalyzer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockRetriever struct {
	mu        sync.Mutex
	calls     int
	docs      []models.Document
	err       error
	lastQuery string
	lastTopK  int
}

func (m *mockRetriever) Search(ctx context.Context, query string, topK int) ([]models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastQuery = query
	m.lastTopK = topK
	if m.err != nil {
		return nil, m.err
	}
	return m.docs, nil
}

// doc builds a retrieval document with the given id and name
func doc(id, name string) models.Document {
	return models.Document{
		Content:  fmt.Sprintf("Restaurant Name: %s\n", name),
		Metadata: models.DocumentMetadata{ID: id, Name: name},
	}
}

// testAssistant wires an Assistant from mocks with default limits
func testAssistant(gen *mockGenerator, streamGen *mockStreamGenerator, analyzer *mockAnalyzer, retriever *mockRetriever) (*Assistant, *memory.ConversationMemory) {
	conversations := memory.NewConversationMemory(0, 0)
	a := New(gen, streamGen, analyzer, retriever, memory.NewResponseCache(0), conversations, Config{})
	return a, conversations
}
