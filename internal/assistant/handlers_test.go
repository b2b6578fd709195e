// ABOUTME: Tests for handler query building, dedup, caching, and error policy
// ABOUTME: Covers the asymmetric fallback across the three handlers
package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/harper/tablescout/internal/models"
)

func TestDedupMatches(t *testing.T) {
	docs := []models.Document{
		doc("A", "Alpha"), doc("B", "Beta"), doc("A", "Alpha"), doc("C", "Gamma"), doc("D", "Delta"),
	}

	matches := dedupMatches(docs, 3)

	if len(matches) != 3 {
		t.Fatalf("dedupMatches() returned %d matches, want 3", len(matches))
	}
	wantIDs := []string{"A", "B", "C"}
	for i, want := range wantIDs {
		if matches[i].ID != want {
			t.Errorf("matches[%d].ID = %q, want %q", i, matches[i].ID, want)
		}
	}
}

func TestDedupMatches_SkipsEmptyIDs(t *testing.T) {
	docs := []models.Document{doc("", "Nameless"), doc("A", "Alpha")}

	matches := dedupMatches(docs, 3)

	if len(matches) != 1 || matches[0].ID != "A" {
		t.Errorf("dedupMatches() = %v, want only id A", matches)
	}
}

func TestDedupMatches_FewerThanMax(t *testing.T) {
	docs := []models.Document{doc("A", "Alpha"), doc("A", "Alpha")}

	matches := dedupMatches(docs, 3)

	if len(matches) != 1 {
		t.Errorf("dedupMatches() returned %d matches, want 1", len(matches))
	}
}

func TestBuildRecommendationQuery(t *testing.T) {
	state := models.NewChatState("somewhere to eat tonight", "s1")
	state.Preferences = models.Preferences{
		CuisineType:     []string{"Thai", "Vietnamese"},
		FoodType:        []string{"noodles"},
		Location:        "downtown",
		SpecialFeatures: []string{"outdoor seating"},
	}

	query := buildRecommendationQuery(state)

	for _, want := range []string{
		"somewhere to eat tonight",
		"Cuisine types: Thai, Vietnamese",
		"Food types: noodles",
		"Location: downtown",
		"Special features: outdoor seating",
	} {
		if !strings.Contains(query, want) {
			t.Errorf("query %q missing %q", query, want)
		}
	}
}

func TestBuildRecommendationQuery_EmptyPreferences(t *testing.T) {
	state := models.NewChatState("food please", "s1")

	if got := buildRecommendationQuery(state); got != "food please" {
		t.Errorf("query = %q, want just the message", got)
	}
}

func TestBuildInfoQuery(t *testing.T) {
	state := models.NewChatState("when does it open?", "s1")
	state.SpecificRestaurant = []string{"Alinea", "Girl & the Goat"}

	query := buildInfoQuery(state)

	if !strings.Contains(query, "Restaurant name: Alinea, Girl & the Goat") {
		t.Errorf("query %q missing restaurant names", query)
	}
}

func TestSearchMatches_CachesResult(t *testing.T) {
	retriever := &mockRetriever{docs: []models.Document{doc("A", "Alpha"), doc("B", "Beta")}}
	a, _ := testAssistant(&mockGenerator{reply: "ok"}, nil, &mockAnalyzer{}, retriever)

	first, err := a.searchMatches(context.Background(), "recommendation_", "thai downtown")
	if err != nil {
		t.Fatalf("searchMatches() error = %v", err)
	}
	second, err := a.searchMatches(context.Background(), "recommendation_", "thai downtown")
	if err != nil {
		t.Fatalf("searchMatches() error = %v", err)
	}

	if retriever.calls != 1 {
		t.Errorf("retriever called %d times, want 1 (second call must hit cache)", retriever.calls)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Errorf("match counts = %d, %d, want 2, 2", len(first), len(second))
	}
	if retriever.lastTopK != 5 {
		t.Errorf("retrieval topK = %d, want 5", retriever.lastTopK)
	}
}

func TestSearchMatches_PrefixesSeparateHandlers(t *testing.T) {
	retriever := &mockRetriever{docs: []models.Document{doc("A", "Alpha")}}
	a, _ := testAssistant(&mockGenerator{reply: "ok"}, nil, &mockAnalyzer{}, retriever)

	if _, err := a.searchMatches(context.Background(), "recommendation_", "alinea"); err != nil {
		t.Fatalf("searchMatches() error = %v", err)
	}
	if _, err := a.searchMatches(context.Background(), "info_", "alinea"); err != nil {
		t.Fatalf("searchMatches() error = %v", err)
	}

	if retriever.calls != 2 {
		t.Errorf("retriever called %d times, want 2 (different handler prefixes)", retriever.calls)
	}
}

func TestHandleRecommendation_FallbackOnGenerationFailure(t *testing.T) {
	gen := &mockGenerator{err: errors.New("llm unavailable")}
	retriever := &mockRetriever{docs: []models.Document{doc("A", "Alpha")}}
	a, _ := testAssistant(gen, nil, &mockAnalyzer{}, retriever)

	state := models.NewChatState("thai food", "s1")
	state.Intent = models.IntentRecommendation

	err := a.handleRecommendation(context.Background(), state, a.defaultGenerator())
	if err != nil {
		t.Fatalf("handleRecommendation() error = %v, want nil (absorbed)", err)
	}
	if got := state.LastReply(); got != recommendationFallback {
		t.Errorf("reply = %q, want the static fallback", got)
	}
}

func TestHandleRecommendation_AbsorbsRetrievalFailure(t *testing.T) {
	gen := &mockGenerator{reply: "here you go"}
	retriever := &mockRetriever{err: errors.New("index offline")}
	a, _ := testAssistant(gen, nil, &mockAnalyzer{}, retriever)

	state := models.NewChatState("thai food", "s1")

	err := a.handleRecommendation(context.Background(), state, a.defaultGenerator())
	if err != nil {
		t.Fatalf("handleRecommendation() error = %v, want nil (absorbed)", err)
	}
	if len(state.Matches) != 0 {
		t.Errorf("Matches = %v, want empty after retrieval failure", state.Matches)
	}
	if got := state.LastReply(); got != "here you go" {
		t.Errorf("reply = %q, want generated reply", got)
	}
}

func TestHandleRestaurantInfo_PropagatesGenerationFailure(t *testing.T) {
	gen := &mockGenerator{err: errors.New("llm unavailable")}
	retriever := &mockRetriever{docs: []models.Document{doc("A", "Alpha")}}
	a, _ := testAssistant(gen, nil, &mockAnalyzer{}, retriever)

	state := models.NewChatState("tell me about Alinea", "s1")
	state.SpecificRestaurant = []string{"Alinea"}

	if err := a.handleRestaurantInfo(context.Background(), state, a.defaultGenerator()); err == nil {
		t.Error("handleRestaurantInfo() error = nil, want propagated failure")
	}
}

func TestHandleCasual_NeverCallsRetrieval(t *testing.T) {
	gen := &mockGenerator{reply: "hello!"}
	retriever := &mockRetriever{docs: []models.Document{doc("A", "Alpha")}}
	a, _ := testAssistant(gen, nil, &mockAnalyzer{}, retriever)

	state := models.NewChatState("good morning", "s1")

	if err := a.handleCasual(context.Background(), state, a.defaultGenerator()); err != nil {
		t.Fatalf("handleCasual() error = %v", err)
	}
	if retriever.calls != 0 {
		t.Errorf("retriever called %d times, want 0", retriever.calls)
	}
	if got := state.LastReply(); got != "hello!" {
		t.Errorf("reply = %q, want %q", got, "hello!")
	}
}

func TestHandleCasual_PropagatesGenerationFailure(t *testing.T) {
	gen := &mockGenerator{err: errors.New("llm unavailable")}
	a, _ := testAssistant(gen, nil, &mockAnalyzer{}, &mockRetriever{})

	state := models.NewChatState("good morning", "s1")

	if err := a.handleCasual(context.Background(), state, a.defaultGenerator()); err == nil {
		t.Error("handleCasual() error = nil, want propagated failure")
	}
}
