// ABOUTME: The three terminal intent handlers: recommendation, info, casual
// ABOUTME: Retrieval-using handlers share the cached search-dedup-cap sequence
package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harper/tablescout/internal/models"
)

const recommendationSystemPrompt = `You are a restaurant recommendation assistant. Your task is to recommend restaurants based on the user's preferences and the retrieved restaurant data.

Format your response precisely as follows:
1. Begin with a brief, friendly introduction (1-2 sentences only)
2. Present each restaurant recommendation as a numbered point
3. For each restaurant point, use this exact structure:

🍽️ [RESTAURANT NAME]
• Cuisine: [cuisine type]
• Price: [price range]
• Notable features: [key features that match user preferences]
• Why it matches: [brief explanation of how it meets the user's criteria]

4. End with a single, brief follow-up question about whether these recommendations are helpful.

IMPORTANT: Do not recommend the same restaurant more than once, even if it appears multiple times in the data. Check restaurant "id" carefully and ensure each recommendation is for a unique restaurant. If you've already suggested a restaurant with a particular "id", do not suggest it again even if it has different details.

Keep your response concise and well-structured with clear formatting for easy readability.`

const infoSystemPrompt = `You are a restaurant information assistant. Based on the user's query about a specific restaurant, provide detailed information in a structured, point-by-point format.

Format your response precisely as follows:

If you can identify ONE specific restaurant the user is asking about:

🍽️ [RESTAURANT NAME]
• Cuisine: [cuisine type]
• Price: [price range]
• Location: [location details]
• Highlights: [key features, specialties, or popular dishes]
• Hours: [if available]
• Contact: [if available]
• [Any other specific information the user requested]

If MULTIPLE restaurants match and you're unsure which one:
1. Start with a brief note mentioning you found multiple matches
2. For each restaurant, provide a brief summary using the format above
3. Ask which specific restaurant they'd like more details about

Keep your response concise with clear, consistent formatting and structure.`

const casualSystemPrompt = `You are a friendly restaurant assistant chatbot. Respond naturally to casual conversation, greetings, thanks, or general questions. Be friendly, helpful, and conversational.

If the conversation shifts to restaurants, pivot to offering structured help:

"I can help you find restaurants based on:
• Cuisine type
• Location
• Price range
• Special features (outdoor seating, vegan options, etc.)

Just let me know what you're looking for!"

Keep casual responses brief and engaging. If the user is asking a non-restaurant question, still be helpful but gently remind them that you specialize in restaurant recommendations and information.`

// recommendationFallback replaces the reply when recommendation generation
// fails. The other two handlers have no such net; their failures propagate.
const recommendationFallback = "I'm sorry, I'm having trouble finding restaurant recommendations right now. Could you please try again or provide more details about what you're looking for?"

const (
	recommendationCachePrefix = "recommendation_"
	infoCachePrefix           = "info_"
)

// handleRecommendation searches for matching restaurants and generates a
// formatted recommendation reply. Both the retrieval and the generation call
// are absorbed on failure so this handler always appends a reply.
func (a *Assistant) handleRecommendation(ctx context.Context, state *models.ChatState, gen replyGenerator) error {
	log := a.log.With("session_id", state.SessionID)
	log.Info("processing restaurant recommendation")

	query := buildRecommendationQuery(state)
	log.Debug("built search query", "query", truncateForLog(query))

	matches, err := a.searchMatches(ctx, recommendationCachePrefix, query)
	if err != nil {
		log.Error("restaurant search failed", "error", err)
		matches = nil
	}
	state.Matches = matches

	userContext := fmt.Sprintf("User query: %s\n\nUser's search criteria:\n%s\n\nAvailable restaurant matches:\n%s",
		query, formatPreferences(state.Preferences), formatMatches(matches))

	reply, err := gen(ctx, recommendationSystemPrompt, a.chatHistory(state.SessionID), userContext)
	if err != nil {
		log.Error("recommendation generation failed, using fallback reply", "error", err)
		state.AppendReply(recommendationFallback)
		return nil
	}

	state.AppendReply(reply)
	return nil
}

// handleRestaurantInfo answers questions about specific restaurants. Unlike
// the recommendation handler it has no fallback: retrieval or generation
// failure propagates to the process boundary.
func (a *Assistant) handleRestaurantInfo(ctx context.Context, state *models.ChatState, gen replyGenerator) error {
	log := a.log.With("session_id", state.SessionID)
	log.Info("processing specific restaurant info")

	query := buildInfoQuery(state)
	log.Debug("built restaurant info query", "query", truncateForLog(query))

	matches, err := a.searchMatches(ctx, infoCachePrefix, query)
	if err != nil {
		return fmt.Errorf("restaurant info search: %w", err)
	}
	state.Matches = matches

	userContext := fmt.Sprintf("User query: %s\n\nSearch criteria: %s\n\nRestaurant matches:\n%s",
		query, strings.Join(state.SpecificRestaurant, ", "), formatMatches(matches))

	reply, err := gen(ctx, infoSystemPrompt, a.chatHistory(state.SessionID), userContext)
	if err != nil {
		return fmt.Errorf("restaurant info generation: %w", err)
	}

	state.AppendReply(reply)
	return nil
}

// handleCasual generates a conversational reply. Never calls retrieval;
// generation failure propagates.
func (a *Assistant) handleCasual(ctx context.Context, state *models.ChatState, gen replyGenerator) error {
	reply, err := gen(ctx, casualSystemPrompt, a.chatHistory(state.SessionID), state.LastUserMessage())
	if err != nil {
		return fmt.Errorf("casual reply generation: %w", err)
	}

	state.AppendReply(reply)
	return nil
}

// searchMatches resolves a query to at most MaxMatches unique restaurant
// matches, serving from the response cache when the same handler has already
// run the same query
func (a *Assistant) searchMatches(ctx context.Context, prefix, query string) ([]models.Match, error) {
	cacheKey := prefix + query
	if v, ok := a.cache.Get(cacheKey); ok {
		if matches, ok := v.([]models.Match); ok {
			a.log.Info("using cached restaurant matches")
			return matches, nil
		}
	}

	docs, err := a.retriever.Search(ctx, query, a.cfg.RetrievalTopK)
	if err != nil {
		return nil, fmt.Errorf("retrieval: %w", err)
	}
	a.log.Debug("retrieved candidates", "count", len(docs))

	matches := dedupMatches(docs, a.cfg.MaxMatches)
	a.cache.Set(cacheKey, matches)
	return matches, nil
}

// dedupMatches keeps the first occurrence of each restaurant id in ranked
// order, skipping candidates with no id, and stops at max unique matches
func dedupMatches(docs []models.Document, max int) []models.Match {
	seen := make(map[string]bool)
	var matches []models.Match
	for _, doc := range docs {
		id := doc.Metadata.ID
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		matches = append(matches, models.MatchFromDocument(doc))
		if len(matches) >= max {
			break
		}
	}
	return matches
}

// buildRecommendationQuery concatenates the last user message with each
// non-empty labeled preference field
func buildRecommendationQuery(state *models.ChatState) string {
	parts := []string{state.LastUserMessage()}

	if len(state.Preferences.CuisineType) > 0 {
		parts = append(parts, "Cuisine types: "+strings.Join(state.Preferences.CuisineType, ", "))
	}
	if len(state.Preferences.FoodType) > 0 {
		parts = append(parts, "Food types: "+strings.Join(state.Preferences.FoodType, ", "))
	}
	if state.Preferences.Location != "" {
		parts = append(parts, "Location: "+state.Preferences.Location)
	}
	if len(state.Preferences.SpecialFeatures) > 0 {
		parts = append(parts, "Special features: "+strings.Join(state.Preferences.SpecialFeatures, ", "))
	}

	return strings.Join(parts, " ")
}

// buildInfoQuery concatenates the last user message with the mentioned
// restaurant names
func buildInfoQuery(state *models.ChatState) string {
	parts := []string{state.LastUserMessage()}
	if len(state.SpecificRestaurant) > 0 {
		parts = append(parts, "Restaurant name: "+strings.Join(state.SpecificRestaurant, ", "))
	}
	return strings.Join(parts, " ")
}

// chatHistory returns recent turns as alternating user/assistant messages for
// reply generation context
func (a *Assistant) chatHistory(sessionID string) []models.Message {
	history := a.conversations.History(sessionID, a.cfg.ChatHistoryLimit)
	msgs := make([]models.Message, 0, len(history)*2)
	for _, item := range history {
		msgs = append(msgs,
			models.Message{Role: models.RoleUser, Content: item.UserMessage},
			models.Message{Role: models.RoleAssistant, Content: item.BotResponse},
		)
	}
	return msgs
}

// formatPreferences renders the preference record for the prompt
func formatPreferences(p models.Preferences) string {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", p)
	}
	return string(data)
}

// formatMatches renders the match list for the prompt
func formatMatches(matches []models.Match) string {
	if len(matches) == 0 {
		return "(no matches found)"
	}
	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", matches)
	}
	return string(data)
}

// truncateForLog shortens long query strings for log output
func truncateForLog(s string) string {
	if len(s) > 100 {
		return s[:100] + "..."
	}
	return s
}
