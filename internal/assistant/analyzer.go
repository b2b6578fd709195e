// ABOUTME: Query analysis node: cached intent classification and extraction
// ABOUTME: Fails open to casual conversation, never propagating an error
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/tablescout/internal/models"
)

const analysisCachePrefix = "analysis_"

// analyzeQuery classifies the latest user message and merges extracted
// preferences into the state. The cache key is the message text alone, not
// the conversation history, so a repeated message can restore stale context.
func (a *Assistant) analyzeQuery(ctx context.Context, state *models.ChatState) {
	lastMessage := state.LastUserMessage()
	log := a.log.With("session_id", state.SessionID)

	cacheKey := analysisCachePrefix + lastMessage
	if v, ok := a.cache.Get(cacheKey); ok {
		if cached, ok := v.(models.CachedAnalysis); ok {
			log.Info("using cached analysis result")
			state.Intent = cached.Intent
			state.Preferences = cached.Preferences
			state.SpecificRestaurant = cached.SpecificRestaurant
			return
		}
	}

	historyContext := a.historyContext(state.SessionID)

	result, err := a.analyzer.AnalyzeQuery(ctx, lastMessage, historyContext)
	if err != nil {
		log.Error("query analysis failed, defaulting to casual conversation", "error", err)
		state.Intent = models.IntentCasual
		return
	}

	state.Intent = result.Intent
	if state.Intent == "" {
		state.Intent = models.IntentCasual
	}
	log.Info("classified intent", "intent", state.Intent)

	state.Preferences.Merge(result.ExtractedInfo)

	if state.Intent == models.IntentRestaurantInfo {
		state.SpecificRestaurant = result.ExtractedInfo.RestaurantNames
	}

	a.cache.Set(cacheKey, models.CachedAnalysis{
		Intent:             state.Intent,
		Preferences:        state.Preferences,
		SpecificRestaurant: state.SpecificRestaurant,
	})
}

// historyContext renders recent turns as a plain-text block for the analysis
// prompt
func (a *Assistant) historyContext(sessionID string) string {
	history := a.conversations.History(sessionID, a.cfg.AnalysisHistoryLimit)
	lines := make([]string, 0, len(history))
	for _, item := range history {
		lines = append(lines, fmt.Sprintf("User: %s\nBot: %s", item.UserMessage, item.BotResponse))
	}
	return strings.Join(lines, "\n")
}
