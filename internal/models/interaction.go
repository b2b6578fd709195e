// ABOUTME: Interaction is one stored (user message, bot response) turn pair
// ABOUTME: Owned by conversation memory, persists across requests
package models

import "time"

// Interaction records a completed conversation turn for a session
type Interaction struct {
	Timestamp   time.Time      `json:"timestamp"`
	UserMessage string         `json:"user_message"`
	BotResponse string         `json:"bot_response"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
