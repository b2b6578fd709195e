// ABOUTME: Message and chat state structures for the assistant pipeline
// ABOUTME: ChatState is per-request and owned by a single orchestrator run
package models

// Role identifies the author of a chat message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single role-tagged chat message
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Intent is the classified purpose of a user message
type Intent string

const (
	IntentRecommendation Intent = "restaurant_recommendation"
	IntentRestaurantInfo Intent = "specific_restaurant_info"
	IntentCasual         Intent = "casual_conversation"
)

// ChatState carries all per-request data through the workflow graph.
// It is created at request entry and discarded at exit; only the user
// message and final reply outlive it (via conversation memory).
type ChatState struct {
	Messages           []Message   `json:"messages"`
	Intent             Intent      `json:"intent,omitempty"`
	Preferences        Preferences `json:"user_preferences"`
	SpecificRestaurant []string    `json:"specific_restaurant,omitempty"`
	Matches            []Match     `json:"restaurant_matches,omitempty"`
	SessionID          string      `json:"session_id"`
}

// NewChatState seeds a fresh state with the incoming user message
func NewChatState(message, sessionID string) *ChatState {
	return &ChatState{
		Messages:  []Message{{Role: RoleUser, Content: message}},
		SessionID: sessionID,
	}
}

// LastUserMessage returns the content of the most recent user message,
// or "" if none exists
func (s *ChatState) LastUserMessage() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleUser {
			return s.Messages[i].Content
		}
	}
	return ""
}

// LastReply returns the content of the most recent assistant message,
// or "" if no reply has been appended yet
func (s *ChatState) LastReply() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleAssistant {
			return s.Messages[i].Content
		}
	}
	return ""
}

// AppendReply appends an assistant message to the state
func (s *ChatState) AppendReply(content string) {
	s.Messages = append(s.Messages, Message{Role: RoleAssistant, Content: content})
}
