// ABOUTME: MCP tool definitions and registration for the assistant server
// ABOUTME: Exposes chat, conversation history, and restaurant search as tools
package mcp

import (
	"github.com/harper/tablescout/internal/assistant"
	"github.com/harper/tablescout/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, a *assistant.Assistant, conversations *memory.ConversationMemory, retriever assistant.Retriever) *Handlers {
	handlers := &Handlers{
		assistant:     a,
		conversations: conversations,
		retriever:     retriever,
	}

	// 1. chat - Send a message to the restaurant assistant
	server.AddTool(mcp.Tool{
		Name:        "chat",
		Description: "Send a message to the restaurant assistant. Classifies intent, retrieves matching restaurants, and returns a formatted reply.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "The user message",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Optional session id for conversation continuity (generated if omitted)",
				},
			},
			Required: []string{"message"},
		},
	}, handlers.Chat)

	// 2. get_history - Retrieve stored conversation history for a session
	server.AddTool(mcp.Tool{
		Name:        "get_history",
		Description: "Retrieve the stored conversation history for a session, most recent turns last.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session id to retrieve history for",
				},
				"limit": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of turns to return (default: all stored)",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.GetHistory)

	// 3. search_restaurants - Query the restaurant index directly
	server.AddTool(mcp.Tool{
		Name:        "search_restaurants",
		Description: "Search the restaurant index directly and return ranked candidate restaurants without generating a reply.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Free-text search query",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of candidates to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchRestaurants)

	return handlers
}
