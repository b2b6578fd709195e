// ABOUTME: MCP tool handler implementations for the assistant server
// ABOUTME: Each handler validates arguments and wraps results as tool output
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/tablescout/internal/assistant"
	"github.com/harper/tablescout/internal/memory"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	assistant     *assistant.Assistant
	conversations *memory.ConversationMemory
	retriever     assistant.Retriever
}

// Chat handles the chat tool
func (h *Handlers) Chat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message argument is required and must be a string"), nil
	}
	sessionID := request.GetString("session_id", "")

	reply, sessionID, err := h.assistant.HandleMessage(ctx, message, sessionID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to process message: %v", err)), nil
	}

	result := map[string]any{
		"response":   reply,
		"session_id": sessionID,
	}
	data, err := json.Marshal(result)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// GetHistory handles the get_history tool
func (h *Handlers) GetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}
	limit := request.GetInt("limit", 0)

	history := h.conversations.History(sessionID, limit)
	data, err := json.Marshal(history)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode history: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// SearchRestaurants handles the search_restaurants tool
func (h *Handlers) SearchRestaurants(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	topK := request.GetInt("top_k", 5)
	if topK <= 0 {
		topK = 5
	}

	docs, err := h.retriever.Search(ctx, query, topK)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
