// ABOUTME: HTTP process boundary for the assistant: chat and streaming chat
// ABOUTME: Echo handlers with a process-wide token-bucket rate limiter
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/harper/tablescout/internal/assistant"
)

// ChatRequest is the body accepted by both chat endpoints
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}

// ChatResponse is the non-streaming reply envelope
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
	TimeTaken string `json:"time_taken"`
}

// Handler serves the assistant over HTTP
type Handler struct {
	assistant *assistant.Assistant
	limiter   *rate.Limiter
	log       *slog.Logger
}

// NewHandler creates a Handler with a requests-per-second limit and burst
func NewHandler(a *assistant.Assistant, rps float64, burst int) *Handler {
	if rps <= 0 {
		rps = 5
	}
	if burst <= 0 {
		burst = 10
	}
	return &Handler{
		assistant: a,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
		log:       slog.With("component", "api"),
	}
}

// Register attaches the chat routes to an echo instance
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/api/chat", h.Chat)
	e.POST("/api/chat/stream", h.ChatStream)
}

// Chat handles POST /api/chat.
// Accepts {message, session_id?} and returns {response, session_id, time_taken}.
func (h *Handler) Chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}
	if !h.limiter.Allow() {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
	}

	start := time.Now()
	reply, sessionID, err := h.assistant.HandleMessage(c.Request().Context(), req.Message, req.SessionID)
	if err != nil {
		h.log.Error("failed to process message", "session_id", sessionID, "error", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to process message"})
	}

	return c.JSON(http.StatusOK, ChatResponse{
		Response:  reply,
		SessionID: sessionID,
		TimeTaken: fmt.Sprintf("%.2fs", time.Since(start).Seconds()),
	})
}

// ChatStream handles POST /api/chat/stream.
// Writes generated text fragments as they arrive, flushing after each one.
// The session id travels in a response header since the body is raw text.
func (h *Handler) ChatStream(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}
	if !h.limiter.Allow() {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
	}

	tokens, sessionID := h.assistant.HandleMessageStream(c.Request().Context(), req.Message, req.SessionID)

	resp := c.Response()
	resp.Header().Set(echo.HeaderContentType, "text/plain; charset=utf-8")
	resp.Header().Set("X-Session-ID", sessionID)
	resp.WriteHeader(http.StatusOK)

	for token := range tokens {
		if _, err := resp.Write([]byte(token)); err != nil {
			// Client went away; keep draining so the pipeline can finish
			// and the turn still reaches conversation memory.
			for range tokens {
			}
			return nil
		}
		resp.Flush()
	}

	return nil
}
