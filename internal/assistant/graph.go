// ABOUTME: Single-pass workflow graph: analyze, route, handle, write back
// ABOUTME: Streaming runs the same pipeline on its own goroutine with a token channel
package assistant

import (
	"context"

	"github.com/google/uuid"
	"github.com/harper/tablescout/internal/models"
)

// noReplyFallback is returned when a handler completed without appending an
// assistant message
const noReplyFallback = "I'm not sure how to respond to that."

// run executes the workflow graph for one request: analysis, routing, and
// exactly one terminal handler. No retries, no loops, no revisiting a node.
func (a *Assistant) run(ctx context.Context, state *models.ChatState, gen replyGenerator) error {
	node := NodeAnalyzing
	for node != NodeDone {
		switch node {
		case NodeAnalyzing:
			a.analyzeQuery(ctx, state)
			node = Route(state.Intent)
		case NodeRecommendation:
			if err := a.handleRecommendation(ctx, state, gen); err != nil {
				return err
			}
			node = NodeDone
		case NodeRestaurantInfo:
			if err := a.handleRestaurantInfo(ctx, state, gen); err != nil {
				return err
			}
			node = NodeDone
		default:
			if err := a.handleCasual(ctx, state, gen); err != nil {
				return err
			}
			node = NodeDone
		}
	}
	return nil
}

// defaultGenerator binds the non-streaming generator at the configured reply
// temperature
func (a *Assistant) defaultGenerator() replyGenerator {
	return func(ctx context.Context, systemPrompt string, history []models.Message, userContent string) (string, error) {
		return a.gen.Generate(ctx, systemPrompt, history, userContent, a.cfg.ReplyTemperature)
	}
}

// HandleMessage processes one user message synchronously and returns the
// reply and the session id (generated when none was provided). The completed
// turn is written into conversation memory before returning, including when
// a handler recovered internally and produced a fallback reply.
func (a *Assistant) HandleMessage(ctx context.Context, message, sessionID string) (string, string, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	state := models.NewChatState(message, sessionID)

	if err := a.run(ctx, state, a.defaultGenerator()); err != nil {
		return "", sessionID, err
	}

	reply := a.finishTurn(state)
	return reply, sessionID, nil
}

// HandleMessageStream processes one user message on a separate goroutine,
// delivering generated tokens through the returned channel. The channel is
// closed when generation completes or the pipeline fails, so draining it
// always terminates. Memory write-back uses the accumulated full reply and
// happens after generation finishes. There is no cancellation path; a stream
// runs to completion or failure.
func (a *Assistant) HandleMessageStream(ctx context.Context, message, sessionID string) (<-chan string, string) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	tokens := make(chan string)

	go func() {
		defer close(tokens)

		state := models.NewChatState(message, sessionID)

		gen := func(ctx context.Context, systemPrompt string, history []models.Message, userContent string) (string, error) {
			return a.streamGen.GenerateStream(ctx, systemPrompt, history, userContent, a.cfg.ReplyTemperature, tokens)
		}

		if err := a.run(ctx, state, gen); err != nil {
			a.log.Error("streaming pipeline failed", "session_id", sessionID, "error", err)
			return
		}

		a.finishTurn(state)
	}()

	return tokens, sessionID
}

// finishTurn extracts the final reply and writes the completed turn into
// conversation memory
func (a *Assistant) finishTurn(state *models.ChatState) string {
	reply := state.LastReply()
	if reply == "" {
		reply = noReplyFallback
	}

	a.conversations.AddInteraction(state.SessionID, state.LastUserMessage(), reply, map[string]any{
		"intent":      state.Intent,
		"preferences": state.Preferences,
	})
	return reply
}
