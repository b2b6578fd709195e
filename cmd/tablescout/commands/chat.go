// ABOUTME: CLI command to chat with the assistant
// ABOUTME: Supports one-shot messages, an interactive REPL, and token streaming
package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	chatSession string
	chatStream  bool
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Chat with the restaurant assistant",
		Long: `Chat with the restaurant assistant.

With a message argument, sends one message and prints the reply.
Without arguments, starts an interactive session.

Examples:
  tablescout chat "I want spicy Thai food near downtown"
  tablescout chat --stream "What's good in the West Loop?"
  tablescout chat --session my-session
  tablescout chat`,
		Args: cobra.MaximumNArgs(1),
		RunE: runChat,
	}

	cmd.Flags().StringVar(&chatSession, "session", "", "Session id for conversation continuity")
	cmd.Flags().BoolVar(&chatStream, "stream", false, "Stream the reply token by token")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	ctx := cmd.Context()

	if len(args) > 0 {
		return sendMessage(ctx, rt, cmd, args[0])
	}

	// Interactive session
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), "TableScout interactive chat. Type 'exit' or Ctrl-D to quit.")
	}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Fprint(cmd.OutOrStdout(), "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		if err := sendMessage(ctx, rt, cmd, line); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
	}
	return scanner.Err()
}

func sendMessage(ctx context.Context, rt *runtime, cmd *cobra.Command, message string) error {
	if chatStream {
		tokens, sessionID := rt.assistant.HandleMessageStream(ctx, message, chatSession)
		chatSession = sessionID
		for token := range tokens {
			fmt.Fprint(cmd.OutOrStdout(), token)
		}
		fmt.Fprintln(cmd.OutOrStdout())
		return nil
	}

	reply, sessionID, err := rt.assistant.HandleMessage(ctx, message, chatSession)
	if err != nil {
		return fmt.Errorf("processing message: %w", err)
	}
	chatSession = sessionID

	fmt.Fprintln(cmd.OutOrStdout(), reply)
	return nil
}
