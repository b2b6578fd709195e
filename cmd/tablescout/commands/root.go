// ABOUTME: Root command setup for the TableScout CLI
// ABOUTME: Registers subcommands and shared persistent flags
package commands

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	outputFormat string
	quiet        bool
	verbose      bool
)

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tablescout",
		Short: "Conversational restaurant recommendation assistant",
		Long: `TableScout is a conversational restaurant assistant.

It classifies user intent, retrieves matching restaurants from a semantic
index, and generates a formatted natural-language reply, with per-session
conversation memory and response caching.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			if quiet {
				level = slog.LevelError
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	cmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "Output format (text or json)")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewIndexCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
