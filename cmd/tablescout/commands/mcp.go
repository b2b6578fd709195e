// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to use the restaurant assistant via stdio
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/harper/tablescout/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs TableScout as an MCP (Model Context Protocol) server, enabling
LLM agents to chat with the assistant and search restaurants via stdio.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an agent host)
  tablescout mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "tablescout": {
  #       "command": "tablescout",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	server := mcpserver.NewMCPServer(
		"TableScout Restaurant Assistant",
		versionInfo.Version,
	)

	mcp.RegisterTools(server, rt.assistant, rt.conversations, rt.store)

	if err := mcpserver.ServeStdio(server); err != nil {
		return fmt.Errorf("MCP server: %w", err)
	}
	return nil
}
