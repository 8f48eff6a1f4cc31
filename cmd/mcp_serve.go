package cmd

import (
	"context"
	"log"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/papadavis47/mountains-tui/internal/mcptools"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes the training log
over stdio transport, read-only. This allows MCP clients like Claude Desktop
to look at your training history.

Available tools:
  - list_days: Days in a date range, newest first, with a short summary
  - get_day: One day's full log
  - get_stats: Yearly and monthly mileage, elevation and the vert streak

Example usage in Claude Desktop config:
  {
    "mcpServers": {
      "mountains": {
        "command": "/path/to/mountains",
        "args": ["mcp-serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	if store == nil {
		return cmd.Help()
	}

	server := mcptools.CreateMCPServer(store, version)

	// stdout is reserved for the protocol
	log.SetOutput(os.Stderr)
	log.Printf("Starting mountains MCP server (stdio transport)")
	log.Printf("Storage backend: %s", appConfig.Storage)
	log.Printf("Data directory: %s", appConfig.DataDir)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return server.Run(ctx, &mcp.StdioTransport{})
}
