package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dogtracer/dogtracer/cmd/dogtracer/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "serve-mcp",
	Short: "Start MCP server for assistant integration",
	Long: `Start an MCP (Model Context Protocol) server that lets an assistant
read your dog's journal: daily summaries, moments, and full-text search.

Configure in your assistant's MCP config:
  {
    "mcpServers": {
      "dogtracer": {
        "command": "dogtracer",
        "args": ["serve-mcp"]
      }
    }
  }
`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	if err := mcp.StartServer(dbPath); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}
