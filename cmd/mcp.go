package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytchat/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run an MCP server exposing the transcript agent",
	Long: `Run a Model Context Protocol (MCP) server that exposes the agent as tools.

Tools:
- fetch_youtube_transcript: fetch captions and keep them in context
- ask_about_videos: ask the model about the fetched videos
- reset_conversation: forget transcripts and history

All tool calls share one conversation and are handled one at a time.

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)`,
	Example: `  # Run MCP server with stdio transport
  ytchat mcp

  # Run MCP server with HTTP transport on port 8080
  ytchat mcp --transport=http --port=8080`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// stdout belongs to the protocol
		config.Verbose = false
		config.Quiet = true
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateModelRequirements(cmd, config); err != nil {
			return err
		}
		if err := internal.HandleCaptionFlags(cmd, config); err != nil {
			return err
		}

		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		app := internal.NewApp(config)
		mcpServer := internal.NewMCPServer(app.NewAgent(), version)

		if transport == "http" {
			fmt.Fprintf(os.Stderr, "Starting ytchat MCP server on HTTP port %d...\n", port)
		}

		return mcpServer.Start(cmd.Context(), transport, port)
	},
}

func init() {
	internal.AddModelFlags(mcpCmd)
	internal.AddCaptionFlags(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport (only used with --transport=http)")
	rootCmd.AddCommand(mcpCmd)
}
