package internal

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer exposes one shared agent as MCP tools.
// Tool calls are serialized so the agent only ever sees one request at a time.
type MCPServer struct {
	mu        sync.Mutex
	agent     *Agent
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(agent *Agent, version string) *MCPServer {
	mcpServer := server.NewMCPServer(
		"ytchat-server",
		version,
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		agent:     agent,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("fetch_youtube_transcript",
		mcp.WithDescription("Fetch a YouTube video's captions and keep them in the conversation context. Returns the transcript as [MM:SS] lines. Later questions to ask_about_videos can refer to every fetched video."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL (watch?v=, youtu.be/ or embed/ form)"),
			mcp.Required(),
		),
	), s.handleFetchTranscript)

	s.mcpServer.AddTool(mcp.NewTool("ask_about_videos",
		mcp.WithDescription("Ask the language model a question about the fetched transcripts. The conversation history is kept between calls."),
		mcp.WithString("question",
			mcp.Description("Question or instruction, e.g. 'summarize it'"),
			mcp.Required(),
		),
	), s.handleAsk)

	s.mcpServer.AddTool(mcp.NewTool("reset_conversation",
		mcp.WithDescription("Forget all fetched transcripts and the conversation history."),
	), s.handleReset)
}

// handleFetchTranscript implements the fetch_youtube_transcript tool
func (s *MCPServer) handleFetchTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	LogInfo("tool fetch_youtube_transcript url=%s", url)
	_, transcript, err := s.agent.FetchTranscript(ctx, url)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("error fetching transcript", err), nil
	}

	return mcp.NewToolResultText(transcript), nil
}

// handleAsk implements the ask_about_videos tool
func (s *MCPServer) handleAsk(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	question = strings.TrimSpace(question)
	if err != nil || question == "" {
		return mcp.NewToolResultError("question parameter is required and must be a non-empty string"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	LogInfo("tool ask_about_videos (%d bytes)", len(question))
	reply, err := s.agent.Ask(ctx, question)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("model error", err), nil
	}

	return mcp.NewToolResultText(reply), nil
}

// handleReset implements the reset_conversation tool
func (s *MCPServer) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.agent.Reset()
	LogInfo("tool reset_conversation")
	return mcp.NewToolResultText("Conversation cleared."), nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	switch transport {
	case "http":
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)

		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.Start(fmt.Sprintf(":%d", port))
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down MCP HTTP server: %w", err)
			}
			return nil
		}
	case "stdio", "":
		return server.ServeStdio(s.mcpServer)
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or http)", transport)
	}
}
