package internal

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestMCPFetchAndAsk(t *testing.T) {
	provider := twoEntryProvider()
	model := &fakeModel{reply: "A song."}
	s := NewMCPServer(newTestAgent(provider, model), "test")
	ctx := context.Background()

	result, err := s.handleFetchTranscript(ctx, callTool("fetch_youtube_transcript", map[string]any{
		"url": "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "[00:00] hello\n[01:05] hi", resultText(t, result))

	result, err = s.handleAsk(ctx, callTool("ask_about_videos", map[string]any{"question": "what is it?"}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "A song.", resultText(t, result))
	assert.Contains(t, model.lastPrompt(), "Transcript for video dQw4w9WgXcQ:")
	assert.Equal(t, 2, s.agent.Conversation().Len())
}

func TestMCPToolErrors(t *testing.T) {
	s := NewMCPServer(newTestAgent(&fakeProvider{err: ErrVideoUnavailable}, &fakeModel{reply: "ok"}), "test")
	ctx := context.Background()

	result, err := s.handleFetchTranscript(ctx, callTool("fetch_youtube_transcript", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = s.handleFetchTranscript(ctx, callTool("fetch_youtube_transcript", map[string]any{
		"url": "https://youtu.be/dQw4w9WgXcQ",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), ErrVideoUnavailable.Error())

	result, err = s.handleAsk(ctx, callTool("ask_about_videos", map[string]any{"question": ""}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestMCPAskIgnoresBlankQuestion(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	s := NewMCPServer(newTestAgent(twoEntryProvider(), model), "test")

	result, err := s.handleAsk(context.Background(), callTool("ask_about_videos", map[string]any{"question": " \t\n "}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Empty(t, model.messages)
	assert.Zero(t, s.agent.Conversation().Len())

	result, err = s.handleAsk(context.Background(), callTool("ask_about_videos", map[string]any{"question": "  what is it?  "}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "\nuser: what is it?", model.lastPrompt())
}

func TestMCPHTTPStopsOnCancel(t *testing.T) {
	s := NewMCPServer(newTestAgent(twoEntryProvider(), &fakeModel{}), "test")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Start(ctx, "http", 0)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("HTTP server kept running after cancellation")
	}
}

func TestMCPReset(t *testing.T) {
	provider := twoEntryProvider()
	s := NewMCPServer(newTestAgent(provider, &fakeModel{reply: "ok"}), "test")
	ctx := context.Background()

	_, err := s.handleFetchTranscript(ctx, callTool("fetch_youtube_transcript", map[string]any{
		"url": "https://youtu.be/dQw4w9WgXcQ",
	}))
	require.NoError(t, err)
	require.Equal(t, 1, s.agent.Conversation().Transcripts().Len())

	result, err := s.handleReset(ctx, callTool("reset_conversation", nil))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Zero(t, s.agent.Conversation().Transcripts().Len())
	assert.Zero(t, s.agent.Conversation().Len())
}

func TestMCPUnsupportedTransport(t *testing.T) {
	s := NewMCPServer(newTestAgent(twoEntryProvider(), &fakeModel{}), "test")
	err := s.Start(context.Background(), "sse", 0)
	assert.ErrorContains(t, err, "unsupported transport")
}
