package internal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(provider TranscriptProvider, model *fakeModel, options ...AgentOption) *Agent {
	return NewAgent(provider, NewAI(model, "test-model", 0), append([]AgentOption{WithUI(quietUI())}, options...)...)
}

func TestAgentEndToEnd(t *testing.T) {
	provider := twoEntryProvider()
	model := &fakeModel{reply: "It is a song."}
	agent := newTestAgent(provider, model)
	ctx := context.Background()

	resp, err := agent.Handle(ctx, "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, InputURL, resp.Kind)
	assert.Equal(t, testVideoID, resp.VideoID)
	assert.Equal(t, "[00:00] hello\n[01:05] hi", resp.Text)
	assert.Zero(t, agent.Conversation().Len(), "fetching must not touch the history")

	resp, err = agent.Handle(ctx, "summarize it")
	require.NoError(t, err)
	assert.Equal(t, InputText, resp.Kind)
	assert.Equal(t, "It is a song.", resp.Text)

	prompt := model.lastPrompt()
	assert.Contains(t, prompt, "Transcript for video dQw4w9WgXcQ:\n[00:00] hello\n[01:05] hi\n\n")
	assert.Contains(t, strings.Split(prompt, "\n"), "user: summarize it")
	assert.Equal(t, "Transcript for video dQw4w9WgXcQ:\n[00:00] hello\n[01:05] hi\n\n\nuser: summarize it", prompt)

	require.Len(t, model.messages, 1)
	assert.Equal(t, []ChatTurn{{Role: RoleUser, Content: prompt}}, model.messages[0])
	assert.Equal(t, []string{"test-model"}, model.models)

	assert.Equal(t, []ChatTurn{
		{Role: RoleUser, Content: "summarize it"},
		{Role: RoleAssistant, Content: "It is a song."},
	}, agent.Conversation().History())
}

func TestAgentHistoryGrowsByTwo(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	agent := newTestAgent(twoEntryProvider(), model)

	for i := 1; i <= 3; i++ {
		_, err := agent.Handle(context.Background(), "question")
		require.NoError(t, err)
		assert.Equal(t, 2*i, agent.Conversation().Len())
	}

	history := agent.Conversation().History()
	for i, turn := range history {
		if i%2 == 0 {
			assert.Equal(t, RoleUser, turn.Role)
		} else {
			assert.Equal(t, RoleAssistant, turn.Role)
		}
	}
	assert.Contains(t, model.lastPrompt(), "user: question\nassistant: ok\nuser: question\nassistant: ok\nuser: question")
}

func TestAgentModelFailureLeavesHistory(t *testing.T) {
	model := &fakeModel{err: errors.New("rate limited")}
	agent := newTestAgent(twoEntryProvider(), model)

	_, err := agent.Handle(context.Background(), "summarize it")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrModelCallFailed)
	assert.Contains(t, err.Error(), "rate limited")
	assert.Zero(t, agent.Conversation().Len())
}

func TestAgentEmptyAndExit(t *testing.T) {
	provider := twoEntryProvider()
	model := &fakeModel{reply: "ok"}
	agent := newTestAgent(provider, model)

	resp, err := agent.Handle(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, InputEmpty, resp.Kind)

	resp, err = agent.Handle(context.Background(), "EXIT")
	require.NoError(t, err)
	assert.Equal(t, InputExit, resp.Kind)

	assert.Zero(t, provider.calls)
	assert.Empty(t, model.messages)
}

func TestAgentHistoryLimitOption(t *testing.T) {
	model := &fakeModel{reply: "ok"}
	agent := newTestAgent(twoEntryProvider(), model, WithHistoryLimit(2))

	for _, q := range []string{"q1", "q2", "q3"} {
		_, err := agent.Handle(context.Background(), q)
		require.NoError(t, err)
	}

	assert.Equal(t, "user: q2\nassistant: ok\nuser: q3", model.lastPrompt())
	assert.Equal(t, 6, agent.Conversation().Len())
}

func TestAgentCaptionOptions(t *testing.T) {
	provider := twoEntryProvider()
	agent := newTestAgent(provider, &fakeModel{}, WithCaptionOptions(CaptionOptions{Language: "en-GB"}))

	_, err := agent.Handle(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, []CaptionOptions{{Language: "en-GB"}}, provider.opts)
}

func TestAgentRun(t *testing.T) {
	provider := twoEntryProvider()
	model := &fakeModel{reply: "It is a song."}
	agent := newTestAgent(provider, model)

	in := strings.NewReader(strings.Join([]string{
		"https://youtu.be/dQw4w9WgXcQ",
		"",
		"https://youtu.be/short",
		"summarize it",
		"bye",
		"never read",
	}, "\n"))
	var out bytes.Buffer

	require.NoError(t, agent.Run(context.Background(), in, &out))

	output := out.String()
	assert.Contains(t, output, "=== YouTube Video Transcript Agent ===")
	assert.Contains(t, output, "Transcript fetched! Stored in context.")
	assert.Contains(t, output, "Error fetching transcript: "+ErrInvalidURL.Error())
	assert.Contains(t, output, "Agent: It is a song.")
	assert.NotContains(t, output, "never read")
	assert.Len(t, model.messages, 1)
	assert.Equal(t, 2, agent.Conversation().Len())
}

func TestAgentRunSurvivesFailures(t *testing.T) {
	provider := &fakeProvider{err: ErrTranscriptsDisabled}
	model := &fakeModel{err: errors.New("boom")}
	agent := newTestAgent(provider, model, WithRenderer(func(s string) (string, error) { return "**" + s + "**", nil }))

	in := strings.NewReader("https://youtu.be/dQw4w9WgXcQ\nhello\n")
	var out bytes.Buffer

	require.NoError(t, agent.Run(context.Background(), in, &out))

	output := out.String()
	assert.Contains(t, output, "Error fetching transcript: "+ErrTranscriptsDisabled.Error())
	assert.Contains(t, output, "Error: model test-model: boom")
	assert.Zero(t, agent.Conversation().Transcripts().Len())
	assert.Zero(t, agent.Conversation().Len())

	// the loop keeps going after failures
	model.err = nil
	model.reply = "fine"
	out.Reset()
	require.NoError(t, agent.Run(context.Background(), strings.NewReader("hello\nquit\n"), &out))
	assert.Contains(t, out.String(), "Agent: **fine**")
}

func TestAgentRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	model := &fakeModel{reply: "ok"}
	agent := newTestAgent(twoEntryProvider(), model)

	var out bytes.Buffer
	require.NoError(t, agent.Run(ctx, strings.NewReader("hello\n"), &out))
	assert.Empty(t, model.messages)
}

func TestAgentReset(t *testing.T) {
	provider := twoEntryProvider()
	agent := newTestAgent(provider, &fakeModel{reply: "ok"})

	_, err := agent.Handle(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	_, err = agent.Handle(context.Background(), "hi")
	require.NoError(t, err)

	agent.Reset()
	assert.Zero(t, agent.Conversation().Len())

	_, err = agent.Handle(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls, "reset forgets cached transcripts")
}
