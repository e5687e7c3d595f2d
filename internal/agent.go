package internal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Response is the outcome of handling one line of input
type Response struct {
	Kind    InputKind
	VideoID VideoID
	// Text is the formatted transcript for InputURL and the reply for InputText
	Text string
}

// Agent routes input lines to the transcript fetcher or the model and keeps
// the conversation. It is not safe for concurrent use.
type Agent struct {
	conv      *Conversation
	fetcher   *TranscriptFetcher
	assembler *PromptAssembler
	ai        *AI
	ui        UIManager
	render    func(string) (string, error)

	captions     CaptionOptions
	fetchTimeout time.Duration
}

// AgentOption customizes Agent creation
type AgentOption func(*Agent)

// WithCaptionOptions sets the caption language selection
func WithCaptionOptions(opts CaptionOptions) AgentOption {
	return func(a *Agent) {
		a.captions = opts
	}
}

// WithFetchTimeout bounds each transcript fetch
func WithFetchTimeout(d time.Duration) AgentOption {
	return func(a *Agent) {
		a.fetchTimeout = d
	}
}

// WithHistoryLimit keeps only the most recent n turns in prompts
func WithHistoryLimit(n int) AgentOption {
	return func(a *Agent) {
		a.assembler = NewPromptAssembler(n)
	}
}

// WithUI sets the UI used for spinners and verbose output
func WithUI(ui UIManager) AgentOption {
	return func(a *Agent) {
		a.ui = ui
	}
}

// WithRenderer sets how replies are rendered by Run
func WithRenderer(render func(string) (string, error)) AgentOption {
	return func(a *Agent) {
		a.render = render
	}
}

// NewAgent creates an agent with an empty conversation
func NewAgent(provider TranscriptProvider, ai *AI, options ...AgentOption) *Agent {
	a := &Agent{
		conv:      NewConversation(),
		assembler: NewPromptAssembler(0),
		ai:        ai,
		ui:        NewUIManagerWithWriter(io.Discard, false, true),
	}

	for _, option := range options {
		option(a)
	}

	a.fetcher = NewTranscriptFetcher(provider, a.conv.Transcripts(), a.captions, a.fetchTimeout)
	return a
}

// Conversation returns the agent's conversation
func (a *Agent) Conversation() *Conversation {
	return a.conv
}

// Handle processes a single line of input. Errors leave the conversation untouched.
func (a *Agent) Handle(ctx context.Context, line string) (Response, error) {
	line = strings.TrimSpace(line)
	resp := Response{Kind: ClassifyInput(line)}

	switch resp.Kind {
	case InputURL:
		id, text, err := a.FetchTranscript(ctx, line)
		resp.VideoID = id
		if err != nil {
			return resp, err
		}
		resp.Text = text
	case InputText:
		reply, err := a.Ask(ctx, line)
		if err != nil {
			return resp, err
		}
		resp.Text = reply
	}

	return resp, nil
}

// FetchTranscript fetches and caches the transcript for url
func (a *Agent) FetchTranscript(ctx context.Context, url string) (VideoID, string, error) {
	spinner := a.ui.NewSpinner("Fetching transcript...")
	defer spinner.Finish()

	id, text, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		LogError("fetch %q: %v", url, err)
		return id, "", err
	}

	LogInfo("transcript for %s cached (%d videos)", id, a.conv.Transcripts().Len())
	return id, text, nil
}

// Ask sends input with the full context to the model and records both turns
func (a *Agent) Ask(ctx context.Context, input string) (string, error) {
	spinner := a.ui.NewSpinner("Thinking...")
	defer spinner.Finish()

	prompt := a.assembler.Assemble(a.conv, input)
	LogDebug("prompt: %d bytes, %d turns, %d transcripts", len(prompt), a.conv.Len(), a.conv.Transcripts().Len())

	reply, err := a.ai.Ask(ctx, prompt)
	if err != nil {
		LogError("model: %v", err)
		return "", err
	}

	a.conv.Append(
		ChatTurn{Role: RoleUser, Content: input},
		ChatTurn{Role: RoleAssistant, Content: reply},
	)
	return reply, nil
}

// Run reads lines from in until an exit word, EOF or cancellation.
// A failed iteration is reported on out and the loop continues.
func (a *Agent) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "=== YouTube Video Transcript Agent ===")
	fmt.Fprintln(out, "Type 'exit' to quit")

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for ctx.Err() == nil {
		fmt.Fprint(out, "\nYou: ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		resp, err := a.Handle(ctx, scanner.Text())
		switch resp.Kind {
		case InputExit:
			return nil
		case InputURL:
			if err != nil {
				fmt.Fprintf(out, "Error fetching transcript: %v\n", err)
				continue
			}
			fmt.Fprintln(out, "\nTranscript fetched! Stored in context.")
		case InputText:
			if err != nil {
				fmt.Fprintf(out, "Error: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "\nAgent: %s\n", a.display(resp.Text))
		}
	}

	return nil
}

// display renders a reply for the terminal, falling back to the raw text
func (a *Agent) display(reply string) string {
	if a.render == nil {
		return reply
	}
	rendered, err := a.render(reply)
	if err != nil {
		a.ui.Verbose("Failed to render reply: %v\n", err)
		return reply
	}
	return strings.TrimSpace(rendered)
}

// Reset drops all cached transcripts and history
func (a *Agent) Reset() {
	a.conv.Reset()
}
