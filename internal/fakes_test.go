package internal

import (
	"context"
	"io"
)

type fakeProvider struct {
	entries map[VideoID][]TranscriptEntry
	err     error
	calls   int
	opts    []CaptionOptions
}

func (p *fakeProvider) Fetch(ctx context.Context, id VideoID, opts CaptionOptions) ([]TranscriptEntry, error) {
	p.calls++
	p.opts = append(p.opts, opts)
	if p.err != nil {
		return nil, p.err
	}
	return p.entries[id], nil
}

type fakeModel struct {
	reply    string
	err      error
	models   []string
	messages [][]ChatTurn
	deadline bool
}

func (m *fakeModel) Complete(ctx context.Context, model string, messages []ChatTurn) (string, error) {
	m.models = append(m.models, model)
	m.messages = append(m.messages, messages)
	_, m.deadline = ctx.Deadline()
	if m.err != nil {
		return "", m.err
	}
	return m.reply, nil
}

func (m *fakeModel) lastPrompt() string {
	if len(m.messages) == 0 {
		return ""
	}
	last := m.messages[len(m.messages)-1]
	return last[len(last)-1].Content
}

func quietUI() UIManager {
	return NewUIManagerWithWriter(io.Discard, false, true)
}

const testVideoID VideoID = "dQw4w9WgXcQ"

func twoEntryProvider() *fakeProvider {
	return &fakeProvider{entries: map[VideoID][]TranscriptEntry{
		testVideoID: {
			{Start: 0, Duration: 2, Text: "hello"},
			{Start: 65, Duration: 2, Text: "hi"},
		},
	}}
}
