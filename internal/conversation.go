package internal

import (
	"slices"
)

// Conversation holds the cached transcripts and chat history for one session.
// History is append-only; it is not safe for concurrent use.
type Conversation struct {
	transcripts *TranscriptCache
	history     []ChatTurn
}

// NewConversation creates an empty conversation
func NewConversation() *Conversation {
	return &Conversation{transcripts: NewTranscriptCache()}
}

// Transcripts exposes the transcript cache so a fetcher can populate it
func (c *Conversation) Transcripts() *TranscriptCache {
	return c.transcripts
}

// VideoIDs returns the cached video IDs in ascending order
func (c *Conversation) VideoIDs() []VideoID {
	ids := make([]VideoID, 0, len(c.transcripts.entries))
	for id := range c.transcripts.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Append adds turns to the end of the history
func (c *Conversation) Append(turns ...ChatTurn) {
	c.history = append(c.history, turns...)
}

// History returns a copy of the chat history in chronological order
func (c *Conversation) History() []ChatTurn {
	return slices.Clone(c.history)
}

// Len returns the number of turns in the history
func (c *Conversation) Len() int {
	return len(c.history)
}

// Reset drops all transcripts and history
func (c *Conversation) Reset() {
	c.transcripts.Clear()
	c.history = nil
}
