package internal

import (
	"strings"
)

// VideoID is the 11 character token YouTube uses to address a video
type VideoID string

func (id VideoID) String() string { return string(id) }

// TranscriptEntry is one timestamped caption chunk
type TranscriptEntry struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Role is the author of a chat turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatTurn is a single message in the conversation history
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// InputKind classifies a line typed into the agent
type InputKind int

const (
	InputEmpty InputKind = iota
	InputExit
	InputURL
	InputText
)

// String returns a human-readable representation of the input kind
func (k InputKind) String() string {
	switch k {
	case InputExit:
		return "exit"
	case InputURL:
		return "url"
	case InputText:
		return "text"
	default:
		return "empty"
	}
}

var exitWords = []string{"exit", "quit", "bye"}

// ClassifyInput decides how the agent routes a line of input.
// The line is trimmed first; URL detection is a prefix check only.
func ClassifyInput(line string) InputKind {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return InputEmpty
	case isExitWord(line):
		return InputExit
	case strings.HasPrefix(line, "https://") || strings.HasPrefix(line, "www.youtube"):
		return InputURL
	default:
		return InputText
	}
}

func isExitWord(line string) bool {
	for _, w := range exitWords {
		if strings.EqualFold(line, w) {
			return true
		}
	}
	return false
}
