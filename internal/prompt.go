package internal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// PromptAssembler renders the conversation into a single prompt string
type PromptAssembler struct {
	// HistoryLimit keeps only the most recent turns when positive.
	// Zero includes the full history.
	HistoryLimit int
}

// NewPromptAssembler creates an assembler with the given history bound
func NewPromptAssembler(historyLimit int) *PromptAssembler {
	return &PromptAssembler{HistoryLimit: historyLimit}
}

// Assemble builds the prompt for a new user input: every cached transcript,
// then the history, then the new turn. Output depends only on its inputs.
func (pa *PromptAssembler) Assemble(conv *Conversation, input string) string {
	var sb strings.Builder

	for _, id := range conv.VideoIDs() {
		text, _ := conv.Transcripts().Get(id)
		fmt.Fprintf(&sb, "Transcript for video %s:\n%s\n\n", id, text)
	}

	history := conv.History()
	if pa.HistoryLimit > 0 && len(history) > pa.HistoryLimit {
		history = history[len(history)-pa.HistoryLimit:]
	}
	for i, turn := range history {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%s: %s", turn.Role, turn.Content)
	}

	fmt.Fprintf(&sb, "\n%s: %s", RoleUser, input)
	return sb.String()
}

// PromptData for template injection
type PromptData struct {
	VideoID    string
	Transcript string
}

// PromptManager handles loading and processing the one-shot summary template
type PromptManager struct {
	promptFile   string
	promptString string
	configDir    string
}

// NewPromptManager creates a new prompt manager
func NewPromptManager(configDir, promptSetting string) *PromptManager {
	pm := &PromptManager{
		configDir: configDir,
	}

	if promptSetting != "" {
		if IsLikelyFilePath(promptSetting) && FileExists(promptSetting) {
			pm.promptFile = promptSetting
		} else {
			pm.promptString = promptSetting
		}
	}

	return pm
}

// CreatePrompt builds the summary prompt for a transcript
func (pm *PromptManager) CreatePrompt(id VideoID, transcript string) (string, error) {
	tmplContent, err := pm.templateContent()
	if err != nil {
		return "", err
	}

	tmpl, err := template.New("prompt").Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("parsing prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, PromptData{VideoID: string(id), Transcript: transcript}); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}

	return buf.String(), nil
}

// templateContent picks the prompt string, the prompt file, the config dir
// prompt.txt or the embedded default, in that order
func (pm *PromptManager) templateContent() (string, error) {
	if pm.promptString != "" {
		return pm.promptString, nil
	}

	promptFile := pm.promptFile
	if promptFile == "" {
		promptFile = filepath.Join(pm.configDir, "prompt.txt")
		if !FileExists(promptFile) {
			content, err := defaultFS.ReadFile("prompt.txt")
			if err != nil {
				return "", fmt.Errorf("reading embedded prompt template: %w", err)
			}
			return string(content), nil
		}
	}

	content, err := os.ReadFile(promptFile)
	if err != nil {
		return "", fmt.Errorf("reading prompt template: %w", err)
	}
	return string(content), nil
}

// IsLikelyFilePath uses heuristics to determine if a string is likely a file path
func IsLikelyFilePath(s string) bool {
	if strings.Contains(s, "/") || strings.Contains(s, "\\") {
		return true
	}

	if strings.Contains(s, ".txt") || strings.Contains(s, ".md") ||
		strings.Contains(s, ".template") || strings.Contains(s, ".tmpl") {
		return true
	}

	// long strings are prompts
	if len(s) > 200 {
		return false
	}

	return !strings.Contains(s, " ") && !strings.Contains(s, "\n")
}
