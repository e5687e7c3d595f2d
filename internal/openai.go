package internal

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// ChatModel is the language model collaborator
type ChatModel interface {
	Complete(ctx context.Context, model string, messages []ChatTurn) (string, error)
}

// OpenAIClient wraps the official OpenAI Go SDK.
// Any OpenAI compatible endpoint works through the base URL.
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey, baseURL string) *OpenAIClient {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAIClient{client: &client}
}

// Complete implements the chat completion method
func (c *OpenAIClient) Complete(ctx context.Context, model string, messages []ChatTurn) (string, error) {
	params := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case RoleAssistant:
			params = append(params, openai.AssistantMessage(m.Content))
		default:
			params = append(params, openai.UserMessage(m.Content))
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: params,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response choices from model")
	}
	return resp.Choices[0].Message.Content, nil
}

// AI sends prompts to the chat model with a per-call timeout
type AI struct {
	client     ChatModel
	model      string
	timeout    time.Duration
	apiKey     string
	baseURL    string
	clientOnce sync.Once
}

// NewAI creates a new AI processor
func NewAI(client ChatModel, model string, timeout time.Duration) *AI {
	return &AI{
		client:  client,
		model:   model,
		timeout: timeout,
	}
}

// NewAIWithKey creates a new AI processor with lazy client initialization
func NewAIWithKey(apiKey, baseURL, model string, timeout time.Duration) *AI {
	return &AI{
		model:   model,
		timeout: timeout,
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

// Model returns the configured model identifier
func (ai *AI) Model() string {
	return ai.model
}

// ensureClient initializes the OpenAI client if needed
func (ai *AI) ensureClient() error {
	if ai.client != nil {
		return nil
	}

	if err := ValidateAPIKey(ai.apiKey); err != nil {
		return err
	}

	ai.clientOnce.Do(func() {
		ai.client = NewOpenAIClient(ai.apiKey, ai.baseURL)
	})

	return nil
}

// Ask sends a single user prompt and returns the reply.
// Failures are reported as *ModelError.
func (ai *AI) Ask(ctx context.Context, prompt string) (string, error) {
	if err := ai.ensureClient(); err != nil {
		return "", err
	}

	if ai.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ai.timeout)
		defer cancel()
	}

	content, err := ai.client.Complete(ctx, ai.model, []ChatTurn{{Role: RoleUser, Content: prompt}})
	if err != nil {
		return "", &ModelError{Model: ai.model, Err: err}
	}

	return content, nil
}
