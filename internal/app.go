package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// App holds the application state and dependencies
type App struct {
	provider      TranscriptProvider
	ai            *AI
	promptManager *PromptManager
	config        *Config
	ui            UIManager
}

// NewApp initializes the application
func NewApp(config *Config, options ...AppOption) *App {
	ui := NewUIManager(config.Verbose, config.Quiet)

	app := &App{
		provider:      NewYouTube(config.TempDir, ui),
		ai:            NewAIWithKey(config.APIKey, config.BaseURL, config.Model, config.ModelTimeout),
		promptManager: NewPromptManager(config.ConfigDir, config.Prompt),
		config:        config,
		ui:            ui,
	}

	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithProvider sets a custom transcript provider
func WithProvider(provider TranscriptProvider) AppOption {
	return func(a *App) {
		a.provider = provider
	}
}

// WithAI sets a custom AI processor
func WithAI(ai *AI) AppOption {
	return func(a *App) {
		a.ai = ai
	}
}

// WithAppUI sets a custom UI manager
func WithAppUI(ui UIManager) AppOption {
	return func(a *App) {
		a.ui = ui
	}
}

// SetPromptManager sets a new prompt manager
func (app *App) SetPromptManager(pm *PromptManager) {
	app.promptManager = pm
}

// UI returns the app's UI manager
func (app *App) UI() UIManager {
	return app.ui
}

// NewAgent creates a stateful agent configured from the app settings
func (app *App) NewAgent(options ...AgentOption) *Agent {
	opts := []AgentOption{
		WithCaptionOptions(app.config.CaptionOptions()),
		WithFetchTimeout(app.config.FetchTimeout),
		WithHistoryLimit(app.config.HistoryLimit),
		WithUI(app.ui),
	}
	if !app.config.Quiet && IsTerminal(os.Stdout) {
		opts = append(opts, WithRenderer(RenderMarkdown))
	}
	return NewAgent(app.provider, app.ai, append(opts, options...)...)
}

// Preload fetches the transcripts for urls into the agent's context.
// Failed URLs are skipped and reported together.
func (app *App) Preload(ctx context.Context, agent *Agent, urls []string) error {
	var errs []error
	for _, url := range urls {
		id, _, err := agent.FetchTranscript(ctx, url)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", url, err))
			continue
		}
		app.ui.Printf("Transcript fetched for %s\n", id)
	}
	return errors.Join(errs...)
}

// GetTranscript fetches a formatted transcript without keeping any context
func (app *App) GetTranscript(ctx context.Context, youtubeURL string) (VideoID, string, error) {
	spinner := app.ui.NewSpinner("Fetching transcript...")
	defer spinner.Finish()

	return app.fetchOnce(ctx, youtubeURL)
}

func (app *App) fetchOnce(ctx context.Context, youtubeURL string) (VideoID, string, error) {
	fetcher := NewTranscriptFetcher(app.provider, NewTranscriptCache(), app.config.CaptionOptions(), app.config.FetchTimeout)
	return fetcher.Fetch(ctx, youtubeURL)
}

// Summarize runs the one-shot pipeline: fetch, fill the prompt template, ask once
func (app *App) Summarize(ctx context.Context, youtubeURL string) (string, error) {
	spinner := app.ui.NewSpinner("Fetching transcript...")
	defer spinner.Finish()

	id, transcript, err := app.fetchOnce(ctx, youtubeURL)
	if err != nil {
		return "", err
	}
	if transcript == "" {
		return "", fmt.Errorf("transcript for %s is empty", id)
	}

	prompt, err := app.promptManager.CreatePrompt(id, transcript)
	if err != nil {
		return "", fmt.Errorf("creating prompt: %w", err)
	}

	spinner.Describe("Generating summary...")
	summary, err := app.ai.Ask(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generating summary: %w", err)
	}

	return summary, nil
}
