package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddModelFlags adds flags related to the language model
func AddModelFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "Model to use for answers and summaries")
	cmd.Flags().String("base-url", "", "OpenAI-compatible API base URL (e.g. https://api.groq.com/openai/v1)")
}

// AddCaptionFlags adds flags related to caption selection
func AddCaptionFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("language", "l", "", "Preferred caption language (e.g. en-GB)")
	cmd.Flags().Bool("no-fallback", false, "Fail instead of using the default caption language")
}

// AddPromptFlag adds the summary prompt flag
func AddPromptFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("prompt", "p", "", "Custom prompt (string or file path)")
}

// HandleCaptionFlags applies --language and --no-fallback to the config
func HandleCaptionFlags(cmd *cobra.Command, config *Config) error {
	if f := cmd.Flags().Lookup("language"); f != nil && f.Changed {
		config.CaptionLanguage = f.Value.String()
	}

	noFallback, err := cmd.Flags().GetBool("no-fallback")
	if err != nil {
		return fmt.Errorf("failed to get no-fallback flag: %w", err)
	}
	if noFallback {
		config.CaptionFallback = false
	}
	return nil
}

// HandlePromptFlag processes the --prompt flag to set custom prompt
func HandlePromptFlag(cmd *cobra.Command, app *App) error {
	promptFlag := cmd.Flags().Lookup("prompt")
	if promptFlag == nil || !promptFlag.Changed {
		return nil
	}

	prompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return fmt.Errorf("failed to get prompt flag: %w", err)
	}

	if prompt == "" {
		return nil
	}

	app.SetPromptManager(NewPromptManager(app.config.ConfigDir, prompt))

	if IsLikelyFilePath(prompt) && FileExists(prompt) {
		app.ui.Verbose("Using custom prompt file: %s\n", prompt)
	} else {
		app.ui.Verbose("Using custom prompt string\n")
	}

	return nil
}

// HandleVerboseFlag processes the --verbose and --quiet flags to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if cmd.Flags().Changed("verbose") {
		config.Verbose = verbose
	}
	if cmd.Flags().Changed("quiet") {
		config.Quiet = quiet
	}
	return nil
}

// ValidateModelRequirements checks the API key and applies --model and --base-url
func ValidateModelRequirements(cmd *cobra.Command, config *Config) error {
	if err := ValidateAPIKey(config.APIKey); err != nil {
		return err
	}

	if model, _ := cmd.Flags().GetString("model"); model != "" {
		config.Model = model
	}
	if baseURL, _ := cmd.Flags().GetString("base-url"); baseURL != "" {
		config.BaseURL = baseURL
	}
	if config.Model == "" {
		return fmt.Errorf("no model configured - set model in config.toml or pass --model")
	}

	return nil
}
