package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytchat/internal"
)

// summarizeCmd runs the one-shot pipeline without any conversation state
var summarizeCmd = &cobra.Command{
	Use:   "summarize [YouTube URL]",
	Short: "Summarize a YouTube video in one shot",
	Example: `  # Summarize a video
  ytchat summarize "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

  # Use a custom prompt
  ytchat summarize "https://youtu.be/dQw4w9WgXcQ" --prompt "List the key points: {{.Transcript}}"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateModelRequirements(cmd, config); err != nil {
			return err
		}
		if err := internal.HandleCaptionFlags(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config)
		if err := internal.HandlePromptFlag(cmd, app); err != nil {
			return err
		}

		summary, err := app.Summarize(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if !config.Quiet && internal.IsTerminal(stdoutFile(cmd)) {
			if rendered, err := internal.RenderMarkdown(summary); err == nil {
				summary = rendered
			}
		}

		fmt.Fprintln(cmd.OutOrStdout(), summary)
		return nil
	},
}

func init() {
	internal.AddModelFlags(summarizeCmd)
	internal.AddCaptionFlags(summarizeCmd)
	internal.AddPromptFlag(summarizeCmd)
	rootCmd.AddCommand(summarizeCmd)
}
