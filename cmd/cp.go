package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/rtzll/ytchat/internal"
)

// cpCmd copies the transcript to the system clipboard instead of printing to stdout.
var cpCmd = &cobra.Command{
	Use:   "cp [YouTube URL]",
	Short: "Copy the timestamped transcript of a YouTube video to the clipboard",
	Example: `  ytchat cp "https://www.youtube.com/watch?v=dQw4w9WgXcQ"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.HandleCaptionFlags(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config)
		_, transcript, err := app.GetTranscript(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(transcript); err != nil {
			return fmt.Errorf("copying transcript to clipboard: %w", err)
		}

		app.UI().Println("Transcript copied to clipboard")

		return nil
	},
}

func init() {
	internal.AddCaptionFlags(cpCmd)
	rootCmd.AddCommand(cpCmd)
}
