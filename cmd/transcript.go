package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytchat/internal"
)

// transcriptCmd prints the formatted transcript
var transcriptCmd = &cobra.Command{
	Use:   "transcript [YouTube URL]",
	Short: "Print the timestamped transcript of a YouTube video",
	Example: `  # Print transcript
  ytchat transcript "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

  # Save transcript to file, preferring British English captions
  ytchat transcript "https://youtu.be/dQw4w9WgXcQ" -l en-GB -o transcript.txt`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.HandleCaptionFlags(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config)
		_, transcript, err := app.GetTranscript(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(transcript), 0644)
		}

		fmt.Fprintln(cmd.OutOrStdout(), transcript)
		return nil
	},
}

// stdoutFile returns the command's stdout when it is a real file
func stdoutFile(cmd *cobra.Command) *os.File {
	if f, ok := cmd.OutOrStdout().(*os.File); ok {
		return f
	}
	return os.Stdout
}

func init() {
	internal.AddCaptionFlags(transcriptCmd)
	transcriptCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(transcriptCmd)
}
