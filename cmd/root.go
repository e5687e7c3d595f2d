package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytchat/internal"
)

var (
	config *internal.Config
)

// rootCmd starts the interactive agent
var rootCmd = &cobra.Command{
	Use:   "ytchat [YouTube URL...]",
	Short: "Chat with a language model about YouTube videos",
	Long: `ytchat fetches YouTube transcripts and lets you chat with a language model about them.

Paste a YouTube URL to add its transcript to the conversation, type anything
else to ask about the videos fetched so far. Type exit, quit or bye to leave.

Any OpenAI-compatible API works; set base_url for providers such as Groq.`,
	Example: `  # Start chatting
  ytchat

  # Preload a video, then chat
  ytchat "https://youtu.be/dQw4w9WgXcQ"

  # Use Groq with British English captions
  GROQ_API_KEY=... ytchat --base-url https://api.groq.com/openai/v1 -m llama-3.3-70b-versatile -l en-GB`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.HandleVerboseFlag(cmd, config); err != nil {
			return err
		}
		internal.InitLogging(config)
		return nil
	},
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateModelRequirements(cmd, config); err != nil {
			return err
		}
		if err := internal.HandleCaptionFlags(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config)
		agent := app.NewAgent()

		if err := app.Preload(cmd.Context(), agent, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching transcript: %v\n", err)
		}

		return agent.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config = internal.InitConfig()

	if err := internal.EnsureDirs(config.ConfigDir, config.CacheDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating XDG directories: %v\n", err)
		os.Exit(1)
	}

	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	if err := internal.EnsureDefaultPrompt(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default prompt: %v\n", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal. Cleaning up and shutting down...")

		cancel()

		cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cleanupCancel()

		cleanupDone := make(chan struct{})
		go func() {
			if err := internal.CleanupTempDir(config.TempDir); err != nil {
				fmt.Fprintf(os.Stderr, "Error cleaning up temporary files: %v\n", err)
			}
			close(cleanupDone)
		}()

		select {
		case <-cleanupDone:
		case <-cleanupCtx.Done():
			fmt.Fprintln(os.Stderr, "Warning: Cleanup timed out, forcing exit")
		}

		os.Exit(0)
	}()

	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

func init() {
	internal.AddModelFlags(rootCmd)
	internal.AddCaptionFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress spinners and status messages")
}
