package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "voicedesk",
	Short: "VoiceDesk - desktop voice assistant",
	Long: `VoiceDesk is a push-to-talk desktop voice assistant.

Press a key, speak, and VoiceDesk recognizes your speech, composes a
spoken reply and reads it back, keeping a timestamped transcript of
the conversation on screen.

Cloud services (Azure Speech and Azure Translator) are configured via
environment variables:
  AZURE_SPEECH_KEY / AZURE_SPEECH_REGION
  AZURE_TRANSLATOR_KEY / AZURE_TRANSLATOR_REGION`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./configs/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
