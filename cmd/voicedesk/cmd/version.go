package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voicedesk/voicedesk/internal/assistant"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("VoiceDesk %s\n", assistant.Version)
		fmt.Printf("  commit: %s\n", assistant.GitCommit)
		fmt.Printf("  built:  %s\n", assistant.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
