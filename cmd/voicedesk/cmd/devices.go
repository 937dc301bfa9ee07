package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voicedesk/voicedesk/internal/assistant/audio"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio input devices",
	Long: `Lists the available audio input devices.

Pass a device name to 'voicedesk run --device' to record from a
specific microphone instead of the system default.`,
	RunE: runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	devices, err := audio.ListInputDevices()
	if err != nil {
		printError("failed to list input devices", err)
		return err
	}

	if len(devices) == 0 {
		fmt.Println("No input devices found.")
		return nil
	}

	fmt.Println("Input devices:")
	for _, dev := range devices {
		marker := " "
		if dev.IsDefault {
			marker = "*"
		}
		fmt.Printf("  %s %-40s %d ch, %.0f Hz\n",
			marker, dev.Name, dev.MaxInputChannels, dev.DefaultSampleRate)
	}
	fmt.Println("\n  * = system default")

	return nil
}
