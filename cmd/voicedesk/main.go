package main

import (
	"os"

	"github.com/voicedesk/voicedesk/cmd/voicedesk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
