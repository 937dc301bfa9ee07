package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/voicedesk/voicedesk/internal/assistant"
	tui "github.com/voicedesk/voicedesk/internal/tui/assistant"
	"github.com/voicedesk/voicedesk/pkg/core/config"
	"github.com/voicedesk/voicedesk/pkg/core/logging"
)

var (
	runLanguage string
	runTarget   string
	runVoice    string
	runDevice   string
	runHistory  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the assistant window",
	Long: `Starts the assistant window.

Press Enter, speak, and wait for the spoken reply. Recording stops on
its own after a pause, or after five seconds at the latest.

Examples:
  voicedesk run
  voicedesk run --language de-DE --target de
  voicedesk run --device "USB Microphone"`,
	RunE: runAssistant,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runLanguage, "language", "l", "",
		"recognition language (e.g. en-US)")
	runCmd.Flags().StringVarP(&runTarget, "target", "t", "",
		"reply language (e.g. en)")
	runCmd.Flags().StringVar(&runVoice, "voice", "",
		"synthesis voice (e.g. en-US-JennyNeural)")
	runCmd.Flags().StringVar(&runDevice, "device", "",
		"input device name (see 'voicedesk devices')")
	runCmd.Flags().BoolVar(&runHistory, "history", false,
		"persist the transcript across sessions")
}

func runAssistant(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		printError("failed to load configuration", err)
		return err
	}

	// Saved settings override config file defaults
	if settings, err := assistant.LoadSettings(); err == nil {
		assistant.ApplySettings(cfg, settings)
	}

	// CLI flags override everything
	if cmd.Flags().Changed("language") {
		cfg.Speech.Language = runLanguage
	}
	if cmd.Flags().Changed("target") {
		cfg.Translator.TargetLanguage = runTarget
	}
	if cmd.Flags().Changed("voice") {
		cfg.Speech.Voice = runVoice
	}
	if cmd.Flags().Changed("device") {
		cfg.Audio.InputDevice = runDevice
	}
	if cmd.Flags().Changed("history") {
		cfg.History.Enabled = runHistory
	}

	logLevel := cfg.General.LogLevel
	if verbose {
		logLevel = "debug"
	}
	if err := logging.Init(logging.Config{
		Level:    logLevel,
		FilePath: cfg.General.LogFile,
	}); err != nil {
		printError("failed to initialize logging", err)
		return err
	}
	defer logging.Sync()

	creds, err := config.LoadCredentials()
	if err != nil {
		printError("failed to load credentials", err)
		return err
	}
	if err := creds.Validate(); err != nil {
		printError("missing credentials", err)
		return err
	}

	app, err := assistant.New(cfg, creds)
	if err != nil {
		printError("failed to start assistant", err)
		return err
	}
	defer app.Close()

	if err := tui.Run(app); err != nil {
		return fmt.Errorf("assistant window failed: %w", err)
	}

	// Persist language and voice choices for the next session
	if err := app.SaveSettings(); err != nil {
		printError("failed to save settings", err)
	}

	return nil
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadFromEnv()
}
