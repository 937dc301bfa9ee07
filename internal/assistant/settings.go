package assistant

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/voicedesk/voicedesk/pkg/core/config"
)

// Settings are the user-adjustable preferences persisted between runs
type Settings struct {
	Language       string `json:"language"`
	TargetLanguage string `json:"target_language"`
	Voice          string `json:"voice"`
	InputDevice    string `json:"input_device"`
}

// settingsPath returns the settings file location under the user config dir
func settingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, "voicedesk", "settings.json"), nil
}

// LoadSettings reads persisted settings. A missing file returns zero
// settings and no error.
func LoadSettings() (Settings, error) {
	path, err := settingsPath()
	if err != nil {
		return Settings{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("failed to read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}

	return s, nil
}

// SaveSettings writes settings to the user config dir
func SaveSettings(s Settings) error {
	path, err := settingsPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

// SaveSettings persists the app's current user-adjustable state
func (a *App) SaveSettings() error {
	a.mu.RLock()
	s := Settings{
		Language:       a.config.Speech.Language,
		TargetLanguage: a.config.Translator.TargetLanguage,
		Voice:          a.config.Speech.Voice,
		InputDevice:    a.config.Audio.InputDevice,
	}
	a.mu.RUnlock()

	return SaveSettings(s)
}

// ApplySettings overrides configuration with persisted non-empty values
func ApplySettings(cfg *config.Config, s Settings) {
	if s.Language != "" {
		cfg.Speech.Language = s.Language
	}
	if s.TargetLanguage != "" {
		cfg.Translator.TargetLanguage = s.TargetLanguage
	}
	if s.Voice != "" {
		cfg.Speech.Voice = s.Voice
	}
	if s.InputDevice != "" {
		cfg.Audio.InputDevice = s.InputDevice
	}
}
