package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "5s", 5 * time.Second, false},
		{"milliseconds", "1500ms", 1500 * time.Millisecond, false},
		{"complex", "1m30s", 90 * time.Second, false},
		{"invalid", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestConfig_applyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	if cfg.General.Name != "VoiceDesk" {
		t.Errorf("General.Name = %v, want VoiceDesk", cfg.General.Name)
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("Audio.SampleRate = %v, want 16000", cfg.Audio.SampleRate)
	}
	if cfg.Recording.MaxUtterance.Duration != 5*time.Second {
		t.Errorf("Recording.MaxUtterance = %v, want 5s", cfg.Recording.MaxUtterance.Duration)
	}
	if cfg.Speech.Language != "en-US" {
		t.Errorf("Speech.Language = %v, want en-US", cfg.Speech.Language)
	}
	if cfg.Speech.Voice != "en-US-JennyNeural" {
		t.Errorf("Speech.Voice = %v, want en-US-JennyNeural", cfg.Speech.Voice)
	}
	if cfg.Translator.TargetLanguage != "en" {
		t.Errorf("Translator.TargetLanguage = %v, want en", cfg.Translator.TargetLanguage)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled should default to false")
	}
	if cfg.Recording.VADMode == nil || *cfg.Recording.VADMode != 2 {
		t.Errorf("Recording.VADMode = %v, want 2", cfg.Recording.VADMode)
	}
}

func TestLoad_VADModeZeroPreserved(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[recording]
vad_mode = 0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Recording.VADMode == nil || *cfg.Recording.VADMode != 0 {
		t.Errorf("Recording.VADMode = %v, want explicit 0", cfg.Recording.VADMode)
	}
}

func TestConfig_applyDefaults_KeepsExisting(t *testing.T) {
	cfg := &Config{}
	cfg.Speech.Language = "de-DE"
	cfg.Audio.SampleRate = 48000
	cfg.applyDefaults()

	if cfg.Speech.Language != "de-DE" {
		t.Errorf("Speech.Language = %v, want de-DE", cfg.Speech.Language)
	}
	if cfg.Audio.SampleRate != 48000 {
		t.Errorf("Audio.SampleRate = %v, want 48000", cfg.Audio.SampleRate)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[general]
name = "TestDesk"
log_level = "debug"

[speech]
language = "fr-FR"
timeout = "10s"

[translator]
target_language = "fr"

[history]
enabled = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.Name != "TestDesk" {
		t.Errorf("General.Name = %v, want TestDesk", cfg.General.Name)
	}
	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Speech.Language != "fr-FR" {
		t.Errorf("Speech.Language = %v, want fr-FR", cfg.Speech.Language)
	}
	if cfg.Speech.Timeout.Duration != 10*time.Second {
		t.Errorf("Speech.Timeout = %v, want 10s", cfg.Speech.Timeout.Duration)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}

	// Defaults still fill the gaps
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("Audio.SampleRate = %v, want 16000", cfg.Audio.SampleRate)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.toml"); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	t.Setenv("VOICEDESK_TEST_DATA", "/tmp/vd-data")

	content := `
[general]
data_dir = "$VOICEDESK_TEST_DATA"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.DataDir != "/tmp/vd-data" {
		t.Errorf("General.DataDir = %v, want /tmp/vd-data", cfg.General.DataDir)
	}
}

func TestCredentials_Validate(t *testing.T) {
	full := Credentials{
		SpeechKey:        "sk",
		SpeechRegion:     "westeurope",
		TranslatorKey:    "tk",
		TranslatorRegion: "westeurope",
	}

	tests := []struct {
		name    string
		mutate  func(c *Credentials)
		wantErr bool
	}{
		{"complete", func(c *Credentials) {}, false},
		{"missing speech key", func(c *Credentials) { c.SpeechKey = "" }, true},
		{"missing speech region", func(c *Credentials) { c.SpeechRegion = "" }, true},
		{"missing translator key", func(c *Credentials) { c.TranslatorKey = "" }, true},
		{"missing translator region", func(c *Credentials) { c.TranslatorRegion = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creds := full
			tt.mutate(&creds)
			if err := creds.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadCredentials_FromEnv(t *testing.T) {
	t.Setenv("AZURE_SPEECH_KEY", "abc")
	t.Setenv("AZURE_SPEECH_REGION", "eastus")
	t.Setenv("AZURE_TRANSLATOR_KEY", "def")
	t.Setenv("AZURE_TRANSLATOR_REGION", "eastus")

	creds, err := LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials() error = %v", err)
	}
	if creds.SpeechKey != "abc" {
		t.Errorf("SpeechKey = %v, want abc", creds.SpeechKey)
	}
	if creds.SpeechRegion != "eastus" {
		t.Errorf("SpeechRegion = %v, want eastus", creds.SpeechRegion)
	}
	if err := creds.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
