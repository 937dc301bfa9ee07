package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the complete application configuration
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Audio      AudioConfig      `toml:"audio"`
	Recording  RecordingConfig  `toml:"recording"`
	Speech     SpeechConfig     `toml:"speech"`
	Translator TranslatorConfig `toml:"translator"`
	History    HistoryConfig    `toml:"history"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name     string `toml:"name"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
	DataDir  string `toml:"data_dir"`
}

// AudioConfig holds microphone and playback settings
type AudioConfig struct {
	InputDevice string `toml:"input_device"`
	SampleRate  int    `toml:"sample_rate"`
	BufferSize  int    `toml:"buffer_size"`
}

// RecordingConfig holds utterance capture settings
type RecordingConfig struct {
	MaxUtterance      Duration `toml:"max_utterance"`
	SilenceDuration   Duration `toml:"silence_duration"`
	MinSpeechDuration Duration `toml:"min_speech_duration"`

	// VADMode is the detector aggressiveness, 0-3. A pointer so an
	// explicit 0 is distinguishable from unset.
	VADMode *int `toml:"vad_mode"`
}

// SpeechConfig holds cloud speech service settings
type SpeechConfig struct {
	// Language is the recognition language tag (e.g. "en-US")
	Language string `toml:"language"`

	// Voice is the synthesis voice name (e.g. "en-US-JennyNeural")
	Voice string `toml:"voice"`

	// OutputFormat is the synthesis audio format requested from the service
	OutputFormat string `toml:"output_format"`

	// Timeout bounds a single recognition or synthesis request
	Timeout Duration `toml:"timeout"`
}

// TranslatorConfig holds cloud translation settings
type TranslatorConfig struct {
	Endpoint       string `toml:"endpoint"`
	TargetLanguage string `toml:"target_language"`
}

// HistoryConfig holds transcript persistence settings
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return &cfg, nil
}

// LoadFromEnv loads configuration from the VOICEDESK_CONFIG environment
// variable or the default search paths. A missing file yields the defaults.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("VOICEDESK_CONFIG")
	if path == "" {
		defaultPaths := []string{
			"./configs/config.toml",
			"./config.toml",
			filepath.Join(os.Getenv("HOME"), ".config/voicedesk/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), nil
	}

	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.Name == "" {
		c.General.Name = "VoiceDesk"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogFile == "" {
		c.General.LogFile = filepath.Join(c.General.DataDir, "voicedesk.log")
	}

	if c.Audio.InputDevice == "" {
		c.Audio.InputDevice = "default"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.Audio.BufferSize == 0 {
		c.Audio.BufferSize = 512
	}

	if c.Recording.MaxUtterance.Duration == 0 {
		c.Recording.MaxUtterance.Duration = 5 * time.Second
	}
	if c.Recording.SilenceDuration.Duration == 0 {
		c.Recording.SilenceDuration.Duration = 1500 * time.Millisecond
	}
	if c.Recording.MinSpeechDuration.Duration == 0 {
		c.Recording.MinSpeechDuration.Duration = 300 * time.Millisecond
	}
	if c.Recording.VADMode == nil {
		mode := 2
		c.Recording.VADMode = &mode
	}

	if c.Speech.Language == "" {
		c.Speech.Language = "en-US"
	}
	if c.Speech.Voice == "" {
		c.Speech.Voice = "en-US-JennyNeural"
	}
	if c.Speech.OutputFormat == "" {
		c.Speech.OutputFormat = "riff-16khz-16bit-mono-pcm"
	}
	if c.Speech.Timeout.Duration == 0 {
		c.Speech.Timeout.Duration = 30 * time.Second
	}

	if c.Translator.Endpoint == "" {
		c.Translator.Endpoint = "https://api.cognitive.microsofttranslator.com"
	}
	if c.Translator.TargetLanguage == "" {
		c.Translator.TargetLanguage = "en"
	}

	if c.History.Path == "" {
		c.History.Path = filepath.Join(c.General.DataDir, "history.db")
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
	c.History.Path = os.ExpandEnv(c.History.Path)
	c.Translator.Endpoint = os.ExpandEnv(c.Translator.Endpoint)
}

// Credentials holds the cloud service secrets. They are read from the
// environment only, never from the config file.
type Credentials struct {
	SpeechKey        string `env:"AZURE_SPEECH_KEY"`
	SpeechRegion     string `env:"AZURE_SPEECH_REGION"`
	TranslatorKey    string `env:"AZURE_TRANSLATOR_KEY"`
	TranslatorRegion string `env:"AZURE_TRANSLATOR_REGION"`
}

// LoadCredentials reads credentials from the environment, loading a .env
// file first if one is present.
func LoadCredentials() (Credentials, error) {
	_ = godotenv.Load()

	var creds Credentials
	if err := env.Parse(&creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse credentials from environment: %w", err)
	}

	return creds, nil
}

// Validate checks that all required credentials are set
func (c Credentials) Validate() error {
	if c.SpeechKey == "" {
		return fmt.Errorf("AZURE_SPEECH_KEY is not set")
	}
	if c.SpeechRegion == "" {
		return fmt.Errorf("AZURE_SPEECH_REGION is not set")
	}
	if c.TranslatorKey == "" {
		return fmt.Errorf("AZURE_TRANSLATOR_KEY is not set")
	}
	if c.TranslatorRegion == "" {
		return fmt.Errorf("AZURE_TRANSLATOR_REGION is not set")
	}
	return nil
}
