// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     tts
// Description: Text-to-speech interface
// License:     MIT
// ============================================================================

package tts

import (
	"context"
)

// Synthesizer converts text into playable audio
type Synthesizer interface {
	// Synthesize renders text as WAV audio
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// SynthesizeToFile renders text and writes the audio to path
	SynthesizeToFile(ctx context.Context, text, path string) error

	// SampleRate returns the sample rate of the produced audio
	SampleRate() int

	// Close releases resources
	Close() error
}

// Voice describes a synthesis voice offered by the service
type Voice struct {
	// Name is the full voice name (e.g. "en-US-JennyNeural")
	Name string

	// ShortName is the service short name
	ShortName string

	// Locale is the voice locale (e.g. "en-US")
	Locale string

	// Gender as reported by the service
	Gender string
}

// Config holds synthesis settings shared by implementations
type Config struct {
	// Voice is the synthesis voice name
	Voice string

	// OutputFormat is the requested audio container and encoding
	OutputFormat string
}

// DefaultConfig returns the default synthesis configuration
func DefaultConfig() Config {
	return Config{
		Voice:        "en-US-JennyNeural",
		OutputFormat: "riff-16khz-16bit-mono-pcm",
	}
}
