// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     stt
// Description: Speech-to-text interface
// License:     MIT
// ============================================================================

package stt

import (
	"context"
)

// Transcriber converts recorded audio into text
type Transcriber interface {
	// Transcribe converts float32 audio samples to text. An utterance
	// the service cannot match yields an empty Result, not an error.
	Transcribe(ctx context.Context, samples []float32) (Result, error)

	// TranscribeFile recognizes a prerecorded WAV file
	TranscribeFile(ctx context.Context, path string) (Result, error)

	// Close releases resources
	Close() error
}

// Result holds a recognition result
type Result struct {
	// Text is the recognized text, empty when nothing was recognized
	Text string

	// Language is the recognition language that was requested
	Language string
}

// Config holds recognition settings shared by implementations
type Config struct {
	// Language is the recognition language tag (e.g. "en-US")
	Language string

	// SampleRate is the audio sample rate of the submitted samples
	SampleRate int
}

// DefaultConfig returns the default recognition configuration
func DefaultConfig() Config {
	return Config{
		Language:   "en-US",
		SampleRate: 16000,
	}
}
