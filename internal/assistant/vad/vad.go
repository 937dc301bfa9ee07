// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     vad
// Description: Voice activity detection and utterance tracking
// License:     MIT
// ============================================================================

package vad

import (
	"time"
)

// Detector reports whether an audio frame contains speech
type Detector interface {
	// Process evaluates float32 samples in [-1, 1]
	Process(samples []float32) (bool, error)

	// ProcessInt16 evaluates 16-bit PCM samples
	ProcessInt16(samples []int16) (bool, error)

	// Close releases resources
	Close() error
}

// Config holds detection and utterance tracking settings
type Config struct {
	// SampleRate must be 8000, 16000, 32000 or 48000
	SampleRate int

	// Mode is the aggressiveness (0-3), higher filters more non-speech
	Mode int

	// SilenceDuration is how long silence must last to end the utterance
	SilenceDuration time.Duration

	// MinSpeechDuration is the least speech that counts as an utterance
	MinSpeechDuration time.Duration
}

// DefaultConfig returns the default detection configuration
func DefaultConfig() Config {
	return Config{
		SampleRate:        16000,
		Mode:              2,
		SilenceDuration:   1500 * time.Millisecond,
		MinSpeechDuration: 300 * time.Millisecond,
	}
}

// Tracker derives utterance boundaries from a stream of per-frame
// speech decisions. Speech time is accumulated per speech segment, so
// silence between segments never counts toward the minimum.
type Tracker struct {
	config        Config
	speechStarted bool
	segmentStart  time.Time
	silenceStart  time.Time
	silence       time.Duration
	speech        time.Duration
}

// NewTracker creates an utterance tracker
func NewTracker(cfg Config) *Tracker {
	return &Tracker{config: cfg}
}

// Update feeds one frame decision into the tracker
func (t *Tracker) Update(isSpeech bool) {
	now := time.Now()

	if isSpeech {
		t.speechStarted = true
		if t.segmentStart.IsZero() {
			t.segmentStart = now
		}
		t.silence = 0
		t.silenceStart = time.Time{}
		return
	}

	if t.speechStarted {
		if !t.segmentStart.IsZero() {
			t.speech += now.Sub(t.segmentStart)
			t.segmentStart = time.Time{}
		}
		if t.silenceStart.IsZero() {
			t.silenceStart = now
		}
		t.silence = now.Sub(t.silenceStart)
	}
}

// speechTotal is the accumulated speech time including an open segment
func (t *Tracker) speechTotal() time.Duration {
	total := t.speech
	if !t.segmentStart.IsZero() {
		total += time.Since(t.segmentStart)
	}
	return total
}

// UtteranceEnded reports whether enough trailing silence has accumulated
// after valid speech
func (t *Tracker) UtteranceEnded() bool {
	return t.speechStarted &&
		t.silence >= t.config.SilenceDuration &&
		t.speechTotal() >= t.config.MinSpeechDuration
}

// SpeechStarted reports whether any speech has been heard yet
func (t *Tracker) SpeechStarted() bool {
	return t.speechStarted
}

// HasValidSpeech reports whether the minimum amount of speech was heard
func (t *Tracker) HasValidSpeech() bool {
	return t.speechTotal() >= t.config.MinSpeechDuration
}

// SpeechDuration returns the accumulated speech time
func (t *Tracker) SpeechDuration() time.Duration {
	return t.speechTotal()
}

// Reset prepares the tracker for the next utterance
func (t *Tracker) Reset() {
	t.speechStarted = false
	t.segmentStart = time.Time{}
	t.silenceStart = time.Time{}
	t.silence = 0
	t.speech = 0
}
