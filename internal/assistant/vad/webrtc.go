package vad

import (
	"fmt"

	webrtcvad "github.com/maxhawkins/go-webrtcvad"
)

// WebRTC implements Detector on top of the WebRTC VAD
type WebRTC struct {
	vad        *webrtcvad.VAD
	sampleRate int
	mode       int
}

// NewWebRTC creates a WebRTC-based detector
func NewWebRTC(cfg Config) (*WebRTC, error) {
	switch cfg.SampleRate {
	case 8000, 16000, 32000, 48000:
	default:
		return nil, fmt.Errorf("unsupported sample rate %d", cfg.SampleRate)
	}

	v, err := webrtcvad.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create VAD: %w", err)
	}

	mode := cfg.Mode
	if mode < 0 {
		mode = 0
	}
	if mode > 3 {
		mode = 3
	}
	if err := v.SetMode(mode); err != nil {
		return nil, fmt.Errorf("failed to set VAD mode: %w", err)
	}

	return &WebRTC{
		vad:        v,
		sampleRate: cfg.SampleRate,
		mode:       mode,
	}, nil
}

// Process evaluates float32 samples
func (w *WebRTC) Process(samples []float32) (bool, error) {
	pcm := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1.0 {
			s = 1.0
		}
		if s < -1.0 {
			s = -1.0
		}
		pcm[i] = int16(s * 32767)
	}
	return w.ProcessInt16(pcm)
}

// ProcessInt16 evaluates 16-bit PCM samples. The detector requires 10ms,
// 20ms or 30ms frames; input is split into 10ms frames and speech in any
// frame counts.
func (w *WebRTC) ProcessInt16(samples []int16) (bool, error) {
	frameSize := w.sampleRate / 100

	if len(samples) < frameSize {
		padded := make([]int16, frameSize)
		copy(padded, samples)
		samples = padded
	}

	for i := 0; i+frameSize <= len(samples); i += frameSize {
		frame := samples[i : i+frameSize]

		raw := make([]byte, len(frame)*2)
		for j, s := range frame {
			raw[j*2] = byte(s)
			raw[j*2+1] = byte(s >> 8)
		}

		active, err := w.vad.Process(w.sampleRate, raw)
		if err != nil {
			return false, fmt.Errorf("VAD processing failed: %w", err)
		}
		if active {
			return true, nil
		}
	}

	return false, nil
}

// Close releases resources. The WebRTC VAD needs no explicit cleanup.
func (w *WebRTC) Close() error {
	return nil
}

// Mode returns the aggressiveness mode
func (w *WebRTC) Mode() int {
	return w.mode
}

// SampleRate returns the configured sample rate
func (w *WebRTC) SampleRate() int {
	return w.sampleRate
}
