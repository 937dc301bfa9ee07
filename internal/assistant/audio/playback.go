// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     audio
// Description: Speaker playback using PortAudio
// License:     MIT
// ============================================================================

package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// Playback writes PCM audio to the default output device
type Playback struct {
	mu       sync.RWMutex
	channels int
	playing  bool
}

// NewPlayback creates a playback instance
func NewPlayback() *Playback {
	return &Playback{channels: 1}
}

// PlayWAV decodes a WAV byte stream and plays it. This is the shape the
// speech synthesis service returns audio in.
func (p *Playback) PlayWAV(ctx context.Context, data []byte) error {
	sampleRate, pcm, err := parseWAV(data)
	if err != nil {
		return fmt.Errorf("failed to parse WAV: %w", err)
	}
	return p.PlayRaw(ctx, pcm, sampleRate)
}

// PlayFile plays a WAV file from disk
func (p *Playback) PlayFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	return p.PlayWAV(ctx, data)
}

// PlayRaw plays raw 16-bit little-endian PCM at the given sample rate.
// Playback stops early when the context is cancelled.
func (p *Playback) PlayRaw(ctx context.Context, data []byte, sampleRate float64) error {
	p.mu.Lock()
	if p.playing {
		p.mu.Unlock()
		return fmt.Errorf("already playing")
	}
	p.playing = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.playing = false
		p.mu.Unlock()
	}()

	samples := make([]float32, len(data)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(data[i*2 : i*2+2]))
		samples[i] = float32(s) / 32768.0
	}

	return p.playFloat32(ctx, samples, sampleRate)
}

func (p *Playback) playFloat32(ctx context.Context, samples []float32, sampleRate float64) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	const bufferSize = 1024
	buffer := make([]float32, bufferSize)

	stream, err := portaudio.OpenDefaultStream(0, p.channels, sampleRate, bufferSize, &buffer)
	if err != nil {
		return fmt.Errorf("failed to open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("failed to start output stream: %w", err)
	}
	defer stream.Stop()

	for position := 0; position < len(samples); position += bufferSize {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for i := 0; i < bufferSize; i++ {
			if position+i < len(samples) {
				buffer[i] = samples[position+i]
			} else {
				buffer[i] = 0
			}
		}

		if err := stream.Write(); err != nil {
			return fmt.Errorf("failed to write to stream: %w", err)
		}
	}

	return nil
}

// IsPlaying reports whether playback is in progress
func (p *Playback) IsPlaying() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.playing
}
