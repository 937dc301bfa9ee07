// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     audio
// Description: Microphone capture using PortAudio
// License:     MIT
// ============================================================================

package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"

	"github.com/voicedesk/voicedesk/pkg/core/logging"
)

const (
	// DefaultSampleRate is 16kHz, the rate the recognizer and the VAD expect
	DefaultSampleRate = 16000

	// DefaultFramesPerBuffer is the capture block size in samples
	DefaultFramesPerBuffer = 512

	// DefaultChannels is mono audio
	DefaultChannels = 1
)

// Capture reads microphone audio and delivers it as float32 frames
type Capture struct {
	mu          sync.RWMutex
	stream      *portaudio.Stream
	sampleRate  float64
	bufferSize  int
	channels    int
	deviceName  string
	running     bool
	frames      chan []float32
	initialized bool
	log         *logging.Logger
}

// CaptureConfig holds configuration for microphone capture
type CaptureConfig struct {
	SampleRate float64
	BufferSize int
	Channels   int

	// DeviceName selects the input device. Empty or "default" uses the
	// system default input.
	DeviceName string
}

// DefaultCaptureConfig returns the default capture configuration
func DefaultCaptureConfig() CaptureConfig {
	return CaptureConfig{
		SampleRate: DefaultSampleRate,
		BufferSize: DefaultFramesPerBuffer,
		Channels:   DefaultChannels,
	}
}

// NewCapture initializes PortAudio and prepares a capture instance
func NewCapture(cfg CaptureConfig) (*Capture, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize PortAudio: %w", err)
	}

	return &Capture{
		sampleRate:  cfg.SampleRate,
		bufferSize:  cfg.BufferSize,
		channels:    cfg.Channels,
		deviceName:  cfg.DeviceName,
		frames:      make(chan []float32, 100),
		initialized: true,
		log:         logging.New("audio.capture"),
	}, nil
}

// Start opens the input stream and begins delivering frames
func (c *Capture) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running {
		return fmt.Errorf("capture already running")
	}

	buffer := make([]float32, c.bufferSize)

	stream, err := c.openStream(buffer)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return fmt.Errorf("failed to start audio stream: %w", err)
	}

	c.stream = stream
	c.running = true
	c.log.Debug("capture started", "sample_rate", c.sampleRate, "buffer_size", c.bufferSize)

	go c.captureLoop(ctx, buffer)

	return nil
}

// openStream opens either the named device or the system default.
// A requested device that cannot be found falls back to the default.
func (c *Capture) openStream(buffer []float32) (*portaudio.Stream, error) {
	if c.deviceName != "" && c.deviceName != "default" {
		device, err := findInputDevice(c.deviceName)
		if err == nil {
			params := portaudio.StreamParameters{
				Input: portaudio.StreamDeviceParameters{
					Device:   device,
					Channels: c.channels,
					Latency:  device.DefaultLowInputLatency,
				},
				SampleRate:      c.sampleRate,
				FramesPerBuffer: c.bufferSize,
			}
			return portaudio.OpenStream(params, buffer)
		}
		c.log.Warn("input device not found, using default", "device", c.deviceName)
	}

	return portaudio.OpenDefaultStream(c.channels, 0, c.sampleRate, c.bufferSize, buffer)
}

// captureLoop reads blocks from the stream until the context ends or
// the capture is stopped
func (c *Capture) captureLoop(ctx context.Context, buffer []float32) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		c.mu.RLock()
		if !c.running || c.stream == nil {
			c.mu.RUnlock()
			return
		}
		stream := c.stream
		c.mu.RUnlock()

		if err := stream.Read(); err != nil {
			c.mu.RLock()
			stillRunning := c.running
			c.mu.RUnlock()
			if !stillRunning {
				return
			}
			continue
		}

		frame := make([]float32, len(buffer))
		copy(frame, buffer)

		select {
		case c.frames <- frame:
		default:
			// Consumer is behind, drop the frame
		}
	}
}

// Stop stops the input stream. The capture can be started again.
func (c *Capture) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return nil
	}

	c.running = false

	if c.stream != nil {
		_ = c.stream.Stop()
		if err := c.stream.Close(); err != nil {
			return fmt.Errorf("failed to close audio stream: %w", err)
		}
		c.stream = nil
	}

	c.log.Debug("capture stopped")
	return nil
}

// Close stops the capture and releases PortAudio
func (c *Capture) Close() error {
	if err := c.Stop(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		if err := portaudio.Terminate(); err != nil {
			return fmt.Errorf("failed to terminate PortAudio: %w", err)
		}
		c.initialized = false
	}

	close(c.frames)
	return nil
}

// Frames returns the channel delivering captured audio frames
func (c *Capture) Frames() <-chan []float32 {
	return c.frames
}

// IsRunning reports whether the capture is active
func (c *Capture) IsRunning() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

// SampleRate returns the configured sample rate
func (c *Capture) SampleRate() float64 {
	return c.sampleRate
}
