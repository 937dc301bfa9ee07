package audio

import (
	"sync"
)

// UtteranceBuffer collects audio frames for one utterance
type UtteranceBuffer struct {
	mu      sync.RWMutex
	samples []float32
}

// NewUtteranceBuffer creates a buffer pre-sized for a few seconds at 16kHz
func NewUtteranceBuffer() *UtteranceBuffer {
	return &UtteranceBuffer{
		samples: make([]float32, 0, DefaultSampleRate*6),
	}
}

// Append adds a frame of samples
func (b *UtteranceBuffer) Append(samples []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = append(b.samples, samples...)
}

// Samples returns a copy of all collected samples
func (b *UtteranceBuffer) Samples() []float32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]float32, len(b.samples))
	copy(out, b.samples)
	return out
}

// Len returns the number of collected samples
func (b *UtteranceBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// Duration returns the buffered duration in seconds at the given rate
func (b *UtteranceBuffer) Duration(sampleRate float64) float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return float64(len(b.samples)) / sampleRate
}

// Clear empties the buffer while keeping its capacity
func (b *UtteranceBuffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples = b.samples[:0]
}
