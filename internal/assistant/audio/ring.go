package audio

import (
	"sync"
)

// RingBuffer keeps the most recent samples up to a fixed capacity. It
// retains the audio just before speech onset so the start of an
// utterance is not clipped.
type RingBuffer struct {
	mu       sync.RWMutex
	data     []float32
	size     int
	writePos int
	readPos  int
	count    int
}

// NewRingBuffer creates a ring buffer holding capacity samples
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{
		data: make([]float32, capacity),
		size: capacity,
	}
}

// Write appends samples, overwriting the oldest once full
func (rb *RingBuffer) Write(samples []float32) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for _, s := range samples {
		rb.data[rb.writePos] = s
		rb.writePos = (rb.writePos + 1) % rb.size

		if rb.count < rb.size {
			rb.count++
		} else {
			rb.readPos = (rb.readPos + 1) % rb.size
		}
	}
}

// Snapshot returns the buffered samples from oldest to newest
func (rb *RingBuffer) Snapshot() []float32 {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	samples := make([]float32, rb.count)
	pos := rb.readPos
	for i := 0; i < rb.count; i++ {
		samples[i] = rb.data[pos]
		pos = (pos + 1) % rb.size
	}

	return samples
}

// Len returns the number of buffered samples
func (rb *RingBuffer) Len() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}

// Cap returns the buffer capacity
func (rb *RingBuffer) Cap() int {
	return rb.size
}

// Clear empties the buffer
func (rb *RingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.readPos = 0
	rb.writePos = 0
	rb.count = 0
}
