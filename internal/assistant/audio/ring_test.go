package audio

import (
	"testing"
)

func TestRingBuffer_WriteAndSnapshot(t *testing.T) {
	rb := NewRingBuffer(4)

	rb.Write([]float32{1, 2, 3})
	if rb.Len() != 3 {
		t.Errorf("Len() = %d, want 3", rb.Len())
	}

	got := rb.Snapshot()
	want := []float32{1, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Snapshot()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRingBuffer_OverwritesOldest(t *testing.T) {
	rb := NewRingBuffer(4)

	rb.Write([]float32{1, 2, 3, 4, 5, 6})

	if rb.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", rb.Len())
	}

	got := rb.Snapshot()
	want := []float32{3, 4, 5, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Snapshot()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestRingBuffer_SnapshotDoesNotDrain(t *testing.T) {
	rb := NewRingBuffer(8)
	rb.Write([]float32{1, 2})

	rb.Snapshot()
	if rb.Len() != 2 {
		t.Errorf("Len() after Snapshot = %d, want 2", rb.Len())
	}
}

func TestRingBuffer_Clear(t *testing.T) {
	rb := NewRingBuffer(8)
	rb.Write([]float32{1, 2, 3})

	rb.Clear()
	if rb.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", rb.Len())
	}
	if rb.Cap() != 8 {
		t.Errorf("Cap() = %d, want 8", rb.Cap())
	}

	rb.Write([]float32{9})
	got := rb.Snapshot()
	if len(got) != 1 || got[0] != 9 {
		t.Errorf("Snapshot() after Clear = %v, want [9]", got)
	}
}
