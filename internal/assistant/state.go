// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     assistant
// Description: Assistant state machine
// License:     MIT
// ============================================================================

package assistant

import (
	"sync"
	"time"
)

// State represents what the assistant is currently doing
type State int

const (
	// StateIdle - waiting for the user to start an exchange
	StateIdle State = iota

	// StateListening - recording the user's utterance
	StateListening

	// StateProcessing - recognizing and composing the response
	StateProcessing

	// StateSpeaking - playing the synthesized response
	StateSpeaking

	// StateError - a step failed, waiting to return to idle
	StateError
)

// String returns the display name of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Ready"
	case StateListening:
		return "Listening..."
	case StateProcessing:
		return "Thinking..."
	case StateSpeaking:
		return "Speaking"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Icon returns a status icon for the state
func (s State) Icon() string {
	switch s {
	case StateIdle:
		return "⏸"
	case StateListening:
		return "🎤"
	case StateProcessing:
		return "⚙"
	case StateSpeaking:
		return "🔊"
	case StateError:
		return "✗"
	default:
		return "?"
	}
}

// StateMachine manages validated state transitions
type StateMachine struct {
	mu        sync.RWMutex
	current   State
	previous  State
	enteredAt time.Time
	listeners []StateChangeListener
}

// StateChangeListener is called after a successful transition
type StateChangeListener func(oldState, newState State)

// NewStateMachine creates a state machine starting in idle
func NewStateMachine() *StateMachine {
	return &StateMachine{
		current:   StateIdle,
		enteredAt: time.Now(),
	}
}

// Current returns the current state
func (sm *StateMachine) Current() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current
}

// Previous returns the state before the last transition
func (sm *StateMachine) Previous() State {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.previous
}

// StateDuration returns how long the current state has been active
func (sm *StateMachine) StateDuration() time.Duration {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return time.Since(sm.enteredAt)
}

// Transition moves to a new state. Invalid transitions are rejected
// and return false.
func (sm *StateMachine) Transition(newState State) bool {
	sm.mu.Lock()
	oldState := sm.current

	if !validTransition(oldState, newState) {
		sm.mu.Unlock()
		return false
	}

	sm.previous = oldState
	sm.current = newState
	sm.enteredAt = time.Now()
	listeners := sm.listeners
	sm.mu.Unlock()

	for _, listener := range listeners {
		listener(oldState, newState)
	}

	return true
}

// AddListener registers a state change listener
func (sm *StateMachine) AddListener(listener StateChangeListener) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.listeners = append(sm.listeners, listener)
}

// Reset returns the machine to idle from any state
func (sm *StateMachine) Reset() {
	sm.mu.Lock()
	oldState := sm.current
	sm.previous = oldState
	sm.current = StateIdle
	sm.enteredAt = time.Now()
	listeners := sm.listeners
	sm.mu.Unlock()

	for _, listener := range listeners {
		listener(oldState, StateIdle)
	}
}

// IsActive reports whether an exchange is in flight
func (sm *StateMachine) IsActive() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.current != StateIdle && sm.current != StateError
}

func validTransition(from, to State) bool {
	validTargets := map[State][]State{
		StateIdle:       {StateListening, StateError},
		StateListening:  {StateProcessing, StateIdle, StateError},
		StateProcessing: {StateSpeaking, StateIdle, StateError},
		StateSpeaking:   {StateIdle, StateError},
		StateError:      {StateIdle},
	}

	for _, valid := range validTargets[from] {
		if valid == to {
			return true
		}
	}
	return false
}
