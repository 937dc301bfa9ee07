// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     assistant
// Description: Main application controller
// License:     MIT
// ============================================================================

package assistant

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/voicedesk/voicedesk/internal/assistant/audio"
	"github.com/voicedesk/voicedesk/internal/assistant/stt"
	"github.com/voicedesk/voicedesk/internal/assistant/translate"
	"github.com/voicedesk/voicedesk/internal/assistant/tts"
	"github.com/voicedesk/voicedesk/internal/assistant/vad"
	"github.com/voicedesk/voicedesk/internal/history"
	"github.com/voicedesk/voicedesk/pkg/core/config"
	"github.com/voicedesk/voicedesk/pkg/core/logging"
)

// EventType identifies what an Event carries
type EventType int

const (
	// EventStateChanged reports a state machine transition
	EventStateChanged EventType = iota

	// EventTranscript reports a new transcript entry
	EventTranscript

	// EventError reports a failed pipeline step
	EventError
)

// Event is delivered to the UI on the Events channel
type Event struct {
	Type  EventType
	State State
	Entry *history.Entry
	Err   error
}

// App orchestrates the record / recognize / respond / speak pipeline
type App struct {
	mu     sync.RWMutex
	config *config.Config
	creds  config.Credentials
	log    *logging.Logger

	state  *StateMachine
	ctx    context.Context
	cancel context.CancelFunc

	capture     *audio.Capture
	buffer      *audio.UtteranceBuffer
	preroll     *audio.RingBuffer
	playback    *audio.Playback
	detector    vad.Detector
	tracker     *vad.Tracker
	transcriber stt.Transcriber
	translator  translate.Translator
	responder   *Responder
	synthesizer tts.Synthesizer
	store       history.Store
	sessionID   string

	events chan Event
	closed bool

	recordingCtx    context.Context
	recordingCancel context.CancelFunc
}

// New wires up the assistant from configuration and credentials
func New(cfg *config.Config, creds config.Credentials) (*App, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	app := &App{
		config:    cfg,
		creds:     creds,
		log:       logging.New("assistant"),
		state:     NewStateMachine(),
		ctx:       ctx,
		cancel:    cancel,
		buffer:    audio.NewUtteranceBuffer(),
		sessionID: uuid.NewString(),
		events:    make(chan Event, 32),
	}

	if err := app.initComponents(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to initialize components: %w", err)
	}

	return app, nil
}

func (a *App) initComponents() error {
	var err error

	a.capture, err = audio.NewCapture(audio.CaptureConfig{
		SampleRate: float64(a.config.Audio.SampleRate),
		BufferSize: a.config.Audio.BufferSize,
		Channels:   1,
		DeviceName: a.config.Audio.InputDevice,
	})
	if err != nil {
		return fmt.Errorf("failed to create audio capture: %w", err)
	}

	// Half a second of context from before speech onset
	a.preroll = audio.NewRingBuffer(a.config.Audio.SampleRate / 2)

	a.playback = audio.NewPlayback()

	vadCfg := vad.Config{
		SampleRate:        a.config.Audio.SampleRate,
		Mode:              *a.config.Recording.VADMode,
		SilenceDuration:   a.config.Recording.SilenceDuration.Duration,
		MinSpeechDuration: a.config.Recording.MinSpeechDuration.Duration,
	}
	a.detector, err = vad.NewWebRTC(vadCfg)
	if err != nil {
		return fmt.Errorf("failed to create VAD: %w", err)
	}
	a.tracker = vad.NewTracker(vadCfg)

	a.transcriber = stt.NewAzureClient(stt.AzureConfig{
		Key:        a.creds.SpeechKey,
		Region:     a.creds.SpeechRegion,
		Language:   a.config.Speech.Language,
		SampleRate: a.config.Audio.SampleRate,
		Timeout:    a.config.Speech.Timeout.Duration,
	})

	a.translator = translate.NewAzureClient(translate.AzureConfig{
		Key:      a.creds.TranslatorKey,
		Region:   a.creds.TranslatorRegion,
		Endpoint: a.config.Translator.Endpoint,
	})
	a.responder = NewResponder(a.translator, a.config.Translator.TargetLanguage)

	a.synthesizer = tts.NewAzureClient(tts.AzureConfig{
		Key:          a.creds.SpeechKey,
		Region:       a.creds.SpeechRegion,
		Voice:        a.config.Speech.Voice,
		OutputFormat: a.config.Speech.OutputFormat,
	})

	if a.config.History.Enabled {
		store, err := history.NewSQLiteStore(a.config.History.Path)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		a.store = store
	} else {
		a.store = history.NewMemoryStore()
	}

	a.state.AddListener(func(oldState, newState State) {
		a.log.Debug("state changed", "from", oldState.String(), "to", newState.String())
		a.emit(Event{Type: EventStateChanged, State: newState})
	})

	return nil
}

// Events returns the channel the UI consumes
func (a *App) Events() <-chan Event {
	return a.events
}

// State returns the current assistant state
func (a *App) State() State {
	return a.state.Current()
}

// SessionID returns the identifier of the current conversation session
func (a *App) SessionID() string {
	return a.sessionID
}

// Toggle starts a recording when idle and stops it when listening.
// Calls during processing or speaking are ignored: one exchange at a time.
func (a *App) Toggle() {
	switch a.state.Current() {
	case StateIdle:
		a.startRecording()
	case StateListening:
		a.stopRecording()
	case StateError:
		a.state.Reset()
	}
}

func (a *App) startRecording() {
	if !a.state.Transition(StateListening) {
		return
	}

	a.buffer.Clear()
	a.preroll.Clear()
	a.tracker.Reset()
	a.drainFrames()

	a.mu.Lock()
	a.recordingCtx, a.recordingCancel = context.WithCancel(a.ctx)
	recordingCtx := a.recordingCtx
	a.mu.Unlock()

	if err := a.capture.Start(recordingCtx); err != nil {
		a.log.Error("failed to start audio capture", "error", err)
		a.fail(fmt.Errorf("audio capture failed: %w", err))
		return
	}

	go a.recordLoop(recordingCtx)
}

// drainFrames discards frames left over from a previous recording
func (a *App) drainFrames() {
	for {
		select {
		case <-a.capture.Frames():
		default:
			return
		}
	}
}

// recordLoop accumulates frames until trailing silence or the maximum
// utterance length ends the recording
func (a *App) recordLoop(ctx context.Context) {
	maxUtterance := a.config.Recording.MaxUtterance.Duration
	deadline := time.NewTimer(maxUtterance)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-deadline.C:
			a.log.Debug("maximum utterance length reached")
			a.stopRecording()
			return

		case frame, ok := <-a.capture.Frames():
			if !ok {
				return
			}

			// Leading audio stays in the ring until speech starts, so a
			// long pause before speaking is not uploaded
			speechStarted := a.tracker.SpeechStarted()
			if speechStarted {
				a.buffer.Append(frame)
			} else {
				a.preroll.Write(frame)
			}

			isSpeech, err := a.detector.Process(frame)
			if err != nil {
				a.log.Warn("VAD error", "error", err)
				continue
			}
			a.tracker.Update(isSpeech)

			if !speechStarted && a.tracker.SpeechStarted() {
				a.buffer.Append(a.preroll.Snapshot())
				a.preroll.Clear()
			}

			if a.tracker.UtteranceEnded() {
				a.log.Debug("utterance ended on silence",
					"speech", a.tracker.SpeechDuration())
				a.stopRecording()
				return
			}
		}
	}
}

func (a *App) stopRecording() {
	a.mu.Lock()
	if a.recordingCancel != nil {
		a.recordingCancel()
		a.recordingCancel = nil
	}
	a.mu.Unlock()

	if err := a.capture.Stop(); err != nil {
		a.log.Warn("failed to stop audio capture", "error", err)
	}

	if !a.tracker.HasValidSpeech() {
		a.log.Debug("not enough speech captured",
			"duration", a.buffer.Duration(float64(a.config.Audio.SampleRate)))
		a.state.Reset()
		return
	}

	go a.processUtterance()
}

// processUtterance runs one full exchange: recognize, respond, speak
func (a *App) processUtterance() {
	if !a.state.Transition(StateProcessing) {
		return
	}

	samples := a.buffer.Samples()
	a.log.Debug("processing utterance",
		"samples", len(samples),
		"duration", a.buffer.Duration(float64(a.config.Audio.SampleRate)))

	ctx, cancel := context.WithTimeout(a.ctx, a.config.Speech.Timeout.Duration)
	defer cancel()

	result, err := a.transcriber.Transcribe(ctx, samples)
	if err != nil {
		a.log.Error("recognition failed", "error", err)
		a.fail(fmt.Errorf("recognition failed: %w", err))
		return
	}

	if result.Text == "" {
		// Nothing was recognized, drop the exchange silently
		a.log.Debug("empty transcript")
		a.state.Reset()
		return
	}

	a.log.Info("recognized", "text", result.Text)
	a.record(history.RoleUser, result.Text)

	response, err := a.responder.Respond(ctx, result.Text)
	if err != nil {
		a.log.Error("response composition failed", "error", err)
		a.fail(fmt.Errorf("translation failed: %w", err))
		return
	}

	// The response is part of the transcript even if playback fails
	a.record(history.RoleAssistant, response)

	a.speak(response)
}

// speak synthesizes and plays the response, then returns to idle
func (a *App) speak(text string) {
	if !a.state.Transition(StateSpeaking) {
		return
	}

	ctx, cancel := context.WithTimeout(a.ctx, 60*time.Second)
	defer cancel()

	audioData, err := a.synthesizer.Synthesize(ctx, text)
	if err != nil {
		a.log.Error("synthesis failed", "error", err)
		a.fail(fmt.Errorf("synthesis failed: %w", err))
		return
	}

	if err := a.playback.PlayWAV(ctx, audioData); err != nil {
		a.log.Error("playback failed", "error", err)
		a.fail(fmt.Errorf("playback failed: %w", err))
		return
	}

	a.state.Transition(StateIdle)
}

// fail records the error in the transcript, emits it and enters the
// error state, then drops back to idle shortly after
func (a *App) fail(err error) {
	a.record(history.RoleSystem, err.Error())
	a.emit(Event{Type: EventError, Err: err})
	a.state.Transition(StateError)

	go func() {
		select {
		case <-a.ctx.Done():
		case <-time.After(3 * time.Second):
			if a.state.Current() == StateError {
				a.state.Reset()
			}
		}
	}()
}

// record appends an entry to the transcript store and notifies the UI
func (a *App) record(role, text string) {
	entry := &history.Entry{
		SessionID: a.sessionID,
		Role:      role,
		Text:      text,
		Timestamp: time.Now(),
	}

	if err := a.store.Append(a.ctx, entry); err != nil {
		a.log.Warn("failed to store transcript entry", "error", err)
	}

	a.emit(Event{Type: EventTranscript, Entry: entry})
}

// emit delivers an event to the UI. Pipeline goroutines may still be
// failing out when Close runs, so events after shutdown are dropped
// instead of sent on the closed channel.
func (a *App) emit(ev Event) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return
	}

	select {
	case a.events <- ev:
	default:
		a.log.Warn("event channel full, dropping event", "type", ev.Type)
	}
}

// Transcript returns the transcript of the current session
func (a *App) Transcript() ([]*history.Entry, error) {
	return a.store.Entries(a.ctx, a.sessionID, 0)
}

// ClearTranscript removes all entries of the current session
func (a *App) ClearTranscript() error {
	return a.store.Clear(a.ctx, a.sessionID)
}

// SetLanguage changes the recognition language
func (a *App) SetLanguage(lang string) {
	a.mu.Lock()
	a.config.Speech.Language = lang
	a.mu.Unlock()

	if c, ok := a.transcriber.(*stt.AzureClient); ok {
		c.SetLanguage(lang)
	}
	a.log.Info("recognition language changed", "language", lang)
}

// SetTargetLanguage changes the response language
func (a *App) SetTargetLanguage(lang string) {
	a.mu.Lock()
	a.config.Translator.TargetLanguage = lang
	a.mu.Unlock()

	a.responder.SetTarget(lang)
	a.log.Info("response language changed", "language", lang)
}

// Language returns the current recognition language
func (a *App) Language() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config.Speech.Language
}

// TargetLanguage returns the current response language
func (a *App) TargetLanguage() string {
	return a.responder.Target()
}

// Close shuts the assistant down and releases all components. It is
// safe to call with pipeline goroutines still in flight; their events
// are dropped once the shutdown has begun.
func (a *App) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	a.mu.Unlock()

	a.log.Info("shutting down")

	a.cancel()

	if a.capture != nil {
		a.capture.Close()
	}
	if a.detector != nil {
		a.detector.Close()
	}
	if a.transcriber != nil {
		a.transcriber.Close()
	}
	if a.translator != nil {
		a.translator.Close()
	}
	if a.synthesizer != nil {
		a.synthesizer.Close()
	}
	if a.store != nil {
		a.store.Close()
	}

	close(a.events)
	return nil
}
