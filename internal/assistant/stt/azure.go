// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     stt
// Description: Azure Speech recognition client
// License:     MIT
// ============================================================================

package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/voicedesk/voicedesk/internal/assistant/audio"
	"github.com/voicedesk/voicedesk/pkg/core/logging"
)

// Recognition status values returned by the service
const (
	statusSuccess = "Success"
	statusNoMatch = "NoMatch"
)

// AzureClient implements Transcriber against the Azure Speech REST API
type AzureClient struct {
	endpoint   string
	key        string
	language   string
	sampleRate int
	client     *http.Client
	log        *logging.Logger
}

// AzureConfig holds Azure Speech recognition settings
type AzureConfig struct {
	// Key is the subscription key
	Key string

	// Region is the service region (e.g. "westeurope")
	Region string

	// Language is the recognition language tag
	Language string

	// SampleRate is the audio sample rate of submitted samples
	SampleRate int

	// Timeout bounds a single recognition request
	Timeout time.Duration

	// Endpoint overrides the region-derived endpoint, used in tests
	Endpoint string
}

// NewAzureClient creates an Azure Speech recognition client
func NewAzureClient(cfg AzureConfig) *AzureClient {
	if cfg.Language == "" {
		cfg.Language = "en-US"
	}
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.stt.speech.microsoft.com", cfg.Region)
	}

	return &AzureClient{
		endpoint:   endpoint,
		key:        cfg.Key,
		language:   cfg.Language,
		sampleRate: cfg.SampleRate,
		client:     &http.Client{Timeout: cfg.Timeout},
		log:        logging.New("azure-stt"),
	}
}

// Transcribe submits samples as a WAV upload and returns the recognized text
func (c *AzureClient) Transcribe(ctx context.Context, samples []float32) (Result, error) {
	if len(samples) == 0 {
		return Result{}, fmt.Errorf("no audio samples provided")
	}

	return c.recognize(ctx, audio.EncodeWAV(samples, c.sampleRate))
}

// TranscribeFile recognizes a prerecorded WAV file
func (c *AzureClient) TranscribeFile(ctx context.Context, path string) (Result, error) {
	wavData, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read audio file: %w", err)
	}

	return c.recognize(ctx, wavData)
}

// recognize posts a WAV payload to the recognition endpoint
func (c *AzureClient) recognize(ctx context.Context, wavData []byte) (Result, error) {
	reqURL := fmt.Sprintf(
		"%s/speech/recognition/conversation/cognitiveservices/v1?language=%s&format=simple",
		c.endpoint, url.QueryEscape(c.language),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(wavData))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type",
		fmt.Sprintf("audio/wav; codecs=audio/pcm; samplerate=%d", c.sampleRate))
	req.Header.Set("Accept", "application/json")

	c.log.Debug("sending recognition request", "bytes", len(wavData), "language", c.language)
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("recognition request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("recognition service error (status %d): %s",
			resp.StatusCode, string(body))
	}

	var apiResp azureRecognitionResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return Result{}, fmt.Errorf("failed to parse response: %w", err)
	}

	c.log.Debug("recognition complete",
		"duration", time.Since(start),
		"status", apiResp.RecognitionStatus,
		"text_length", len(apiResp.DisplayText),
	)

	switch apiResp.RecognitionStatus {
	case statusSuccess:
		return Result{Text: apiResp.DisplayText, Language: c.language}, nil
	case statusNoMatch:
		// Audio contained no recognizable speech
		return Result{Language: c.language}, nil
	default:
		return Result{}, fmt.Errorf("recognition failed: %s", apiResp.RecognitionStatus)
	}
}

// SetLanguage changes the recognition language for subsequent requests
func (c *AzureClient) SetLanguage(lang string) {
	c.language = lang
}

// Close releases idle connections
func (c *AzureClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// azureRecognitionResponse is the simple-format service response
type azureRecognitionResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
	Offset            int64  `json:"Offset"`
	Duration          int64  `json:"Duration"`
}
