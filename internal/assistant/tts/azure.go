// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     tts
// Description: Azure Speech synthesis client
// License:     MIT
// ============================================================================

package tts

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/voicedesk/voicedesk/pkg/core/logging"
)

// AzureClient implements Synthesizer against the Azure Speech REST API
type AzureClient struct {
	endpoint     string
	key          string
	voice        string
	outputFormat string
	client       *http.Client
	log          *logging.Logger
}

// AzureConfig holds Azure Speech synthesis settings
type AzureConfig struct {
	// Key is the subscription key
	Key string

	// Region is the service region (e.g. "westeurope")
	Region string

	// Voice is the synthesis voice name
	Voice string

	// OutputFormat is the requested audio format
	OutputFormat string

	// Timeout bounds a single synthesis request
	Timeout time.Duration

	// Endpoint overrides the region-derived endpoint, used in tests
	Endpoint string
}

// NewAzureClient creates an Azure Speech synthesis client
func NewAzureClient(cfg AzureConfig) *AzureClient {
	if cfg.Voice == "" {
		cfg.Voice = "en-US-JennyNeural"
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "riff-16khz-16bit-mono-pcm"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = fmt.Sprintf("https://%s.tts.speech.microsoft.com", cfg.Region)
	}

	return &AzureClient{
		endpoint:     endpoint,
		key:          cfg.Key,
		voice:        cfg.Voice,
		outputFormat: cfg.OutputFormat,
		client:       &http.Client{Timeout: cfg.Timeout},
		log:          logging.New("azure-tts"),
	}
}

// Synthesize renders text as audio in the configured output format
func (c *AzureClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text provided")
	}

	ssml := c.buildSSML(text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.endpoint+"/cognitiveservices/v1", strings.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", c.outputFormat)

	c.log.Debug("sending synthesis request", "voice", c.voice, "text_length", len(text))
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("synthesis service error (status %d): %s",
			resp.StatusCode, string(body))
	}

	c.log.Debug("synthesis complete", "duration", time.Since(start), "bytes", len(body))
	return body, nil
}

// SynthesizeToFile renders text and writes the audio to path
func (c *AzureClient) SynthesizeToFile(ctx context.Context, text, path string) error {
	data, err := c.Synthesize(ctx, text)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// SampleRate returns the sample rate the configured output format produces
func (c *AzureClient) SampleRate() int {
	return formatSampleRate(c.outputFormat)
}

// formatSampleRate derives the rate from a format name like
// "riff-16khz-16bit-mono-pcm"
func formatSampleRate(format string) int {
	for _, part := range strings.Split(format, "-") {
		if khz, ok := strings.CutSuffix(part, "khz"); ok {
			if rate, err := strconv.Atoi(khz); err == nil {
				return rate * 1000
			}
		}
	}
	return 16000
}

// buildSSML wraps text in a minimal SSML document for the configured voice
func (c *AzureClient) buildSSML(text string) string {
	var escaped strings.Builder
	xml.EscapeText(&escaped, []byte(text))

	locale := voiceLocale(c.voice)

	return fmt.Sprintf(
		`<speak version='1.0' xml:lang='%s'><voice name='%s'>%s</voice></speak>`,
		locale, c.voice, escaped.String(),
	)
}

// voiceLocale derives the locale from a voice name like "en-US-JennyNeural"
func voiceLocale(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) >= 2 {
		return parts[0] + "-" + parts[1]
	}
	return "en-US"
}

// ListVoices fetches the voices available in the configured region
func (c *AzureClient) ListVoices(ctx context.Context) ([]Voice, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint+"/cognitiveservices/voices/list", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("voices request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("voices service error (status %d): %s",
			resp.StatusCode, string(body))
	}

	var apiVoices []azureVoice
	if err := json.Unmarshal(body, &apiVoices); err != nil {
		return nil, fmt.Errorf("failed to parse voices: %w", err)
	}

	voices := make([]Voice, 0, len(apiVoices))
	for _, v := range apiVoices {
		voices = append(voices, Voice{
			Name:      v.Name,
			ShortName: v.ShortName,
			Locale:    v.Locale,
			Gender:    v.Gender,
		})
	}

	return voices, nil
}

// SetVoice changes the synthesis voice for subsequent requests
func (c *AzureClient) SetVoice(voice string) {
	c.voice = voice
}

// Close releases idle connections
func (c *AzureClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

type azureVoice struct {
	Name      string `json:"Name"`
	ShortName string `json:"ShortName"`
	Locale    string `json:"Locale"`
	Gender    string `json:"Gender"`
}
