// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     translate
// Description: Azure Translator client
// License:     MIT
// ============================================================================

package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/voicedesk/voicedesk/pkg/core/logging"
)

// DefaultEndpoint is the global Translator endpoint
const DefaultEndpoint = "https://api.cognitive.microsofttranslator.com"

// AzureClient implements Translator against the Azure Translator v3 REST API
type AzureClient struct {
	endpoint string
	key      string
	region   string
	client   *http.Client
	log      *logging.Logger
}

// AzureConfig holds Azure Translator settings
type AzureConfig struct {
	// Key is the subscription key
	Key string

	// Region is the resource region, sent alongside the key
	Region string

	// Endpoint overrides the global endpoint, used in tests
	Endpoint string

	// Timeout bounds a single translation request
	Timeout time.Duration
}

// NewAzureClient creates an Azure Translator client
func NewAzureClient(cfg AzureConfig) *AzureClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &AzureClient{
		endpoint: cfg.Endpoint,
		key:      cfg.Key,
		region:   cfg.Region,
		client:   &http.Client{Timeout: cfg.Timeout},
		log:      logging.New("azure-translate"),
	}
}

// Translate renders text into the target language, letting the service
// detect the source language
func (c *AzureClient) Translate(ctx context.Context, text, to string) (Translation, error) {
	if text == "" {
		return Translation{}, fmt.Errorf("no text provided")
	}
	if to == "" {
		return Translation{}, fmt.Errorf("no target language provided")
	}

	payload, err := json.Marshal([]translateRequest{{Text: text}})
	if err != nil {
		return Translation{}, fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/translate?api-version=3.0&to=%s",
		c.endpoint, url.QueryEscape(to))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return Translation{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	if c.region != "" {
		req.Header.Set("Ocp-Apim-Subscription-Region", c.region)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("sending translation request", "to", to, "text_length", len(text))
	start := time.Now()

	resp, err := c.client.Do(req)
	if err != nil {
		return Translation{}, fmt.Errorf("translation request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Translation{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Translation{}, fmt.Errorf("translation service error (status %d): %s",
			resp.StatusCode, string(body))
	}

	var apiResp []translateResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return Translation{}, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(apiResp) == 0 || len(apiResp[0].Translations) == 0 {
		return Translation{}, fmt.Errorf("empty translation response")
	}

	c.log.Debug("translation complete",
		"duration", time.Since(start),
		"detected", apiResp[0].DetectedLanguage.Language,
	)

	return Translation{
		Text:             apiResp[0].Translations[0].Text,
		To:               apiResp[0].Translations[0].To,
		DetectedLanguage: apiResp[0].DetectedLanguage.Language,
	}, nil
}

// Close releases idle connections
func (c *AzureClient) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

type translateRequest struct {
	Text string `json:"Text"`
}

type translateResponse struct {
	DetectedLanguage struct {
		Language string  `json:"language"`
		Score    float64 `json:"score"`
	} `json:"detectedLanguage"`
	Translations []struct {
		Text string `json:"text"`
		To   string `json:"to"`
	} `json:"translations"`
}
