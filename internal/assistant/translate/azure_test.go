package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestAzureClient_Translate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/translate" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if v := r.URL.Query().Get("api-version"); v != "3.0" {
			t.Errorf("api-version = %q, want 3.0", v)
		}
		if to := r.URL.Query().Get("to"); to != "de" {
			t.Errorf("to = %q, want de", to)
		}
		if key := r.Header.Get("Ocp-Apim-Subscription-Key"); key != "test-key" {
			t.Errorf("subscription key = %q", key)
		}
		if region := r.Header.Get("Ocp-Apim-Subscription-Region"); region != "westeurope" {
			t.Errorf("region = %q", region)
		}

		var reqBody []struct {
			Text string `json:"Text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		if len(reqBody) != 1 || reqBody[0].Text != "hello" {
			t.Errorf("request body = %+v", reqBody)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{
			"detectedLanguage":{"language":"en","score":1.0},
			"translations":[{"text":"hallo","to":"de"}]
		}]`))
	}))
	defer server.Close()

	client := NewAzureClient(AzureConfig{
		Key:      "test-key",
		Region:   "westeurope",
		Endpoint: server.URL,
	})
	defer client.Close()

	got, err := client.Translate(context.Background(), "hello", "de")
	if err != nil {
		t.Fatalf("Translate() error = %v", err)
	}

	if got.Text != "hallo" {
		t.Errorf("Text = %q, want hallo", got.Text)
	}
	if got.To != "de" {
		t.Errorf("To = %q, want de", got.To)
	}
	if got.DetectedLanguage != "en" {
		t.Errorf("DetectedLanguage = %q, want en", got.DetectedLanguage)
	}
}

func TestAzureClient_Translate_EmptyInput(t *testing.T) {
	client := NewAzureClient(AzureConfig{Key: "k"})
	defer client.Close()

	if _, err := client.Translate(context.Background(), "", "de"); err == nil {
		t.Error("expected error for empty text")
	}
	if _, err := client.Translate(context.Background(), "hello", ""); err == nil {
		t.Error("expected error for empty target language")
	}
}

func TestAzureClient_Translate_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429001,"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := NewAzureClient(AzureConfig{Key: "k", Endpoint: server.URL})
	defer client.Close()

	if _, err := client.Translate(context.Background(), "hello", "de"); err == nil {
		t.Error("expected error for 429 response")
	}
}

func TestAzureClient_Translate_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewAzureClient(AzureConfig{Key: "k", Endpoint: server.URL})
	defer client.Close()

	if _, err := client.Translate(context.Background(), "hello", "de"); err == nil {
		t.Error("expected error for empty response array")
	}
}
