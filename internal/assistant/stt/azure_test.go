package stt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/voicedesk/voicedesk/internal/assistant/audio"
)

func testSamples() []float32 {
	return make([]float32, 16000)
}

func TestAzureClient_Transcribe(t *testing.T) {
	var gotPath, gotKey, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotContentType = r.Header.Get("Content-Type")

		if lang := r.URL.Query().Get("language"); lang != "en-US" {
			t.Errorf("language query = %q, want en-US", lang)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"RecognitionStatus":"Success","DisplayText":"hello world"}`))
	}))
	defer server.Close()

	client := NewAzureClient(AzureConfig{
		Key:      "test-key",
		Language: "en-US",
		Endpoint: server.URL,
	})
	defer client.Close()

	result, err := client.Transcribe(context.Background(), testSamples())
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}

	if result.Text != "hello world" {
		t.Errorf("Text = %q, want %q", result.Text, "hello world")
	}
	if result.Language != "en-US" {
		t.Errorf("Language = %q, want en-US", result.Language)
	}
	if gotPath != "/speech/recognition/conversation/cognitiveservices/v1" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("subscription key = %q, want test-key", gotKey)
	}
	if !strings.Contains(gotContentType, "samplerate=16000") {
		t.Errorf("content type = %q, want samplerate=16000", gotContentType)
	}
}

func TestAzureClient_Transcribe_NoMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RecognitionStatus":"NoMatch"}`))
	}))
	defer server.Close()

	client := NewAzureClient(AzureConfig{Key: "k", Endpoint: server.URL})
	defer client.Close()

	result, err := client.Transcribe(context.Background(), testSamples())
	if err != nil {
		t.Fatalf("Transcribe() error = %v", err)
	}
	if result.Text != "" {
		t.Errorf("Text = %q, want empty for NoMatch", result.Text)
	}
}

func TestAzureClient_Transcribe_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid key"}`))
	}))
	defer server.Close()

	client := NewAzureClient(AzureConfig{Key: "bad", Endpoint: server.URL})
	defer client.Close()

	if _, err := client.Transcribe(context.Background(), testSamples()); err == nil {
		t.Error("expected error for 401 response")
	}
}

func TestAzureClient_Transcribe_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RecognitionStatus":"InitialSilenceTimeout"}`))
	}))
	defer server.Close()

	client := NewAzureClient(AzureConfig{Key: "k", Endpoint: server.URL})
	defer client.Close()

	if _, err := client.Transcribe(context.Background(), testSamples()); err == nil {
		t.Error("expected error for non-success recognition status")
	}
}

func TestAzureClient_TranscribeFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"RecognitionStatus":"Success","DisplayText":"from file"}`))
	}))
	defer server.Close()

	path := filepath.Join(t.TempDir(), "utterance.wav")
	if err := os.WriteFile(path, audio.EncodeWAV(testSamples(), 16000), 0o644); err != nil {
		t.Fatal(err)
	}

	client := NewAzureClient(AzureConfig{Key: "k", Endpoint: server.URL})
	defer client.Close()

	result, err := client.TranscribeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("TranscribeFile() error = %v", err)
	}
	if result.Text != "from file" {
		t.Errorf("Text = %q, want %q", result.Text, "from file")
	}
}

func TestAzureClient_TranscribeFile_Missing(t *testing.T) {
	client := NewAzureClient(AzureConfig{Key: "k", Endpoint: "http://unused"})
	defer client.Close()

	if _, err := client.TranscribeFile(context.Background(), "/does/not/exist.wav"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestAzureClient_Transcribe_EmptySamples(t *testing.T) {
	client := NewAzureClient(AzureConfig{Key: "k", Endpoint: "http://unused"})
	defer client.Close()

	if _, err := client.Transcribe(context.Background(), nil); err == nil {
		t.Error("expected error for empty samples")
	}
}
