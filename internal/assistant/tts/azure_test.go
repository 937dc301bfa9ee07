package tts

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAzureClient_Synthesize(t *testing.T) {
	wantAudio := []byte("RIFF-fake-audio")

	var gotBody, gotFormat, gotContentType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cognitiveservices/v1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotFormat = r.Header.Get("X-Microsoft-OutputFormat")
		gotContentType = r.Header.Get("Content-Type")

		w.Write(wantAudio)
	}))
	defer server.Close()

	client := NewAzureClient(AzureConfig{
		Key:      "test-key",
		Voice:    "en-US-JennyNeural",
		Endpoint: server.URL,
	})
	defer client.Close()

	audio, err := client.Synthesize(context.Background(), "hello & goodbye")
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	if string(audio) != string(wantAudio) {
		t.Errorf("audio = %q, want %q", audio, wantAudio)
	}
	if gotFormat != "riff-16khz-16bit-mono-pcm" {
		t.Errorf("output format = %q", gotFormat)
	}
	if gotContentType != "application/ssml+xml" {
		t.Errorf("content type = %q", gotContentType)
	}
	if !strings.Contains(gotBody, "<voice name='en-US-JennyNeural'>") {
		t.Errorf("SSML missing voice element: %s", gotBody)
	}
	if !strings.Contains(gotBody, "hello &amp; goodbye") {
		t.Errorf("SSML text not escaped: %s", gotBody)
	}
	if !strings.Contains(gotBody, "xml:lang='en-US'") {
		t.Errorf("SSML missing locale: %s", gotBody)
	}
}

func TestAzureClient_Synthesize_EmptyText(t *testing.T) {
	client := NewAzureClient(AzureConfig{Key: "k", Endpoint: "http://unused"})
	defer client.Close()

	if _, err := client.Synthesize(context.Background(), "   "); err == nil {
		t.Error("expected error for blank text")
	}
}

func TestAzureClient_Synthesize_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewAzureClient(AzureConfig{Key: "k", Endpoint: server.URL})
	defer client.Close()

	if _, err := client.Synthesize(context.Background(), "hi"); err == nil {
		t.Error("expected error for 403 response")
	}
}

func TestAzureClient_ListVoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cognitiveservices/voices/list" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"Name":"Microsoft Server Speech Text to Speech Voice (en-US, JennyNeural)",
			 "ShortName":"en-US-JennyNeural","Locale":"en-US","Gender":"Female"},
			{"Name":"Microsoft Server Speech Text to Speech Voice (de-DE, KatjaNeural)",
			 "ShortName":"de-DE-KatjaNeural","Locale":"de-DE","Gender":"Female"}
		]`))
	}))
	defer server.Close()

	client := NewAzureClient(AzureConfig{Key: "k", Endpoint: server.URL})
	defer client.Close()

	voices, err := client.ListVoices(context.Background())
	if err != nil {
		t.Fatalf("ListVoices() error = %v", err)
	}
	if len(voices) != 2 {
		t.Fatalf("got %d voices, want 2", len(voices))
	}
	if voices[0].ShortName != "en-US-JennyNeural" {
		t.Errorf("ShortName = %q", voices[0].ShortName)
	}
	if voices[1].Locale != "de-DE" {
		t.Errorf("Locale = %q", voices[1].Locale)
	}
}

func TestAzureClient_SynthesizeToFile(t *testing.T) {
	wantAudio := []byte("RIFF-fake-audio")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(wantAudio)
	}))
	defer server.Close()

	client := NewAzureClient(AzureConfig{Key: "k", Endpoint: server.URL})
	defer client.Close()

	path := filepath.Join(t.TempDir(), "out.wav")
	if err := client.SynthesizeToFile(context.Background(), "hi", path); err != nil {
		t.Fatalf("SynthesizeToFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != string(wantAudio) {
		t.Errorf("file content = %q, want %q", data, wantAudio)
	}
}

func TestFormatSampleRate(t *testing.T) {
	tests := []struct {
		format   string
		expected int
	}{
		{"riff-16khz-16bit-mono-pcm", 16000},
		{"riff-24khz-16bit-mono-pcm", 24000},
		{"riff-8khz-8bit-mono-mulaw", 8000},
		{"unparseable", 16000},
	}

	for _, tt := range tests {
		if got := formatSampleRate(tt.format); got != tt.expected {
			t.Errorf("formatSampleRate(%q) = %d, want %d", tt.format, got, tt.expected)
		}
	}
}

func TestVoiceLocale(t *testing.T) {
	tests := []struct {
		voice    string
		expected string
	}{
		{"en-US-JennyNeural", "en-US"},
		{"de-DE-KatjaNeural", "de-DE"},
		{"odd", "en-US"},
	}

	for _, tt := range tests {
		if got := voiceLocale(tt.voice); got != tt.expected {
			t.Errorf("voiceLocale(%q) = %q, want %q", tt.voice, got, tt.expected)
		}
	}
}
