package assistant

import (
	"testing"
)

func TestNextLanguage(t *testing.T) {
	langs := []string{"en-US", "de-DE", "fr-FR"}

	tests := []struct {
		current  string
		expected string
	}{
		{"en-US", "de-DE"},
		{"de-DE", "fr-FR"},
		{"fr-FR", "en-US"},
		{"unknown", "en-US"},
	}

	for _, tt := range tests {
		if got := nextLanguage(langs, tt.current); got != tt.expected {
			t.Errorf("nextLanguage(%q) = %q, want %q", tt.current, got, tt.expected)
		}
	}
}
