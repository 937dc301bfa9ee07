// ============================================================================
// VoiceDesk - Desktop Voice Assistant
// ============================================================================
//
// Package:     translate
// Description: Text translation interface
// License:     MIT
// ============================================================================

package translate

import (
	"context"
)

// Translator converts text between languages
type Translator interface {
	// Translate renders text into the target language
	Translate(ctx context.Context, text, to string) (Translation, error)

	// Close releases resources
	Close() error
}

// Translation holds a translation result
type Translation struct {
	// Text is the translated text
	Text string

	// To is the target language code the text was rendered in
	To string

	// DetectedLanguage is the source language the service detected,
	// empty when detection was not performed
	DetectedLanguage string
}
