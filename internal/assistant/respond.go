package assistant

import (
	"context"
	"fmt"

	"github.com/voicedesk/voicedesk/internal/assistant/translate"
)

// Responder composes the assistant's one-line reply from a transcript
type Responder struct {
	translator translate.Translator
	target     string
}

// NewResponder creates a responder that renders replies via the given
// translator into the target language
func NewResponder(translator translate.Translator, target string) *Responder {
	return &Responder{
		translator: translator,
		target:     target,
	}
}

// Respond translates the transcript and wraps it in the reply template
func (r *Responder) Respond(ctx context.Context, transcript string) (string, error) {
	result, err := r.translator.Translate(ctx, transcript, r.target)
	if err != nil {
		return "", fmt.Errorf("failed to translate transcript: %w", err)
	}

	return fmt.Sprintf("Processed in %s: %s", result.To, result.Text), nil
}

// SetTarget changes the target language for subsequent replies
func (r *Responder) SetTarget(lang string) {
	r.target = lang
}

// Target returns the current target language
func (r *Responder) Target() string {
	return r.target
}
