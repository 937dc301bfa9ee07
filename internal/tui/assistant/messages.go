package assistant

import (
	app "github.com/voicedesk/voicedesk/internal/assistant"
)

// appEventMsg wraps a controller event for the update loop
type appEventMsg struct {
	event app.Event
	ok    bool
}

// clearedMsg reports the result of clearing the transcript
type clearedMsg struct {
	err error
}
