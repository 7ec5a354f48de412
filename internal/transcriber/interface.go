// Package transcriber turns one audio chunk into caption text. Backends may
// fail; the Transcriber in front of them never does.
package transcriber

import (
	"context"
	"errors"
)

// Placeholder is the caption used when no transcription is available.
const Placeholder = "..."

// DefaultLanguage is used when the caller passes an empty language tag.
const DefaultLanguage = "id-ID"

// ErrNoSpeech means the audio was processed but nothing confident came back.
var ErrNoSpeech = errors.New("speech could not be understood")

// Backend is a speech-to-text capability. Transcribe blocks until the
// result is available. It may return partial text together with an error.
type Backend interface {
	Name() string
	Transcribe(ctx context.Context, audioPath, language string) (string, error)
}

// Transcriber degrades every backend failure to placeholder text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, language string) string
}
