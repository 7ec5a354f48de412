package transcriber

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
)

// Transcribe runs the backend and absorbs any failure. The result is the
// recognized text, partial text produced before a failure, or Placeholder.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath, language string) string {
	if language == "" {
		language = DefaultLanguage
	}
	name := filepath.Base(audioPath)

	text, err := t.backend.Transcribe(ctx, audioPath, language)
	text = strings.TrimSpace(text)

	switch {
	case err == nil && text != "":
		t.logger.Info(ctx, "%s : %s", name, text)
		return text
	case err == nil, errors.Is(err, ErrNoSpeech):
		t.logger.Warn(ctx, "%s : %s could not understand audio", name, t.backend.Name())
	default:
		t.logger.Error(ctx, "%s : could not request results from %s: %v", name, t.backend.Name(), err)
	}

	if text == "" {
		text = Placeholder
	}
	t.logger.Info(ctx, "%s : %s", name, text)
	return text
}
