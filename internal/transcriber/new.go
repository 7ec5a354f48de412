package transcriber

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/voitext/internal/config"
	"github.com/nguyentantai21042004/voitext/internal/logger"
	"github.com/nguyentantai21042004/voitext/pkg/executor"
)

type implTranscriber struct {
	backend Backend
	logger  logger.Logger
}

// New wraps backend in a Transcriber that never fails
func New(backend Backend, log logger.Logger) Transcriber {
	return &implTranscriber{
		backend: backend,
		logger:  log,
	}
}

// NewBackend builds the backend selected by cfg.Backend
func NewBackend(cfg config.TranscriptionConfig, exec executor.Executor, log logger.Logger) (Backend, error) {
	switch cfg.Backend {
	case "whisper":
		return NewWhisperBackend(cfg.Whisper, exec, log), nil
	case "gemini":
		if len(cfg.Gemini.APIKeys) == 0 {
			return nil, fmt.Errorf("gemini backend needs at least one API key (GEMINI_API_KEY)")
		}
		return NewGeminiBackend(cfg.Gemini, log), nil
	case "none":
		return noneBackend{}, nil
	default:
		return nil, fmt.Errorf("unknown transcription backend %q", cfg.Backend)
	}
}

type noneBackend struct{}

func (noneBackend) Name() string { return "none" }

func (noneBackend) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	return "", ErrNoSpeech
}
