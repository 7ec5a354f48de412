package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/nguyentantai21042004/voitext/internal/config"
	"github.com/nguyentantai21042004/voitext/internal/logger"
	"github.com/nguyentantai21042004/voitext/pkg/executor"
)

type whisperBackend struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisperBackend transcribes with a local whisper.cpp binary
func NewWhisperBackend(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Backend {
	return &whisperBackend{cfg: cfg, executor: exec, logger: log}
}

func (w *whisperBackend) Name() string { return "whisper" }

// Transcribe runs whisper inside a temp dir, where it writes a plain-text
// transcript that is read back.
func (w *whisperBackend) Transcribe(ctx context.Context, audioPath, lang string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "voitext-whisper-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// paths handed to whisper must survive the working directory change
	absAudio, err := filepath.Abs(audioPath)
	if err != nil {
		return "", fmt.Errorf("resolve audio path: %w", err)
	}
	absModel, err := filepath.Abs(w.cfg.ModelPath)
	if err != nil {
		return "", fmt.Errorf("resolve model path: %w", err)
	}

	// bare names are looked up on PATH, relative paths follow the working dir
	binary := w.cfg.BinaryPath
	if strings.ContainsRune(binary, filepath.Separator) {
		if binary, err = filepath.Abs(binary); err != nil {
			return "", fmt.Errorf("resolve whisper binary: %w", err)
		}
	}

	outputName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))

	// -nt: no timestamps, -otxt: plain text output
	args := []string{
		"-m", absModel,
		"-f", absAudio,
		"-l", whisperLanguage(lang),
		"-t", strconv.Itoa(w.cfg.Threads),
		"-nt",
		"-otxt",
		"--output-file", outputName,
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}

	w.logger.Debug(ctx, "whisper %s", strings.Join(args, " "))

	if _, err := w.executor.ExecuteInDir(ctx, tmpDir, binary, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, outputName+".txt"))
	if err != nil {
		return "", fmt.Errorf("read whisper output: %w", err)
	}

	text := strings.Join(strings.Fields(string(data)), " ")
	if text == "" || isNonSpeechMarker(text) {
		return "", ErrNoSpeech
	}
	return text, nil
}

// whisperLanguage reduces a BCP 47 tag such as "id-ID" to whisper's "id".
func whisperLanguage(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return "auto"
	}
	base, conf := t.Base()
	if conf == language.No {
		return "auto"
	}
	return base.String()
}

// whisper.cpp emits bracketed markers like [BLANK_AUDIO] for non-speech.
func isNonSpeechMarker(text string) bool {
	return len(text) >= 2 && strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") && !strings.Contains(text[1:len(text)-1], "[")
}
