package transcriber

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/voitext/internal/config"
	"github.com/nguyentantai21042004/voitext/internal/logger"
)

const noSpeechMarker = "NO_SPEECH"

const transcribePrompt = `Transcribe the speech in this audio clip verbatim in language %s.
Reply with the transcription text only, without quotes, labels or commentary.
If the clip contains no intelligible speech, reply with exactly ` + noSpeechMarker + `.`

type geminiBackend struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	model      string
	logger     logger.Logger
}

// NewGeminiBackend transcribes through the Gemini API, rotating through the
// supplied keys when one is rate limited.
func NewGeminiBackend(cfg config.GeminiConfig, log logger.Logger) Backend {
	return &geminiBackend{
		apiKeys: cfg.APIKeys,
		model:   cfg.Model,
		logger:  log,
	}
}

func (g *geminiBackend) Name() string { return "gemini" }

func (g *geminiBackend) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", fmt.Errorf("read audio: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(fmt.Sprintf(transcribePrompt, language)),
			genai.NewPartFromBytes(data, "audio/wav"),
		}, genai.RoleUser),
	}

	text, err := g.callGemini(ctx, contents)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" || text == noSpeechMarker {
		return "", ErrNoSpeech
	}
	return text, nil
}

// callGemini sends contents and returns the response text.
// Rotates API keys on 429 / quota errors.
func (g *geminiBackend) callGemini(ctx context.Context, contents []*genai.Content) (string, error) {
	var lastErr error

	for range len(g.apiKeys) {
		key, idx := g.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			g.rotateKey(idx)
			continue
		}

		result, err := client.Models.GenerateContent(ctx, g.model, contents, nil)
		if err != nil {
			errMsg := err.Error()
			if strings.Contains(errMsg, "429") || strings.Contains(errMsg, "quota") || strings.Contains(errMsg, "RESOURCE_EXHAUSTED") {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
			var text string
			for _, part := range result.Candidates[0].Content.Parts {
				if part.Text != "" {
					text += part.Text
				}
			}
			return text, nil
		}

		return "", ErrNoSpeech
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *geminiBackend) key() (string, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.apiKeys[g.currentKey], g.currentKey
}

// rotateKey advances past idx unless another caller already did.
func (g *geminiBackend) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}
