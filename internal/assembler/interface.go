package assembler

import (
	"context"

	"github.com/nguyentantai21042004/voitext/internal/media"
)

// DefaultFPS applies when a Request leaves FPS at zero.
const DefaultFPS = 30

// Request describes one still-image clip.
type Request struct {
	ImagePath   string
	DurationSec float64
	// AudioPath is optional; empty produces a silent clip.
	AudioPath  string
	Background media.RGB
	FPS        int
	OutputPath string
}

// Assembler composes caption images and audio into video clips.
type Assembler interface {
	// Assemble encodes req.OutputPath holding the image over the background
	// for exactly req.DurationSec seconds.
	Assemble(ctx context.Context, req Request) error
	// ExtractAudio writes the audio track of videoPath as PCM WAV.
	ExtractAudio(ctx context.Context, videoPath, outputPath string) error
}
