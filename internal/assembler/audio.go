package assembler

import (
	"context"
	"fmt"
)

// ExtractAudio extracts the audio track of a video into 16-bit PCM WAV,
// keeping the source sample rate and channel layout.
func (a *implAssembler) ExtractAudio(ctx context.Context, videoPath, outputPath string) error {
	a.logger.Info(ctx, "Extracting audio: %s", videoPath)

	// -vn: no video
	// -c:a pcm_s16le: uncompressed 16-bit, readable by the segmenter
	args := []string{
		"-i", videoPath,
		"-vn",
		"-c:a", "pcm_s16le",
		"-y",
		outputPath,
	}

	if _, err := a.executor.Execute(ctx, a.cfg.BinaryPath, args...); err != nil {
		return fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	a.logger.Info(ctx, "Audio extracted successfully: %s", outputPath)
	return nil
}
