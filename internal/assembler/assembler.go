package assembler

import (
	"context"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"strconv"
)

// Assemble encodes a still-image clip. The configured encoder is tried first
// and the fallback encoder once if it fails.
func (a *implAssembler) Assemble(ctx context.Context, req Request) error {
	if req.DurationSec <= 0 {
		return fmt.Errorf("assemble %s: duration must be positive, got %v", req.OutputPath, req.DurationSec)
	}
	if req.FPS <= 0 {
		req.FPS = DefaultFPS
	}

	width, height, err := imageSize(req.ImagePath)
	if err != nil {
		return fmt.Errorf("assemble %s: %w", req.OutputPath, err)
	}

	args := a.buildArgs(req, width, height, a.cfg.Encoder)
	if _, err := a.executor.Execute(ctx, a.cfg.BinaryPath, args...); err != nil {
		if a.cfg.FallbackEncoder == "" || a.cfg.FallbackEncoder == a.cfg.Encoder {
			return fmt.Errorf("ffmpeg encode %s: %w", req.OutputPath, err)
		}
		a.logger.Warn(ctx, "Encoder %s failed, trying %s...", a.cfg.Encoder, a.cfg.FallbackEncoder)
		args = a.buildArgs(req, width, height, a.cfg.FallbackEncoder)
		if _, err := a.executor.Execute(ctx, a.cfg.BinaryPath, args...); err != nil {
			return fmt.Errorf("both %s and %s encoders failed: %w", a.cfg.Encoder, a.cfg.FallbackEncoder, err)
		}
	}

	a.logger.Debug(ctx, "Video written: %s (%.3fs)", req.OutputPath, req.DurationSec)
	return nil
}

// buildArgs lays the image over a solid color source of the same size. Odd
// dimensions are rounded up because yuv420p needs even ones.
func (a *implAssembler) buildArgs(req Request, width, height int, encoder string) []string {
	dur := strconv.FormatFloat(req.DurationSec, 'f', 6, 64)
	fps := strconv.Itoa(req.FPS)

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "lavfi",
		"-i", fmt.Sprintf("color=c=%s:s=%dx%d:r=%s:d=%s", req.Background.Hex(), even(width), even(height), fps, dur),
		"-loop", "1",
		"-framerate", fps,
		"-t", dur,
		"-i", req.ImagePath,
	}
	if req.AudioPath != "" {
		args = append(args, "-i", req.AudioPath)
	}

	args = append(args,
		"-filter_complex", "[0:v][1:v]overlay=0:0:shortest=1,format=yuv420p[v]",
		"-map", "[v]",
	)

	if req.AudioPath != "" {
		// pad short chunks with silence, -t trims long ones
		args = append(args, "-map", "2:a", "-af", "apad", "-c:a", a.cfg.AudioCodec)
	} else {
		args = append(args, "-an")
	}

	args = append(args, "-c:v", encoder)
	if a.cfg.VideoBitrate != "" {
		args = append(args, "-b:v", a.cfg.VideoBitrate)
	}

	// bitexact keeps re-exports byte-identical
	args = append(args,
		"-r", fps,
		"-t", dur,
		"-fflags", "+bitexact",
		"-flags:v", "+bitexact",
		"-flags:a", "+bitexact",
		"-map_metadata", "-1",
		req.OutputPath,
	)
	return args
}

func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("read image header %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

func even(v int) int {
	return v + v%2
}
