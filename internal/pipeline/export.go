package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nguyentantai21042004/voitext/internal/assembler"
	"github.com/nguyentantai21042004/voitext/internal/media"
	"github.com/nguyentantai21042004/voitext/internal/segmenter"
	"github.com/nguyentantai21042004/voitext/internal/workspace"
)

// Export runs the full pipeline for one audio or video file.
func (p *implPipeline) Export(ctx context.Context, inputPath string, opts Options) (*Result, error) {
	startTime := time.Now()
	opts = p.withDefaults(opts)

	// Validate everything we can before a workspace exists
	kind, err := media.KindOf(inputPath)
	if err != nil {
		return nil, err
	}
	if !kind.IsExportable() {
		return nil, fmt.Errorf("%w: %s input cannot be exported, use an audio or video file", media.ErrUnsupportedExtension, kind)
	}
	if _, err := os.Stat(inputPath); err != nil {
		return nil, fmt.Errorf("input file: %w", err)
	}
	if p.comp.Transcriber == nil {
		return nil, fmt.Errorf("transcription backend: %w", p.transcriberErr)
	}
	if opts.MinSilenceMs < 0 {
		return nil, fmt.Errorf("%w: got %d", segmenter.ErrInvalidMinSilence, opts.MinSilenceMs)
	}
	if opts.FontSize <= 0 {
		return nil, fmt.Errorf("font size must be positive: got %d", opts.FontSize)
	}
	langTag, err := language.Parse(opts.Language)
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", opts.Language, err)
	}

	name := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	ws, err := p.comp.Allocator.Allocate(name)
	if err != nil {
		return nil, fmt.Errorf("allocate workspace: %w", err)
	}

	runID := uuid.NewString()
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Run %s: exporting %s", runID, inputPath)
	p.logger.Info(ctx, "Workspace: %s", ws.Root)
	p.logger.Info(ctx, "========================================")

	// Step 1: Normalize input to WAV
	audioPath := inputPath
	if kind == media.Video {
		audioPath = filepath.Join(ws.Root, name+media.Audio.Ext())
		if err := p.comp.Assembler.ExtractAudio(ctx, inputPath, audioPath); err != nil {
			return nil, fmt.Errorf("extract audio: %w", err)
		}
	}

	stream, err := segmenter.LoadWAV(audioPath)
	if err != nil {
		return nil, err
	}

	// Step 2: Segment on silence
	chunks, spans, err := p.comp.Segmenter.Segment(stream, opts.MinSilenceMs)
	if err != nil {
		return nil, fmt.Errorf("segment audio: %w", err)
	}
	p.logger.Info(ctx, "Detected %d speech segments", len(spans))
	if len(spans) == 0 {
		p.logger.Warn(ctx, "No speech detected in %s", inputPath)
	}

	// Step 3: Per segment transcribe, render, assemble
	bg := media.BackgroundColor(opts.BackgroundColor)
	segments := make([]workspace.Segment, len(chunks))
	err = forEach(ctx, p.cfg.Performance.MaxConcurrent, len(chunks), func(ctx context.Context, i int) error {
		seg, err := p.exportSegment(ctx, ws, i+1, chunks[i], spans[i], langTag, bg, opts)
		if err != nil {
			return fmt.Errorf("segment %d: %w", i+1, err)
		}
		segments[i] = seg
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Step 4: Persist the manifest
	manifest := &workspace.Manifest{Segments: segments}
	manifestPath, err := workspace.SaveManifest(ws, name, manifest)
	if err != nil {
		return nil, fmt.Errorf("save manifest: %w", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Run %s finished in %s", runID, time.Since(startTime).Round(time.Millisecond))
	p.logger.Info(ctx, "Manifest: %s", manifestPath)
	p.logger.Info(ctx, "Done.")
	p.logger.Info(ctx, "========================================")

	return &Result{
		RunID:        runID,
		Workspace:    ws,
		ManifestPath: manifestPath,
		Manifest:     manifest,
	}, nil
}

func (p *implPipeline) exportSegment(ctx context.Context, ws *workspace.Workspace, index int, chunk *segmenter.AudioStream,
	span segmenter.Span, langTag language.Tag, bg media.RGB, opts Options) (workspace.Segment, error) {
	if err := ctx.Err(); err != nil {
		return workspace.Segment{}, err
	}

	seg := workspace.Segment{
		Index:       index,
		StartMs:     span.StartMs,
		EndMs:       span.EndMs,
		DurationSec: chunk.DurationSeconds(),
		AudioPath:   ws.Path(media.Audio, index),
		ImagePath:   ws.Path(media.Image, index),
		VideoPath:   ws.Path(media.Video, index),
	}
	if seg.DurationSec <= 0 {
		return seg, errors.New("empty audio chunk")
	}

	if err := chunk.WriteWAV(seg.AudioPath); err != nil {
		return seg, err
	}

	seg.Text = p.comp.Transcriber.Transcribe(ctx, seg.AudioPath, opts.Language)

	// cases.Caser holds state, one per call
	caption := cases.Upper(langTag).String(seg.Text)
	if err := p.comp.Renderer.RenderToFile(seg.ImagePath, caption, opts.FontSize); err != nil {
		return seg, fmt.Errorf("render: %w", err)
	}

	if err := p.comp.Assembler.Assemble(ctx, p.assembleRequest(seg, bg, opts)); err != nil {
		return seg, fmt.Errorf("assemble: %w", err)
	}

	p.logger.Info(ctx, "[%d] %s", index, seg.Text)
	return seg, nil
}

func (p *implPipeline) assembleRequest(seg workspace.Segment, bg media.RGB, opts Options) assembler.Request {
	req := assembler.Request{
		ImagePath:   seg.ImagePath,
		DurationSec: seg.DurationSec,
		Background:  bg,
		FPS:         opts.FPS,
		OutputPath:  seg.VideoPath,
	}
	if !opts.Mute {
		req.AudioPath = seg.AudioPath
	}
	return req
}
