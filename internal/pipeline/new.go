package pipeline

import (
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/voitext/internal/assembler"
	"github.com/nguyentantai21042004/voitext/internal/config"
	"github.com/nguyentantai21042004/voitext/internal/logger"
	"github.com/nguyentantai21042004/voitext/internal/render"
	"github.com/nguyentantai21042004/voitext/internal/segmenter"
	"github.com/nguyentantai21042004/voitext/internal/transcriber"
	"github.com/nguyentantai21042004/voitext/internal/workspace"
	"github.com/nguyentantai21042004/voitext/pkg/executor"
)

// Components are the stage implementations a Pipeline drives.
type Components struct {
	Segmenter   segmenter.Segmenter
	Transcriber transcriber.Transcriber
	Renderer    render.Renderer
	Assembler   assembler.Assembler
	Allocator   *workspace.Allocator
}

type implPipeline struct {
	cfg    *config.Config
	comp   Components
	logger logger.Logger
	// transcriberErr explains a nil Components.Transcriber
	transcriberErr error
}

// New creates a Pipeline from already built components
func New(cfg *config.Config, comp Components, log logger.Logger) Pipeline {
	return &implPipeline{
		cfg:    cfg,
		comp:   comp,
		logger: log,
	}
}

// Build wires the concrete stages described by cfg. A transcription backend
// that cannot be built only fails Export, since re-export and explode never
// transcribe.
func Build(cfg *config.Config, exec executor.Executor, log logger.Logger) (Pipeline, error) {
	var tr transcriber.Transcriber
	backend, backendErr := transcriber.NewBackend(cfg.Transcription, exec, log)
	if backendErr == nil {
		tr = transcriber.New(backend, log)
	}

	rend, err := render.New(render.Options{
		FontPath:  cfg.Render.FontPath,
		WrapWidth: cfg.Render.WrapWidth,
		TextColor: cfg.Render.TextColor,
	})
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	policy, err := workspace.ParseVersionPolicy(cfg.Workspace.VersionPolicy)
	if err != nil {
		return nil, err
	}

	outputRoot, err := filepath.Abs(cfg.Paths.Output)
	if err != nil {
		return nil, fmt.Errorf("resolve output root: %w", err)
	}

	return &implPipeline{
		cfg: cfg,
		comp: Components{
			Segmenter: segmenter.New(segmenter.Options{
				ThresholdOffsetDB: cfg.Segment.ThresholdOffset,
				KeepSilenceMs:     cfg.Segment.KeepSilenceMs,
			}, log),
			Transcriber: tr,
			Renderer:    rend,
			Assembler:   assembler.New(cfg.FFmpeg, exec, log),
			Allocator:   workspace.NewAllocator(outputRoot, policy),
		},
		logger:         log,
		transcriberErr: backendErr,
	}, nil
}

// withDefaults fills zero-valued options from the configuration.
func (p *implPipeline) withDefaults(opts Options) Options {
	if opts.Language == "" {
		opts.Language = p.cfg.Transcription.Language
	}
	if opts.FontSize == 0 {
		opts.FontSize = p.cfg.Render.FontSize
	}
	if opts.MinSilenceMs == 0 {
		opts.MinSilenceMs = p.cfg.Segment.MinSilenceMs
	}
	if opts.BackgroundColor == "" {
		opts.BackgroundColor = p.cfg.Video.BackgroundColor
	}
	if opts.FPS == 0 {
		opts.FPS = p.cfg.Video.FPS
	}
	opts.Mute = opts.Mute || p.cfg.Video.Mute
	return opts
}
