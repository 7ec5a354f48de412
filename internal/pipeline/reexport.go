package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/voitext/internal/media"
	"github.com/nguyentantai21042004/voitext/internal/workspace"
)

// ExportFromData replays render and assemble for the selected manifest
// entries, writing to the paths stored in the manifest. Stored text is used
// verbatim so hand edits survive.
func (p *implPipeline) ExportFromData(ctx context.Context, manifestPath string, opts Options) ([]workspace.Segment, error) {
	opts = p.withDefaults(opts)

	selected, err := p.loadSelection(manifestPath, opts)
	if err != nil {
		return nil, err
	}

	p.logger.Info(ctx, "Re-exporting %d segments from %s", len(selected), manifestPath)

	bg := media.BackgroundColor(opts.BackgroundColor)
	err = forEach(ctx, p.cfg.Performance.MaxConcurrent, len(selected), func(ctx context.Context, i int) error {
		seg := selected[i]
		if err := ensureParents(seg.ImagePath, seg.VideoPath); err != nil {
			return err
		}
		if err := p.comp.Renderer.RenderToFile(seg.ImagePath, seg.Text, opts.FontSize); err != nil {
			return fmt.Errorf("segment %d: render: %w", seg.Index, err)
		}
		if err := p.comp.Assembler.Assemble(ctx, p.assembleRequest(seg, bg, opts)); err != nil {
			return fmt.Errorf("segment %d: assemble: %w", seg.Index, err)
		}
		p.logger.Info(ctx, "[%d] %s", seg.Index, seg.VideoPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.Info(ctx, "Done.")
	return selected, nil
}

// loadSelection reads the manifest, resolves relative paths against its
// directory and applies the Number selector.
func (p *implPipeline) loadSelection(manifestPath string, opts Options) ([]workspace.Segment, error) {
	kind, err := media.KindOf(manifestPath)
	if err != nil {
		return nil, err
	}
	if kind != media.Document {
		return nil, fmt.Errorf("%w: expected a %s manifest, got %s", media.ErrUnsupportedExtension, media.Document.Ext(), kind)
	}
	if opts.FontSize <= 0 {
		return nil, fmt.Errorf("font size must be positive: got %d", opts.FontSize)
	}

	m, err := workspace.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	base := filepath.Dir(manifestPath)
	segs := make([]workspace.Segment, len(m.Segments))
	for i, s := range m.Segments {
		s.AudioPath = resolve(base, s.AudioPath)
		s.ImagePath = resolve(base, s.ImagePath)
		s.VideoPath = resolve(base, s.VideoPath)
		segs[i] = s
	}

	if opts.Number < 0 || opts.Number > len(segs) {
		return nil, fmt.Errorf("%w: %d of %d", ErrSelectorOutOfRange, opts.Number, len(segs))
	}
	if opts.Number > 0 {
		return segs[opts.Number-1 : opts.Number], nil
	}
	return segs, nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func ensureParents(paths ...string) error {
	for _, p := range paths {
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return fmt.Errorf("create directory for %s: %w", p, err)
		}
	}
	return nil
}
