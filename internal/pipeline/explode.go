package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nguyentantai21042004/voitext/internal/media"
	"github.com/nguyentantai21042004/voitext/internal/workspace"
)

// Explode fans every selected entry out into one silent clip per character.
// Entry at manifest position i writes into split_video<i> and split_image<i>
// next to its own video and image.
func (p *implPipeline) Explode(ctx context.Context, manifestPath string, opts Options) ([]workspace.Segment, error) {
	opts = p.withDefaults(opts)
	langTag, err := language.Parse(opts.Language)
	if err != nil {
		return nil, fmt.Errorf("language %q: %w", opts.Language, err)
	}

	selected, err := p.loadSelection(manifestPath, opts)
	if err != nil {
		return nil, err
	}

	first := 1
	if opts.Number > 0 {
		first = opts.Number
	}

	var all []workspace.Segment
	for n, seg := range selected {
		position := first + n
		videoDir := filepath.Join(filepath.Dir(seg.VideoPath), fmt.Sprintf("split_%s%d", media.Video, position))
		imageDir := filepath.Join(filepath.Dir(seg.ImagePath), fmt.Sprintf("split_%s%d", media.Image, position))

		minis := ExplodeSegment(seg, videoDir, imageDir)
		if len(minis) == 0 {
			p.logger.Warn(ctx, "Segment %d has no text, nothing to explode", seg.Index)
			continue
		}
		if err := ensureParents(minis[0].ImagePath, minis[0].VideoPath); err != nil {
			return nil, err
		}

		p.logger.Info(ctx, "Exploding segment %d into %d clips of %.3fs", seg.Index, len(minis), minis[0].DurationSec)

		bg := media.BackgroundColor(opts.BackgroundColor)
		err := forEach(ctx, p.cfg.Performance.MaxConcurrent, len(minis), func(ctx context.Context, i int) error {
			mini := minis[i]
			caption := cases.Upper(langTag).String(mini.Text)
			if err := p.comp.Renderer.RenderToFile(mini.ImagePath, caption, opts.FontSize); err != nil {
				return fmt.Errorf("segment %d char %d: render: %w", seg.Index, mini.Index, err)
			}
			// mini clips never carry audio
			req := p.assembleRequest(mini, bg, opts)
			req.AudioPath = ""
			if err := p.comp.Assembler.Assemble(ctx, req); err != nil {
				return fmt.Errorf("segment %d char %d: assemble: %w", seg.Index, mini.Index, err)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		all = append(all, minis...)
	}

	p.logger.Info(ctx, "Done.")
	return all, nil
}

// ExplodeSegment splits seg.Text into one mini segment per character, each
// lasting seg.DurationSec / len(text). Indices restart at 1.
func ExplodeSegment(seg workspace.Segment, videoDir, imageDir string) []workspace.Segment {
	n := utf8.RuneCountInString(seg.Text)
	if n == 0 {
		return nil
	}

	d := seg.DurationSec / float64(n)
	spanMs := float64(seg.EndMs-seg.StartMs) / float64(n)

	out := make([]workspace.Segment, 0, n)
	j := 0
	for _, r := range seg.Text {
		j++
		name := fmt.Sprintf("%d", j)
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			name = fmt.Sprintf("%d.%c", j, r)
		}
		out = append(out, workspace.Segment{
			Index:       j,
			StartMs:     seg.StartMs + int(float64(j-1)*spanMs),
			EndMs:       seg.StartMs + int(float64(j)*spanMs),
			Text:        string(r),
			DurationSec: d,
			ImagePath:   filepath.Join(imageDir, name+media.Image.Ext()),
			VideoPath:   filepath.Join(videoDir, name+media.Video.Ext()),
		})
	}
	return out
}
