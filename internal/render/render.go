package render

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Render wraps text and draws each line horizontally centered on a
// transparent canvas. Height follows the content; width is fixed.
func (r *implRenderer) Render(text string, fontSizePt int) (*image.NRGBA, error) {
	if fontSizePt <= 0 {
		return nil, fmt.Errorf("font size must be positive: got %d", fontSizePt)
	}

	// faces keep scratch buffers, so one per call
	face, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    float64(fontSizePt),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create font face: %w", err)
	}
	defer face.Close()

	metrics := face.Metrics()
	lineHeight := (metrics.Ascent + metrics.Descent).Ceil()
	lines := Wrap(text, r.wrapWidth)

	height := int(float64(lineHeight*len(lines)) + float64(fontSizePt)*marginRatio)
	if height < 1 {
		height = 1
	}

	img := image.NewNRGBA(image.Rect(0, 0, CanvasWidth, height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(r.color),
		Face: face,
	}

	top := 0
	for _, line := range lines {
		w := d.MeasureString(line)
		d.Dot = fixed.Point26_6{
			X: (fixed.I(CanvasWidth) - w) / 2,
			Y: fixed.I(top) + metrics.Ascent,
		}
		d.DrawString(line)
		top += lineHeight
	}

	return img, nil
}

// RenderToFile renders text and writes it as PNG to path.
func (r *implRenderer) RenderToFile(path, text string, fontSizePt int) error {
	img, err := r.Render(text, fontSizePt)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}

	w := bufio.NewWriter(f)
	if err := png.Encode(w, img); err != nil {
		f.Close()
		return fmt.Errorf("encode png %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write png %s: %w", path, err)
	}
	return f.Close()
}
