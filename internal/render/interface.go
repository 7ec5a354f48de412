// Package render rasterizes caption text into fixed-width transparent PNGs.
package render

import "image"

const (
	// CanvasWidth is the fixed output width in pixels.
	CanvasWidth = 1920
	// DefaultWrapWidth is the wrap column count.
	DefaultWrapWidth = 40
	// marginRatio of the font size is added below the last line.
	marginRatio = 0.21
)

// Renderer turns text into a caption image. Output is a pure function of
// (text, fontSizePt) for a given font asset.
type Renderer interface {
	Render(text string, fontSizePt int) (*image.NRGBA, error)
	RenderToFile(path, text string, fontSizePt int) error
}
