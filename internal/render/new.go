package render

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Options configures a Renderer.
type Options struct {
	// FontPath is a TrueType/OpenType file. Empty uses the bundled Go font.
	FontPath  string
	WrapWidth int
	// TextColor is a CSS color name or #RRGGBB.
	TextColor string
}

type implRenderer struct {
	font      *opentype.Font
	wrapWidth int
	color     color.Color
}

// New loads the font asset and returns a Renderer
func New(opts Options) (Renderer, error) {
	data := goregular.TTF
	if opts.FontPath != "" {
		b, err := os.ReadFile(opts.FontPath)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	c, err := parseColor(opts.TextColor)
	if err != nil {
		return nil, err
	}

	width := opts.WrapWidth
	if width <= 0 {
		width = DefaultWrapWidth
	}

	return &implRenderer{font: f, wrapWidth: width, color: c}, nil
}

func parseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return color.White, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
	}
	return nil, fmt.Errorf("unknown text color %q", s)
}
