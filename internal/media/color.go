package media

import (
	"fmt"
	"strings"
)

// RGB is an opaque background color.
type RGB struct {
	R, G, B uint8
}

// Hex formats the color the way ffmpeg's color source expects it.
func (c RGB) Hex() string {
	return fmt.Sprintf("0x%02X%02X%02X", c.R, c.G, c.B)
}

var (
	Green = RGB{0, 177, 64}
	Blue  = RGB{0, 71, 187}
	Black = RGB{0, 0, 0}
)

// BackgroundColor maps a color name to its RGB value. Only "green" is
// recognized; every other name, including "blue", resolves to black.
func BackgroundColor(name string) RGB {
	switch strings.ToUpper(name) {
	case "GREEN":
		return Green
	}
	return Black
}
