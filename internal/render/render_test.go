package render

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"short", "halo dunia", 40, []string{"halo dunia"}},
		{"empty", "   ", 40, nil},
		{"collapses whitespace", "a  b\n\tc", 40, []string{"a b c"}},
		{"greedy", "aaa bbb ccc", 7, []string{"aaa bbb", "ccc"}},
		{"long word kept whole", "hi supercalifragilistic yo", 5, []string{"hi", "supercalifragilistic", "yo"}},
		{"exact fit", "abcd efgh", 9, []string{"abcd efgh"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Wrap() = %q, want %q", got, tt.want)
			}
			for _, l := range got {
				if len(strings.Fields(l)) > 1 && len([]rune(l)) > tt.width {
					t.Errorf("line %q exceeds width %d", l, tt.width)
				}
			}
		})
	}
}

func TestRenderDimensions(t *testing.T) {
	r, err := New(Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	one, err := r.Render("HELLO", 48)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	long := strings.Repeat("WORD ", 20) // 100 runes wraps to 3 lines at 40
	three, err := r.Render(long, 48)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if one.Bounds().Dx() != CanvasWidth || three.Bounds().Dx() != CanvasWidth {
		t.Errorf("width = %d/%d, want %d", one.Bounds().Dx(), three.Bounds().Dx(), CanvasWidth)
	}

	size := 48
	margin := int(float64(size) * marginRatio)
	lineH := one.Bounds().Dy() - margin
	if lineH <= 0 {
		t.Fatalf("line height = %d", lineH)
	}
	if got := three.Bounds().Dy(); got != 3*lineH+margin {
		t.Errorf("3-line height = %d, want %d", got, 3*lineH+margin)
	}

	// corners stay transparent
	if a := one.NRGBAAt(0, 0).A; a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}

	// ink is centered: leftmost and rightmost painted columns are balanced
	minX, maxX := CanvasWidth, -1
	b := one.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if one.NRGBAAt(x, y).A > 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
			}
		}
	}
	if maxX < 0 {
		t.Fatal("no text drawn")
	}
	if left, right := minX, CanvasWidth-1-maxX; abs(left-right) > 12 {
		t.Errorf("text not centered: left margin %d, right margin %d", left, right)
	}
}

func TestRenderDeterministic(t *testing.T) {
	r, err := New(Options{TextColor: "white"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	dir := t.TempDir()
	a, b := filepath.Join(dir, "a.png"), filepath.Join(dir, "b.png")
	text := "Selamat pagi semua, apa kabar hari ini? Semoga sehat selalu."
	if err := r.RenderToFile(a, text, 48); err != nil {
		t.Fatalf("RenderToFile() error = %v", err)
	}
	if err := r.RenderToFile(b, text, 48); err != nil {
		t.Fatalf("RenderToFile() error = %v", err)
	}

	da, _ := os.ReadFile(a)
	db, _ := os.ReadFile(b)
	if !bytes.Equal(da, db) {
		t.Error("RenderToFile() output differs between identical calls")
	}
	if _, err := png.Decode(bytes.NewReader(da)); err != nil {
		t.Errorf("output is not a valid png: %v", err)
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := New(Options{FontPath: "/nonexistent/font.ttf"}); err == nil {
		t.Error("New() should fail for a missing font")
	}
	if _, err := New(Options{TextColor: "not-a-color"}); err == nil {
		t.Error("New() should fail for an unknown color")
	}

	r, _ := New(Options{})
	if _, err := r.Render("x", 0); err == nil {
		t.Error("Render() should reject a zero font size")
	}

	size := 48
	img, err := r.Render("", size)
	if err != nil {
		t.Fatalf("Render(\"\") error = %v", err)
	}
	if img.Bounds().Dy() != int(float64(size)*marginRatio) {
		t.Errorf("empty text height = %d", img.Bounds().Dy())
	}
}

func TestParseColor(t *testing.T) {
	c, err := parseColor("#FF8000")
	if err != nil {
		t.Fatalf("parseColor() error = %v", err)
	}
	r, g, b, _ := c.RGBA()
	if r>>8 != 0xff || g>>8 != 0x80 || b>>8 != 0 {
		t.Errorf("parseColor(#FF8000) = %v", c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
