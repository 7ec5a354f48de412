package media

import (
	"errors"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Kind
		wantErr bool
	}{
		{"talk.wav", Audio, false},
		{"TALK.WAV", Audio, false},
		{"clip.webm", Video, false},
		{"clip.MP4", Video, false},
		{"output/talk1/talk.yaml", Document, false},
		{"caption.png", Image, false},
		{"notes.txt", Unknown, true},
		{"noext", Unknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := KindOf(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("KindOf() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnsupportedExtension) {
				t.Errorf("KindOf() error = %v, want ErrUnsupportedExtension", err)
			}
			if got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindTables(t *testing.T) {
	if got := Video.FileName(3); got != "video3.webm" {
		t.Errorf("Video.FileName(3) = %q", got)
	}
	if got := Audio.FileName(1); got != "audio1.wav" {
		t.Errorf("Audio.FileName(1) = %q", got)
	}
	if Audio.Dir() != "sounds" || Video.Dir() != "videos" || Image.Dir() != "images" {
		t.Errorf("unexpected workspace dirs: %q %q %q", Audio.Dir(), Video.Dir(), Image.Dir())
	}
	if Document.Dir() != "" {
		t.Errorf("Document.Dir() = %q, want empty", Document.Dir())
	}
	if !Audio.IsExportable() || !Video.IsExportable() || Document.IsExportable() {
		t.Error("IsExportable() mismatch")
	}
}

func TestBackgroundColor(t *testing.T) {
	tests := []struct {
		name string
		want RGB
	}{
		{"green", Green},
		{"GREEN", Green},
		{"blue", Black},
		{"black", Black},
		{"magenta", Black},
		{"", Black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BackgroundColor(tt.name); got != tt.want {
				t.Errorf("BackgroundColor(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if Green.Hex() != "0x00B140" {
		t.Errorf("Green.Hex() = %s", Green.Hex())
	}
	if Blue.Hex() != "0x0047BB" {
		t.Errorf("Blue.Hex() = %s", Blue.Hex())
	}
}
