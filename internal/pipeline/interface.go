package pipeline

import (
	"context"
	"errors"

	"github.com/nguyentantai21042004/voitext/internal/workspace"
)

// ErrSelectorOutOfRange is returned when Options.Number points past the manifest.
var ErrSelectorOutOfRange = errors.New("segment selector out of range")

// Options are the per-run knobs exposed on the command line.
type Options struct {
	Language        string
	FontSize        int
	MinSilenceMs    int
	Mute            bool
	BackgroundColor string
	FPS             int
	// Number selects a 1-based manifest position; 0 selects all entries.
	Number int
}

// Result describes a finished fresh export.
type Result struct {
	RunID        string
	Workspace    *workspace.Workspace
	ManifestPath string
	Manifest     *workspace.Manifest
}

// Pipeline runs the caption video stages.
type Pipeline interface {
	// Export segments, transcribes, renders and assembles an audio or video
	// file into a new workspace and writes its manifest.
	Export(ctx context.Context, inputPath string, opts Options) (*Result, error)
	// ExportFromData re-renders images and videos from an existing manifest
	// without transcribing again.
	ExportFromData(ctx context.Context, manifestPath string, opts Options) ([]workspace.Segment, error)
	// Explode renders one silent mini clip per character of each selected entry.
	Explode(ctx context.Context, manifestPath string, opts Options) ([]workspace.Segment, error)
}
