package transcript

import "context"

// Writer produces a readable transcript document from a manifest.
type Writer interface {
	// Write renders the manifest at manifestPath into <name>.docx beside it
	// and returns the document path.
	Write(ctx context.Context, manifestPath string) (string, error)
}
