package transcript

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/voitext/internal/workspace"
)

func (w *implWriter) Write(ctx context.Context, manifestPath string) (string, error) {
	m, err := workspace.LoadManifest(manifestPath)
	if err != nil {
		return "", err
	}

	name := strings.TrimSuffix(filepath.Base(manifestPath), filepath.Ext(manifestPath))
	outputPath := filepath.Join(filepath.Dir(manifestPath), name+".docx")

	if err := manifestToDocx(name, m, outputPath); err != nil {
		return "", fmt.Errorf("write transcript: %w", err)
	}

	w.logger.Info(ctx, "Transcript written: %s (%d segments)", outputPath, len(m.Segments))
	return outputPath, nil
}

// timestamp formats milliseconds as mm:ss.mmm, or h:mm:ss.mmm past an hour.
func timestamp(ms int) string {
	h := ms / 3600000
	m := ms / 60000 % 60
	s := ms / 1000 % 60
	frac := ms % 1000
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, frac)
	}
	return fmt.Sprintf("%02d:%02d.%03d", m, s, frac)
}
