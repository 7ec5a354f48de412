package watcher

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/voitext/internal/logger"
	"github.com/nguyentantai21042004/voitext/internal/media"
)

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     chan struct{}
	wg            sync.WaitGroup
	settleDelay   time.Duration
}

// Start monitors the input directory and hands every new audio or video
// file to the handler, at most maxConcurrent at a time.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(exportableExtensions(), ", "))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "Waiting for ongoing exports to complete...")
			w.wg.Wait()
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isMediaFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-media file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New media detected: %s", event.Name)

			// Small delay to ensure file is fully written
			time.Sleep(w.settleDelay)

			select {
			case w.semaphore <- struct{}{}:
				w.wg.Add(1)
				go func(filePath string) {
					defer w.wg.Done()
					defer func() { <-w.semaphore }()

					if err := w.handler(ctx, filePath); err != nil {
						w.logger.Error(ctx, "Failed to export %s: %v", filePath, err)
					}
				}(event.Name)
			case <-ctx.Done():
				w.wg.Wait()
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// isMediaFile reports whether path can start a fresh export
func isMediaFile(path string) bool {
	kind, err := media.KindOf(path)
	return err == nil && kind.IsExportable()
}

func exportableExtensions() []string {
	var out []string
	for _, ext := range media.SupportedExtensions() {
		if isMediaFile("x" + ext) {
			out = append(out, ext)
		}
	}
	return out
}
