package transcript

import (
	"github.com/nguyentantai21042004/voitext/internal/logger"
)

type implWriter struct {
	logger logger.Logger
}

// New creates a transcript Writer
func New(log logger.Logger) Writer {
	return &implWriter{logger: log}
}
