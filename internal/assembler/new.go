package assembler

import (
	"github.com/nguyentantai21042004/voitext/internal/config"
	"github.com/nguyentantai21042004/voitext/internal/logger"
	"github.com/nguyentantai21042004/voitext/pkg/executor"
)

type implAssembler struct {
	cfg      config.FFmpegConfig
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Assembler instance
func New(cfg config.FFmpegConfig, exec executor.Executor, log logger.Logger) Assembler {
	return &implAssembler{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
