package segmenter

import (
	"github.com/nguyentantai21042004/voitext/internal/logger"
)

type implSegmenter struct {
	opts   Options
	logger logger.Logger
}

// New creates a Segmenter. Zero-valued options fall back to DefaultOptions.
func New(opts Options, log logger.Logger) Segmenter {
	def := DefaultOptions()
	if opts.ThresholdOffsetDB == 0 {
		opts.ThresholdOffsetDB = def.ThresholdOffsetDB
	}
	if opts.KeepSilenceMs == 0 {
		opts.KeepSilenceMs = def.KeepSilenceMs
	}
	if opts.SeekStepMs <= 0 {
		opts.SeekStepMs = def.SeekStepMs
	}
	return &implSegmenter{opts: opts, logger: log}
}
