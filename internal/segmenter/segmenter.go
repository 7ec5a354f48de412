package segmenter

import (
	"context"
	"fmt"
)

// Segment locates non-silent spans first, then cuts padded chunks at the
// same boundaries.
func (s *implSegmenter) Segment(stream *AudioStream, minSilenceMs int) ([]*AudioStream, []Span, error) {
	if minSilenceMs < 0 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrInvalidMinSilence, minSilenceMs)
	}
	if minSilenceMs == 0 {
		minSilenceMs = DefaultMinSilenceMs
	}

	threshDB := stream.DBFS() - s.opts.ThresholdOffsetDB
	s.logger.Debug(context.Background(), "Silence threshold %.2f dBFS, min silence %dms, stream %dms",
		threshDB, minSilenceMs, stream.LenMs())

	spans := detectNonsilent(stream, minSilenceMs, threshDB, s.opts.SeekStepMs)
	padded := padSpans(spans, s.opts.KeepSilenceMs)

	chunks := make([]*AudioStream, len(padded))
	for i, p := range padded {
		chunks[i] = stream.Slice(p.StartMs, p.EndMs)
	}

	return chunks, spans, nil
}
