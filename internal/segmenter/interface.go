package segmenter

import "errors"

// ErrInvalidMinSilence is returned for a negative minimum silence length.
var ErrInvalidMinSilence = errors.New("minimum silence length must be positive")

// DefaultMinSilenceMs applies when the caller passes zero.
const DefaultMinSilenceMs = 500

// Segmenter splits a stream into speech-bearing chunks.
type Segmenter interface {
	// Segment returns the padded audio chunks and the authoritative
	// non-silent boundaries, order-aligned one to one.
	Segment(stream *AudioStream, minSilenceMs int) ([]*AudioStream, []Span, error)
}

// Options tunes silence detection.
type Options struct {
	// ThresholdOffsetDB is subtracted from the stream's average loudness to
	// get the silence threshold.
	ThresholdOffsetDB float64
	// KeepSilenceMs is retained on each side of a chunk.
	KeepSilenceMs int
	// SeekStepMs is the stride of the silence scan.
	SeekStepMs int
}

// DefaultOptions returns the standard 14 dB offset with 1s of padding.
func DefaultOptions() Options {
	return Options{
		ThresholdOffsetDB: 14,
		KeepSilenceMs:     1000,
		SeekStepMs:        1,
	}
}
