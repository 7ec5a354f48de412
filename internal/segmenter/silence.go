package segmenter

import "math"

// Span is a [StartMs, EndMs) interval of a stream.
type Span struct {
	StartMs int
	EndMs   int
}

// energyIndex answers RMS queries over millisecond windows in constant time.
type energyIndex struct {
	stream *AudioStream
	prefix []float64 // prefix[i] = sum of squares of the first i samples
}

func newEnergyIndex(s *AudioStream) *energyIndex {
	prefix := make([]float64, len(s.Samples)+1)
	for i, v := range s.Samples {
		prefix[i+1] = prefix[i] + float64(v)*float64(v)
	}
	return &energyIndex{stream: s, prefix: prefix}
}

func (e *energyIndex) rms(startMs, endMs int) float64 {
	from := e.stream.frameAt(startMs) * e.stream.Channels
	to := e.stream.frameAt(endMs) * e.stream.Channels
	if to <= from {
		return 0
	}
	return math.Sqrt((e.prefix[to] - e.prefix[from]) / float64(to-from))
}

// detectSilence returns every interval of at least minSilenceMs whose RMS stays
// at or below threshDB (relative to full scale). Overlapping windows merge.
func detectSilence(s *AudioStream, minSilenceMs int, threshDB float64, seekStepMs int) []Span {
	segLen := s.LenMs()
	if segLen < minSilenceMs {
		return nil
	}

	thresh := math.Pow(10, threshDB/20) * s.MaxAmplitude()
	idx := newEnergyIndex(s)

	lastStart := segLen - minSilenceMs
	var starts []int
	for i := 0; i <= lastStart; i += seekStepMs {
		if idx.rms(i, i+minSilenceMs) <= thresh {
			starts = append(starts, i)
		}
	}
	if lastStart%seekStepMs != 0 {
		if idx.rms(lastStart, lastStart+minSilenceMs) <= thresh {
			starts = append(starts, lastStart)
		}
	}
	if len(starts) == 0 {
		return nil
	}

	var ranges []Span
	prev := starts[0]
	rangeStart := prev
	for _, i := range starts[1:] {
		continuous := i == prev+seekStepMs
		hasGap := i > prev+minSilenceMs
		if !continuous && hasGap {
			ranges = append(ranges, Span{rangeStart, prev + minSilenceMs})
			rangeStart = i
		}
		prev = i
	}
	ranges = append(ranges, Span{rangeStart, prev + minSilenceMs})

	return ranges
}

// detectNonsilent is the complement of detectSilence over the stream.
func detectNonsilent(s *AudioStream, minSilenceMs int, threshDB float64, seekStepMs int) []Span {
	segLen := s.LenMs()
	silent := detectSilence(s, minSilenceMs, threshDB, seekStepMs)

	if len(silent) == 0 {
		return []Span{{0, segLen}}
	}
	if len(silent) == 1 && silent[0].StartMs == 0 && silent[0].EndMs == segLen {
		return nil
	}

	var out []Span
	prevEnd := 0
	for _, r := range silent {
		out = append(out, Span{prevEnd, r.StartMs})
		prevEnd = r.EndMs
	}
	if last := silent[len(silent)-1]; last.EndMs != segLen {
		out = append(out, Span{prevEnd, segLen})
	}
	if out[0].StartMs == 0 && out[0].EndMs == 0 {
		out = out[1:]
	}
	return out
}

// padSpans widens each span by keepMs on both sides. Where neighbours would
// overlap they meet halfway. Results are not clamped to the stream.
func padSpans(spans []Span, keepMs int) []Span {
	out := make([]Span, len(spans))
	for i, sp := range spans {
		out[i] = Span{sp.StartMs - keepMs, sp.EndMs + keepMs}
	}
	for i := 0; i+1 < len(out); i++ {
		lastEnd, nextStart := out[i].EndMs, out[i+1].StartMs
		if nextStart < lastEnd {
			mid := floorDiv(lastEnd+nextStart, 2)
			out[i].EndMs = mid
			out[i+1].StartMs = mid
		}
	}
	return out
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
