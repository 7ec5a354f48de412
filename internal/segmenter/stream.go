package segmenter

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// unsignedOffset is the zero level of 8-bit PCM on disk.
const unsignedOffset = 128

// AudioStream holds decoded PCM audio. Samples are interleaved by channel
// and always signed.
type AudioStream struct {
	Samples    []int
	SampleRate int
	Channels   int
	BitDepth   int
}

// LoadWAV decodes the WAV file at path into memory.
func LoadWAV(path string) (*AudioStream, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("decode audio %s: not a valid wav file", path)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("decode audio %s: %w", path, err)
	}

	// 8-bit PCM is unsigned around 128, wider depths are signed
	if dec.BitDepth == 8 {
		for i := range buf.Data {
			buf.Data[i] -= unsignedOffset
		}
	}

	return &AudioStream{
		Samples:    buf.Data,
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}, nil
}

// WriteWAV encodes the stream as 8/16/24/32-bit PCM WAV at path.
func (s *AudioStream) WriteWAV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}

	data := s.Samples
	if s.BitDepth == 8 {
		data = make([]int, len(s.Samples))
		for i, v := range s.Samples {
			data[i] = v + unsignedOffset
		}
	}

	enc := wav.NewEncoder(f, s.SampleRate, s.BitDepth, s.Channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: s.Channels, SampleRate: s.SampleRate},
		Data:           data,
		SourceBitDepth: s.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return fmt.Errorf("encode audio %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("finalize audio %s: %w", path, err)
	}
	return f.Close()
}

// Frames is the number of sample frames (one sample per channel).
func (s *AudioStream) Frames() int {
	if s.Channels == 0 {
		return 0
	}
	return len(s.Samples) / s.Channels
}

// LenMs is the stream length in whole milliseconds, rounded.
func (s *AudioStream) LenMs() int {
	if s.SampleRate == 0 {
		return 0
	}
	return int(math.Round(1000 * float64(s.Frames()) / float64(s.SampleRate)))
}

// DurationSeconds is the exact stream length in seconds.
func (s *AudioStream) DurationSeconds() float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(s.Frames()) / float64(s.SampleRate)
}

// MaxAmplitude is the largest representable sample magnitude.
func (s *AudioStream) MaxAmplitude() float64 {
	return math.Pow(2, float64(s.BitDepth-1))
}

// frameAt converts a millisecond offset into a frame index, clamped to the stream.
func (s *AudioStream) frameAt(ms int) int {
	f := int(float64(ms) * float64(s.SampleRate) / 1000)
	if f < 0 {
		return 0
	}
	if n := s.Frames(); f > n {
		return n
	}
	return f
}

// Slice returns the audio between startMs and endMs. Out-of-range bounds are
// clamped. The returned stream shares the underlying sample buffer.
func (s *AudioStream) Slice(startMs, endMs int) *AudioStream {
	from, to := s.frameAt(startMs), s.frameAt(endMs)
	if to < from {
		to = from
	}
	return &AudioStream{
		Samples:    s.Samples[from*s.Channels : to*s.Channels],
		SampleRate: s.SampleRate,
		Channels:   s.Channels,
		BitDepth:   s.BitDepth,
	}
}

// RMS is the root mean square of all samples.
func (s *AudioStream) RMS() float64 {
	if len(s.Samples) == 0 {
		return 0
	}
	var sum float64
	for _, v := range s.Samples {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(s.Samples)))
}

// DBFS is the average loudness relative to full scale. Digital silence is -Inf.
func (s *AudioStream) DBFS() float64 {
	rms := s.RMS()
	if rms == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(rms/s.MaxAmplitude())
}
