package assembler

import (
	"context"
	"errors"
	"image"
	"image/png"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/voitext/internal/config"
	"github.com/nguyentantai21042004/voitext/internal/logger"
	"github.com/nguyentantai21042004/voitext/internal/media"
	"github.com/nguyentantai21042004/voitext/internal/segmenter"
	"github.com/nguyentantai21042004/voitext/pkg/executor"
)

type call struct {
	name string
	args []string
}

type fakeExecutor struct {
	calls   []call
	failFor map[string]bool // encoder name -> fail
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, call{name, args})
	for i, a := range args {
		if a == "-c:v" && f.failFor[args[i+1]] {
			return "", errors.New("encoder unavailable")
		}
	}
	return "", nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func argValue(args []string, flag string) string {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func TestAssembleArgs(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "image1.png")
	writePNG(t, img, 1920, 61)

	exec := &fakeExecutor{}
	a := New(config.Default().FFmpeg, exec, logger.Discard())

	err := a.Assemble(context.Background(), Request{
		ImagePath:   img,
		DurationSec: 2.5,
		AudioPath:   filepath.Join(dir, "audio1.wav"),
		Background:  media.Green,
		OutputPath:  filepath.Join(dir, "video1.webm"),
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(exec.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(exec.calls))
	}

	args := exec.calls[0].args
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "color=c=0x00B140:s=1920x62:r=30:d=2.500000") {
		t.Errorf("missing background source: %s", joined)
	}
	if argValue(args, "-t") != "2.500000" {
		t.Errorf("-t = %q", argValue(args, "-t"))
	}
	if argValue(args, "-map") != "[v]" || !strings.Contains(joined, "-map 2:a") {
		t.Errorf("missing stream maps: %s", joined)
	}
	if strings.Contains(joined, "-an") {
		t.Errorf("clip with audio must not be muted: %s", joined)
	}
	if argValue(args, "-c:v") != "libvpx-vp9" {
		t.Errorf("-c:v = %q", argValue(args, "-c:v"))
	}
	if args[len(args)-1] != filepath.Join(dir, "video1.webm") {
		t.Errorf("output = %q", args[len(args)-1])
	}
}

func TestAssembleSilentAndFallback(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "image1.png")
	writePNG(t, img, 1920, 60)

	exec := &fakeExecutor{failFor: map[string]bool{"libvpx-vp9": true}}
	a := New(config.Default().FFmpeg, exec, logger.Discard())

	err := a.Assemble(context.Background(), Request{
		ImagePath:   img,
		DurationSec: 1,
		Background:  media.Black,
		FPS:         24,
		OutputPath:  filepath.Join(dir, "video1.webm"),
	})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(exec.calls) != 2 {
		t.Fatalf("calls = %d, want 2 (primary + fallback)", len(exec.calls))
	}
	args := exec.calls[1].args
	if argValue(args, "-c:v") != "libvpx" {
		t.Errorf("fallback -c:v = %q", argValue(args, "-c:v"))
	}
	if !strings.Contains(strings.Join(args, " "), "-an") {
		t.Error("silent clip should pass -an")
	}
	if argValue(args, "-r") != "24" {
		t.Errorf("-r = %q", argValue(args, "-r"))
	}

	exec = &fakeExecutor{failFor: map[string]bool{"libvpx-vp9": true, "libvpx": true}}
	a = New(config.Default().FFmpeg, exec, logger.Discard())
	err = a.Assemble(context.Background(), Request{ImagePath: img, DurationSec: 1, OutputPath: "x.webm"})
	if err == nil {
		t.Error("Assemble() should fail when both encoders fail")
	}
}

func TestAssembleValidation(t *testing.T) {
	a := New(config.Default().FFmpeg, &fakeExecutor{}, logger.Discard())
	if err := a.Assemble(context.Background(), Request{ImagePath: "x.png", DurationSec: 0}); err == nil {
		t.Error("Assemble() should reject zero duration")
	}
	if err := a.Assemble(context.Background(), Request{ImagePath: "/missing.png", DurationSec: 1}); err == nil {
		t.Error("Assemble() should fail for a missing image")
	}
}

func TestExtractAudioArgs(t *testing.T) {
	exec := &fakeExecutor{}
	a := New(config.Default().FFmpeg, exec, logger.Discard())
	if err := a.ExtractAudio(context.Background(), "talk.webm", "out/talk.wav"); err != nil {
		t.Fatalf("ExtractAudio() error = %v", err)
	}
	c := exec.calls[0]
	if c.name != "ffmpeg" || argValue(c.args, "-i") != "talk.webm" || argValue(c.args, "-c:a") != "pcm_s16le" {
		t.Errorf("unexpected call: %v", c)
	}
}

// TestAssembleDuration runs the real encoder and checks the container length.
func TestAssembleDuration(t *testing.T) {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, err := exec.LookPath(bin); err != nil {
			t.Skipf("%s not available", bin)
		}
	}

	ctx := context.Background()
	dir := t.TempDir()
	img := filepath.Join(dir, "image1.png")
	writePNG(t, img, 320, 41)

	tone := &segmenter.AudioStream{SampleRate: 16000, Channels: 1, BitDepth: 16, Samples: make([]int, 16000)}
	for i := range tone.Samples {
		tone.Samples[i] = int(8000 * math.Sin(2*math.Pi*440*float64(i)/16000))
	}
	wav := filepath.Join(dir, "audio1.wav")
	if err := tone.WriteWAV(wav); err != nil {
		t.Fatal(err)
	}

	a := New(config.Default().FFmpeg, executor.New(), logger.Discard())
	const fps = 30
	for _, tc := range []struct {
		name  string
		audio string
		dur   float64
	}{
		{"silent", "", 1.5},
		{"audio extended", wav, 2.0},
		{"audio trimmed", wav, 0.5},
	} {
		t.Run(tc.name, func(t *testing.T) {
			out := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".webm")
			err := a.Assemble(ctx, Request{ImagePath: img, DurationSec: tc.dur, AudioPath: tc.audio, Background: media.Green, FPS: fps, OutputPath: out})
			if err != nil {
				t.Fatalf("Assemble() error = %v", err)
			}
			got, err := executor.New().Execute(ctx, "ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "csv=p=0", out)
			if err != nil {
				t.Fatalf("ffprobe error = %v", err)
			}
			measured, err := strconv.ParseFloat(strings.TrimSpace(got), 64)
			if err != nil {
				t.Fatalf("parse duration %q: %v", got, err)
			}
			if math.Abs(measured-tc.dur) > 1.0/fps+1e-3 {
				t.Errorf("duration = %.3f, want %.3f within one frame", measured, tc.dur)
			}
		})
	}
}
