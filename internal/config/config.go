package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
)

type Config struct {
	Transcription TranscriptionConfig `yaml:"transcription"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	Render        RenderConfig        `yaml:"render"`
	Video         VideoConfig         `yaml:"video"`
	Segment       SegmentConfig       `yaml:"segment"`
	Paths         PathsConfig         `yaml:"paths"`
	Workspace     WorkspaceConfig     `yaml:"workspace"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

type TranscriptionConfig struct {
	Backend  string        `yaml:"backend"`
	Language string        `yaml:"language"`
	Whisper  WhisperConfig `yaml:"whisper"`
	Gemini   GeminiConfig  `yaml:"gemini"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

type FFmpegConfig struct {
	BinaryPath      string `yaml:"binary_path"`
	Encoder         string `yaml:"encoder"`
	FallbackEncoder string `yaml:"fallback_encoder"`
	AudioCodec      string `yaml:"audio_codec"`
	VideoBitrate    string `yaml:"video_bitrate"`
}

type RenderConfig struct {
	FontPath  string `yaml:"font_path"`
	FontSize  int    `yaml:"font_size"`
	WrapWidth int    `yaml:"wrap_width"`
	TextColor string `yaml:"text_color"`
}

type VideoConfig struct {
	FPS             int    `yaml:"fps"`
	BackgroundColor string `yaml:"background_color"`
	Mute            bool   `yaml:"mute"`
}

type SegmentConfig struct {
	MinSilenceMs    int     `yaml:"min_silence_ms"`
	ThresholdOffset float64 `yaml:"threshold_offset_db"`
	KeepSilenceMs   int     `yaml:"keep_silence_ms"`
}

type PathsConfig struct {
	Output string `yaml:"output"`
	Watch  string `yaml:"watch"`
}

type WorkspaceConfig struct {
	VersionPolicy string `yaml:"version_policy"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Default returns a configuration with every default filled in.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("default config invalid: %v", err))
	}
	return cfg
}

func (c *Config) Validate() error {
	if c.Transcription.Backend == "" {
		c.Transcription.Backend = "whisper"
	}
	switch c.Transcription.Backend {
	case "whisper", "gemini", "none":
	default:
		return fmt.Errorf("transcription.backend must be one of whisper, gemini, none: got %q", c.Transcription.Backend)
	}
	if c.Transcription.Language == "" {
		c.Transcription.Language = "id-ID"
	}
	if _, err := language.Parse(c.Transcription.Language); err != nil {
		return fmt.Errorf("transcription.language %q: %w", c.Transcription.Language, err)
	}
	if c.Transcription.Whisper.BinaryPath == "" {
		c.Transcription.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Transcription.Whisper.ModelPath == "" {
		c.Transcription.Whisper.ModelPath = "models/ggml-base.bin"
	}
	if c.Transcription.Whisper.Threads == 0 {
		c.Transcription.Whisper.Threads = 4
	}
	if c.Transcription.Gemini.Model == "" {
		c.Transcription.Gemini.Model = "gemini-2.5-flash"
	}
	if len(c.Transcription.Gemini.APIKeys) == 0 {
		c.Transcription.Gemini.APIKeys = apiKeysFromEnv()
	}

	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.Encoder == "" {
		c.FFmpeg.Encoder = "libvpx-vp9"
	}
	if c.FFmpeg.FallbackEncoder == "" {
		c.FFmpeg.FallbackEncoder = "libvpx"
	}
	if c.FFmpeg.AudioCodec == "" {
		c.FFmpeg.AudioCodec = "libopus"
	}

	if c.Render.FontSize == 0 {
		c.Render.FontSize = 48
	}
	if c.Render.FontSize < 0 {
		return fmt.Errorf("render.font_size must be positive: got %d", c.Render.FontSize)
	}
	if c.Render.WrapWidth == 0 {
		c.Render.WrapWidth = 40
	}
	if c.Render.TextColor == "" {
		c.Render.TextColor = "white"
	}

	if c.Video.FPS == 0 {
		c.Video.FPS = 30
	}
	if c.Video.FPS < 0 {
		return fmt.Errorf("video.fps must be positive: got %d", c.Video.FPS)
	}
	if c.Video.BackgroundColor == "" {
		c.Video.BackgroundColor = "green"
	}

	if c.Segment.MinSilenceMs == 0 {
		c.Segment.MinSilenceMs = 500
	}
	if c.Segment.MinSilenceMs < 0 {
		return fmt.Errorf("segment.min_silence_ms must be positive: got %d", c.Segment.MinSilenceMs)
	}
	if c.Segment.ThresholdOffset == 0 {
		c.Segment.ThresholdOffset = 14
	}
	if c.Segment.KeepSilenceMs == 0 {
		c.Segment.KeepSilenceMs = 1000
	}

	if c.Paths.Output == "" {
		c.Paths.Output = "output"
	}
	if c.Paths.Watch == "" {
		c.Paths.Watch = "input"
	}

	if c.Workspace.VersionPolicy == "" {
		c.Workspace.VersionPolicy = "count"
	}
	switch c.Workspace.VersionPolicy {
	case "count", "max":
	default:
		return fmt.Errorf("workspace.version_policy must be count or max: got %q", c.Workspace.VersionPolicy)
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Performance.MaxConcurrent <= 0 {
		c.Performance.MaxConcurrent = 1
	}

	return nil
}

func apiKeysFromEnv() []string {
	var keys []string
	for _, k := range strings.Split(os.Getenv("GEMINI_API_KEYS"), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) == 0 {
		if k := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
