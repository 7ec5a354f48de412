package logger

import (
	"context"
	"io"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorBlue   = "\033[34m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

var levels = map[string]int{
	"debug": 0,
	"info":  1,
	"warn":  2,
	"error": 3,
}

var levelColors = map[string]string{
	"debug": colorGray,
	"info":  colorBlue,
	"warn":  colorYellow,
	"error": colorRed,
}

type implLogger struct {
	logger   *log.Logger
	level    string
	colorize bool
}

// New creates a new Logger instance writing to stdout
func New(level string) Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a Logger writing to w. Level tags are colored only
// when w is a terminal.
func NewWithWriter(w io.Writer, level string) Logger {
	return &implLogger{
		logger:   log.New(w, "", log.LstdFlags),
		level:    strings.ToLower(level),
		colorize: isTerminal(w),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (l *implLogger) shouldLog(level string) bool {
	currentLevel, ok := levels[l.level]
	if !ok {
		currentLevel = 1 // default to info
	}

	targetLevel, ok := levels[level]
	if !ok {
		return true
	}

	return targetLevel >= currentLevel
}

func (l *implLogger) tag(level string) string {
	t := "[" + strings.ToUpper(level) + "] "
	if l.colorize {
		return levelColors[level] + t + colorReset
	}
	return t
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("debug") {
		l.logger.Printf(l.tag("debug")+msg, args...)
	}
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("info") {
		l.logger.Printf(l.tag("info")+msg, args...)
	}
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("warn") {
		l.logger.Printf(l.tag("warn")+msg, args...)
	}
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.shouldLog("error") {
		l.logger.Printf(l.tag("error")+msg, args...)
	}
}

// Discard returns a Logger that drops everything. Useful in tests.
func Discard() Logger {
	return NewWithWriter(io.Discard, "error")
}
