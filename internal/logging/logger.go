// Package logging provides the leveled console logger used across the tool,
// with an optional structured JSON log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/backmassage/mergetweets/internal/config"
	"github.com/backmassage/mergetweets/internal/term"
)

// Logger provides leveled, optionally colored console logging. When a log
// file is configured every line is also recorded there as a JSON entry.
type Logger struct {
	mu      sync.Mutex
	verbose bool
	stdout  io.Writer
	stderr  io.Writer
	file    *os.File
	sink    *zap.Logger
}

// NewLogger configures colors from cfg and optionally opens cfg.LogFile.
// Call Close when done.
func NewLogger(cfg *config.Config) (*Logger, error) {
	term.Configure(cfg.ColorMode)
	l := &Logger{
		verbose: cfg.Verbose,
		stdout:  color.Output,
		stderr:  color.Error,
	}

	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		encCfg := zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), zapcore.DebugLevel)
		l.file = f
		l.sink = zap.New(core)
	}
	return l, nil
}

// Close flushes and closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	_ = l.sink.Sync()
	err := l.file.Close()
	l.file = nil
	l.sink = nil
	return err
}

func (l *Logger) line(level zapcore.Level, label string, c *color.Color, text string) {
	l.emit(level, label, c, text, true)
}

// emit writes text to the console when console is set and always to the
// log file, if one is open.
func (l *Logger) emit(level zapcore.Level, label string, c *color.Color, text string, console bool) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	l.mu.Lock()
	defer l.mu.Unlock()
	if console {
		out := l.stdout
		if level >= zapcore.ErrorLevel {
			out = l.stderr
		}
		_, _ = io.WriteString(out, ts+" "+c.Sprint("["+label+"]")+" "+text+"\n")
	}
	if l.sink != nil {
		if ce := l.sink.Check(level, text); ce != nil {
			ce.Write(zap.String("label", label))
		}
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line(zapcore.InfoLevel, "INFO", term.Blue, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line(zapcore.InfoLevel, "SUCCESS", term.Green, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line(zapcore.WarnLevel, "WARN", term.Yellow, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red) to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line(zapcore.ErrorLevel, "ERROR", term.Red, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan). The console only shows it in verbose
// mode; the log file always records it.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.emit(zapcore.DebugLevel, "DEBUG", term.Cyan, fmt.Sprintf(format, args...), l.verbose)
}
