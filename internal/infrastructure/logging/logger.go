// Package logging provides the concrete logger behind the application
// Logger port, built on log/slog and configured from LoggingConfig.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/andrescamacho/production-planner/internal/infrastructure/config"
)

// SlogLogger adapts a slog.Logger to the application Logger port
type SlogLogger struct {
	logger     *slog.Logger
	closer     io.Closer
	withCaller bool
}

// NewLogger builds a logger from configuration. The caller must Close it
// when output is "file".
func NewLogger(cfg config.LoggingConfig) (*SlogLogger, error) {
	var out io.Writer
	var closer io.Closer

	switch cfg.Output {
	case "stdout":
		out = os.Stdout
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		out = f
		closer = f
	default:
		out = os.Stderr
	}

	return &SlogLogger{
		logger:     slog.New(newHandler(cfg, out)),
		closer:     closer,
		withCaller: cfg.IncludeCaller,
	}, nil
}

// NewLoggerWithWriter builds a logger writing to w
func NewLoggerWithWriter(cfg config.LoggingConfig, w io.Writer) *SlogLogger {
	return &SlogLogger{logger: slog.New(newHandler(cfg, w)), withCaller: cfg.IncludeCaller}
}

func newHandler(cfg config.LoggingConfig, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: cfg.IncludeCaller,
	}
	if cfg.Format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Log implements the application Logger port. Metadata keys are emitted in
// sorted order.
func (l *SlogLogger) Log(level, message string, metadata map[string]interface{}) {
	ctx := context.Background()
	lvl := parseLevel(level)
	if !l.logger.Enabled(ctx, lvl) {
		return
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var pc uintptr
	if l.withCaller {
		pc = callerPC()
	}
	record := slog.NewRecord(time.Now(), lvl, message, pc)
	for _, k := range keys {
		record.AddAttrs(slog.Any(k, metadata[k]))
	}
	_ = l.logger.Handler().Handle(ctx, record)
}

// callerPC returns the program counter of the code that called Log, skipping
// the logger decorators of the application layer
func callerPC() uintptr {
	var pcs [8]uintptr
	// skip runtime.Callers, callerPC and Log
	n := runtime.Callers(3, pcs[:])
	for _, pc := range pcs[:n] {
		frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
		if !strings.Contains(frame.Function, "/internal/application/common.") {
			return pc
		}
	}
	return 0
}

// Close releases the log file, if any
func (l *SlogLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}
