package common

import "context"

// Logger is the logging port used by application services. Levels are
// "DEBUG", "INFO", "WARNING" and "ERROR".
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return noOpLogger{}
}

// WithFields returns a logger that adds fields to the metadata of every
// entry. Metadata passed to Log wins over a field with the same key.
func WithFields(logger Logger, fields map[string]interface{}) Logger {
	if parent, ok := logger.(*fieldLogger); ok {
		merged := make(map[string]interface{}, len(parent.fields)+len(fields))
		for k, v := range parent.fields {
			merged[k] = v
		}
		for k, v := range fields {
			merged[k] = v
		}
		return &fieldLogger{next: parent.next, fields: merged}
	}
	return &fieldLogger{next: logger, fields: fields}
}

type fieldLogger struct {
	next   Logger
	fields map[string]interface{}
}

func (l *fieldLogger) Log(level, message string, metadata map[string]interface{}) {
	merged := make(map[string]interface{}, len(l.fields)+len(metadata))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range metadata {
		merged[k] = v
	}
	l.next.Log(level, message, merged)
}

type noOpLogger struct{}

func (noOpLogger) Log(level, message string, metadata map[string]interface{}) {}
