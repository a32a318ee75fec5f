package logging

import (
	"fmt"

	"github.com/rs/zerolog"
)

// RetryLogger adapts a zerolog logger to the leveled logger interface used
// by hashicorp/go-retryablehttp, so retry attempts show up as structured
// events instead of plain log lines.
type RetryLogger struct {
	logger *zerolog.Logger
}

// NewRetryLogger wraps logger. A nil logger falls back to the default.
func NewRetryLogger(logger *zerolog.Logger) *RetryLogger {
	if logger == nil {
		logger = Default()
	}
	return &RetryLogger{logger: logger}
}

// Error logs at error level.
func (l *RetryLogger) Error(msg string, keysAndValues ...any) {
	l.emit(l.logger.Error(), msg, keysAndValues)
}

// Warn logs at warn level.
func (l *RetryLogger) Warn(msg string, keysAndValues ...any) {
	l.emit(l.logger.Warn(), msg, keysAndValues)
}

// Info is demoted to debug: retryablehttp reports every attempt at info.
func (l *RetryLogger) Info(msg string, keysAndValues ...any) {
	l.emit(l.logger.Debug(), msg, keysAndValues)
}

// Debug is demoted to trace.
func (l *RetryLogger) Debug(msg string, keysAndValues ...any) {
	l.emit(l.logger.Trace(), msg, keysAndValues)
}

func (l *RetryLogger) emit(event *zerolog.Event, msg string, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		switch v := keysAndValues[i+1].(type) {
		case error:
			event = event.AnErr(key, v)
		case fmt.Stringer:
			event = event.Str(key, v.String())
		default:
			event = event.Interface(key, v)
		}
	}
	event.Msg(msg)
}
