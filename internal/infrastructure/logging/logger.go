package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger interface used across the host process
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, fields ...interface{})
}

// defaultWriter is where loggers without an explicit writer send output
var defaultWriter io.Writer = os.Stderr

// Options configures a DefaultLogger
type Options struct {
	Level  string    // debug, info, warn or error
	JSON   bool      // JSON lines when true, human readable console output otherwise
	Writer io.Writer // defaults to stderr
}

// DefaultLogger is a zerolog backed structured logger
type DefaultLogger struct {
	zl zerolog.Logger
}

// NewDefaultLogger creates a JSON logger at debug level writing to stderr
func NewDefaultLogger() Logger {
	return NewLogger(Options{Level: "debug", JSON: true})
}

// NewLogger creates a logger from the given options. Unknown levels fall back to info.
func NewLogger(opts Options) *DefaultLogger {
	w := opts.Writer
	if w == nil {
		w = defaultWriter
	}
	if !opts.JSON {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zl := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &DefaultLogger{zl: zl}
}

// ParseLevel maps a config level name to a zerolog level
func ParseLevel(name string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// extraKey names a trailing value that arrived without a key
const extraKey = "extra"

// withFields adds alternating key/value pairs to the event. Non-string keys are
// stringified; a dangling final value is stored under extraKey.
func withFields(event *zerolog.Event, fields []interface{}) *zerolog.Event {
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			event = event.Interface(extraKey, fields[i])
			break
		}

		key, ok := fields[i].(string)
		if !ok {
			key = fmt.Sprint(fields[i])
		}

		switch v := fields[i+1].(type) {
		case error:
			event = event.AnErr(key, v)
		case time.Duration:
			event = event.Dur(key, v)
		default:
			event = event.Interface(key, v)
		}
	}
	return event
}

func (l *DefaultLogger) log(event *zerolog.Event, msg string, fields []interface{}) {
	withFields(event, fields).Msg(msg)
}

func (l *DefaultLogger) Debug(msg string, fields ...interface{}) {
	l.log(l.zl.Debug(), msg, fields)
}

func (l *DefaultLogger) Info(msg string, fields ...interface{}) {
	l.log(l.zl.Info(), msg, fields)
}

func (l *DefaultLogger) Warn(msg string, fields ...interface{}) {
	l.log(l.zl.Warn(), msg, fields)
}

func (l *DefaultLogger) Error(msg string, fields ...interface{}) {
	l.log(l.zl.Error(), msg, fields)
}

// OperationError is the view of a classified error the logging helpers need (avoids importing errors)
type OperationError interface {
	Error() string
	GetCode() string
	GetContext() map[string]string
	GetTimestamp() time.Time
}

// LogOperationError logs a failed host operation with its classification and context.
// classification is the code derived from err when it is not an OperationError itself.
func LogOperationError(logger Logger, err error, operation, classification string, context map[string]interface{}) {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	var fields []interface{}
	if opErr, ok := err.(OperationError); ok {
		fields = []interface{}{
			"operation", operation,
			"error_code", opErr.GetCode(),
			"timestamp", opErr.GetTimestamp(),
		}
		for k, v := range opErr.GetContext() {
			fields = append(fields, k, v)
		}
	} else {
		fields = []interface{}{
			"operation", operation,
			"error_code", classification,
			"error_type", fmt.Sprintf("%T", err),
		}
	}

	for k, v := range context {
		fields = append(fields, k, v)
	}

	logger.Error(fmt.Sprintf("Operation failed: %s", err.Error()), fields...)
}

// LogOperation logs a completed host operation for monitoring
func LogOperation(logger Logger, operation string, duration time.Duration, context map[string]interface{}) {
	if logger == nil {
		logger = NewDefaultLogger()
	}

	fields := []interface{}{
		"operation", operation,
		"duration_ms", duration.Milliseconds(),
	}

	for k, v := range context {
		fields = append(fields, k, v)
	}

	logger.Info(fmt.Sprintf("Operation completed: %s", operation), fields...)
}
