package logging

import (
	wlogger "github.com/wailsapp/wails/v2/pkg/logger"
)

var _ wlogger.Logger = (*WailsLoggerAdapter)(nil)

// WailsLoggerAdapter sends Wails runtime output through a Logger. Every entry is
// tagged source=wails; Trace and Fatal keep their original level in wails_level
// since the Logger has no equivalent.
type WailsLoggerAdapter struct {
	logger Logger
}

func NewWailsLoggerAdapter(logger Logger) *WailsLoggerAdapter {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	return &WailsLoggerAdapter{logger: logger}
}

// WailsLevel maps a config level name to the Wails runtime log level
func WailsLevel(name string) wlogger.LogLevel {
	switch name {
	case "debug":
		return wlogger.DEBUG
	case "warn", "warning":
		return wlogger.WARNING
	case "error":
		return wlogger.ERROR
	default:
		return wlogger.INFO
	}
}

func (w *WailsLoggerAdapter) emit(logf func(string, ...interface{}), message, wailsLevel string) {
	if wailsLevel == "" {
		logf(message, "source", "wails")
		return
	}
	logf(message, "source", "wails", "wails_level", wailsLevel)
}

func (w *WailsLoggerAdapter) Print(message string)   { w.emit(w.logger.Info, message, "") }
func (w *WailsLoggerAdapter) Trace(message string)   { w.emit(w.logger.Debug, message, "trace") }
func (w *WailsLoggerAdapter) Debug(message string)   { w.emit(w.logger.Debug, message, "") }
func (w *WailsLoggerAdapter) Info(message string)    { w.emit(w.logger.Info, message, "") }
func (w *WailsLoggerAdapter) Warning(message string) { w.emit(w.logger.Warn, message, "") }
func (w *WailsLoggerAdapter) Error(message string)   { w.emit(w.logger.Error, message, "") }

// Fatal is logged as an error; the process is left to Wails to stop
func (w *WailsLoggerAdapter) Fatal(message string) { w.emit(w.logger.Error, message, "fatal") }
