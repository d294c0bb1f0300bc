package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/multi"
	"github.com/fatih/color"

	"github.com/stratusctl/stratus/pkg/types"
)

// TimeLayout is the timestamp format used in the log file.
const TimeLayout = "2006-01-02 15:04:05"

// successPrefix marks Info entries that carry the SUCCESS level. Apex has a
// fixed level set, so the extra level rides on the message and the handlers
// strip it.
const successPrefix = "SUCCESS: "

// Logger appends leveled entries to a log file and mirrors each one to the
// console with a colored marker. One instance is built at startup with its
// target path and handed to every component that reports status.
type Logger struct {
	core *log.Logger
	path string
	file *os.File
}

// New opens (or creates) the log file at path and returns a logger writing
// there and to console.
func New(path string, console io.Writer) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := NewWithWriters(f, console)
	l.path = path
	l.file = f
	return l, nil
}

// NewWithWriters builds a logger over explicit writers. Tests use this with
// in-memory buffers.
func NewWithWriters(file, console io.Writer) *Logger {
	core := &log.Logger{
		Handler: multi.New(&fileHandler{w: file}, &consoleHandler{w: console}),
		Level:   log.InfoLevel,
	}
	return &Logger{core: core}
}

// Path returns the log file path; empty when writer-backed.
func (l *Logger) Path() string {
	return l.path
}

// Close closes the underlying log file if one is open.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Infof logs at INFO.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.core.Infof(format, args...)
}

// Successf logs at SUCCESS.
func (l *Logger) Successf(format string, args ...interface{}) {
	l.core.Info(successPrefix + fmt.Sprintf(format, args...))
}

// Warningf logs at WARNING.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.core.Warnf(format, args...)
}

// Errorf logs at ERROR.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.core.Errorf(format, args...)
}

// split resolves an entry's visible level and message.
func split(e *log.Entry) (types.Level, string) {
	msg := e.Message
	if strings.HasPrefix(msg, successPrefix) {
		return types.LevelSuccess, strings.TrimPrefix(msg, successPrefix)
	}
	switch e.Level {
	case log.WarnLevel:
		return types.LevelWarning, msg
	case log.ErrorLevel, log.FatalLevel:
		return types.LevelError, msg
	default:
		return types.LevelInfo, msg
	}
}

// fileHandler emits the append-only file format: [timestamp] [LEVEL] message
type fileHandler struct {
	w io.Writer
}

// HandleLog implements the log.Handler interface
func (h *fileHandler) HandleLog(e *log.Entry) error {
	level, msg := split(e)
	_, err := fmt.Fprintf(h.w, "[%s] [%s] %s\n", e.Timestamp.Format(TimeLayout), level, msg)
	return err
}

// consoleHandler mirrors entries to the terminal with a status marker.
type consoleHandler struct {
	w io.Writer
}

// HandleLog implements the log.Handler interface
func (h *consoleHandler) HandleLog(e *log.Entry) error {
	level, msg := split(e)
	var marker string
	switch level {
	case types.LevelSuccess:
		marker = color.GreenString("✓")
	case types.LevelWarning:
		marker = color.YellowString("!")
	case types.LevelError:
		marker = color.RedString("✗")
	default:
		marker = color.CyanString("•")
	}
	_, err := fmt.Fprintf(h.w, "%s %s\n", marker, msg)
	return err
}
