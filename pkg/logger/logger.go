package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogLevel represents the severity level of a log message
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is a key/value logger on top of logrus. Derived loggers share the
// underlying logrus instance but carry their own fields.
type Logger struct {
	level  LogLevel
	base   *logrus.Logger
	fields logrus.Fields
	mode   string
}

type Config struct {
	Level  LogLevel
	Output io.Writer
	Format string // "json" or "text" (default)
	Mode   string // "cli", "submit", or empty
}

func New() *Logger {
	return NewWithConfig(Config{
		Level:  INFO,
		Output: os.Stderr,
		Format: "text",
	})
}

func NewWithConfig(config Config) *Logger {
	if config.Output == nil {
		config.Output = os.Stderr
	}

	base := logrus.New()
	base.SetOutput(config.Output)
	// level filtering happens in log() so derived loggers can differ
	base.SetLevel(logrus.DebugLevel)
	if strings.EqualFold(config.Format, "json") {
		base.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02T15:04:05.000Z07:00"})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			DisableColors:   true,
		})
	}

	return &Logger{
		level:  config.Level,
		base:   base,
		fields: logrus.Fields{},
		mode:   config.Mode,
	}
}

// SetMode sets the mode for the logger
func (l *Logger) SetMode(mode string) {
	l.mode = mode
}

func (l *Logger) GetMode() string {
	return l.mode
}

func (l *Logger) clone() *Logger {
	fields := make(logrus.Fields, len(l.fields))
	for k, v := range l.fields {
		fields[k] = v
	}
	return &Logger{
		level:  l.level,
		base:   l.base,
		fields: fields,
		mode:   l.mode,
	}
}

func (l *Logger) WithFields(keyVals ...interface{}) *Logger {
	newLogger := l.clone()
	for i := 0; i+1 < len(keyVals); i += 2 {
		newLogger.fields[fmt.Sprintf("%v", keyVals[i])] = keyVals[i+1]
	}
	return newLogger
}

// WithField creates a new logger that includes an extra bit of context,
// typically "component".
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return l.WithFields(key, value)
}

func (l *Logger) WithMode(mode string) *Logger {
	newLogger := l.clone()
	newLogger.mode = mode
	return newLogger
}

func (l *Logger) Debug(msg string, keyVals ...interface{}) {
	l.log(DEBUG, msg, keyVals...)
}

func (l *Logger) Info(msg string, kv ...interface{}) {
	l.log(INFO, msg, kv...)
}

func (l *Logger) Warn(msg string, kv ...interface{}) {
	l.log(WARN, msg, kv...)
}

func (l *Logger) Error(msg string, kv ...interface{}) {
	l.log(ERROR, msg, kv...)
}

func (l *Logger) Fatal(msg string, kv ...interface{}) {
	l.log(ERROR, msg, kv...)
	os.Exit(1)
}

func (l *Logger) log(level LogLevel, msg string, kv ...interface{}) {
	if level < l.level {
		return
	}

	fields := make(logrus.Fields, len(l.fields)+len(kv)/2+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprintf("%v", kv[i])] = kv[i+1]
	}
	if l.mode != "" {
		fields["mode"] = l.mode
	}

	entry := l.base.WithFields(fields)
	switch level {
	case DEBUG:
		entry.Debug(msg)
	case INFO:
		entry.Info(msg)
	case WARN:
		entry.Warn(msg)
	default:
		entry.Error(msg)
	}
}

func (l *Logger) SetLevel(level LogLevel) {
	l.level = level
}

func (l *Logger) GetLevel() LogLevel {
	return l.level
}

func (l *Logger) IsDebugEnabled() bool {
	return l.level <= DEBUG
}

// SetOutput redirects every logger derived from the same base.
func (l *Logger) SetOutput(w io.Writer) {
	l.base.SetOutput(w)
}

// global logger instance for the convenience
var globalLogger = New()

// Global returns the process-wide logger.
func Global() *Logger {
	return globalLogger
}

// Configure replaces the global logger.
func Configure(config Config) {
	globalLogger = NewWithConfig(config)
}

func Debug(msg string, keyvals ...interface{}) {
	globalLogger.Debug(msg, keyvals...)
}

func Info(msg string, keyvals ...interface{}) {
	globalLogger.Info(msg, keyvals...)
}

func Warn(msg string, keyvals ...interface{}) {
	globalLogger.Warn(msg, keyvals...)
}

func Error(msg string, keyvals ...interface{}) {
	globalLogger.Error(msg, keyvals...)
}

func Fatal(msg string, keyvals ...interface{}) {
	globalLogger.Fatal(msg, keyvals...)
}

func WithFields(keyvals ...interface{}) *Logger {
	return globalLogger.WithFields(keyvals...)
}

func WithField(key string, value interface{}) *Logger {
	return globalLogger.WithField(key, value)
}

func SetLevel(level LogLevel) {
	globalLogger.SetLevel(level)
}

func ParseLevel(level string) (LogLevel, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("unknown log level: %s", level)
	}
}
