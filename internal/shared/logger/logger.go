package logger

import (
	"context"
	"os"

	"sharvari-site/internal/shared/contextkeys"

	"github.com/sirupsen/logrus"
)

const (
	logFormatJSON = "json"
	logFormatText = "text"

	backendZap = "zap"

	timestampFormat = "2006-01-02T15:04:05.000Z07:00"
	textTimestamp   = "2006-01-02 15:04:05"
)

// Logger is the structured logger every module receives.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	WithFields(fields map[string]interface{}) Logger
	WithContext(ctx context.Context) Logger
	WithComponent(component string) Logger
}

// NewLogger builds the process logger from LOG_BACKEND, LOG_LEVEL, LOG_FORMAT
// and ENVIRONMENT. LOG_BACKEND=zap selects zap, anything else logrus.
func NewLogger() Logger {
	level, format := os.Getenv("LOG_LEVEL"), logFormat()
	if os.Getenv("LOG_BACKEND") == backendZap {
		return NewZapLogger(level, format)
	}
	return NewLogrusLogger(level, format)
}

// logFormat is json when asked for or in production, text otherwise.
func logFormat() string {
	env := os.Getenv("ENVIRONMENT")
	if os.Getenv("LOG_FORMAT") == logFormatJSON || env == "production" || env == "prod" {
		return logFormatJSON
	}
	return logFormatText
}

// LogrusLogger implements Logger on a logrus entry.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger builds a logrus-backed Logger. Unknown levels mean info.
func NewLogrusLogger(level string, format string) Logger {
	l := logrus.New()
	l.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)

	if format == logFormatJSON {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: timestampFormat,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "timestamp",
				logrus.FieldKeyMsg:  "message",
			},
		})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: textTimestamp,
		})
	}
	return &LogrusLogger{entry: logrus.NewEntry(l)}
}

func (l *LogrusLogger) Debug(args ...interface{}) { l.entry.Debug(args...) }
func (l *LogrusLogger) Info(args ...interface{})  { l.entry.Info(args...) }
func (l *LogrusLogger) Warn(args ...interface{})  { l.entry.Warn(args...) }
func (l *LogrusLogger) Error(args ...interface{}) { l.entry.Error(args...) }

func (l *LogrusLogger) Debugf(format string, args ...interface{}) { l.entry.Debugf(format, args...) }
func (l *LogrusLogger) Infof(format string, args ...interface{})  { l.entry.Infof(format, args...) }
func (l *LogrusLogger) Warnf(format string, args ...interface{})  { l.entry.Warnf(format, args...) }
func (l *LogrusLogger) Errorf(format string, args ...interface{}) { l.entry.Errorf(format, args...) }

func (l *LogrusLogger) WithFields(fields map[string]interface{}) Logger {
	return &LogrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// WithContext copies the request-scoped values in ctx onto the entry.
func (l *LogrusLogger) WithContext(ctx context.Context) Logger {
	return l.WithFields(contextValues(ctx))
}

func (l *LogrusLogger) WithComponent(component string) Logger {
	return &LogrusLogger{entry: l.entry.WithField("component", component)}
}

// contextFields lists the context values copied onto log entries.
var contextFields = []struct {
	key  interface{}
	name string
}{
	{contextkeys.UserIDKey, "user_id"},
	{contextkeys.RequestIDKey, "request_id"},
	{contextkeys.PageIDKey, "page_id"},
	{contextkeys.ComponentKey, "component"},
	{contextkeys.OperationKey, "operation"},
}

func contextValues(ctx context.Context) map[string]interface{} {
	fields := map[string]interface{}{}
	for _, cf := range contextFields {
		addContextField(ctx, cf.key, cf.name, fields)
	}
	return fields
}

// addContextField copies a non-empty string value of key into fields.
func addContextField(ctx context.Context, key interface{}, fieldName string, fields map[string]interface{}) {
	if val := ctx.Value(key); val != nil {
		if strVal, ok := val.(string); ok && strVal != "" {
			fields[fieldName] = strVal
		}
	}
}

var defaultLogger = NewLogger()

// SetDefault replaces the package-level logger.
func SetDefault(l Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Debugf logs on the package-level logger, for code that runs before the
// process logger is built.
func Debugf(format string, args ...interface{}) {
	defaultLogger.Debugf(format, args...)
}
