package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements Logger on top of a zap SugaredLogger.
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds a zap-backed Logger. format is "json" or "text".
func NewZapLogger(level string, format string) Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.MessageKey = "message"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timestampFormat)

	var encoder zapcore.Encoder
	if format == logFormatJSON {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zapLevel(level))
	return &ZapLogger{sugar: zap.New(core).Sugar()}
}

func zapLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *ZapLogger) Debug(args ...interface{}) { l.sugar.Debug(args...) }
func (l *ZapLogger) Info(args ...interface{})  { l.sugar.Info(args...) }
func (l *ZapLogger) Warn(args ...interface{})  { l.sugar.Warn(args...) }
func (l *ZapLogger) Error(args ...interface{}) { l.sugar.Error(args...) }

func (l *ZapLogger) Debugf(format string, args ...interface{}) { l.sugar.Debugf(format, args...) }
func (l *ZapLogger) Infof(format string, args ...interface{})  { l.sugar.Infof(format, args...) }
func (l *ZapLogger) Warnf(format string, args ...interface{})  { l.sugar.Warnf(format, args...) }
func (l *ZapLogger) Errorf(format string, args ...interface{}) { l.sugar.Errorf(format, args...) }

// WithFields adds structured fields to the logger
func (l *ZapLogger) WithFields(fields map[string]interface{}) Logger {
	kv := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return &ZapLogger{sugar: l.sugar.With(kv...)}
}

// WithContext adds request scoped values to the logger
func (l *ZapLogger) WithContext(ctx context.Context) Logger {
	return l.WithFields(contextValues(ctx))
}

// WithComponent adds component name to the logger
func (l *ZapLogger) WithComponent(component string) Logger {
	return &ZapLogger{sugar: l.sugar.With("component", component)}
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	if err := l.sugar.Sync(); err != nil && !strings.Contains(err.Error(), "sync /dev/stdout") {
		return fmt.Errorf("sync zap logger: %w", err)
	}
	return nil
}
