package logging

import (
	"context"
	"log/slog"

	"go.uber.org/zap"
)

const badKey = "!BADKEY"

// NewZap returns a Logger backed by the provided zap.Logger. Passing nil
// yields a no-op zap logger.
func NewZap(logger *zap.Logger) Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &zapLogger{logger: logger}
}

type zapLogger struct {
	logger *zap.Logger
}

func (l *zapLogger) Debug(_ context.Context, msg string, args ...any) {
	l.logger.Debug(msg, zapFields(args)...)
}

func (l *zapLogger) Info(_ context.Context, msg string, args ...any) {
	l.logger.Info(msg, zapFields(args)...)
}

func (l *zapLogger) Warn(_ context.Context, msg string, args ...any) {
	l.logger.Warn(msg, zapFields(args)...)
}

func (l *zapLogger) Error(_ context.Context, msg string, args ...any) {
	l.logger.Error(msg, zapFields(args)...)
}

func (l *zapLogger) With(args ...any) Logger {
	return &zapLogger{logger: l.logger.With(zapFields(args)...)}
}

// zapFields converts slog-style arguments (alternating keys and values, or
// slog.Attr) into zap fields. A dangling value is keyed "!BADKEY" as slog
// does.
func zapFields(args []any) []zap.Field {
	if len(args) == 0 {
		return nil
	}
	fields := make([]zap.Field, 0, len(args))
	for i := 0; i < len(args); i++ {
		switch a := args[i].(type) {
		case slog.Attr:
			fields = append(fields, zap.Any(a.Key, a.Value.Resolve().Any()))
		case zap.Field:
			fields = append(fields, a)
		case string:
			if i+1 >= len(args) {
				fields = append(fields, zap.String(badKey, a))
				continue
			}
			fields = append(fields, zap.Any(a, args[i+1]))
			i++
		default:
			fields = append(fields, zap.Any(badKey, a))
		}
	}
	return fields
}
