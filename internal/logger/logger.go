package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var base = zap.NewNop()

// Init builds the process-wide structured logger. Must be called once
// from main before anything else logs; everything before that is a no-op.
func Init() {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	base = l
	base.Info("logger initialized")
}

func zapFields(m map[string]any) []zap.Field {
	fs := make([]zap.Field, 0, len(m))
	for k, v := range m {
		fs = append(fs, zap.Any(k, v))
	}
	return fs
}

func Info(msg string, fields map[string]any) {
	base.Info(msg, zapFields(fields)...)
}

func Warn(msg string, fields map[string]any) {
	base.Warn(msg, zapFields(fields)...)
}

func Error(msg string, fields map[string]any) {
	base.Error(msg, zapFields(fields)...)
}

func Fatal(msg string, fields map[string]any) {
	base.Fatal(msg, zapFields(fields)...)
}
