package logging

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Loggers start as no-ops so packages can log before InitLogger runs (tests, CLI).
var (
	AppLogger     = zap.NewNop()
	RequestLogger = zap.NewNop()
	TimerLogger   = zap.NewNop()
	ErrorLogger   = zap.NewNop()
)

type ctxKey struct{}

// WithTraceID attaches a trace id that LogDuration and the request logger pick up.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, traceID)
}

// TraceID returns the trace id stored in ctx, or "".
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func rotated(dir, name string, maxSize, maxAge int) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename: filepath.Join(dir, name), MaxSize: maxSize, MaxAge: maxAge, Compress: true,
	})
}

// InitLogger wires the four loggers to rotated files under dir. If dir can't be
// created everything goes to stdout instead.
func InitLogger(dir string) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)
	stdout := zapcore.Lock(os.Stdout)

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		core := zapcore.NewCore(encoder, stdout, zap.InfoLevel)
		AppLogger = zap.New(core)
		RequestLogger = AppLogger
		TimerLogger = AppLogger
		ErrorLogger = zap.New(zapcore.NewCore(encoder, stdout, zap.ErrorLevel))
		AppLogger.Warn("log directory unavailable, logging to stdout", zap.String("dir", dir), zap.Error(err))
		return
	}

	// app.log (general logs), mirrored to stdout
	AppLogger = zap.New(zapcore.NewTee(
		zapcore.NewCore(encoder, rotated(dir, "app.log", 100, 28), zap.InfoLevel),
		zapcore.NewCore(encoder, stdout, zap.InfoLevel),
	))

	RequestLogger = zap.New(zapcore.NewCore(encoder, rotated(dir, "request.log", 50, 7), zap.InfoLevel))
	TimerLogger = zap.New(zapcore.NewCore(encoder, rotated(dir, "timer.log", 50, 7), zap.InfoLevel))

	// error.log
	ErrorLogger = zap.New(zapcore.NewTee(
		zapcore.NewCore(encoder, rotated(dir, "error.log", 100, 30), zap.ErrorLevel),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), zap.ErrorLevel),
	))
}

// Sync flushes buffered entries. Errors are ignored: stdout/stderr can't be synced on most platforms.
func Sync() {
	for _, l := range []*zap.Logger{AppLogger, RequestLogger, TimerLogger, ErrorLogger} {
		_ = l.Sync()
	}
}

// LogDuration lets you do: defer logging.LogDuration(ctx, "FuncName")()
func LogDuration(ctx context.Context, name string) func() {
	start := time.Now()
	traceID := TraceID(ctx)

	return func() {
		fields := []zap.Field{
			zap.String("func", name),
			zap.Int64("duration_ms", time.Since(start).Milliseconds()),
		}
		if traceID != "" {
			fields = append(fields, zap.String("trace_id", traceID))
		}

		// write ONLY to timer.log
		TimerLogger.Info("Function timed", fields...)
	}
}
