package pebbleutil

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLoggerAndTracer sends Pebble logs and trace events to a zap logger.
// Trace events are logged at debug level.
type ZapLoggerAndTracer struct {
	l *zap.SugaredLogger
}

// NewZapLoggerAndTracer returns a ZapLoggerAndTracer. A nil logger discards everything.
func NewZapLoggerAndTracer(l *zap.Logger) *ZapLoggerAndTracer {
	if l == nil {
		l = zap.NewNop()
	}

	return &ZapLoggerAndTracer{
		l: l.Named("pebble").WithOptions(zap.AddCallerSkip(1)).Sugar(),
	}
}

// Infof implements LoggerAndTracer.
func (z *ZapLoggerAndTracer) Infof(format string, args ...interface{}) {
	z.l.Infof(format, args...)
}

// Errorf implements LoggerAndTracer.
func (z *ZapLoggerAndTracer) Errorf(format string, args ...interface{}) {
	z.l.Errorf(format, args...)
}

// Fatalf implements LoggerAndTracer.
func (z *ZapLoggerAndTracer) Fatalf(format string, args ...interface{}) {
	z.l.Fatalf(format, args...)
}

// Eventf implements LoggerAndTracer.
func (z *ZapLoggerAndTracer) Eventf(ctx context.Context, format string, args ...interface{}) {
	z.l.Debugf(format, args...)
}

// IsTracingEnabled implements LoggerAndTracer.
func (z *ZapLoggerAndTracer) IsTracingEnabled(ctx context.Context) bool {
	return z.l.Desugar().Core().Enabled(zapcore.DebugLevel)
}
