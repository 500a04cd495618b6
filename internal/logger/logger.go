// Package logger provides a context-carrying structured logging facade
// over logrus, shared by every pipeline.
package logger

import (
	"context"

	"github.com/sirupsen/logrus"
)

type ctxKey struct{}

// requestIDKey is attached to the logger fields whenever a request id is
// present on the context, so every log line from a single HTTP request can
// be correlated.
const requestIDKey = "request_id"

var base = logrus.New()

func init() {
	base.SetFormatter(&logrus.JSONFormatter{})
	base.SetLevel(logrus.InfoLevel)
}

// SetLevel changes the base logger's verbosity; called once from config load.
func SetLevel(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return
	}
	base.SetLevel(lvl)
}

// WithRequestID returns a context carrying a logger entry annotated with
// the given request id, picked up by every subsequent GetLogger call.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	entry := base.WithField(requestIDKey, requestID)
	return context.WithValue(ctx, ctxKey{}, entry)
}

// GetLogger returns the logger entry attached to ctx, or the base logger
// wrapped in an entry if none was attached.
func GetLogger(ctx context.Context) *logrus.Entry {
	if ctx != nil {
		if entry, ok := ctx.Value(ctxKey{}).(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(base)
}

// Infof logs at info level using the logger attached to ctx.
func Infof(ctx context.Context, format string, args ...interface{}) {
	GetLogger(ctx).Infof(format, args...)
}

// Warnf logs at warn level using the logger attached to ctx.
func Warnf(ctx context.Context, format string, args ...interface{}) {
	GetLogger(ctx).Warnf(format, args...)
}

// Errorf logs at error level using the logger attached to ctx.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	GetLogger(ctx).Errorf(format, args...)
}

// Debugf logs at debug level using the logger attached to ctx.
func Debugf(ctx context.Context, format string, args ...interface{}) {
	GetLogger(ctx).Debugf(format, args...)
}
