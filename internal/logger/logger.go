package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type contextKey struct{}

var loggerKey = contextKey{}

// Initialize installs the default logger. Warnings and errors are always shown;
// verbose adds info, debug adds debug records with their source location.
func Initialize(debug, verbose bool) *slog.Logger {
	return InitializeWithWriter(os.Stderr, debug, verbose)
}

func InitializeWithWriter(w io.Writer, debug, verbose bool) *slog.Logger {
	level := slog.LevelWarn

	if debug {
		level = slog.LevelDebug
	} else if verbose {
		level = slog.LevelInfo
	}

	l := slog.New(NewPrettyHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	}))
	slog.SetDefault(l)
	return l
}

func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func With(ctx context.Context, args ...any) context.Context {
	l := FromContext(ctx).With(args...)
	return WithLogger(ctx, l)
}

func Debug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	FromContext(ctx).Error(msg, args...)
}
