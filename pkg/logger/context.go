package logger

import (
	"context"
	"log/slog"
)

type runIDKey struct{}

// WithRunID stores the validation run identifier in ctx.
func WithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey{}, id)
}

// RunIDFromContext returns the run identifier stored by WithRunID.
func RunIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey{}).(string)
	return id, ok && id != ""
}

// RunIDExtractor adds the "run_id" attribute to records logged with a context
// carrying a run identifier.
func RunIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := RunIDFromContext(ctx); ok {
		return RunID(id), true
	}
	return slog.Attr{}, false
}
