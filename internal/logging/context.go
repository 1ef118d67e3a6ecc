package logging

import (
	"context"
	"log/slog"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldGestureID identifies one drag gesture from press to settle.
	FieldGestureID = "gesture_id"
	// FieldCommitID identifies one commit of the pending buffer.
	FieldCommitID = "commit_id"
	// FieldList names the list a gesture or mutation targets (video or subtitle).
	FieldList = "list"
	// FieldEventType classifies a log line for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to try next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

type contextKey int

const (
	gestureIDKey contextKey = iota
	commitIDKey
)

// WithGestureID attaches a gesture identifier to ctx.
func WithGestureID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, gestureIDKey, id)
}

// GestureIDFromContext returns the gesture identifier stored in ctx.
func GestureIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(gestureIDKey).(string)
	return id, ok && id != ""
}

// WithCommitID attaches a commit identifier to ctx.
func WithCommitID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, commitIDKey, id)
}

// CommitIDFromContext returns the commit identifier stored in ctx.
func CommitIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, ok := ctx.Value(commitIDKey).(string)
	return id, ok && id != ""
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	fields := make([]slog.Attr, 0, 2)
	if id, ok := GestureIDFromContext(ctx); ok {
		fields = append(fields, GestureID(id))
	}
	if id, ok := CommitIDFromContext(ctx); ok {
		fields = append(fields, CommitID(id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return slog.New(logger.Handler().WithAttrs(fields))
}
