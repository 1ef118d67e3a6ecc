package logging

import (
	"context"
	"log/slog"
	"slices"
)

type Attr = slog.Attr

func Bool(key string, value bool) Attr { return slog.Bool(key, value) }

func Int(key string, value int) Attr { return slog.Int(key, value) }

func Float(key string, value float64) Attr { return slog.Float64(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

// Error keeps the key present even for a nil error.
func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

func GestureID(id string) Attr { return slog.String(FieldGestureID, id) }

func CommitID(id string) Attr { return slog.String(FieldCommitID, id) }

// List tags the video or subtitle list a line concerns.
func List(name string) Attr { return slog.String(FieldList, name) }

func Event(eventType string) Attr { return slog.String(FieldEventType, eventType) }

func Hint(text string) Attr { return slog.String(FieldErrorHint, text) }

func Impact(text string) Attr { return slog.String(FieldImpact, text) }

func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewComponentLogger tags logger with a component name. A nil logger yields
// a discarding one.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

// Warn logs a warning tagged with eventType. A hint and an impact are added
// when attrs do not carry their own.
func Warn(logger *slog.Logger, eventType, msg string, attrs ...Attr) {
	report(logger, slog.LevelWarn, eventType, msg, attrs,
		Hint("check logs for details"),
		Impact("operation completed with warnings"),
	)
}

// Fail logs an error tagged with eventType, adding a default hint.
func Fail(logger *slog.Logger, eventType, msg string, attrs ...Attr) {
	report(logger, slog.LevelError, eventType, msg, attrs, Hint("check logs for details"))
}

func report(logger *slog.Logger, level slog.Level, eventType, msg string, attrs []Attr, defaults ...Attr) {
	if logger == nil {
		return
	}
	for _, d := range append([]Attr{Event(eventType)}, defaults...) {
		if !slices.ContainsFunc(attrs, func(a Attr) bool { return a.Key == d.Key }) {
			attrs = append(attrs, d)
		}
	}
	logger.LogAttrs(context.Background(), level, msg, attrs...)
}
