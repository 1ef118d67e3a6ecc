// Package logging assembles the slog loggers used by the mediapair CLI and
// the interactive reorder buffer.
//
// It owns the console and JSON handlers, resolves levels and output
// destinations from config, and exposes context helpers so drag gestures and
// commits carry their identifiers into every log line. The interactive buffer
// owns the terminal, so it logs through NewFileLogger instead of NewFromConfig.
package logging
