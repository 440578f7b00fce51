// Package logging provides structured logging helpers for the content engine.
//
// It centralizes slog attribute names (step, channel, feed, persona, status)
// so log output stays consistent across the pipeline, and installs the default
// text handler used by every command.
package logging
