package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Common log attribute keys for consistent naming across the codebase.
const (
	KeyStep    = "step"
	KeyChannel = "channel"
	KeyFeed    = "feed"
	KeySource  = "source"
	KeyPersona = "persona"
	KeyMode    = "mode"
	KeyStatus  = "status"
	KeyError   = "error"
)

// Status values for consistent logging.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

// Setup installs a text handler on the default logger. The level is read
// from LOG_LEVEL (debug, info, warn, error); anything else means info.
func Setup() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// WithStep returns a logger with the pipeline step attribute set.
func WithStep(logger *slog.Logger, step string) *slog.Logger {
	return logger.With(slog.String(KeyStep, step))
}

// WithChannel returns a logger with the delivery channel attribute set.
func WithChannel(logger *slog.Logger, channel string) *slog.Logger {
	return logger.With(slog.String(KeyChannel, channel))
}

// Step returns a slog attribute for the pipeline step name.
func Step(step string) slog.Attr {
	return slog.String(KeyStep, step)
}

// Channel returns a slog attribute for the delivery channel.
func Channel(channel string) slog.Attr {
	return slog.String(KeyChannel, channel)
}

// Feed returns a slog attribute for the feed name.
func Feed(feed string) slog.Attr {
	return slog.String(KeyFeed, feed)
}

// Source returns a slog attribute for an article source name.
func Source(source string) slog.Attr {
	return slog.String(KeySource, source)
}

// Persona returns a slog attribute for the drafting persona.
func Persona(persona string) slog.Attr {
	return slog.String(KeyPersona, persona)
}

// Mode returns a slog attribute for the run mode.
func Mode(mode string) slog.Attr {
	return slog.String(KeyMode, mode)
}

// Status returns a slog attribute for the status.
func Status(status string) slog.Attr {
	return slog.String(KeyStatus, status)
}

// Err returns a slog attribute for an error.
// If err is nil, returns an empty Group attribute that will be omitted from
// output, so Err(maybeNilErr) is always safe to pass.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}
