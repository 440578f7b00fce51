package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("send failed", Err(errors.New("boom")))

	assert.Contains(t, buf.String(), "error=boom")
}

func TestErrWithNilError(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	logger.Info("send ok", Err(nil))

	assert.NotContains(t, buf.String(), "error=")
}

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		name     string
		attr     slog.Attr
		expected string
	}{
		{"step", Step("classify"), "step=classify"},
		{"channel", Channel("email"), "channel=email"},
		{"feed", Feed("Marketing Brew"), "feed=\"Marketing Brew\""},
		{"persona", Persona("The Human"), "persona=\"The Human\""},
		{"mode", Mode("dry-run"), "mode=dry-run"},
		{"status", Status(StatusSuccess), "status=success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			logger.Info("msg", tt.attr)
			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}

func TestWithStep(t *testing.T) {
	var buf bytes.Buffer
	logger := WithStep(slog.New(slog.NewTextHandler(&buf, nil)), "fetch")

	logger.Info("fetching feeds")

	assert.Contains(t, buf.String(), "step=fetch")
}
