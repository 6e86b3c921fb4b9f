package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSlogLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Debug("debug msg", "key", "v1")
	logger.Info("info msg")
	logger.Warn("warn msg")
	logger.Error("error msg")

	out := buf.String()
	for _, want := range []string{"debug msg", "info msg", "warn msg", "error msg", "key=v1"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSlogLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	logger.Debug("hidden")
	logger.Info("also hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("below-level entries leaked:\n%s", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("warn entry missing:\n%s", out)
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	logger := New(slog.NewTextHandler(&buf, nil)).With("component", "archive")

	logger.Info("extracting")
	if !strings.Contains(buf.String(), "component=archive") {
		t.Errorf("With() attribute missing:\n%s", buf.String())
	}
}

func TestDefault_NoopUntilSet(t *testing.T) {
	// Must not panic even before SetDefault is called.
	Default().Info("ignored")

	var buf bytes.Buffer
	SetDefault(New(slog.NewTextHandler(&buf, nil)))
	defer SetDefault(NewNoop())

	Default().Info("captured")
	if !strings.Contains(buf.String(), "captured") {
		t.Errorf("SetDefault not honored:\n%s", buf.String())
	}
}
