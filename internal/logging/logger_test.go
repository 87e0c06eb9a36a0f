package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cr4te/internal/config"
	"cr4te/internal/logging"
)

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "cr4te.log")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("build started", logging.String(logging.FieldCreator, "Jane Doe"))

	content, err := os.ReadFile(cfg.Logging.File)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "build started") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller")

	if strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", buf.String())
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if !strings.Contains(buf.String(), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerFormatsSubjectAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger = logging.NewComponentLogger(logger, "pipeline").With(
		logging.String(logging.FieldCreator, "Jane Doe"),
		logging.String(logging.FieldProject, "Album 1"),
	)
	logger.Info("project assembled", logging.Int("tracks", 2))

	out := buf.String()
	for _, want := range []string{"INFO [pipeline] Jane Doe / Album 1 - project assembled", "    - tracks: 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output, got %q", want, out)
		}
	}
	if strings.Contains(out, "creator:") {
		t.Fatalf("expected creator folded into subject, got %q", out)
	}
}

func TestJSONLoggerEmitsStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("creator written", logging.String(logging.FieldCreator, "Jane Doe"))

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v (%q)", err, buf.String())
	}
	if payload["msg"] != "creator written" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
	if payload["level"] != "info" {
		t.Fatalf("unexpected level: %v", payload["level"])
	}
	if payload[logging.FieldCreator] != "Jane Doe" {
		t.Fatalf("unexpected creator: %v", payload[logging.FieldCreator])
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatal("expected ts key")
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextInjectsDefaultsAndNotifiesObserver(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var seen []string
	ctx := logging.WithWarnObserver(context.Background(), func(eventType string) {
		seen = append(seen, eventType)
	})
	logging.WarnWithContext(ctx, logger, "image probe failed", "image_probe_failed",
		logging.Error(errors.New("unexpected EOF")),
		logging.String(logging.FieldImpact, "image skipped for orientation fallback"),
	)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if payload[logging.FieldEventType] != "image_probe_failed" {
		t.Fatalf("unexpected event type: %v", payload[logging.FieldEventType])
	}
	if payload[logging.FieldErrorHint] == "" || payload[logging.FieldErrorHint] == nil {
		t.Fatal("expected default error hint")
	}
	if payload[logging.FieldImpact] != "image skipped for orientation fallback" {
		t.Fatalf("expected caller impact preserved, got %v", payload[logging.FieldImpact])
	}
	if len(seen) != 1 || seen[0] != "image_probe_failed" {
		t.Fatalf("unexpected observer calls: %v", seen)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	logger.Error("ignored")
	logging.WarnWithContext(context.Background(), logger, "ignored", "noop")
	logging.WarnWithContext(context.Background(), nil, "ignored", "noop")
}

func TestFormatSubject(t *testing.T) {
	tests := []struct {
		creator, project, want string
	}{
		{"Jane Doe", "Album 1", "Jane Doe / Album 1"},
		{"Jane Doe", "", "Jane Doe"},
		{"", "Album 1", "Album 1"},
		{" ", " ", ""},
	}
	for _, tt := range tests {
		if got := logging.FormatSubject(tt.creator, tt.project); got != tt.want {
			t.Errorf("FormatSubject(%q, %q) = %q, want %q", tt.creator, tt.project, got, tt.want)
		}
	}
}
