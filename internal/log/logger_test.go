package log

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":    slog.LevelDebug,
		" INFO ":   slog.LevelInfo,
		"warn":     slog.LevelWarn,
		"error":    slog.LevelError,
		"nonsense": slog.LevelWarn,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOpLogsFailuresWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Component: ComponentApp, Output: &buf}).WithComponent(ComponentStorage)

	l.Op(context.Background(), OpSetBudget, nil, FieldCategory, "food")
	if buf.Len() != 0 {
		t.Fatalf("successful op logged at warn level: %q", buf.String())
	}

	l.Op(context.Background(), OpSetBudget, errors.New("disk full"), FieldCategory, "food")
	out := buf.String()
	for _, want := range []string{"component=storage", "operation=set_budget", "category=food", `error="disk full"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log line %q missing %q", out, want)
		}
	}
	if strings.Contains(out, "component=app") {
		t.Errorf("WithComponent kept the old component: %q", out)
	}
}

func TestDefaultConfigWritesWarnings(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Level != slog.LevelWarn || cfg.Component != ComponentApp {
		t.Fatalf("DefaultConfig = %+v, want warn level and app component", cfg)
	}

	var buf bytes.Buffer
	cfg.Output = &buf
	l := New(cfg)
	l.Info("hidden")
	l.Warn("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "component=app") {
		t.Fatalf("default logger output = %q", buf.String())
	}
}
