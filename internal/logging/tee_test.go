package logging_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"phangs2caom2/internal/logging"
)

func TestTeeRespectsEachHandlerLevel(t *testing.T) {
	var console, file bytes.Buffer
	base := slog.New(slog.NewTextHandler(&console, &slog.HandlerOptions{Level: slog.LevelWarn}))
	logger := logging.Tee(base, slog.NewTextHandler(&file, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Debug("detail")
	logger.Warn("problem")

	if strings.Contains(console.String(), "detail") || !strings.Contains(console.String(), "problem") {
		t.Fatalf("unexpected console output %q", console.String())
	}
	if !strings.Contains(file.String(), "detail") || !strings.Contains(file.String(), "problem") {
		t.Fatalf("unexpected file output %q", file.String())
	}
}

func TestTeePropagatesAttrsAndGroups(t *testing.T) {
	var first, second bytes.Buffer
	base := slog.New(slog.NewTextHandler(&first, nil))
	logger := logging.Tee(base, slog.NewTextHandler(&second, nil)).
		With(logging.String(logging.FieldRunID, "r1")).
		WithGroup("plane")
	logger.Info("tagged", logging.String("id", "p1"))

	for name, buf := range map[string]*bytes.Buffer{"first": &first, "second": &second} {
		out := buf.String()
		if !strings.Contains(out, "run_id=r1") || !strings.Contains(out, "plane.id=p1") {
			t.Fatalf("%s handler missing attrs: %q", name, out)
		}
	}
}

func TestTeeWithoutExtraReturnsBase(t *testing.T) {
	base := logging.NewNop()
	if got := logging.Tee(base); got != base {
		t.Fatal("expected base logger when no extra handlers are given")
	}
}
