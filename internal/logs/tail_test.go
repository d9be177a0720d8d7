package logs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"phangs2caom2/internal/logs"
)

const sampleLog = `{"ts":"2026-01-02T03:04:05Z","level":"info","msg":"ingest started","component":"ingest","run_id":"aaaa1111-0000","observation_id":"ngc2903_12m+7m+tp_co21","artifacts":2}
{"ts":"2026-01-02T03:04:06Z","level":"debug","msg":"artifact ingested","component":"ingest","run_id":"aaaa1111-0000","observation_id":"ngc2903_12m+7m+tp_co21"}
{"ts":"2026-01-02T03:05:00Z","level":"error","msg":"ingest failed","component":"ingest","run_id":"bbbb2222-0000","observation_id":"ngc1300_12m+7m+tp_co21","error_kind":"validation"}
`

func writeLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phangs2caom2.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
	return path
}

func messages(entries []logs.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Message)
	}
	return out
}

func TestTailReturnsLastMatchingEntries(t *testing.T) {
	path := writeLog(t, sampleLog)

	entries, offset, err := logs.Tail(path, 2, logs.Filter{})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if got := strings.Join(messages(entries), ","); got != "artifact ingested,ingest failed" {
		t.Fatalf("unexpected entries %q", got)
	}
	if offset != int64(len(sampleLog)) {
		t.Fatalf("offset = %d, want %d", offset, len(sampleLog))
	}
}

func TestTailFilters(t *testing.T) {
	path := writeLog(t, sampleLog)

	tests := []struct {
		name   string
		filter logs.Filter
		want   string
	}{
		{"run prefix", logs.Filter{RunID: "aaaa"}, "ingest started,artifact ingested"},
		{"observation", logs.Filter{ObservationID: "ngc1300_12m+7m+tp_co21"}, "ingest failed"},
		{"min level", logs.Filter{MinLevel: "info"}, "ingest started,ingest failed"},
		{"no match", logs.Filter{RunID: "cccc"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, _, err := logs.Tail(path, 10, tt.filter)
			if err != nil {
				t.Fatalf("Tail: %v", err)
			}
			if got := strings.Join(messages(entries), ","); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTailMissingFile(t *testing.T) {
	entries, offset, err := logs.Tail(filepath.Join(t.TempDir(), "absent.log"), 5, logs.Filter{})
	if err != nil || len(entries) != 0 || offset != 0 {
		t.Fatalf("expected empty tail, got %v %d %v", entries, offset, err)
	}
}

func TestTailLeavesPartialLine(t *testing.T) {
	complete := `{"level":"info","msg":"one"}` + "\n"
	path := writeLog(t, complete+`{"level":"info","msg":"tw`)

	entries, offset, err := logs.Tail(path, 5, logs.Filter{})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}
	if len(entries) != 1 || offset != int64(len(complete)) {
		t.Fatalf("expected partial line to be excluded, got %d entries offset %d", len(entries), offset)
	}
}

func TestFollowEmitsAppendedEntries(t *testing.T) {
	path := writeLog(t, sampleLog)
	_, offset, err := logs.Tail(path, 0, logs.Filter{})
	if err != nil {
		t.Fatalf("Tail: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	go func() {
		time.Sleep(50 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return
		}
		defer f.Close()
		_, _ = f.WriteString(`{"level":"info","msg":"ingest completed","run_id":"aaaa1111-0000"}` + "\n")
	}()

	stop := errors.New("stop")
	var got []logs.Entry
	err = logs.Follow(ctx, path, offset, logs.Filter{RunID: "aaaa"}, 10*time.Millisecond, func(e logs.Entry) error {
		got = append(got, e)
		return stop
	})
	if !errors.Is(err, stop) {
		t.Fatalf("expected emit error to stop follow, got %v", err)
	}
	if len(got) != 1 || got[0].Message != "ingest completed" {
		t.Fatalf("unexpected followed entries %#v", got)
	}
}

func TestEntryFormat(t *testing.T) {
	e := logs.ParseEntry(`{"ts":"2026-01-02T03:04:05Z","level":"warn","msg":"header comment skipped","component":"comments","run_id":"r1","rule":"chunk.time.bounds","reason":"no chunk"}`)
	got := e.Format()
	for _, want := range []string{"WARN comments: header comment skipped", "run_id=r1", `reason="no chunk"`, "rule=chunk.time.bounds"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
	if strings.Index(got, "reason=") > strings.Index(got, "rule=") {
		t.Fatalf("expected extra fields sorted by key: %q", got)
	}

	raw := logs.ParseEntry("not json")
	if raw.Format() != "not json" {
		t.Fatalf("expected raw passthrough, got %q", raw.Format())
	}
	if (logs.Filter{RunID: "r1"}).Match(raw) {
		t.Fatal("expected raw line to fail a non-empty filter")
	}
}
