package observ

import (
	"strings"
	"testing"
	"time"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	i := tm.Begin("scan")
	tm.End(i, "42 tokens")
	j := tm.Begin("render")
	tm.End(j, "")

	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Name != "scan" || report.Phases[0].Note != "42 tokens" {
		t.Fatalf("unexpected first phase: %+v", report.Phases[0])
	}
	if report.Phases[1].Name != "render" || report.Phases[1].Note != "" {
		t.Fatalf("unexpected second phase: %+v", report.Phases[1])
	}
	if report.TotalMS < 0 {
		t.Fatalf("total must not be negative, got %f", report.TotalMS)
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(-1, "ignored")
	tm.End(5, "ignored")
	if got := tm.Report(); len(got.Phases) != 0 {
		t.Fatalf("expected empty report, got %+v", got)
	}
}

func TestTimerSummary(t *testing.T) {
	tm := NewTimer()
	i := tm.Begin("load")
	tm.End(i, "1 file")

	s := tm.Summary()
	if !strings.HasPrefix(s, "timings:\n") {
		t.Fatalf("summary should start with header, got %q", s)
	}
	if !strings.Contains(s, "load") || !strings.Contains(s, "// 1 file") {
		t.Fatalf("summary should mention phase and note, got %q", s)
	}
	if !strings.Contains(s, "total") {
		t.Fatalf("summary should contain total line, got %q", s)
	}
}

func TestDurationToMillis(t *testing.T) {
	if got := durationToMillis(1500 * time.Microsecond); got != 1.5 {
		t.Fatalf("want 1.5 ms, got %f", got)
	}
}
