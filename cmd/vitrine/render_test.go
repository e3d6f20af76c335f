package main

import (
	"testing"
)

func TestParseMarks(t *testing.T) {
	ranges, err := parseMarks([]string{"4:9", "10:14:search_hit:res7"})
	if err != nil {
		t.Fatal(err)
	}
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %d", len(ranges))
	}
	if ranges[0].Start != 4 || ranges[0].End != 9 {
		t.Fatalf("unexpected first range: %+v", ranges[0])
	}
	if ranges[0].Class != " highlight" || ranges[0].ID != "" {
		t.Fatalf("expected default class and no id, got %+v", ranges[0])
	}
	if ranges[1].Class != " search_hit" || ranges[1].ID != "res7" {
		t.Fatalf("unexpected second range: %+v", ranges[1])
	}
}

func TestParseMarksRejectsMalformed(t *testing.T) {
	bad := []string{"", "5", "a:b", "9:4", "4:4"}
	for _, spec := range bad {
		if _, err := parseMarks([]string{spec}); err == nil {
			t.Errorf("parseMarks(%q) should fail", spec)
		}
	}
}

func TestReadUIMode(t *testing.T) {
	for _, tt := range []struct {
		in   string
		want uiMode
	}{
		{"", uiModeAuto},
		{"auto", uiModeAuto},
		{"ON", uiModeOn},
		{" off ", uiModeOff},
	} {
		got, err := readUIMode(tt.in)
		if err != nil {
			t.Fatalf("readUIMode(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("readUIMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("invalid mode should fail")
	}
}
