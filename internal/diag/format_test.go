package diag

import (
	"testing"

	"vitrine/internal/source"
)

func TestFormatDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	mainFile := fs.Add("/workspace/pkg/main.go", []byte("a\nb\n"), 0)
	otherFile := fs.Add("/workspace/pkg/util.go", []byte("x\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     LexIllegalToken,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: mainFile, Start: 0, End: 1},
			Notes: []Note{
				{Span: source.Span{File: otherFile, Start: 0, End: 0}, Msg: "declared here"},
				{Span: source.Span{File: mainFile, Start: 2, End: 3}, Msg: "note line"},
			},
		},
		{
			Severity: SevWarning,
			Code:     IdxLoadFailed,
			Message:  "another",
			Primary:  source.Span{File: mainFile, Start: 2, End: 3},
		},
	}

	expected := "error LEX1001 pkg/main.go:1:1 first line second\n" +
		"note LEX1001 pkg/main.go:2:1 note line\n" +
		"warning IDX2001 pkg/main.go:2:1 another\n" +
		"note LEX1001 pkg/util.go:1:1 declared here"

	if got := FormatDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected formatted diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestFormatDiagnosticsSkipsNotes(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	f := fs.Add("/workspace/a.go", []byte("a\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevInfo,
			Code:     ObsTimings,
			Message:  "timings",
			Primary:  source.Span{File: f, Start: 0, End: 1},
			Notes:    []Note{{Span: source.Span{File: f, Start: 0, End: 1}, Msg: "hidden"}},
		},
	}

	expected := "info OBS6001 a.go:1:1 timings"
	if got := FormatDiagnostics(diags, fs, false); got != expected {
		t.Fatalf("want %q, got %q", expected, got)
	}
}

func TestFormatDiagnosticsUnknownFile(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{
		{
			Severity: SevError,
			Code:     IOLoadFileError,
			Message:  "dropped",
			Primary:  source.Span{File: 99, Start: 0, End: 1},
		},
	}
	if got := FormatDiagnostics(diags, fs, true); got != "" {
		t.Fatalf("diagnostic with unknown file should be dropped, got %q", got)
	}
}

func TestFormatDiagnosticsEmpty(t *testing.T) {
	fs := source.NewFileSet()
	if got := FormatDiagnostics(nil, fs, true); got != "" {
		t.Fatalf("want empty string, got %q", got)
	}
	if got := FormatDiagnostics([]Diagnostic{{}}, nil, true); got != "" {
		t.Fatalf("nil fileset should produce empty string, got %q", got)
	}
}
