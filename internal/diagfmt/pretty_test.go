package diagfmt

import (
	"strings"
	"testing"

	"vitrine/internal/diag"
	"vitrine/internal/source"
)

func fixtureBag(t *testing.T) (*diag.Bag, *source.FileSet, source.Span) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.go", []byte("package main\n\nfunc main() {\n\tbroken here\n}\n"))

	// "broken" on line 4 starts after the tab, bytes 29..35
	sp := source.Span{File: id, Start: 29, End: 35}
	bag := diag.NewBag(8)
	bag.Add(diag.NewError(diag.LexIllegalToken, sp, "unexpected identifier"))
	return bag, fs, sp
}

func TestPrettyHeaderAndUnderline(t *testing.T) {
	bag, fs, _ := fixtureBag(t)

	var b strings.Builder
	Pretty(&b, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	out := b.String()

	if !strings.Contains(out, "demo.go:4:2: error LEX1001: unexpected identifier") {
		t.Fatalf("missing header line in:\n%s", out)
	}
	if !strings.Contains(out, "broken here") {
		t.Fatalf("missing source line in:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~~") {
		t.Fatalf("missing underline for 6-byte span in:\n%s", out)
	}
	// context=1 shows the preceding line too
	if !strings.Contains(out, "3 | func main() {") {
		t.Fatalf("missing context line in:\n%s", out)
	}
}

func TestPrettyNoLocation(t *testing.T) {
	bag := diag.NewBag(4)
	bag.Add(diag.New(diag.SevWarning, diag.IdxLoadFailed, source.Span{}, "markup will not be enriched"))

	var b strings.Builder
	Pretty(&b, bag, source.NewFileSet(), PrettyOpts{})
	out := b.String()

	if !strings.Contains(out, "warning IDX2001: markup will not be enriched") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, " | ") {
		t.Fatalf("locationless diagnostic should have no context block:\n%s", out)
	}
}

func TestPrettyNotes(t *testing.T) {
	bag, fs, sp := fixtureBag(t)
	bag.Add(diag.New(diag.SevInfo, diag.ObsTimings, source.Span{}, "timings (render): total 1.00 ms").
		WithNote(sp, "render phase"))

	var b strings.Builder
	Pretty(&b, bag, fs, PrettyOpts{ShowNotes: true, PathMode: PathModeBasename})
	out := b.String()

	if !strings.Contains(out, "note: demo.go:4:2: render phase") {
		t.Fatalf("missing note line in:\n%s", out)
	}

	b.Reset()
	Pretty(&b, bag, fs, PrettyOpts{ShowNotes: false, PathMode: PathModeBasename})
	if strings.Contains(b.String(), "note:") {
		t.Fatalf("notes should be suppressed:\n%s", b.String())
	}
}

func TestPrettyTabAlignment(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("tabs.go", []byte("\tx := 1\n"))
	bag := diag.NewBag(2)
	bag.Add(diag.NewError(diag.LexIllegalToken, source.Span{File: id, Start: 1, End: 2}, "x"))

	var b strings.Builder
	Pretty(&b, bag, fs, PrettyOpts{})
	lines := strings.Split(b.String(), "\n")
	var srcLine, markLine string
	for i, line := range lines {
		if strings.Contains(line, "x := 1") {
			srcLine = line
			markLine = lines[i+1]
		}
	}
	if srcLine == "" {
		t.Fatalf("no source line printed:\n%s", b.String())
	}
	if strings.Index(markLine, "^") != strings.Index(srcLine, "x") {
		t.Fatalf("caret misaligned with tab expansion:\n%s\n%s", srcLine, markLine)
	}
}
