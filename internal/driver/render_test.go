package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vitrine/internal/diag"
)

func writeTempSource(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderFileBasic(t *testing.T) {
	path := writeTempSource(t, "main.go", "package main\n\nfunc main() {}\n")

	res, err := RenderFile(context.Background(), path, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if res.FromCache {
		t.Fatal("no cache configured, result cannot come from cache")
	}
	if len(res.Tokens) == 0 {
		t.Fatal("expected tokens")
	}
	if !strings.Contains(res.HTML, "<span class='kw'>package</span>") {
		t.Fatalf("keyword markup missing:\n%s", res.HTML)
	}
	if !strings.Contains(res.HTML, "<span class='ident'>main</span>") {
		t.Fatalf("identifier markup missing:\n%s", res.HTML)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestRenderFileMissing(t *testing.T) {
	_, err := RenderFile(context.Background(), filepath.Join(t.TempDir(), "absent.go"), RenderOptions{})
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestRenderFileWithIndex(t *testing.T) {
	src := "package main\n\nvar foo = 1\n"
	path := writeTempSource(t, "main.go", src)

	canon, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatal(err)
	}
	canon = filepath.ToSlash(canon)

	// foo sits on line 3 at byte columns 4..7
	index := fmt.Sprintf(`{
		"schema": 1,
		"symbols": [{
			"id": 7,
			"name": "foo",
			"kind": "var",
			"def": {"file": %q, "line_start": 2, "col_start": 4, "line_end": 2, "col_end": 7},
			"type": "int"
		}],
		"refs": []
	}`, canon)
	indexPath := filepath.Join(t.TempDir(), "index.json")
	if err := os.WriteFile(indexPath, []byte(index), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := RenderFile(context.Background(), path, RenderOptions{IndexPath: indexPath})
	if err != nil {
		t.Fatal(err)
	}
	want := "<span class='ident class_id class_id_7 src_link' title='int' link='search:7'>foo</span>"
	if !strings.Contains(res.HTML, want) {
		t.Fatalf("enriched identifier missing, want %s in:\n%s", want, res.HTML)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
}

func TestRenderFileBadIndexDegrades(t *testing.T) {
	path := writeTempSource(t, "main.go", "package main\n")

	res, err := RenderFile(context.Background(), path, RenderOptions{
		IndexPath: filepath.Join(t.TempDir(), "missing.json"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.HTML == "" {
		t.Fatal("render should degrade to unenriched markup")
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.IdxLoadFailed && d.Severity == diag.SevWarning {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an IdxLoadFailed warning, got %v", res.Bag.Items())
	}
}

func TestRenderFileCache(t *testing.T) {
	path := writeTempSource(t, "main.go", "package main\n\nfunc main() {}\n")
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := RenderOptions{Cache: cache}

	first, err := RenderFile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.FromCache {
		t.Fatal("first render cannot hit the cache")
	}

	second, err := RenderFile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.FromCache {
		t.Fatal("second render should hit the cache")
	}
	if second.HTML != first.HTML {
		t.Fatalf("cached markup differs:\nfirst:  %s\nsecond: %s", first.HTML, second.HTML)
	}
}

func TestRenderFileCacheInvalidatedByContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	if err := os.WriteFile(path, []byte("package main\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	opts := RenderOptions{Cache: cache}

	if _, err := RenderFile(context.Background(), path, opts); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("package other\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := RenderFile(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.FromCache {
		t.Fatal("changed content must miss the cache")
	}
	if !strings.Contains(res.HTML, "other") {
		t.Fatalf("stale markup returned:\n%s", res.HTML)
	}
}

func TestRenderFileTimings(t *testing.T) {
	path := writeTempSource(t, "main.go", "package main\n")

	res, err := RenderFile(context.Background(), path, RenderOptions{Timings: true})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ObsTimings {
			found = true
			if len(d.Notes) != 1 || !strings.Contains(d.Notes[0].Msg, "\"phases\"") {
				t.Fatalf("timing diagnostic should carry a JSON note, got %+v", d.Notes)
			}
		}
	}
	if !found {
		t.Fatal("expected an ObsTimings diagnostic")
	}
}

func TestRenderFileScanDiagnostics(t *testing.T) {
	path := writeTempSource(t, "bad.go", "package main\n\nvar x = @\n")

	res, err := RenderFile(context.Background(), path, RenderOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if !res.Bag.HasErrors() {
		t.Fatal("expected scanner diagnostics for the illegal character")
	}
	if !strings.Contains(res.HTML, "@") {
		t.Fatalf("offending character must stay in the output:\n%s", res.HTML)
	}
}
