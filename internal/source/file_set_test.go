package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.go", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("expected first FileID to be 0, got %d", id1)
	}

	latestID, exists := fs.GetLatest("test.go")
	if !exists {
		t.Error("expected file to exist after Add")
	}
	if latestID != id1 {
		t.Errorf("expected latest ID %d, got %d", id1, latestID)
	}

	// same path, new content: a fresh FileID, index moves to it
	id2 := fs.Add("test.go", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("expected second FileID to be 1, got %d", id2)
	}

	latestID, exists = fs.GetLatest("test.go")
	if !exists {
		t.Error("expected file to exist after second Add")
	}
	if latestID != id2 {
		t.Errorf("expected latest ID %d, got %d", id2, latestID)
	}

	// the old version stays reachable by ID
	file1 := fs.Get(id1)
	if string(file1.Content) != "hello world" {
		t.Errorf("first file content = %q, want %q", string(file1.Content), "hello world")
	}

	file2 := fs.Get(id2)
	if string(file2.Content) != "hello universe" {
		t.Errorf("second file content = %q, want %q", string(file2.Content), "hello universe")
	}

	if file1.Path != "test.go" || file2.Path != "test.go" {
		t.Error("expected both versions to share the path")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()

	id := fs.AddVirtual("a.go", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Errorf("expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}

	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("expected LineIdx[%d] = %d, got %d", i, val, file.LineIdx[i])
		}
	}

	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
}

func TestResolveMultiLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("multi.go", []byte("package x\n\nvar y int\n"))

	// "y" sits at offset 15 on line 3
	span := Span{File: id, Start: 15, End: 16}
	start, end := fs.Resolve(span)

	if start != (LineCol{Line: 3, Col: 5}) {
		t.Errorf("start = %+v, want {3 5}", start)
	}
	if end != (LineCol{Line: 3, Col: 6}) {
		t.Errorf("end = %+v, want {3 6}", end)
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()

	// α is two bytes; columns count bytes, not runes
	content := []byte("α\n")
	id := fs.AddVirtual("test.go", content)

	span := Span{File: id, Start: 0, End: 1}
	start, end := fs.Resolve(span)

	expectedStart := LineCol{Line: 1, Col: 1}
	expectedEnd := LineCol{Line: 1, Col: 2}

	if start != expectedStart {
		t.Errorf("expected start %+v, got %+v", expectedStart, start)
	}

	if end != expectedEnd {
		t.Errorf("expected end %+v, got %+v", expectedEnd, end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("lines.go", []byte("first\nsecond\n\nlast"))
	file := fs.Get(id)

	tests := []struct {
		name     string
		lineNum  uint32
		expected string
	}{
		{name: "line zero", lineNum: 0, expected: ""},
		{name: "first", lineNum: 1, expected: "first"},
		{name: "second", lineNum: 2, expected: "second"},
		{name: "empty line", lineNum: 3, expected: ""},
		{name: "unterminated last", lineNum: 4, expected: "last"},
		{name: "out of range", lineNum: 5, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := file.GetLine(tt.lineNum); got != tt.expected {
				t.Errorf("GetLine(%d) = %q, want %q", tt.lineNum, got, tt.expected)
			}
		})
	}
}

func TestEdgeCases(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.AddVirtual("empty.go", []byte{})
	file1 := fs.Get(id1)
	if len(file1.LineIdx) != 0 {
		t.Errorf("expected empty LineIdx for empty file, got length %d", len(file1.LineIdx))
	}

	id2 := fs.AddVirtual("no_newlines.go", []byte("hello"))
	file2 := fs.Get(id2)
	if len(file2.LineIdx) != 0 {
		t.Errorf("expected empty LineIdx for file without newlines, got length %d", len(file2.LineIdx))
	}

	id3 := fs.AddVirtual("only_newline.go", []byte("\n"))
	file3 := fs.Get(id3)
	if len(file3.LineIdx) != 1 || file3.LineIdx[0] != 0 {
		t.Errorf("expected LineIdx [0] for file with only newline, got %v", file3.LineIdx)
	}
}

func TestLoad(t *testing.T) {
	fs := NewFileSet()
	path := filepath.Join(t.TempDir(), "testdata.go")
	if err := os.WriteFile(path, []byte("a\nb\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("file content = %q, want %q", string(file.Content), "a\nb\n")
	}
	if file.LineIdx[0] != 1 || file.LineIdx[1] != 3 {
		t.Errorf("LineIdx = %v, want [1 3]", file.LineIdx)
	}
}

func TestLoadBOM(t *testing.T) {
	fs := NewFileSet()
	path := filepath.Join(t.TempDir(), "testdata.go")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBFa\nb\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("file content = %q, want %q", string(file.Content), "a\nb\n")
	}
	if file.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag to be set")
	}
}

func TestLoadCRLF(t *testing.T) {
	fs := NewFileSet()
	path := filepath.Join(t.TempDir(), "testdata.go")
	if err := os.WriteFile(path, []byte("a\r\nb\r\n"), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	file := fs.Get(id)
	if string(file.Content) != "a\nb\n" {
		t.Errorf("file content = %q, want %q", string(file.Content), "a\nb\n")
	}
	if file.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag to be set")
	}
}
