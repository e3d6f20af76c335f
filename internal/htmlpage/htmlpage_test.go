package htmlpage

import (
	"strings"
	"testing"
)

func TestPage(t *testing.T) {
	body := "<span class='kw'>func</span> main"
	page := Page("main.go", body)

	if !strings.HasPrefix(page, "<!DOCTYPE html>\n") {
		t.Fatalf("page should start with a doctype, got %q", page[:40])
	}
	if !strings.Contains(page, "<title>main.go</title>") {
		t.Fatal("title missing")
	}
	if !strings.Contains(page, "<pre class='vitrine'>"+body+"</pre>") {
		t.Fatal("body must be inserted verbatim")
	}
	if !strings.Contains(page, CSS()) {
		t.Fatal("stylesheet missing")
	}
}

func TestPageEscapesTitle(t *testing.T) {
	page := Page("a<b>.go", "")
	if strings.Contains(page, "<title>a<b>.go</title>") {
		t.Fatal("title must be escaped")
	}
	if !strings.Contains(page, "&lt;b&gt;") {
		t.Fatalf("expected escaped title, got %q", page)
	}
}

func TestCSSNotEmpty(t *testing.T) {
	css := CSS()
	if css == "" {
		t.Fatal("embedded stylesheet is empty")
	}
	for _, class := range []string{".kw", ".string", ".comment", ".doc_comment", ".src_link", ".glob"} {
		if !strings.Contains(css, class) {
			t.Fatalf("stylesheet lacks %s", class)
		}
	}
}
