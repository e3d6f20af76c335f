package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"vitrine/internal/diag"
	"vitrine/internal/source"
)

// Pretty formats diagnostics in a human-readable way. It walks bag.Items()
// (callers are expected to bag.Sort() first) and prints, per diagnostic:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// followed by the source line with a ^~~~ underline over the span, plus any
// Notes in the same shape. Diagnostics with no location print the header only.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if w == nil || bag == nil {
		return
	}
	for _, d := range bag.Items() {
		prettyOne(w, d, fs, opts)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	sev := severityText(d.Severity)
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}

	if fs == nil || d.Primary == (source.Span{}) {
		fmt.Fprintf(w, "%s %s: %s\n", sev, d.Code.ID(), d.Message)
	} else {
		file := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		path := file.FormatPath(opts.PathMode.formatMode(), fs.BaseDir())
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, d.Code.ID(), d.Message)
		writeContext(w, fs, d.Primary, d.Severity, opts)
	}

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		if fs == nil || note.Span == (source.Span{}) {
			fmt.Fprintf(w, "  note: %s\n", note.Msg)
			continue
		}
		file := fs.Get(note.Span.File)
		start, _ := fs.Resolve(note.Span)
		path := file.FormatPath(opts.PathMode.formatMode(), fs.BaseDir())
		fmt.Fprintf(w, "  note: %s:%d:%d: %s\n", path, start.Line, start.Col, note.Msg)
	}
}

// writeContext prints the lines around the span with a gutter and an
// underline beneath the first spanned line.
func writeContext(w io.Writer, fs *source.FileSet, span source.Span, sev diag.Severity, opts PrettyOpts) {
	file := fs.Get(span.File)
	start, end := fs.Resolve(span)

	ctx := uint32(0)
	if opts.Context > 0 {
		ctx = uint32(opts.Context)
	}
	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx

	gutter := len(fmt.Sprintf("%d", last))
	for line := first; line <= last; line++ {
		text := file.GetLine(line)
		if text == "" && line > start.Line {
			break
		}
		fmt.Fprintf(w, "%*d | %s\n", gutter, line, expandTabs(text))
		if line == start.Line {
			writeUnderline(w, gutter, text, start, end, sev, opts)
		}
	}
}

func writeUnderline(w io.Writer, gutter int, lineText string, start, end source.LineCol, sev diag.Severity, opts PrettyOpts) {
	// columns are 1-based byte columns into the raw line
	from := int(start.Col) - 1
	if from < 0 {
		from = 0
	}
	if from > len(lineText) {
		from = len(lineText)
	}
	to := len(lineText)
	if end.Line == start.Line && int(end.Col)-1 < to {
		to = int(end.Col) - 1
	}
	width := to - from
	if width < 1 {
		width = 1
	}

	pad := visualWidth(lineText[:from])
	marks := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marks = severityColor(sev).Sprint(marks)
	}
	fmt.Fprintf(w, "%*s | %s%s\n", gutter, "", strings.Repeat(" ", pad), marks)
}

// expandTabs keeps the underline aligned with the printed line.
func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func visualWidth(prefix string) int {
	return len(prefix) + 3*strings.Count(prefix, "\t")
}

func severityText(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "error"
	case diag.SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
