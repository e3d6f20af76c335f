package scan

import (
	"vitrine/internal/diag"
	"vitrine/internal/source"
)

// ReporterAdapter forwards scanner reports into a diag.Bag. Reports are
// deduplicated first: go/scanner can invoke its error handler more than once
// at the same offset while recovering from a malformed literal.
type ReporterAdapter struct {
	Bag *diag.Bag

	dedup *diag.DedupReporter
}

func (r *ReporterAdapter) Report(kind string, sp source.Span, msg string) {
	if r == nil || r.Bag == nil {
		return
	}
	if r.dedup == nil {
		r.dedup = diag.NewDedupReporter(diag.BagReporter{Bag: r.Bag})
	}
	code := diag.LexMalformedLiteral
	if kind == KindIllegalChar {
		code = diag.LexIllegalToken
	}
	r.dedup.Report(code, diag.SevError, sp, msg, nil)
}
