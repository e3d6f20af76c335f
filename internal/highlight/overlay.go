package highlight

import (
	"bytes"

	"vitrine/internal/token"
)

// OverlayRange is one caller-registered styling override, matched against
// token byte spans by exact start/end equality, never by overlap.
type OverlayRange struct {
	Start uint32
	End   uint32
	Class string // appended to the base class verbatim; include a leading space
	ID    string
}

// OverlayRenderer renders a token stream without semantic enrichment,
// stamping registered class/id pairs onto tokens whose byte range exactly
// matches. Search-hit highlighting uses this mode.
type OverlayRenderer struct {
	buf      bytes.Buffer
	overlays []OverlayRange
}

// NewOverlay creates an OverlayRenderer for a single render pass.
func NewOverlay() *OverlayRenderer {
	return &OverlayRenderer{}
}

// RegisterOverlay adds a range before rendering. Ranges are scanned in
// registration order; the first exact match wins.
func (o *OverlayRenderer) RegisterOverlay(start, end uint32, class, id string) {
	o.overlays = append(o.overlays, OverlayRange{Start: start, End: end, Class: class, ID: id})
}

// Render consumes the token stream in order and returns the markup
// document. Every token is wrapped, plain text included.
func (o *OverlayRenderer) Render(tokens []token.Token) string {
	for _, tok := range tokens {
		parts := spanParts{
			Base: tok.Class.CSSClass(),
			Text: tok.Text,
		}
		if tok.HasSpan() {
			for _, ov := range o.overlays {
				if ov.Start == tok.Span.Start && ov.End == tok.Span.End {
					parts.ExtraClass = ov.Class
					parts.ID = ov.ID
					break
				}
			}
		}
		writeSpan(&o.buf, parts)
	}
	return o.buf.String()
}
