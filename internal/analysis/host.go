// Package analysis defines the semantic backend surface the renderer
// queries: spans in canonical coordinates and a capability interface for
// per-span metadata. The standard implementation is IndexHost, backed by a
// JSON index produced by an external indexer.
package analysis

import (
	"errors"
	"fmt"
)

// ErrNoData is returned when the backend holds no answer for a span.
var ErrNoData = errors.New("analysis: no data for span")

// Span locates a token or a definition in canonical coordinates: an
// absolute, symlink-resolved file path and 0-based line/byte-column
// bounds. Spans are compared by full structural equality, so they are
// usable as map keys.
type Span struct {
	File      string
	LineStart uint32
	ColStart  uint32
	LineEnd   uint32
	ColEnd    uint32
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", s.File, s.LineStart, s.ColStart, s.LineEnd, s.ColEnd)
}

// IsZero reports whether the span is the zero value.
func (s Span) IsZero() bool {
	return s == Span{}
}

// Host is the set of queries the renderer may issue for one span. Every
// method returns ErrNoData (or any other error) when it cannot answer;
// the renderer treats every failure as "omit that field". Implementations
// must be safe for concurrent readers: parallel render passes share one
// Host.
type Host interface {
	// GotoDef returns the definition span for the symbol at span.
	GotoDef(span Span) (Span, error)
	// ShowType returns a human-readable type signature.
	ShowType(span Span) (string, error)
	// Docs returns documentation text.
	Docs(span Span) (string, error)
	// DocURL returns an external documentation URL.
	DocURL(span Span) (string, error)
	// SrcURL returns an external source URL.
	SrcURL(span Span) (string, error)
	// ID returns a stable symbol identifier grouping all occurrences.
	ID(span Span) (uint64, error)
}

// NullHost answers every query with ErrNoData. Rendering against it
// produces plain styled markup without cross-references.
type NullHost struct{}

func (NullHost) GotoDef(Span) (Span, error)    { return Span{}, ErrNoData }
func (NullHost) ShowType(Span) (string, error) { return "", ErrNoData }
func (NullHost) Docs(Span) (string, error)     { return "", ErrNoData }
func (NullHost) DocURL(Span) (string, error)   { return "", ErrNoData }
func (NullHost) SrcURL(Span) (string, error)   { return "", ErrNoData }
func (NullHost) ID(Span) (uint64, error)       { return 0, ErrNoData }
