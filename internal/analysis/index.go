package analysis

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"

	"vitrine/internal/source"
)

// IndexSchemaVersion is the JSON index format this build reads.
const IndexSchemaVersion = 1

type indexSpan struct {
	File      string `json:"file"`
	LineStart uint32 `json:"line_start"`
	ColStart  uint32 `json:"col_start"`
	LineEnd   uint32 `json:"line_end"`
	ColEnd    uint32 `json:"col_end"`
}

func (s indexSpan) span() Span {
	return Span{
		File:      s.File,
		LineStart: s.LineStart,
		ColStart:  s.ColStart,
		LineEnd:   s.LineEnd,
		ColEnd:    s.ColEnd,
	}
}

type indexSymbol struct {
	ID     uint64    `json:"id"`
	Name   string    `json:"name"`
	Kind   string    `json:"kind,omitempty"`
	Def    indexSpan `json:"def"`
	Type   string    `json:"type,omitempty"`
	Docs   string    `json:"docs,omitempty"`
	DocURL string    `json:"doc_url,omitempty"`
	SrcURL string    `json:"src_url,omitempty"`
}

type indexRef struct {
	indexSpan
	Sym uint64 `json:"sym"`
}

type indexFile struct {
	Schema  int           `json:"schema"`
	Root    string        `json:"root,omitempty"`
	Symbols []indexSymbol `json:"symbols"`
	Refs    []indexRef    `json:"refs"`
}

type symbol struct {
	id     uint64
	name   string
	kind   source.StringID
	def    Span
	typ    source.StringID
	docs   string
	docURL string
	srcURL string
}

// IndexHost serves Host queries from a prebuilt JSON index. Symbol kind
// and type strings are interned since indexers repeat them heavily.
// All state is immutable after load, so concurrent readers need no locks.
type IndexHost struct {
	path   string
	root   string
	hash   [sha256.Size]byte
	syms   map[uint64]*symbol
	bySpan map[Span]uint64
	refs   int
	strs   *source.Interner
}

// IndexStats summarizes a loaded index.
type IndexStats struct {
	Symbols int
	Refs    int
	ByKind  map[string]int
}

// LoadIndex reads and parses a JSON index file.
func LoadIndex(path string) (*IndexHost, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("analysis: read index: %w", err)
	}
	host, err := ParseIndex(data)
	if err != nil {
		return nil, fmt.Errorf("analysis: parse index %s: %w", path, err)
	}
	host.path = path
	return host, nil
}

// ParseIndex builds an IndexHost from raw index JSON.
func ParseIndex(data []byte) (*IndexHost, error) {
	var file indexFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if file.Schema != IndexSchemaVersion {
		return nil, fmt.Errorf("unsupported schema %d, want %d", file.Schema, IndexSchemaVersion)
	}

	host := &IndexHost{
		root:   file.Root,
		hash:   sha256.Sum256(data),
		syms:   make(map[uint64]*symbol, len(file.Symbols)),
		bySpan: make(map[Span]uint64, len(file.Refs)+len(file.Symbols)),
		strs:   source.NewInterner(),
	}

	for _, rec := range file.Symbols {
		if _, dup := host.syms[rec.ID]; dup {
			return nil, fmt.Errorf("duplicate symbol id %d (%s)", rec.ID, rec.Name)
		}
		sym := &symbol{
			id:     rec.ID,
			name:   rec.Name,
			kind:   host.strs.Intern(rec.Kind),
			def:    rec.Def.span(),
			typ:    host.strs.Intern(rec.Type),
			docs:   rec.Docs,
			docURL: rec.DocURL,
			srcURL: rec.SrcURL,
		}
		host.syms[rec.ID] = sym
		// a definition site is a reference to itself
		if !sym.def.IsZero() {
			host.bySpan[sym.def] = rec.ID
		}
	}

	for _, ref := range file.Refs {
		if _, ok := host.syms[ref.Sym]; !ok {
			return nil, fmt.Errorf("reference at %s points to unknown symbol %d", ref.span(), ref.Sym)
		}
		host.bySpan[ref.span()] = ref.Sym
		host.refs++
	}

	return host, nil
}

// Path returns the index file path, or "" for in-memory indexes.
func (h *IndexHost) Path() string { return h.path }

// Root returns the project root recorded by the indexer, if any.
func (h *IndexHost) Root() string { return h.root }

// Hash returns the digest of the raw index bytes. Useful as a cache key
// component: two hosts answer identically when their hashes match.
func (h *IndexHost) Hash() [sha256.Size]byte { return h.hash }

// Stats counts symbols and references per symbol kind.
func (h *IndexHost) Stats() IndexStats {
	stats := IndexStats{
		Symbols: len(h.syms),
		Refs:    h.refs,
		ByKind:  make(map[string]int),
	}
	for _, sym := range h.syms {
		stats.ByKind[h.strs.MustLookup(sym.kind)]++
	}
	return stats
}

func (h *IndexHost) lookup(span Span) (*symbol, bool) {
	id, ok := h.bySpan[span]
	if !ok {
		return nil, false
	}
	sym, ok := h.syms[id]
	return sym, ok
}

// GotoDef implements Host.
func (h *IndexHost) GotoDef(span Span) (Span, error) {
	sym, ok := h.lookup(span)
	if !ok || sym.def.IsZero() {
		return Span{}, ErrNoData
	}
	return sym.def, nil
}

// ShowType implements Host.
func (h *IndexHost) ShowType(span Span) (string, error) {
	sym, ok := h.lookup(span)
	if !ok {
		return "", ErrNoData
	}
	typ := h.strs.MustLookup(sym.typ)
	if typ == "" {
		return "", ErrNoData
	}
	return typ, nil
}

// Docs implements Host.
func (h *IndexHost) Docs(span Span) (string, error) {
	sym, ok := h.lookup(span)
	if !ok || sym.docs == "" {
		return "", ErrNoData
	}
	return sym.docs, nil
}

// DocURL implements Host.
func (h *IndexHost) DocURL(span Span) (string, error) {
	sym, ok := h.lookup(span)
	if !ok || sym.docURL == "" {
		return "", ErrNoData
	}
	return sym.docURL, nil
}

// SrcURL implements Host.
func (h *IndexHost) SrcURL(span Span) (string, error) {
	sym, ok := h.lookup(span)
	if !ok || sym.srcURL == "" {
		return "", ErrNoData
	}
	return sym.srcURL, nil
}

// ID implements Host.
func (h *IndexHost) ID(span Span) (uint64, error) {
	sym, ok := h.lookup(span)
	if !ok {
		return 0, ErrNoData
	}
	return sym.id, nil
}
