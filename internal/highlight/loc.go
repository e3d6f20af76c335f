package highlight

import (
	"path/filepath"

	"vitrine/internal/analysis"
)

// Loc is a raw lexer coordinate: the file name as the lexer saw it, a
// 1-based line, and a 0-based byte column.
type Loc struct {
	Name string
	Line uint32
	Col  uint32
}

// canonicalPath is the default canonicalizer: absolute and
// symlink-resolved, in slash form.
func canonicalPath(name string) (string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(resolved), nil
}

// canonicalFor resolves a raw file name through the per-pass path cache.
// Canonicalization failure falls back to the raw name; the fallback is
// cached too, so the filesystem is consulted at most once per name.
func (r *Renderer) canonicalFor(name string) string {
	if cached, ok := r.pathCache[name]; ok {
		return cached
	}
	canon, err := r.canonicalize(name)
	if err != nil {
		canon = name
	}
	r.pathCache[name] = canon
	return canon
}

// spanFromLocs converts a token's lexer coordinates into an analysis span:
// canonical file path, 0-based lines, byte columns carried through.
func (r *Renderer) spanFromLocs(lo, hi Loc) analysis.Span {
	return analysis.Span{
		File:      r.canonicalFor(lo.Name),
		LineStart: lo.Line - 1,
		ColStart:  lo.Col,
		LineEnd:   hi.Line - 1,
		ColEnd:    hi.Col,
	}
}
