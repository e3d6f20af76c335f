// Package highlight turns a classified token stream into cross-referenced
// HTML spans. One Renderer handles one pass over one file: it owns the
// output buffer and a per-pass path cache, and shares nothing with other
// passes except the analysis host, which must tolerate concurrent readers.
//
// Degradable failures (missing metadata, backend errors, path
// canonicalization) never abort a pass; they only omit fields. The only
// fatal condition is the output buffer failing to grow, which surfaces as
// a runtime panic from bytes.Buffer.
package highlight

import (
	"bytes"
	"fmt"

	"vitrine/internal/analysis"
	"vitrine/internal/source"
	"vitrine/internal/token"
)

// Options configures a Renderer.
type Options struct {
	// Host answers semantic queries. Nil means no enrichment.
	Host analysis.Host
	// ProjectRoot shortens definition links to root-relative form. It
	// must be in the same canonical form the host uses for file paths.
	ProjectRoot string
	// Canonicalize overrides the path canonicalizer (absolute plus
	// symlink resolution by default). Tests instrument it.
	Canonicalize func(string) (string, error)
}

// Renderer renders one file's token stream with semantic enrichment.
type Renderer struct {
	host         analysis.Host
	projectRoot  string
	canonicalize func(string) (string, error)
	pathCache    map[string]string
	buf          bytes.Buffer
}

// New creates a Renderer for a single render pass.
func New(opts Options) *Renderer {
	host := opts.Host
	if host == nil {
		host = analysis.NullHost{}
	}
	canon := opts.Canonicalize
	if canon == nil {
		canon = canonicalPath
	}
	return &Renderer{
		host:         host,
		projectRoot:  opts.ProjectRoot,
		canonicalize: canon,
		pathCache:    make(map[string]string),
	}
}

// Render consumes the token stream in order and returns the markup
// document. Tokens must originate from the file identified by id; their
// concatenated text reproduces the source, so the output covers every
// byte of it.
func (r *Renderer) Render(fs *source.FileSet, id source.FileID, tokens []token.Token) string {
	file := fs.Get(id)
	for _, tok := range tokens {
		r.writeToken(fs, file, tok)
	}
	return r.buf.String()
}

func (r *Renderer) writeToken(fs *source.FileSet, file *source.File, tok token.Token) {
	switch {
	case tok.Class == token.ClassNone:
		// plain text flows through without a wrapper
		r.buf.WriteString(tok.Text)

	case tok.IsIdent() && tok.HasSpan():
		span, _ := r.tokenSpan(fs, file, tok)
		e := r.enrich(span)
		writeSpan(&r.buf, spanParts{
			Base:       tok.Class.CSSClass(),
			Text:       tok.Text,
			Title:      e.title,
			ExtraClass: e.extraClass,
			Link:       e.link,
			DocURL:     e.docURL,
			SrcURL:     e.srcURL,
		})

	case tok.IsGlobOp() && tok.HasSpan():
		r.writeGlob(fs, file, tok)

	default:
		writeSpan(&r.buf, spanParts{
			Base: tok.Class.CSSClass(),
			Text: tok.Text,
		})
	}
}

// writeGlob handles the dereference/wildcard operator: a type tooltip and
// a positional attribute so the viewer can resolve "what does this expand
// to", but deliberately no link.
func (r *Renderer) writeGlob(fs *source.FileSet, file *source.File, tok token.Token) {
	span, lo := r.tokenSpan(fs, file, tok)

	title := ""
	if typ, err := r.host.ShowType(span); err == nil {
		title = typ
	}
	location := fmt.Sprintf("location='%d:%d'", lo.Line, lo.Col+1)

	writeSpan(&r.buf, spanParts{
		Base:       tok.Class.CSSClass(),
		Text:       tok.Text,
		Title:      title,
		ExtraClass: " glob",
		ExtraAttr:  location,
	})
}

// tokenSpan reconstructs the analysis span for a token from its byte span,
// returning the low coordinate too for positional attributes.
func (r *Renderer) tokenSpan(fs *source.FileSet, file *source.File, tok token.Token) (analysis.Span, Loc) {
	startLC, endLC := fs.Resolve(tok.Span)
	lo := Loc{Name: file.Path, Line: startLC.Line, Col: startLC.Col - 1}
	hi := Loc{Name: file.Path, Line: endLC.Line, Col: endLC.Col - 1}
	return r.spanFromLocs(lo, hi), lo
}
