package highlight

import (
	"fmt"
	"strconv"
	"strings"

	"vitrine/internal/analysis"
)

// enrichment is the per-identifier result of querying the analysis host.
// Every field may independently be absent.
type enrichment struct {
	title      string
	extraClass string
	link       string
	docURL     string
	srcURL     string
}

// enrich runs the full query policy for one identifier span. Each query
// fails on its own; a failed query only blanks its field. Backend errors
// and missing data are treated alike.
func (r *Renderer) enrich(span analysis.Span) enrichment {
	var e enrichment

	typ, err := r.host.ShowType(span)
	if err != nil {
		typ = ""
	}
	docs, err := r.host.Docs(span)
	if err != nil {
		docs = ""
	}
	// empty strings never render an empty tooltip
	switch {
	case typ != "" && docs != "":
		e.title = typ + "\n\n" + docs
	case typ != "":
		e.title = typ
	case docs != "":
		e.title = docs
	}

	e.link = r.defLink(span)
	if u, err := r.host.DocURL(span); err == nil {
		e.docURL = u
	}
	if u, err := r.host.SrcURL(span); err == nil {
		e.srcURL = u
	}

	if id, err := r.host.ID(span); err == nil {
		// keep occurrences navigable even without a resolved definition
		if e.link == "" {
			e.link = "search:" + strconv.FormatUint(id, 10)
		}
		e.extraClass = fmt.Sprintf(" class_id class_id_%d", id)
	}

	return e
}

// defLink resolves the definition target for a span and encodes it as
// path:line:col:line:col with 1-based coordinates. A token that is its
// own definition gets no link. Definitions inside the project root are
// shortened to root-relative form.
func (r *Renderer) defLink(span analysis.Span) string {
	def, err := r.host.GotoDef(span)
	if err != nil {
		return ""
	}
	if def == span {
		return ""
	}

	name := def.File
	if rel, ok := stripRoot(def.File, r.projectRoot); ok {
		name = rel
	}
	return fmt.Sprintf("%s:%d:%d:%d:%d",
		name,
		def.LineStart+1,
		def.ColStart+1,
		def.LineEnd+1,
		def.ColEnd+1)
}

// stripRoot removes the project root prefix from a canonical path. Unlike
// filepath.Rel it never climbs upward; paths outside the root stay as
// they are.
func stripRoot(path, root string) (string, bool) {
	if root == "" {
		return "", false
	}
	root = strings.TrimSuffix(root, "/")
	if rest, ok := strings.CutPrefix(path, root+"/"); ok && rest != "" {
		return rest, true
	}
	return "", false
}
