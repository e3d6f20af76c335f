package highlight

import (
	"bytes"
)

// spanParts carries everything writeSpan may emit for one token. Empty
// string means "absent" for every optional field.
type spanParts struct {
	Base       string // wrapper class, "" allowed in overlay mode
	Text       string // token body, written verbatim
	Title      string // tooltip, the only escaped field
	ExtraClass string // appended to Base verbatim, including any leading space
	ID         string
	Link       string
	DocURL     string
	SrcURL     string
	ExtraAttr  string // free-form attribute, appended verbatim last
}

// writeSpan emits one wrapper element. The attribute order is a wire
// contract: consumers diff rendered output structurally, so the order and
// quoting below must never change. Only Title content is escaped here;
// the token body passes through untouched.
func writeSpan(buf *bytes.Buffer, p spanParts) {
	buf.WriteString("<span class='")
	buf.WriteString(p.Base)
	buf.WriteString(p.ExtraClass)
	if p.Link != "" || p.DocURL != "" {
		buf.WriteString(" src_link")
	}
	buf.WriteByte('\'')
	if p.ID != "" {
		buf.WriteString(" id='")
		buf.WriteString(p.ID)
		buf.WriteByte('\'')
	}
	if p.Title != "" {
		buf.WriteString(" title='")
		writeEscaped(buf, p.Title)
		buf.WriteByte('\'')
	}
	if p.DocURL != "" {
		buf.WriteString(" doc_url='")
		buf.WriteString(p.DocURL)
		buf.WriteByte('\'')
	}
	if p.SrcURL != "" {
		buf.WriteString(" src_url='")
		buf.WriteString(p.SrcURL)
		buf.WriteByte('\'')
	}
	if p.Link != "" {
		buf.WriteString(" link='")
		buf.WriteString(p.Link)
		buf.WriteByte('\'')
	}
	if p.ExtraAttr != "" {
		buf.WriteByte(' ')
		buf.WriteString(p.ExtraAttr)
	}
	buf.WriteByte('>')
	buf.WriteString(p.Text)
	buf.WriteString("</span>")
}

// writeEscaped writes tooltip text with markup-significant bytes replaced.
// All escape targets are ASCII, so byte iteration is UTF-8 safe.
func writeEscaped(buf *bytes.Buffer, s string) {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '>':
			buf.WriteString("&gt;")
		case '<':
			buf.WriteString("&lt;")
		case '&':
			buf.WriteString("&amp;")
		case '\'':
			buf.WriteString("&#39;")
		case '"':
			buf.WriteString("&quot;")
		case '\n':
			buf.WriteString("<br>")
		default:
			buf.WriteByte(s[i])
		}
	}
}
