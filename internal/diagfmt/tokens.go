package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"vitrine/internal/source"
	"vitrine/internal/token"
)

// TokenOutput is one token in JSON token dumps.
type TokenOutput struct {
	Class     string `json:"class"`
	Text      string `json:"text"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	Line      uint32 `json:"line,omitempty"`
	Col       uint32 `json:"col,omitempty"`
}

// FormatTokensPretty dumps tokens in a human-readable form, one per line.
// Gap tokens (ClassNone) are listed too so the dump accounts for every
// source byte.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%4d: %-10s %q", i+1, tok.Class.String(), tok.Text); err != nil {
			return err
		}
		if tok.HasSpan() && fs != nil {
			start, end := fs.Resolve(tok.Span)
			if _, err := fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON dumps tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		entry := TokenOutput{
			Class:     tok.Class.String(),
			Text:      tok.Text,
			StartByte: tok.Span.Start,
			EndByte:   tok.Span.End,
		}
		if tok.HasSpan() && fs != nil {
			start, _ := fs.Resolve(tok.Span)
			entry.Line = start.Line
			entry.Col = start.Col
		}
		output = append(output, entry)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
