// Package scan turns Go source into classified highlight tokens.
//
// Tokens partition the file: concatenating the Text of every token reproduces
// the source bytes exactly. Whitespace between lexical tokens is carried by
// ClassNone filler tokens, and automatically inserted semicolons are dropped
// because they occupy no source bytes.
//
// Input must use LF line endings. source.FileSet.Load normalizes CRLF and
// strips the BOM before the scanner sees the content; callers handing bytes
// straight to Tokens must do the same.
package scan

import (
	"go/scanner"
	gotoken "go/token"
	"strings"
	"unicode/utf8"

	"vitrine/internal/source"
	"vitrine/internal/token"
)

// Reporter is a thin interface so the scanner does not depend on diag.
// The scanner only calls it; formatting happens in outer layers.
type Reporter interface {
	Report(kind string, span source.Span, msg string)
}

// Report kinds passed to Reporter.
const (
	KindIllegalChar      = "illegal_char"
	KindMalformedLiteral = "malformed_literal"
)

type Options struct {
	Reporter Reporter // may be nil, errors are then ignored (scanning continues)
}

// Tokens scans the whole file and returns its classified tokens.
func Tokens(file *source.File, opts Options) []token.Token {
	content := file.Content
	if len(content) == 0 {
		return nil
	}

	fset := gotoken.NewFileSet()
	gf := fset.AddFile(file.Path, fset.Base(), len(content))

	report := func(kind string, sp source.Span, msg string) {
		if opts.Reporter != nil {
			opts.Reporter.Report(kind, sp, msg)
		}
	}
	eh := func(pos gotoken.Position, msg string) {
		off, err := toUint32(pos.Offset)
		if err != nil {
			return
		}
		end := off
		if int(off) < len(content) {
			_, size := utf8.DecodeRune(content[off:])
			endOff, err := toUint32(int(off) + size)
			if err != nil {
				return
			}
			end = endOff
		}
		kind := KindMalformedLiteral
		if strings.HasPrefix(msg, "illegal character") {
			kind = KindIllegalChar
		}
		report(kind, source.Span{File: file.ID, Start: off, End: end}, msg)
	}

	var s scanner.Scanner
	s.Init(gf, content, eh, scanner.ScanComments)

	var toks []token.Token
	prevEnd := 0
	for {
		pos, tok, lit := s.Scan()
		if tok == gotoken.EOF {
			break
		}
		if tok == gotoken.SEMICOLON && lit == "\n" {
			// inserted semicolon, no source bytes behind it
			continue
		}

		off := gf.Offset(pos)
		class, text := classify(tok, lit, content, off)

		if off > prevEnd {
			toks = append(toks, gapToken(file.ID, content, prevEnd, off))
		}
		toks = append(toks, token.Token{
			Class: class,
			Span:  spanAt(file.ID, off, off+len(text)),
			Text:  text,
		})
		prevEnd = off + len(text)
	}
	if prevEnd < len(content) {
		toks = append(toks, gapToken(file.ID, content, prevEnd, len(content)))
	}

	promoteDocComments(toks)
	return toks
}

func classify(tok gotoken.Token, lit string, content []byte, off int) (token.Class, string) {
	switch {
	case tok == gotoken.COMMENT:
		return token.ClassComment, lit
	case tok == gotoken.IDENT:
		return classifyIdent(lit), lit
	case tok == gotoken.INT, tok == gotoken.FLOAT, tok == gotoken.IMAG:
		return token.ClassNumber, lit
	case tok == gotoken.CHAR, tok == gotoken.STRING:
		return token.ClassString, lit
	case tok == gotoken.ILLEGAL:
		// take the offending bytes straight from the source: the scanner
		// reports invalid UTF-8 as U+FFFD, which has a different width
		_, size := utf8.DecodeRune(content[off:])
		return token.ClassNone, string(content[off : off+size])
	case tok.IsKeyword():
		return token.ClassKeyword, lit
	case tok.IsOperator():
		text := lit
		if text == "" {
			text = tok.String()
		}
		return token.ClassOp, text
	}
	return token.ClassNone, lit
}

func gapToken(id source.FileID, content []byte, start, end int) token.Token {
	return token.Token{
		Class: token.ClassNone,
		Span:  spanAt(id, start, end),
		Text:  string(content[start:end]),
	}
}

func spanAt(id source.FileID, start, end int) source.Span {
	s, err := toUint32(start)
	if err != nil {
		return source.Span{}
	}
	e, err := toUint32(end)
	if err != nil {
		return source.Span{}
	}
	return source.Span{File: id, Start: s, End: e}
}
