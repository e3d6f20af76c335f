package scan

import (
	"strings"

	"vitrine/internal/token"
)

// Predeclared identifiers from the universe scope. Shadowing is invisible to
// a lexical pass, so these always render as builtins.
var builtinIdents = map[string]bool{
	"any": true, "bool": true, "byte": true, "comparable": true,
	"complex64": true, "complex128": true, "error": true,
	"float32": true, "float64": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"rune": true, "string": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"uintptr": true,
	"append": true, "cap": true, "clear": true, "close": true, "complex": true,
	"copy": true, "delete": true, "imag": true, "len": true, "make": true,
	"max": true, "min": true, "new": true, "panic": true, "print": true,
	"println": true, "real": true, "recover": true,
	"iota": true, "nil": true,
}

func classifyIdent(lit string) token.Class {
	switch {
	case lit == "true" || lit == "false":
		return token.ClassBool
	case builtinIdents[lit]:
		return token.ClassBuiltin
	}
	return token.ClassIdent
}

// Declaration keywords whose preceding comment group is a doc comment.
var declKeywords = map[string]bool{
	"package": true,
	"const":   true,
	"func":    true,
	"type":    true,
	"var":     true,
}

// promoteDocComments upgrades comments to ClassDocComment when they form a
// group directly above a declaration keyword. A comment joins the group when
// it sits on its own line and no blank line separates it from what follows.
func promoteDocComments(toks []token.Token) {
	for i := range toks {
		if toks[i].Class != token.ClassKeyword || !declKeywords[toks[i].Text] {
			continue
		}
		newlines := 0
		for j := i - 1; j >= 0; j-- {
			t := &toks[j]
			if t.Class == token.ClassNone {
				newlines += strings.Count(t.Text, "\n")
				continue
			}
			if t.Class != token.ClassComment || newlines > 1 || !startsOwnLine(toks, j) {
				break
			}
			t.Class = token.ClassDocComment
			newlines = 0
		}
	}
}

func startsOwnLine(toks []token.Token, j int) bool {
	if j == 0 {
		return true
	}
	prev := &toks[j-1]
	return prev.Class == token.ClassNone && strings.Contains(prev.Text, "\n")
}
