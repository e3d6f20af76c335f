package token

import (
	"vitrine/internal/source"
)

// Token represents a single source token with its render class and location.
type Token struct {
	Class Class
	Span  source.Span
	Text  string
}

// HasSpan reports whether the token carries usable location metadata.
func (t Token) HasSpan() bool {
	return !t.Span.Empty()
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Class == ClassIdent }

// IsLiteral reports whether the token is a numeric, boolean, or string literal.
func (t Token) IsLiteral() bool {
	switch t.Class {
	case ClassNumber, ClassString, ClassBool:
		return true
	default:
		return false
	}
}

// IsGlobOp reports whether the token is the dereference/wildcard operator
// the renderer special-cases for type tooltips.
func (t Token) IsGlobOp() bool {
	return t.Class == ClassOp && t.Text == "*"
}
