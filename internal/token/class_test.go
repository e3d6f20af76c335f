package token

import (
	"testing"

	"vitrine/internal/source"
)

func TestClassCSSNames(t *testing.T) {
	tests := []struct {
		name     string
		class    Class
		expected string
	}{
		{name: "none has no wrapper class", class: ClassNone, expected: ""},
		{name: "comment", class: ClassComment, expected: "comment"},
		{name: "doc comment", class: ClassDocComment, expected: "doc_comment"},
		{name: "keyword", class: ClassKeyword, expected: "kw"},
		{name: "ident", class: ClassIdent, expected: "ident"},
		{name: "builtin", class: ClassBuiltin, expected: "builtin"},
		{name: "op", class: ClassOp, expected: "op"},
		{name: "number", class: ClassNumber, expected: "number"},
		{name: "string", class: ClassString, expected: "string"},
		{name: "bool", class: ClassBool, expected: "bool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.class.CSSClass(); got != tt.expected {
				t.Errorf("CSSClass() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTokenHasSpan(t *testing.T) {
	withSpan := Token{Class: ClassIdent, Span: source.Span{Start: 3, End: 6}, Text: "foo"}
	if !withSpan.HasSpan() {
		t.Error("expected token with span to report HasSpan")
	}

	noSpan := Token{Class: ClassIdent, Text: "foo"}
	if noSpan.HasSpan() {
		t.Error("expected zero-span token to report no span")
	}
}

func TestTokenIsGlobOp(t *testing.T) {
	tests := []struct {
		name     string
		tok      Token
		expected bool
	}{
		{name: "star op", tok: Token{Class: ClassOp, Text: "*"}, expected: true},
		{name: "other op", tok: Token{Class: ClassOp, Text: "+"}, expected: false},
		{name: "star ident", tok: Token{Class: ClassIdent, Text: "*"}, expected: false},
		{name: "star assign", tok: Token{Class: ClassOp, Text: "*="}, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.IsGlobOp(); got != tt.expected {
				t.Errorf("IsGlobOp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTokenIsLiteral(t *testing.T) {
	if !(Token{Class: ClassNumber}).IsLiteral() {
		t.Error("number should be a literal")
	}
	if !(Token{Class: ClassBool}).IsLiteral() {
		t.Error("bool should be a literal")
	}
	if (Token{Class: ClassKeyword}).IsLiteral() {
		t.Error("keyword is not a literal")
	}
}
