package token

// Class is the syntactic category of a token as seen by the renderer.
type Class uint8

const (
	// ClassNone marks plain text (whitespace, gaps): emitted raw, never wrapped.
	ClassNone Class = iota
	// ClassComment represents an ordinary comment.
	ClassComment
	// ClassDocComment represents a comment attached to a declaration.
	ClassDocComment
	// ClassKeyword represents a language keyword.
	ClassKeyword
	// ClassIdent represents an identifier; the only class that gets
	// semantic enrichment.
	ClassIdent
	// ClassBuiltin represents a predeclared identifier (len, error, ...).
	ClassBuiltin
	// ClassOp represents an operator or punctuation.
	ClassOp
	// ClassNumber represents a numeric literal.
	ClassNumber
	// ClassString represents a string or rune literal.
	ClassString
	// ClassBool represents the literals true and false.
	ClassBool
)

// CSSClass returns the stable wrapper class name emitted into markup.
// ClassNone has no wrapper and returns "".
func (c Class) CSSClass() string {
	switch c {
	case ClassNone:
		return ""
	case ClassComment:
		return "comment"
	case ClassDocComment:
		return "doc_comment"
	case ClassKeyword:
		return "kw"
	case ClassIdent:
		return "ident"
	case ClassBuiltin:
		return "builtin"
	case ClassOp:
		return "op"
	case ClassNumber:
		return "number"
	case ClassString:
		return "string"
	case ClassBool:
		return "bool"
	default:
		return ""
	}
}

func (c Class) String() string {
	switch c {
	case ClassNone:
		return "None"
	case ClassComment:
		return "Comment"
	case ClassDocComment:
		return "DocComment"
	case ClassKeyword:
		return "Keyword"
	case ClassIdent:
		return "Ident"
	case ClassBuiltin:
		return "Builtin"
	case ClassOp:
		return "Op"
	case ClassNumber:
		return "Number"
	case ClassString:
		return "String"
	case ClassBool:
		return "Bool"
	default:
		return "Unknown"
	}
}
