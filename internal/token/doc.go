// Package token defines the token classes the render pipeline understands.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End); the zero Span means the
//     token carries no location metadata.
//   - Concatenating the Text of every token in a stream reproduces the
//     source bytes exactly, whitespace included (whitespace arrives as
//     ClassNone tokens).
//   - The class set is closed; the renderer dispatches on it and passes
//     every class it has no special handling for through as a plain
//     wrapped span.
package token
