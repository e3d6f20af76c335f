// Package termfmt renders a classified token stream as ANSI-styled text for
// terminal preview. It styles whole tokens only and never reorders or
// rewrites token text, so the uncolored output reproduces the source bytes.
package termfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"vitrine/internal/token"
)

// Options configures terminal rendering.
type Options struct {
	Color       bool
	LineNumbers bool
	// MaxWidth truncates display lines to this many terminal cells,
	// 0 means unlimited. The gutter is not counted.
	MaxWidth int
}

var classColors = map[token.Class]*color.Color{
	token.ClassComment:    color.New(color.FgHiBlack),
	token.ClassDocComment: color.New(color.FgHiBlack, color.Italic),
	token.ClassKeyword:    color.New(color.FgMagenta, color.Bold),
	token.ClassBuiltin:    color.New(color.FgCyan),
	token.ClassOp:         color.New(color.FgWhite),
	token.ClassNumber:     color.New(color.FgYellow),
	token.ClassString:     color.New(color.FgGreen),
	token.ClassBool:       color.New(color.FgYellow, color.Bold),
}

type lineState struct {
	w       io.Writer
	opts    Options
	gutter  int
	line    int
	col     int // terminal cells emitted on the current line
	clipped bool
	started bool
}

// Render writes the token stream to w. Tokens must be in source order; line
// numbering follows the newlines embedded in token text.
func Render(w io.Writer, tokens []token.Token, opts Options) error {
	total := 1
	for _, tok := range tokens {
		total += strings.Count(tok.Text, "\n")
	}
	st := &lineState{
		w:      w,
		opts:   opts,
		gutter: len(fmt.Sprintf("%d", total)),
		line:   1,
	}

	for _, tok := range tokens {
		paint := classColors[tok.Class]
		text := tok.Text
		for {
			nl := strings.IndexByte(text, '\n')
			if nl < 0 {
				if err := st.writeSegment(text, paint); err != nil {
					return err
				}
				break
			}
			if err := st.writeSegment(text[:nl], paint); err != nil {
				return err
			}
			if err := st.newline(); err != nil {
				return err
			}
			text = text[nl+1:]
		}
	}
	// close a final line that did not end in a newline
	if st.started {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (st *lineState) writeSegment(text string, paint *color.Color) error {
	if err := st.ensureGutter(); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	if st.opts.MaxWidth > 0 {
		remaining := st.opts.MaxWidth - st.col
		if remaining <= 0 {
			return st.clip()
		}
		if runewidth.StringWidth(text) > remaining {
			text = runewidth.Truncate(text, remaining, "")
			if err := st.emit(text, paint); err != nil {
				return err
			}
			return st.clip()
		}
	}
	return st.emit(text, paint)
}

func (st *lineState) emit(text string, paint *color.Color) error {
	st.col += runewidth.StringWidth(text)
	if st.opts.Color && paint != nil {
		text = paint.Sprint(text)
	}
	_, err := io.WriteString(st.w, text)
	return err
}

func (st *lineState) clip() error {
	if st.clipped {
		return nil
	}
	st.clipped = true
	_, err := io.WriteString(st.w, "…")
	return err
}

func (st *lineState) ensureGutter() error {
	if st.started {
		return nil
	}
	st.started = true
	if !st.opts.LineNumbers {
		return nil
	}
	num := fmt.Sprintf("%*d │ ", st.gutter, st.line)
	if st.opts.Color {
		num = color.New(color.FgHiBlack).Sprint(num)
	}
	_, err := io.WriteString(st.w, num)
	return err
}

func (st *lineState) newline() error {
	if err := st.ensureGutter(); err != nil {
		return err
	}
	if _, err := io.WriteString(st.w, "\n"); err != nil {
		return err
	}
	st.line++
	st.col = 0
	st.clipped = false
	st.started = false
	return nil
}
