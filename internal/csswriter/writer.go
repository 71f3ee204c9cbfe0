// Package csswriter reconstructs source bytes from a parsed tree. Every
// leaf token keeps the csscursor.Cursor it was read from, and this package
// walks sibling lists (component values, declarations, rules) writing the
// gap between one sibling's end and the next sibling's start verbatim from
// the original source — which is exactly where whitespace and comments the
// tree doesn't model as nodes of their own live. A synthetic cursor (one
// the parser or a later transform fabricated, not read from the source) is
// rendered from its token's Kind instead of sliced from source, since it
// has no original byte range.
//
// The teacher's internal/css_printer is a from-scratch pretty-printer: it
// reformats whitespace and re-escapes idents/strings according to
// minification options, never reproducing the author's original bytes.
// This package does the opposite — it assumes the tree is either untouched
// or has had only individual component values/rules swapped out, and
// reproduces everything else exactly as written, which is what makes
// round-tripping and targeted rewrites lossless.
package csswriter

import (
	"strings"

	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/csscursor"
	"github.com/cssdx/csscore/internal/csslexer"
)

// Writer reconstructs bytes against one fixed token array and source
// string — the same ones a cssparser.Parser was built from.
type Writer struct {
	source string
	tokens []csslexer.Token
}

// New creates a Writer over the token array and source text a Stylesheet
// was parsed from.
func New(source string, tokens []csslexer.Token) *Writer {
	return &Writer{source: source, tokens: tokens}
}

// Write reconstructs the full source text for a stylesheet.
func (w *Writer) Write(sheet *cssast.Stylesheet) string {
	var b strings.Builder
	w.writeGap(&b, 0, w.firstIndexOf(sheet.Rules))
	w.writeRules(&b, sheet.Rules)
	w.writeGap(&b, w.lastEndOf(sheet.Rules), csscursor.SourceOffset(len(w.tokens)))
	return b.String()
}

func (w *Writer) firstIndexOf(rules []cssast.Rule) csscursor.SourceOffset {
	if len(rules) == 0 {
		return csscursor.SourceOffset(len(w.tokens))
	}
	return rules[0].RuleSpan().Start
}

func (w *Writer) lastEndOf(rules []cssast.Rule) csscursor.SourceOffset {
	if len(rules) == 0 {
		return 0
	}
	return rules[len(rules)-1].RuleSpan().End
}

// bytePos maps a token-array index to the source byte offset where that
// token begins, or to the end of the source for an index past the array
// (covers Span.End sentinels pointing one-past-the-last-token, and the
// trailing EOF token itself).
func (w *Writer) bytePos(idx csscursor.SourceOffset) int {
	i := int(idx)
	if i < 0 || i >= len(w.tokens) {
		return len(w.source)
	}
	return int(w.tokens[i].Range.Loc.Start)
}

func (w *Writer) writeGap(b *strings.Builder, from, to csscursor.SourceOffset) {
	lo, hi := w.bytePos(from), w.bytePos(to)
	if lo < hi {
		b.WriteString(w.source[lo:hi])
	}
}

func (w *Writer) writeRules(b *strings.Builder, rules []cssast.Rule) {
	var prevEnd csscursor.SourceOffset
	for i, r := range rules {
		span := r.RuleSpan()
		if i > 0 {
			w.writeGap(b, prevEnd, span.Start)
		}
		w.writeRule(b, r)
		prevEnd = span.End
	}
}

func (w *Writer) writeRule(b *strings.Builder, r cssast.Rule) {
	switch r := r.(type) {
	case *cssast.QualifiedRule:
		w.writeComponentValues(b, r.Prelude, r.Span.Start, firstRuleStart(r.Block, r.Span.End))
		w.writeGap(b, lastComponentEnd(r.Prelude, r.Span.Start), firstRuleStart(r.Block, r.Span.End))
		w.writeRules(b, r.Block)
		w.writeGap(b, lastRuleEnd(r.Block, firstRuleStart(r.Block, r.Span.End)), r.Span.End)
	case *cssast.AtRule:
		w.writeComponentValues(b, r.Prelude, r.Span.Start, r.Span.End)
		if r.HasBlock {
			blockStart := firstRuleStart(r.Block, r.Span.End)
			w.writeGap(b, lastComponentEnd(r.Prelude, r.Span.Start), blockStart)
			w.writeRules(b, r.Block)
			w.writeGap(b, lastRuleEnd(r.Block, blockStart), r.Span.End)
		} else {
			w.writeGap(b, lastComponentEnd(r.Prelude, r.Span.Start), r.Span.End)
		}
	case *cssast.StyleDeclaration:
		w.writeDeclaration(b, r.Decl)
	case *cssast.BadRule:
		w.writeGap(b, r.Span.Start, r.Span.End)
	}
}

func (w *Writer) writeDeclaration(b *strings.Builder, d *cssast.Declaration) {
	w.writeGap(b, d.Span.Start, firstComponentStart(d.Value, d.Span.End))
	w.writeComponentValues(b, d.Value, d.Span.Start, d.Span.End)
	w.writeGap(b, lastComponentEnd(d.Value, d.Span.Start), d.Span.End)
}

func (w *Writer) writeComponentValues(b *strings.Builder, values []cssast.ComponentValue, enclosingStart, enclosingEnd csscursor.SourceOffset) {
	var prevEnd csscursor.SourceOffset
	for i, cv := range values {
		span := cv.ComponentSpan()
		if i > 0 {
			w.writeGap(b, prevEnd, span.Start)
		}
		w.writeComponentValue(b, cv)
		prevEnd = span.End
	}
}

func (w *Writer) writeComponentValue(b *strings.Builder, cv cssast.ComponentValue) {
	switch cv := cv.(type) {
	case *cssast.PreservedToken:
		w.writeCursor(b, cv.Cur)
	case *cssast.Function:
		w.writeGap(b, cv.Span.Start, firstComponentStart(cv.Values, cv.Span.End))
		w.writeComponentValues(b, cv.Values, cv.Span.Start, cv.Span.End)
		w.writeGap(b, lastComponentEnd(cv.Values, cv.Span.Start), cv.Span.End)
	case *cssast.SimpleBlock:
		w.writeGap(b, cv.Span.Start, firstComponentStart(cv.Values, cv.Span.End))
		w.writeComponentValues(b, cv.Values, cv.Span.Start, cv.Span.End)
		w.writeGap(b, lastComponentEnd(cv.Values, cv.Span.Start), cv.Span.End)
	}
}

// writeCursor renders a single token's bytes: verbatim from source for a
// real cursor, or synthesized from its Kind for one fabricated during
// parsing or a later tree transform.
func (w *Writer) writeCursor(b *strings.Builder, c csscursor.Cursor) {
	if c.IsSynthetic() {
		b.WriteString(syntheticText(c.Tok.Kind))
		return
	}
	b.WriteString(w.source[c.Tok.Range.Loc.Start:c.Tok.Range.End()])
}

// syntheticText covers the token kinds error recovery and tree transforms
// actually fabricate; anything else falls back to an empty string since
// there is no single correct rendering of an arbitrary synthetic token
// without the bytes it was never read from.
func syntheticText(k csslexer.Kind) string {
	switch k {
	case csslexer.KindOpenBrace:
		return "{"
	case csslexer.KindCloseBrace:
		return "}"
	case csslexer.KindOpenParen:
		return "("
	case csslexer.KindCloseParen:
		return ")"
	case csslexer.KindOpenBracket:
		return "["
	case csslexer.KindCloseBracket:
		return "]"
	case csslexer.KindSemicolon:
		return ";"
	case csslexer.KindColon:
		return ":"
	case csslexer.KindComma:
		return ","
	case csslexer.KindWhitespace:
		return " "
	default:
		return ""
	}
}

func firstComponentStart(values []cssast.ComponentValue, fallback csscursor.SourceOffset) csscursor.SourceOffset {
	if len(values) == 0 {
		return fallback
	}
	return values[0].ComponentSpan().Start
}

func lastComponentEnd(values []cssast.ComponentValue, fallback csscursor.SourceOffset) csscursor.SourceOffset {
	if len(values) == 0 {
		return fallback
	}
	return values[len(values)-1].ComponentSpan().End
}

func firstRuleStart(rules []cssast.Rule, fallback csscursor.SourceOffset) csscursor.SourceOffset {
	if len(rules) == 0 {
		return fallback
	}
	return rules[0].RuleSpan().Start
}

func lastRuleEnd(rules []cssast.Rule, fallback csscursor.SourceOffset) csscursor.SourceOffset {
	if len(rules) == 0 {
		return fallback
	}
	return rules[len(rules)-1].RuleSpan().End
}
