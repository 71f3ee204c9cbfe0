package cssselector

import (
	"strconv"
	"strings"

	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/csscursor"
	"github.com/cssdx/csscore/internal/cssparser"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/logger"
)

// ParseSelectorList parses a comma-separated complex-selector-list, e.g. a
// style rule's prelude or a functional pseudo-class's argument, stopping at
// end-of-file, an opening brace, or a closing parenthesis (such as the one
// that ends a functional pseudo-class's argument).
func ParseSelectorList(p *cssparser.Parser) (*SelectorList, bool) {
	list := &SelectorList{}
	for {
		complex, ok := parseComplexSelector(p)
		if !ok {
			return nil, false
		}
		list.Complex = append(list.Complex, complex)
		if p.Peek().Tok.Kind != csslexer.KindComma {
			return list, true
		}
		p.Next()
	}
}

func parseComplexSelector(p *cssparser.Parser) (ComplexSelector, bool) {
	var result ComplexSelector

	first, ok := parseCompoundSelector(p)
	if !ok {
		return ComplexSelector{}, false
	}
	result.Compounds = append(result.Compounds, first)

	for {
		if atEndOfSelector(p) {
			return result, true
		}
		// parseCombinator only recognizes an explicit ">"/"+"/"~" glyph; a
		// bare run of whitespace with none of those present still implies
		// the descendant combinator, which is exactly what the zero value
		// of Combinator (CombinatorDescendant) represents.
		combinator, _ := parseCombinator(p)
		if atEndOfSelector(p) {
			return result, true
		}
		next, ok := parseCompoundSelector(p)
		if !ok {
			return result, true
		}
		result.Combinators = append(result.Combinators, combinator)
		result.Compounds = append(result.Compounds, next)
	}
}

func atEndOfSelector(p *cssparser.Parser) bool {
	switch p.Peek().Tok.Kind {
	case csslexer.KindEndOfFile, csslexer.KindComma, csslexer.KindOpenBrace, csslexer.KindCloseParen:
		return true
	default:
		return false
	}
}

func parseCombinator(p *cssparser.Parser) (Combinator, bool) {
	switch p.Peek().Tok.Kind {
	case csslexer.KindDelimGreaterThan:
		p.Next()
		return CombinatorChild, true
	case csslexer.KindDelimPlus:
		p.Next()
		return CombinatorNextSibling, true
	case csslexer.KindDelimTilde:
		p.Next()
		return CombinatorSubsequent, true
	default:
		return CombinatorDescendant, false
	}
}

// parseCompoundSelector consumes one compound selector. It temporarily adds
// whitespace to the active stop set so that a run of simple selectors is
// correctly bounded by any intervening whitespace: without this,
// "div .foo" and "div.foo" would parse identically, since Peek/Next
// otherwise treat whitespace as invisible trivia. Leading whitespace is
// consumed first, and the whitespace stop is lifted while an attribute
// selector or a pseudo-class's arguments are parsed.
func parseCompoundSelector(p *cssparser.Parser) (CompoundSelector, bool) {
	restoreStop := p.PushStop(csslexer.KindWhitespace)
	defer restoreStop()
	for p.Peek().Tok.Kind == csslexer.KindWhitespace {
		p.Next()
	}

	start := p.Peek()
	var sel CompoundSelector
	sawAnything := false

	if p.Peek().Tok.Kind == csslexer.KindDelimAmpersand {
		amp := p.Peek()
		p.Next()
		if !p.State.Has(cssparser.StateNestingAllowed) {
			p.Errorf(logger.MsgID_CSS_UnsupportedCSSNesting, amp, "\"&\" is only valid inside a style rule's nested rules")
			return CompoundSelector{}, false
		}
		sel.HasNestingSelector = true
		sawAnything = true
	}

	if name, ok := tryParseTypeSelector(p); ok {
		sel.TypeSelector = &name
		sawAnything = true
	}

	for {
		c := p.Peek()
		switch {
		case c.Tok.Kind == csslexer.KindHash:
			tok := p.Next()
			sel.IDs = append(sel.IDs, p.FoldIdent(tok))
			sawAnything = true
		case c.Tok.Kind == csslexer.KindDelimDot:
			p.Next()
			ident := p.Peek()
			if ident.Tok.Kind != csslexer.KindIdent {
				p.Errorf(logger.MsgID_CSS_InvalidSelector, ident, "Expected class name after \".\"")
				return CompoundSelector{}, false
			}
			p.Next()
			sel.Classes = append(sel.Classes, p.FoldIdent(ident))
			sawAnything = true
		case c.Tok.Kind == csslexer.KindOpenBracket:
			p.Next()
			restoreStop()
			attr, ok := parseAttributeSelector(p)
			restoreStop = p.PushStop(csslexer.KindWhitespace)
			if !ok {
				return CompoundSelector{}, false
			}
			sel.Attributes = append(sel.Attributes, attr)
			sawAnything = true
		case c.Tok.Kind == csslexer.KindColon:
			p.Next()
			isElement := p.Peek().Tok.Kind == csslexer.KindColon
			if isElement {
				p.Next()
			}
			if isElement {
				name := p.Peek()
				if name.Tok.Kind != csslexer.KindIdent {
					p.Errorf(logger.MsgID_CSS_UnexpectedPseudoElement, name, "Expected pseudo-element name")
					return CompoundSelector{}, false
				}
				p.Next()
				sel.PseudoElement = &PseudoElement{Name: p.FoldIdent(name)}
			} else {
				restoreStop()
				pc, ok := parsePseudoClass(p)
				restoreStop = p.PushStop(csslexer.KindWhitespace)
				if !ok {
					return CompoundSelector{}, false
				}
				sel.PseudoClasses = append(sel.PseudoClasses, pc)
			}
			sawAnything = true
		default:
			if !sawAnything {
				return CompoundSelector{}, false
			}
			sel.Span = Span{Start: start.Offset, End: c.Offset}
			return sel, true
		}
	}
}

func sourceText(p *cssparser.Parser) string { return p.Source.Contents }

func tryParseTypeSelector(p *cssparser.Parser) (NameToken, bool) {
	c := p.Peek()
	switch c.Tok.Kind {
	case csslexer.KindIdent:
		p.Next()
		return NameToken{Name: p.FoldIdent(c)}, true
	case csslexer.KindDelimAsterisk:
		p.Next()
		return NameToken{IsWildcard: true}, true
	default:
		return NameToken{}, false
	}
}

func parseAttributeSelector(p *cssparser.Parser) (AttrSelector, bool) {
	name, ok := tryParseTypeSelector(p)
	if !ok {
		p.Errorf(logger.MsgID_CSS_InvalidSelector, p.Peek(), "Expected attribute name")
		return AttrSelector{}, false
	}
	attr := AttrSelector{Name: name, CaseSensitive: true}

	switch p.Peek().Tok.Kind {
	case csslexer.KindCloseBracket:
		p.Next()
		attr.Match = AttrMatchExists
		return attr, true
	case csslexer.KindDelimEquals:
		p.Next()
		attr.Match = AttrMatchEqual
	case csslexer.KindDelimTilde:
		p.Next()
		expect(p, csslexer.KindDelimEquals)
		attr.Match = AttrMatchTilde
	case csslexer.KindDelimBar:
		p.Next()
		expect(p, csslexer.KindDelimEquals)
		attr.Match = AttrMatchBar
	case csslexer.KindDelimCaret:
		p.Next()
		expect(p, csslexer.KindDelimEquals)
		attr.Match = AttrMatchPrefix
	case csslexer.KindDelimDollar:
		p.Next()
		expect(p, csslexer.KindDelimEquals)
		attr.Match = AttrMatchSuffix
	case csslexer.KindDelimAsterisk:
		p.Next()
		expect(p, csslexer.KindDelimEquals)
		attr.Match = AttrMatchSubstring
	default:
		p.Errorf(logger.MsgID_CSS_InvalidSelector, p.Peek(), "Expected attribute matcher")
		return AttrSelector{}, false
	}

	v := p.Peek()
	switch v.Tok.Kind {
	case csslexer.KindString:
		attr.Value = stringTokenValue(v, sourceText(p))
	case csslexer.KindIdent:
		attr.Value = v.Tok.DecodedText(sourceText(p))
	default:
		p.Errorf(logger.MsgID_CSS_InvalidSelector, v, "Expected attribute value")
		return AttrSelector{}, false
	}
	p.Next()

	if f := p.Peek(); f.Tok.Kind == csslexer.KindIdent {
		text := f.Tok.DecodedText(sourceText(p))
		if text == "i" || text == "I" {
			attr.CaseSensitive = false
			p.Next()
		} else if text == "s" || text == "S" {
			p.Next()
		}
	}

	if !expect(p, csslexer.KindCloseBracket) {
		return AttrSelector{}, false
	}
	return attr, true
}

func stringTokenValue(c csscursor.Cursor, contents string) string {
	text := c.Tok.DecodedText(contents)
	if len(text) >= 2 {
		return text[1 : len(text)-1]
	}
	return text
}

func expect(p *cssparser.Parser, kind csslexer.Kind) bool {
	if p.Peek().Tok.Kind != kind {
		p.Errorf(logger.MsgID_CSS_InvalidSelector, p.Peek(), "Unexpected token in selector")
		return false
	}
	p.Next()
	return true
}

func parsePseudoClass(p *cssparser.Parser) (PseudoClass, bool) {
	name := p.Peek()
	if name.Tok.Kind != csslexer.KindIdent && name.Tok.Kind != csslexer.KindFunction {
		p.Errorf(logger.MsgID_CSS_UnexpectedPseudoClass, name, "Expected pseudo-class name")
		return PseudoClass{}, false
	}
	p.Next()
	rawName := strings.TrimSuffix(name.Tok.DecodedText(sourceText(p)), "(")
	atomName := p.FoldIdent(name)

	if name.Tok.Kind != csslexer.KindFunction {
		return PseudoClass{Name: atomName, Kind: PseudoClassSimple}, true
	}

	lower := strings.ToLower(rawName)
	restore := p.PushStop(csslexer.KindCloseParen)
	defer func() {
		restore()
		expect(p, csslexer.KindCloseParen)
	}()

	switch lower {
	case "is", "where", "matches", "-webkit-any", "-moz-any":
		nested, ok := ParseSelectorList(p)
		if !ok {
			return PseudoClass{}, false
		}
		return PseudoClass{Name: atomName, Kind: PseudoClassSelectorList, Nested: nested, WeightsAsSelectorList: lower != "where"}, true
	case "not":
		nested, ok := ParseSelectorList(p)
		if !ok {
			return PseudoClass{}, false
		}
		return PseudoClass{Name: atomName, Kind: PseudoClassSelectorList, Nested: nested, WeightsAsSelectorList: true}, true
	case "has":
		nested, ok := ParseSelectorList(p)
		if !ok {
			return PseudoClass{}, false
		}
		return PseudoClass{Name: atomName, Kind: PseudoClassSelectorList, Nested: nested, WeightsAsSelectorList: true}, true
	case "nth-child", "nth-last-child", "nth-of-type", "nth-last-of-type":
		nth, ok := parseNthExpr(p)
		if !ok {
			return PseudoClass{}, false
		}
		if p.PeekKeyword("of") {
			p.Next()
			nested, ok := ParseSelectorList(p)
			if !ok {
				return PseudoClass{}, false
			}
			nth.Of = nested
		}
		return PseudoClass{Name: atomName, Kind: PseudoClassNth, Nth: nth}, true
	case "lang":
		var langs []atom.Atom
		for {
			t := p.Peek()
			if t.Tok.Kind != csslexer.KindIdent && t.Tok.Kind != csslexer.KindString {
				break
			}
			p.Next()
			langs = append(langs, p.FoldIdent(t))
			if p.Peek().Tok.Kind == csslexer.KindComma {
				p.Next()
				continue
			}
			break
		}
		return PseudoClass{Name: atomName, Kind: PseudoClassLang, Langs: langs}, true
	case "dir":
		t := p.Peek()
		if t.Tok.Kind != csslexer.KindIdent {
			p.Errorf(logger.MsgID_CSS_UnexpectedPseudoClass, t, "Expected \"ltr\" or \"rtl\"")
			return PseudoClass{}, false
		}
		p.Next()
		return PseudoClass{Name: atomName, Kind: PseudoClassDir, Dir: p.FoldIdent(t)}, true
	default:
		// An unrecognized functional pseudo-class: consume its arguments
		// as an opaque selector-list-shaped argument so a following
		// selector still parses; Nested stays nil so it never
		// contributes to specificity beyond the flat B-count below.
		ParseSelectorList(p)
		return PseudoClass{Name: atomName, Kind: PseudoClassSimple}, true
	}
}

// parseNthExpr implements the An+B microsyntax
// (https://www.w3.org/TR/css-syntax-3/#anb-microsyntax), adapted to
// produce integers directly instead of the string-valued NthIndex a
// minifier needs in order to re-print the original digit sequence
// losslessly (this toolkit's writer reconstructs the original bytes from
// its cursors instead, so the parsed A/B values here only need to be
// numerically correct).
func parseNthExpr(p *cssparser.Parser) (NthExpr, bool) {
	t := p.Peek()

	if t.Tok.Kind == csslexer.KindIdent {
		text := strings.ToLower(t.Tok.DecodedText(sourceText(p)))
		if text == "even" {
			p.Next()
			return NthExpr{A: 2, B: 0}, true
		}
		if text == "odd" {
			p.Next()
			return NthExpr{A: 2, B: 1}, true
		}
	}

	if t.Tok.Kind == csslexer.KindNumber {
		p.Next()
		n, err := strconv.Atoi(strings.TrimPrefix(t.Tok.DecodedText(sourceText(p)), "+"))
		if err != nil {
			p.Errorf(logger.MsgID_CSS_InvalidSelector, t, "Expected an integer")
			return NthExpr{}, false
		}
		return NthExpr{A: 0, B: n}, true
	}

	sign := 1
	if t.Tok.Kind == csslexer.KindDelimPlus {
		p.Next()
		t = p.Peek()
	}

	if t.Tok.Kind != csslexer.KindIdent && t.Tok.Kind != csslexer.KindDimension {
		p.Errorf(logger.MsgID_CSS_InvalidSelector, t, "Expected \"An+B\"")
		return NthExpr{}, false
	}
	p.Next()
	text := t.Tok.DecodedText(sourceText(p))
	if strings.HasPrefix(text, "-") {
		sign = -1
		text = text[1:]
	} else {
		text = strings.TrimPrefix(text, "+")
	}

	idx := strings.IndexByte(text, 'n')
	if idx < 0 {
		p.Errorf(logger.MsgID_CSS_InvalidSelector, t, "Expected \"An+B\"")
		return NthExpr{}, false
	}

	a := 1
	if idx > 0 {
		v, err := strconv.Atoi(text[:idx])
		if err != nil {
			p.Errorf(logger.MsgID_CSS_InvalidSelector, t, "Expected \"An+B\"")
			return NthExpr{}, false
		}
		a = v
	}
	a *= sign

	rest := text[idx+1:]
	bSign := 0
	if strings.HasPrefix(rest, "-") {
		bSign = -1
		rest = rest[1:]
	}
	if rest != "" {
		b, err := strconv.Atoi(rest)
		if err != nil {
			p.Errorf(logger.MsgID_CSS_InvalidSelector, t, "Expected \"An+B\"")
			return NthExpr{}, false
		}
		if bSign == -1 {
			b = -b
		}
		return NthExpr{A: a, B: b}, true
	}

	// A "+" or "-" directly followed by a digit, with no whitespace in
	// between, never reaches here as its own delimiter token: the
	// tokenizer's number-start lookahead (consumeNumeric) swallows the
	// sign into the following number, so "2n+1" lexes as Dimension("2n")
	// then a single already-signed Number("+1") rather than DelimPlus
	// followed by Number("1"). Check for that fused form first.
	if p.Peek().Tok.Kind == csslexer.KindNumber {
		bt := p.Peek()
		p.Next()
		b, err := strconv.Atoi(bt.Tok.DecodedText(sourceText(p)))
		if err != nil {
			p.Errorf(logger.MsgID_CSS_InvalidSelector, bt, "Expected an integer")
			return NthExpr{}, false
		}
		return NthExpr{A: a, B: b}, true
	}

	if p.Peek().Tok.Kind == csslexer.KindDelimMinus {
		p.Next()
		bSign = -1
	} else if p.Peek().Tok.Kind == csslexer.KindDelimPlus {
		p.Next()
		bSign = 1
	}
	if bSign == 0 {
		return NthExpr{A: a, B: 0}, true
	}
	bt := p.Peek()
	if bt.Tok.Kind != csslexer.KindNumber {
		p.Errorf(logger.MsgID_CSS_InvalidSelector, bt, "Expected a number after the sign")
		return NthExpr{}, false
	}
	p.Next()
	b, err := strconv.Atoi(strings.TrimPrefix(bt.Tok.DecodedText(sourceText(p)), "+"))
	if err != nil {
		p.Errorf(logger.MsgID_CSS_InvalidSelector, bt, "Expected an integer")
		return NthExpr{}, false
	}
	if bSign == -1 {
		b = -b
	}
	return NthExpr{A: a, B: b}, true
}
