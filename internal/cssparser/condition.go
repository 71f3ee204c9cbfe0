package cssparser

import (
	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/logger"
)

// ConditionOp names how a ConditionList node combines its children, shared
// by every conditional at-rule's prelude grammar (@supports, @container,
// @media's boolean combination of media-in-parens). CSS forbids mixing
// "and" and "or" at the same nesting level without parentheses
// (https://drafts.csswg.org/css-conditional-5/#typedef-supports-condition);
// ParseConditionList does not reject such mixing: `a and b or c` parses
// as or(and(a, b), c) with no diagnostic.
type ConditionOp int

const (
	ConditionLeaf ConditionOp = iota
	ConditionNot
	ConditionAnd
	ConditionOr
)

// ConditionList is a generic boolean-condition tree, parameterized over the
// leaf feature type so @supports (leaf: a declaration or a `selector()`
// check) and @container (leaf: a RangedFeature or a style() query) share
// one grammar implementation.
type ConditionList[F any] struct {
	Op       ConditionOp
	Leaf     *F
	Children []*ConditionList[F]
}

// FeatureParser lets a caller plug in how to parse one leaf feature — the
// part of the grammar that's specific to @supports vs. @container — into
// the shared and/or/not/parens structure below.
type FeatureParser[F any] interface {
	ParseFeature(p *Parser) (F, bool)
}

// ParseConditionList implements the shared "supports-condition" shaped
// grammar: a top-level "not", or a chain of "and"s, or a chain of "or"s,
// bottoming out at a parenthesized sub-condition or a leaf feature.
func ParseConditionList[F any](p *Parser, fp FeatureParser[F]) *ConditionList[F] {
	return parseConditionOr(p, fp)
}

func parseConditionOr[F any](p *Parser, fp FeatureParser[F]) *ConditionList[F] {
	first := parseConditionAnd(p, fp)
	if first == nil || !p.peekKeyword("or") {
		return first
	}
	children := []*ConditionList[F]{first}
	for p.peekKeyword("or") {
		p.Next() // "or"
		if next := parseConditionAnd(p, fp); next != nil {
			children = append(children, next)
		}
	}
	return &ConditionList[F]{Op: ConditionOr, Children: children}
}

func parseConditionAnd[F any](p *Parser, fp FeatureParser[F]) *ConditionList[F] {
	first := parseConditionUnary(p, fp)
	if first == nil || !p.peekKeyword("and") {
		return first
	}
	children := []*ConditionList[F]{first}
	for p.peekKeyword("and") {
		p.Next() // "and"
		if next := parseConditionUnary(p, fp); next != nil {
			children = append(children, next)
		}
	}
	return &ConditionList[F]{Op: ConditionAnd, Children: children}
}

func parseConditionUnary[F any](p *Parser, fp FeatureParser[F]) *ConditionList[F] {
	if p.peekKeyword("not") {
		p.Next()
		inner := parseConditionPrimary(p, fp)
		if inner == nil {
			return nil
		}
		return &ConditionList[F]{Op: ConditionNot, Children: []*ConditionList[F]{inner}}
	}
	return parseConditionPrimary(p, fp)
}

func parseConditionPrimary[F any](p *Parser, fp FeatureParser[F]) *ConditionList[F] {
	if p.Peek().Tok.Kind == csslexer.KindOpenParen {
		cp := p.Checkpoint()
		p.Next()
		restore := p.PushStop(csslexer.KindCloseParen)
		inner := parseConditionOr(p, fp)
		restore()
		if inner != nil && p.Peek().Tok.Kind == csslexer.KindCloseParen {
			p.Next()
			return inner
		}
		// Not a parenthesized condition after all (e.g. a bare
		// `(prop: value)` feature query) — let the feature parser have a
		// shot at the whole parenthesized span instead.
		p.Rewind(cp)
	}

	if feature, ok := fp.ParseFeature(p); ok {
		return &ConditionList[F]{Op: ConditionLeaf, Leaf: &feature}
	}
	return nil
}

// peekKeyword reports whether the next significant token is an ident equal
// (case-insensitively) to kw, without consuming it.
func (p *Parser) peekKeyword(kw string) bool { return p.PeekKeyword(kw) }

// PeekKeyword reports whether the next significant token is an ident equal
// (case-insensitively) to kw, without consuming it. Exported for other
// grammar packages (internal/cssselector's "of <selector-list>" suffix,
// internal/cssprops' keyword values) that need the same check.
func (p *Parser) PeekKeyword(kw string) bool {
	c := p.Peek()
	if c.Tok.Kind != csslexer.KindIdent {
		return false
	}
	return p.Atoms.EqualFold(p.FoldIdent(c), kw)
}

// RangedFeature is the `(width >= 100px)` / `(100px <= width <= 200px)`
// range-syntax media/container feature from
// https://drafts.csswg.org/mediaqueries-5/#mq-range-context. Its bounds are
// left as raw component values because interpreting a dimension into a
// concrete length belongs to internal/cssprops, not the grammar layer.
type RangedFeature struct {
	Span cssast.Span

	Name atom.Atom

	// LowerOp/LowerBound are set when the feature has a lower bound, i.e.
	// `100px <= width` or `100px < width`.
	LowerOp    Comparator
	LowerBound cssast.ComponentValue
	HasLower   bool

	// UpperOp/UpperBound mirror LowerOp/LowerBound for the upper bound of
	// a double-sided range like `100px <= width <= 200px`.
	UpperOp    Comparator
	UpperBound cssast.ComponentValue
	HasUpper   bool
}

// Comparator is one of the five range comparison operators (or
// ComparatorNone) CSS's
// range-syntax media features support.
type Comparator int

const (
	ComparatorNone Comparator = iota
	ComparatorEq
	ComparatorLt
	ComparatorLe
	ComparatorGt
	ComparatorGe
)

func (c Comparator) String() string {
	switch c {
	case ComparatorEq:
		return "="
	case ComparatorLt:
		return "<"
	case ComparatorLe:
		return "<="
	case ComparatorGt:
		return ">"
	case ComparatorGe:
		return ">="
	default:
		return ""
	}
}

// ParseRangedFeature parses the body of a `( ... )` media/container feature
// already positioned just past the opening parenthesis, recognizing both
// the legacy `(name: value)` form and the range-syntax forms.
func (p *Parser) ParseRangedFeature() (RangedFeature, bool) {
	start := p.Peek()
	var rf RangedFeature

	// Range syntax may start with a value (`100px <= width`) instead of the
	// feature name; detect that by checking whether a comparator follows
	// the first token.
	firstIsValue := !(p.Peek().Tok.Kind == csslexer.KindIdent)

	if firstIsValue {
		lower := p.parseComponentValue()
		op, ok := p.parseComparator()
		if !ok {
			return RangedFeature{}, false
		}
		name, ok := p.parseFeatureName()
		if !ok {
			return RangedFeature{}, false
		}
		rf.Name = name
		rf.LowerOp, rf.LowerBound, rf.HasLower = op, lower, true
		if op2, ok := p.parseComparator(); ok {
			upper := p.parseComponentValue()
			rf.UpperOp, rf.UpperBound, rf.HasUpper = op2, upper, true
		}
		rf.Span = p.span(start.Offset)
		return rf, true
	}

	name, ok := p.parseFeatureName()
	if !ok {
		return RangedFeature{}, false
	}
	rf.Name = name

	switch p.Peek().Tok.Kind {
	case csslexer.KindColon:
		p.Next()
		rf.LowerOp = ComparatorEq
		rf.LowerBound = p.parseComponentValue()
		rf.HasLower = true
	default:
		op, ok := p.parseComparator()
		if !ok {
			p.Errorf(logger.MsgID_CSS_InvalidRangedFeature, p.Peek(), "Expected \":\" or a comparison operator")
			return RangedFeature{}, false
		}
		rf.LowerOp = op
		rf.LowerBound = p.parseComponentValue()
		rf.HasLower = true
		if op2, ok := p.parseComparator(); ok {
			rf.UpperOp = op2
			rf.UpperBound = p.parseComponentValue()
			rf.HasUpper = true
		}
	}

	rf.Span = p.span(start.Offset)
	return rf, true
}

func (p *Parser) parseFeatureName() (atom.Atom, bool) {
	c := p.Peek()
	if c.Tok.Kind != csslexer.KindIdent {
		return atom.Empty, false
	}
	p.Next()
	return p.FoldIdent(c), true
}

func (p *Parser) parseComparator() (Comparator, bool) {
	c := p.Peek()
	switch {
	case c.Tok.Kind == csslexer.KindDelimEquals:
		p.Next()
		return ComparatorEq, true
	case c.Tok.Kind == csslexer.KindDelim && c.Tok.DecodedText(p.Source.Contents) == "<":
		p.Next()
		if p.Peek().Tok.Kind == csslexer.KindDelimEquals {
			p.Next()
			return ComparatorLe, true
		}
		return ComparatorLt, true
	case c.Tok.Kind == csslexer.KindDelimGreaterThan:
		p.Next()
		if p.Peek().Tok.Kind == csslexer.KindDelimEquals {
			p.Next()
			return ComparatorGe, true
		}
		return ComparatorGt, true
	default:
		return ComparatorNone, false
	}
}
