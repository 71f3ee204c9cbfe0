// Package csssupports implements @supports's condition grammar as a
// FeatureParser plugged into internal/cssparser's generic ConditionList:
// a supports-feature is either a parenthesized declaration test
// `(prop: value)` or a `selector(<complex-selector>)` function test.
//
// Grounded in original_source/crates/css_ast/src/rules/supports.rs, which
// names exactly these two leaf kinds (SupportsFeature::Declaration and a
// separate selector() test) sharing the same and/or/not condition tree
// @container and @media also use — the reason internal/cssparser factored
// ConditionList out generically in the first place.
package csssupports

import (
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/cssparser"
	"github.com/cssdx/csscore/internal/cssselector"
	"github.com/cssdx/csscore/internal/csslexer"
)

// FeatureKind discriminates the two supports-feature leaf shapes.
type FeatureKind int

const (
	FeatureDeclaration FeatureKind = iota
	FeatureSelector
)

// Feature is one leaf of a @supports condition tree
// (cssparser.ConditionList[Feature]).
type Feature struct {
	Kind FeatureKind

	// Declaration is set for FeatureDeclaration: the `prop: value` pair
	// tested for support.
	Declaration *cssast.Declaration

	// Selector is set for FeatureSelector: the selector list inside
	// `selector(...)`, tested for support rather than for a match.
	Selector *cssselector.SelectorList
}

// Parser adapts the grammar above to cssparser.FeatureParser, so
// cssparser.ParseConditionList can drive the shared and/or/not/parens
// structure around it.
type Parser struct{}

// ParseFeature implements cssparser.FeatureParser[Feature].
func (Parser) ParseFeature(p *cssparser.Parser) (Feature, bool) {
	if p.PeekKeyword("selector") || p.Peek().Tok.Kind == csslexer.KindFunction {
		if sel, ok := tryParseSelectorFeature(p); ok {
			return sel, true
		}
	}
	return tryParseDeclarationFeature(p)
}

func tryParseSelectorFeature(p *cssparser.Parser) (Feature, bool) {
	cp := p.Checkpoint()
	c := p.Peek()
	if c.Tok.Kind != csslexer.KindFunction || !p.Atoms.EqualFold(p.FoldIdent(c), "selector") {
		return Feature{}, false
	}
	p.Next() // "selector("

	restore := p.PushStop(csslexer.KindCloseParen)
	list, ok := cssselector.ParseSelectorList(p)
	restore()
	if !ok || p.Peek().Tok.Kind != csslexer.KindCloseParen {
		p.Rewind(cp)
		return Feature{}, false
	}
	p.Next() // ")"
	return Feature{Kind: FeatureSelector, Selector: list}, true
}

func tryParseDeclarationFeature(p *cssparser.Parser) (Feature, bool) {
	cp := p.Checkpoint()
	if p.Peek().Tok.Kind != csslexer.KindOpenParen {
		return Feature{}, false
	}
	p.Next()

	restore := p.PushStop(csslexer.KindCloseParen)
	decl := p.ParseDeclaration()
	restore()
	if decl == nil || p.Peek().Tok.Kind != csslexer.KindCloseParen {
		p.Rewind(cp)
		return Feature{}, false
	}
	p.Next() // ")"
	return Feature{Kind: FeatureDeclaration, Declaration: decl}, true
}

// ParseCondition parses a full @supports prelude (the part between
// `@supports` and the rule's `{`) into a condition tree.
func ParseCondition(p *cssparser.Parser) *cssparser.ConditionList[Feature] {
	return cssparser.ParseConditionList[Feature](p, Parser{})
}
