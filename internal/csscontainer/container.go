// Package csscontainer implements @container's condition grammar: a named
// container query whose leaf features are either a size feature in
// RangedFeature's `(width >= 100px)` / `(100px <= width <= 200px)` shape,
// an `orientation` keyword feature, or a nested `style(<declaration>)`
// query reusing the same declaration-test shape internal/csssupports
// already parses for @supports.
//
// Grounded in original_source/crates/css_ast/src/rules/container/mod.rs,
// which lists width/height/inline-size/block-size/aspect-ratio/orientation
// as the size-feature set and a separate Style(StyleQuery) leaf sharing
// the declaration-test grammar — the reason internal/cssparser's
// ConditionList/RangedFeature were factored out generically in the first
// place, for reuse here and in internal/csssupports and @media.
package csscontainer

import (
	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/cssparser"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/logger"
)

// FeatureKind discriminates the three container-feature leaf shapes.
type FeatureKind int

const (
	// FeatureSize covers width/height/inline-size/block-size/aspect-ratio,
	// all sharing RangedFeature's `name: value` and range-comparison forms.
	FeatureSize FeatureKind = iota
	// FeatureOrientation is the `(orientation: portrait)` keyword feature.
	FeatureOrientation
	// FeatureStyle is a `style(<declaration>)` query, testing a custom
	// property or declaration's computed value against the container's
	// own style rather than its size.
	FeatureStyle
)

// sizeFeatureNames lists the feature names RangedFeature's range-comparison
// syntax applies to; "orientation" is excluded because it only ever takes
// a keyword value, never a length comparison. A legacy "min-"/"max-" prefix
// is removed from a feature name before it is looked up here.
var sizeFeatureNames = map[string]bool{
	"width":        true,
	"height":       true,
	"inline-size":  true,
	"block-size":   true,
	"aspect-ratio": true,
}

// Feature is one leaf of a @container condition tree
// (cssparser.ConditionList[Feature]).
type Feature struct {
	Kind FeatureKind

	// Size is set for FeatureSize.
	Size cssparser.RangedFeature

	// OrientationValue is set for FeatureOrientation: the ident token
	// naming "portrait" or "landscape".
	OrientationValue atom.Atom

	// Style is set for FeatureStyle: the declaration tested inside
	// `style(...)`.
	Style *cssast.Declaration
}

// Parser adapts the grammar above to cssparser.FeatureParser, so
// cssparser.ParseConditionList can drive the shared and/or/not/parens
// structure around it.
type Parser struct{}

// ParseFeature implements cssparser.FeatureParser[Feature].
func (Parser) ParseFeature(p *cssparser.Parser) (Feature, bool) {
	if styleQuery, ok := tryParseStyleFeature(p); ok {
		return styleQuery, true
	}
	return tryParseSizeOrOrientationFeature(p)
}

func tryParseStyleFeature(p *cssparser.Parser) (Feature, bool) {
	cp := p.Checkpoint()
	c := p.Peek()
	if c.Tok.Kind != csslexer.KindFunction || !p.Atoms.EqualFold(p.FoldIdent(c), "style") {
		return Feature{}, false
	}
	p.Next() // "style("

	restore := p.PushStop(csslexer.KindCloseParen)
	decl := p.ParseDeclaration()
	restore()
	if decl == nil || p.Peek().Tok.Kind != csslexer.KindCloseParen {
		p.Rewind(cp)
		return Feature{}, false
	}
	p.Next() // ")"
	return Feature{Kind: FeatureStyle, Style: decl}, true
}

func tryParseSizeOrOrientationFeature(p *cssparser.Parser) (Feature, bool) {
	cp := p.Checkpoint()
	start := p.Peek()
	if start.Tok.Kind != csslexer.KindOpenParen {
		return Feature{}, false
	}
	p.Next()

	restore := p.PushStop(csslexer.KindCloseParen)
	rf, ok := p.ParseRangedFeature()
	restore()
	if !ok || p.Peek().Tok.Kind != csslexer.KindCloseParen {
		p.Rewind(cp)
		return Feature{}, false
	}
	p.Next() // ")"

	name := p.Atoms.String(rf.Name)
	if name == "orientation" {
		if value, ok := orientationIdent(p, rf.LowerBound); ok {
			return Feature{Kind: FeatureOrientation, OrientationValue: value}, true
		}
	}
	sizeName := name
	if len(name) > 4 && (name[:4] == "min-" || name[:4] == "max-") {
		sizeName = name[4:]
	}
	if !sizeFeatureNames[sizeName] {
		p.Errorf(logger.MsgID_CSS_InvalidRangedFeature, start, "Unrecognized @container feature name \""+name+"\"")
		p.Rewind(cp)
		return Feature{}, false
	}
	return Feature{Kind: FeatureSize, Size: rf}, true
}

// orientationIdent extracts the ident atom from a RangedFeature's bound
// when the feature being tested is `orientation`, whose value is always a
// bare keyword (`portrait` or `landscape`), never a length.
func orientationIdent(p *cssparser.Parser, bound cssast.ComponentValue) (atom.Atom, bool) {
	tok, ok := bound.(*cssast.PreservedToken)
	if !ok || tok.Cur.Tok.Kind != csslexer.KindIdent {
		return atom.Empty, false
	}
	return p.FoldIdent(tok.Cur), true
}

// Condition is one parsed `<container-name>? <container-condition>` pair,
// i.e. the body of @container's prelude: an optional name identifying
// which ancestor container to query, paired with the condition tree
// itself (nil when the rule names a container with no condition, e.g.
// `@container sidebar { ... }`, which simply establishes containment
// without testing anything).
type Condition struct {
	Name      atom.Atom
	HasName   bool
	Condition *cssparser.ConditionList[Feature]
}

// reservedConditionKeywords are the ident values ParseCondition must NOT
// treat as a container name, since they start or continue the condition
// grammar itself.
var reservedConditionKeywords = map[string]bool{
	"none": true,
	"and":  true,
	"not":  true,
	"or":   true,
}

// ParseCondition parses a full @container prelude (the part between
// `@container` and the rule's `{`) into a Condition.
func ParseCondition(p *cssparser.Parser) Condition {
	var cond Condition

	if p.Peek().Tok.Kind == csslexer.KindIdent {
		name := p.FoldIdent(p.Peek())
		if !reservedConditionKeywords[p.Atoms.String(name)] {
			p.Next()
			cond.Name, cond.HasName = name, true
		}
	}

	cond.Condition = cssparser.ParseConditionList[Feature](p, Parser{})
	return cond
}
