// Package cssselector implements the Selectors Level 4 grammar: parsing a
// selector list into a tree of compound/complex selectors, computing each
// complex selector's specificity, and classifying element names the way a
// conforming UA would (HTML vs. SVG vs. MathML vs. a custom element).
//
// This generalizes esbuild's internal/css_parser/css_parser_selector.go:
// esbuild only needs to parse and re-print selectors (it's a minifier), so
// it never computes specificity or classifies tag names. Those two pieces
// are this package's own addition, grounded in the Selectors Level 4
// algorithms (https://www.w3.org/TR/selectors-4/#specificity-rules) rather
// than the original source, since the original source tracks the prelude
// inside a single parse-then-walk pass rather than a reusable selector
// tree.
package cssselector

import (
	"strings"

	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
)

// Combinator separates two compound selectors in a complex selector.
// CombinatorDescendant is the implicit "ancestor descendant" combinator
// written as whitespace, so it carries no byte of its own.
type Combinator byte

const (
	CombinatorDescendant Combinator = 0
	CombinatorChild       Combinator = '>'
	CombinatorNextSibling Combinator = '+'
	CombinatorSubsequent  Combinator = '~'
	CombinatorColumn      Combinator = 'c' // "||", reserved for table columns
)

// TagKind classifies an element/type selector's name, mirroring the
// classification a selector-matching engine needs before it can decide
// whether an element actually matches (HTML tag matching is ASCII
// case-insensitive in an HTML document; SVG/MathML and custom elements are
// not). The HTML side of the classification splits further into the set a
// conforming user agent actually implements, the set it implements but
// only for legacy compatibility (https://html.spec.whatwg.org/multipage/obsolete.html#non-conforming-features),
// and proposed elements no browser ships as a standard yet.
type TagKind int

const (
	TagUnknown TagKind = iota
	TagHTML
	TagHTMLNonConforming
	TagHTMLNonStandard
	TagSVG
	TagMathML
	TagCustomElement
)

var htmlNonConformingTags = map[string]bool{
	"acronym": true, "applet": true, "basefont": true, "bgsound": true,
	"big": true, "blink": true, "center": true, "dir": true, "font": true,
	"frame": true, "frameset": true, "isindex": true, "keygen": true,
	"listing": true, "marquee": true, "menuitem": true, "multicol": true,
	"nextid": true, "nobr": true, "noembed": true, "noframes": true,
	"param": true, "plaintext": true, "rb": true, "rtc": true,
	"spacer": true, "strike": true, "tt": true, "xmp": true,
}

// htmlNonStandardTags are proposed elements tracked by an incubating spec
// but not yet part of the HTML standard.
var htmlNonStandardTags = map[string]bool{
	"fencedframe": true, "portal": true, "permission": true, "selectedcontent": true,
}

// customElementReservedNames is hyphenated but reserved for historical
// SGML-derived names rather than being available for authors' custom
// elements, per https://html.spec.whatwg.org/#valid-custom-element-name.
var customElementReservedNames = map[string]bool{
	"annotation-xml": true, "color-profile": true, "font-face": true,
	"font-face-src": true, "font-face-uri": true, "font-face-format": true,
	"font-face-name": true, "missing-glyph": true,
}

// ClassifyTag reports which TagKind a (possibly namespaced) local name
// belongs to. A name containing a literal "-" that isn't reserved by
// customElementReservedNames is a custom element per
// https://html.spec.whatwg.org/#valid-custom-element-name; a name that is
// none of the above and isn't a recognized HTML element either is
// TagUnknown, matching how a conforming UA exposes it as HTMLUnknownElement.
func ClassifyTag(localName string) TagKind {
	name := strings.ToLower(localName)
	switch name {
	case "svg", "circle", "ellipse", "line", "path", "polygon", "polyline", "rect", "text", "g", "defs", "use", "symbol", "clippath", "lineargradient", "radialgradient", "stop", "foreignobject":
		return TagSVG
	case "math", "mi", "mn", "mo", "ms", "mtext", "mrow", "mfrac", "msqrt", "mroot":
		return TagMathML
	}
	if htmlNonConformingTags[name] {
		return TagHTMLNonConforming
	}
	if htmlNonStandardTags[name] {
		return TagHTMLNonStandard
	}
	if strings.Contains(name, "-") {
		if customElementReservedNames[name] {
			return TagHTML
		}
		return TagCustomElement
	}
	if htmlTags[name] {
		return TagHTML
	}
	return TagUnknown
}

var htmlTags = map[string]bool{
	"a": true, "abbr": true, "address": true, "area": true, "article": true,
	"aside": true, "audio": true, "b": true, "base": true, "bdi": true,
	"bdo": true, "blockquote": true, "body": true, "br": true, "button": true,
	"canvas": true, "caption": true, "cite": true, "code": true, "col": true,
	"colgroup": true, "data": true, "datalist": true, "dd": true, "del": true,
	"details": true, "dfn": true, "dialog": true, "div": true, "dl": true,
	"dt": true, "em": true, "embed": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "head": true, "header": true,
	"hgroup": true, "hr": true, "html": true, "i": true, "iframe": true,
	"img": true, "input": true, "ins": true, "kbd": true, "label": true,
	"legend": true, "li": true, "link": true, "main": true, "map": true,
	"mark": true, "menu": true, "meta": true, "meter": true, "nav": true,
	"noscript": true, "object": true, "ol": true, "optgroup": true,
	"option": true, "output": true, "p": true, "picture": true, "pre": true,
	"progress": true, "q": true, "rp": true, "rt": true, "ruby": true,
	"s": true, "samp": true, "script": true, "search": true, "section": true,
	"select": true, "slot": true, "small": true, "source": true, "span": true,
	"strong": true, "style": true, "sub": true, "summary": true, "sup": true,
	"table": true, "tbody": true, "td": true, "template": true,
	"textarea": true, "tfoot": true, "th": true, "thead": true, "time": true,
	"title": true, "tr": true, "track": true, "u": true, "ul": true,
	"var": true, "video": true, "wbr": true,
}

// NameToken is a single (namespace-prefix, local-name) pair used by both
// type selectors and attribute selectors. An empty Namespace with
// HasNamespace true means the "no namespace" explicit prefix (`|name`); a
// nil Namespace atom with HasNamespace false means "namespace unspecified".
type NameToken struct {
	Namespace    atom.Atom
	HasNamespace bool
	Name         atom.Atom
	IsWildcard   bool // the name itself was "*"
}

// AttrMatch is an attribute selector's comparison operator,
// `[attr op value]`.
type AttrMatch int

const (
	AttrMatchExists   AttrMatch = iota // [attr]
	AttrMatchEqual                     // [attr=value]
	AttrMatchTilde                     // [attr~=value] (space-separated word match)
	AttrMatchBar                       // [attr|=value] (exact or hyphen-prefixed match)
	AttrMatchPrefix                    // [attr^=value]
	AttrMatchSuffix                    // [attr$=value]
	AttrMatchSubstring                 // [attr*=value]
)

// AttrSelector is `[name op "value" i]`.
type AttrSelector struct {
	Name          NameToken
	Match         AttrMatch
	Value         string
	CaseSensitive bool // false for a trailing "i" flag; true for "s" or absent
}

// PseudoClassKind distinguishes the functional pseudo-classes that hold a
// nested selector list (used for specificity and matching) from the ones
// that hold some other kind of argument (An+B, a language tag, a
// direction).
type PseudoClassKind int

const (
	PseudoClassSimple     PseudoClassKind = iota // :hover, :focus, no arguments
	PseudoClassSelectorList                      // :is(), :where(), :not(), :has()
	PseudoClassNth                                // :nth-child(), :nth-last-child(), :nth-of-type(), :nth-last-of-type()
	PseudoClassLang                               // :lang(en, fr)
	PseudoClassDir                                // :dir(ltr)
)

// NthExpr is the An+B microsyntax argument to :nth-child() and its
// siblings (https://www.w3.org/TR/css-syntax-3/#anb-microsyntax), plus the
// optional "of <selector-list>" suffix Selectors Level 4 adds to
// :nth-child()/:nth-last-child().
type NthExpr struct {
	A, B int
	Of   *SelectorList // nil unless "of ..." was present
}

// Matches reports whether the 1-indexed position satisfies An+B: there
// exists a non-negative integer n with position == A*n + B.
func (e NthExpr) Matches(position int) bool {
	if e.A == 0 {
		return position == e.B
	}
	k := position - e.B
	if k%e.A != 0 {
		return false
	}
	return k/e.A >= 0
}

// PseudoClass is a `:name` or `:name(argument)` selector component.
type PseudoClass struct {
	Name atom.Atom
	Kind PseudoClassKind

	// Exactly one of the following is populated, per Kind.
	Nested *SelectorList // PseudoClassSelectorList (:is, :where, :not, :has)
	Nth    NthExpr       // PseudoClassNth
	Langs  []atom.Atom   // PseudoClassLang
	Dir    atom.Atom     // PseudoClassDir

	// WeightsAsSelectorList is set for :is()/:has() (whose specificity is
	// that of its most specific nested complex selector) but unset for
	// :where() (which always contributes zero to specificity) per
	// https://www.w3.org/TR/selectors-4/#specificity-rules.
	WeightsAsSelectorList bool
}

// PseudoElement is a `::name` selector component. CSS only allows at most
// one, and it must be the last component of the selector's last compound.
type PseudoElement struct {
	Name atom.Atom
}

// CompoundSelector is a sequence of simple selectors with no combinator
// between them: an optional type selector, then any number of
// id/class/attribute/pseudo-class selectors, then an optional pseudo-element.
type CompoundSelector struct {
	Span Span

	HasNestingSelector bool // a bare "&" was present (CSS Nesting)
	TypeSelector       *NameToken
	IDs                []atom.Atom
	Classes            []atom.Atom
	Attributes         []AttrSelector
	PseudoClasses      []PseudoClass
	PseudoElement      *PseudoElement
}

// Span is a range of token indices (not source bytes), the same type as
// internal/cssast.Span.
type Span = cssast.Span

// ComplexSelector is a CompoundSelector chain: selectors[i] is combined
// with selectors[i-1] via combinators[i-1] (so len(combinators) ==
// len(selectors)-1).
type ComplexSelector struct {
	Compounds   []CompoundSelector
	Combinators []Combinator
}

// SelectorList is a comma-separated list of complex selectors, the
// top-level production a style rule's prelude parses into.
type SelectorList struct {
	Complex []ComplexSelector
}

// Specificity is the (A, B, C) triple from
// https://www.w3.org/TR/selectors-4/#specificity-rules: A counts ID
// selectors, B counts class/attribute/pseudo-class selectors, C counts type
// and pseudo-element selectors.
type Specificity struct {
	A, B, C int
}

// Less reports whether s has lower specificity than other, comparing A then
// B then C, per the cascade's specificity ordering.
func (s Specificity) Less(other Specificity) bool {
	if s.A != other.A {
		return s.A < other.A
	}
	if s.B != other.B {
		return s.B < other.B
	}
	return s.C < other.C
}

func (s Specificity) Add(other Specificity) Specificity {
	return Specificity{A: s.A + other.A, B: s.B + other.B, C: s.C + other.C}
}

// Compute returns c's specificity contribution.
func (c CompoundSelector) Compute() Specificity {
	var sp Specificity
	sp.A += len(c.IDs)
	sp.B += len(c.Classes) + len(c.Attributes)
	if c.TypeSelector != nil && !c.TypeSelector.IsWildcard {
		sp.C++
	}
	if c.PseudoElement != nil {
		sp.C++
	}
	for _, pc := range c.PseudoClasses {
		switch pc.Kind {
		case PseudoClassSelectorList:
			if pc.WeightsAsSelectorList && pc.Nested != nil {
				sp = sp.Add(pc.Nested.MaxSpecificity())
			}
			// :where() contributes nothing.
		default:
			sp.B++
		}
	}
	return sp
}

// Compute returns the complex selector's specificity: the sum of every
// compound selector's contribution (combinators themselves carry none).
func (c ComplexSelector) Compute() Specificity {
	var sp Specificity
	for _, comp := range c.Compounds {
		sp = sp.Add(comp.Compute())
	}
	return sp
}

// MaxSpecificity returns the highest specificity among a selector list's
// complex selectors, used for :is()/:has()'s own specificity per the
// Selectors Level 4 forgiving-selector-list rule.
func (l *SelectorList) MaxSpecificity() Specificity {
	var max Specificity
	for i, c := range l.Complex {
		sp := c.Compute()
		if i == 0 || max.Less(sp) {
			max = sp
		}
	}
	return max
}
