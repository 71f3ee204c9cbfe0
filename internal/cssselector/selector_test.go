package cssselector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssparser"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/logger"
)

func parseSelectors(t *testing.T, text string) *SelectorList {
	t.Helper()
	log := logger.NewDeferLog()
	source := logger.Source{Contents: text}
	result := csslexer.Tokenize(log, source)
	p := cssparser.New(log, source, result.Tokens, atom.Default())
	// A selector list reached through a style rule's nested-rule prelude
	// always carries StateNestingAllowed by the time cssparser hands it to
	// this package; set it here to match that calling convention.
	p.State |= cssparser.StateNestingAllowed
	list, ok := ParseSelectorList(p)
	require.True(t, ok)
	require.False(t, log.HasErrors())
	return list
}

func TestParseSimpleTypeSelector(t *testing.T) {
	list := parseSelectors(t, "div")
	require.Len(t, list.Complex, 1)
	require.Len(t, list.Complex[0].Compounds, 1)
	require.Equal(t, "div", atom.String(list.Complex[0].Compounds[0].TypeSelector.Name))
}

func TestParseIDAndClassCompound(t *testing.T) {
	list := parseSelectors(t, "div#foo.bar.baz")
	comp := list.Complex[0].Compounds[0]
	require.Equal(t, "div", atom.String(comp.TypeSelector.Name))
	require.Equal(t, []atom.Atom{atom.Fold("foo")}, comp.IDs)
	require.Len(t, comp.Classes, 2)
}

func TestParseCombinators(t *testing.T) {
	list := parseSelectors(t, "div > span + a ~ b c")
	complex := list.Complex[0]
	require.Len(t, complex.Compounds, 5)
	require.Equal(t, []Combinator{CombinatorChild, CombinatorNextSibling, CombinatorSubsequent, CombinatorDescendant}, complex.Combinators)
}

func TestParseCommaSeparatedSelectorList(t *testing.T) {
	list := parseSelectors(t, "div, span")
	require.Len(t, list.Complex, 2)
}

func TestParseAttributeSelectorVariants(t *testing.T) {
	list := parseSelectors(t, `a[href], a[href="x"], a[href~="x"], a[href|="x"], a[href^="x"], a[href$="x"], a[href*="x" i]`)
	require.Len(t, list.Complex, 7)

	require.Equal(t, AttrMatchExists, list.Complex[0].Compounds[0].Attributes[0].Match)
	require.Equal(t, AttrMatchEqual, list.Complex[1].Compounds[0].Attributes[0].Match)
	require.Equal(t, AttrMatchTilde, list.Complex[2].Compounds[0].Attributes[0].Match)
	require.Equal(t, AttrMatchBar, list.Complex[3].Compounds[0].Attributes[0].Match)
	require.Equal(t, AttrMatchPrefix, list.Complex[4].Compounds[0].Attributes[0].Match)
	require.Equal(t, AttrMatchSuffix, list.Complex[5].Compounds[0].Attributes[0].Match)

	last := list.Complex[6].Compounds[0].Attributes[0]
	require.Equal(t, AttrMatchSubstring, last.Match)
	require.Equal(t, "x", last.Value)
	require.False(t, last.CaseSensitive)
}

func TestParsePseudoElement(t *testing.T) {
	list := parseSelectors(t, "p::before")
	comp := list.Complex[0].Compounds[0]
	require.NotNil(t, comp.PseudoElement)
	require.Equal(t, "before", atom.String(comp.PseudoElement.Name))
}

func TestParseIsWhereHasSpecificity(t *testing.T) {
	isList := parseSelectors(t, ":is(#a, .b)")
	whereList := parseSelectors(t, ":where(#a, .b)")
	hasList := parseSelectors(t, ":has(#a)")

	isSp := isList.Complex[0].Compute()
	require.Equal(t, Specificity{A: 1, B: 0, C: 0}, isSp)

	whereSp := whereList.Complex[0].Compute()
	require.Equal(t, Specificity{}, whereSp)

	hasSp := hasList.Complex[0].Compute()
	require.Equal(t, Specificity{A: 1, B: 0, C: 0}, hasSp)
}

func TestParseNthChildEvenOdd(t *testing.T) {
	list := parseSelectors(t, "li:nth-child(even)")
	nth := list.Complex[0].Compounds[0].PseudoClasses[0].Nth
	require.Equal(t, NthExpr{A: 2, B: 0}, nth)
	require.True(t, nth.Matches(2))
	require.False(t, nth.Matches(3))

	list = parseSelectors(t, "li:nth-child(odd)")
	nth = list.Complex[0].Compounds[0].PseudoClasses[0].Nth
	require.Equal(t, NthExpr{A: 2, B: 1}, nth)
}

func TestParseNthChildFormula(t *testing.T) {
	cases := []struct {
		text string
		want NthExpr
	}{
		{"li:nth-child(3)", NthExpr{A: 0, B: 3}},
		{"li:nth-child(2n)", NthExpr{A: 2, B: 0}},
		{"li:nth-child(2n+1)", NthExpr{A: 2, B: 1}},
		{"li:nth-child(-2n+5)", NthExpr{A: -2, B: 5}},
		{"li:nth-child(n-1)", NthExpr{A: 1, B: -1}},
		{"li:nth-child(-n+3)", NthExpr{A: -1, B: 3}},
	}
	for _, c := range cases {
		list := parseSelectors(t, c.text)
		nth := list.Complex[0].Compounds[0].PseudoClasses[0].Nth
		require.Equal(t, c.want, nth, c.text)
	}
}

func TestParseNthChildOfSelectorList(t *testing.T) {
	list := parseSelectors(t, "li:nth-child(2n+1 of .foo)")
	nth := list.Complex[0].Compounds[0].PseudoClasses[0].Nth
	require.Equal(t, 2, nth.A)
	require.Equal(t, 1, nth.B)
	require.NotNil(t, nth.Of)
	require.Len(t, nth.Of.Complex, 1)
}

func TestParseLangMultipleTags(t *testing.T) {
	list := parseSelectors(t, ":lang(en, fr)")
	pc := list.Complex[0].Compounds[0].PseudoClasses[0]
	require.Equal(t, PseudoClassLang, pc.Kind)
	require.Len(t, pc.Langs, 2)
}

func TestParseDirPseudoClass(t *testing.T) {
	list := parseSelectors(t, ":dir(rtl)")
	pc := list.Complex[0].Compounds[0].PseudoClasses[0]
	require.Equal(t, PseudoClassDir, pc.Kind)
	require.Equal(t, "rtl", atom.String(pc.Dir))
}

func TestParseNestingSelector(t *testing.T) {
	list := parseSelectors(t, "&.foo")
	comp := list.Complex[0].Compounds[0]
	require.True(t, comp.HasNestingSelector)
	require.Len(t, comp.Classes, 1)
}

func TestParseNestingSelectorRejectedOutsideNestingContext(t *testing.T) {
	log := logger.NewDeferLog()
	source := logger.Source{Contents: "&.foo"}
	result := csslexer.Tokenize(log, source)
	p := cssparser.New(log, source, result.Tokens, atom.Default())
	_, ok := ParseSelectorList(p)
	require.False(t, ok)
	require.True(t, log.HasErrors())
}

func TestParseWildcardTypeSelector(t *testing.T) {
	list := parseSelectors(t, "*.foo")
	comp := list.Complex[0].Compounds[0]
	require.True(t, comp.TypeSelector.IsWildcard)
}

func TestClassifyTag(t *testing.T) {
	require.Equal(t, TagSVG, ClassifyTag("svg"))
	require.Equal(t, TagSVG, ClassifyTag("circle"))
	require.Equal(t, TagMathML, ClassifyTag("math"))
	require.Equal(t, TagHTML, ClassifyTag("div"))
	require.Equal(t, TagHTML, ClassifyTag("font-face"))
	require.Equal(t, TagCustomElement, ClassifyTag("my-widget"))
	require.Equal(t, TagHTMLNonConforming, ClassifyTag("marquee"))
	require.Equal(t, TagHTMLNonConforming, ClassifyTag("center"))
	require.Equal(t, TagHTMLNonConforming, ClassifyTag("acronym"))
	require.Equal(t, TagHTMLNonConforming, ClassifyTag("applet"))
	require.Equal(t, TagHTMLNonStandard, ClassifyTag("portal"))
	require.Equal(t, TagHTMLNonStandard, ClassifyTag("fencedframe"))
	require.Equal(t, TagUnknown, ClassifyTag("frobnicator"))
	require.Equal(t, TagUnknown, ClassifyTag("boguselement"))
}

func TestSpecificityOrdering(t *testing.T) {
	low := Specificity{C: 1}
	mid := Specificity{B: 1}
	high := Specificity{A: 1}
	require.True(t, low.Less(mid))
	require.True(t, mid.Less(high))
	require.False(t, high.Less(low))
}

func TestComplexSelectorSpecificitySum(t *testing.T) {
	list := parseSelectors(t, "div.foo#bar span")
	sp := list.Complex[0].Compute()
	require.Equal(t, Specificity{A: 1, B: 1, C: 2}, sp)
}
