package csspage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/cssparser"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/logger"
)

func parsePageRule(t *testing.T, text string) (*cssast.AtRule, *cssparser.Parser) {
	t.Helper()
	log := logger.NewDeferLog()
	source := logger.Source{Contents: text}
	result := csslexer.Tokenize(log, source)
	p := cssparser.New(log, source, result.Tokens, atom.Default())
	sheet := p.ParseStylesheet()
	require.Len(t, sheet.Rules, 1)
	atRule, ok := sheet.Rules[0].(*cssast.AtRule)
	require.True(t, ok)
	require.Equal(t, "page", p.Atoms.String(atRule.Name))
	return atRule, p
}

func TestParseSelectorListBareRule(t *testing.T) {
	atRule, p := parsePageRule(t, "@page { margin-top: 4in; }")
	selectors, errs := ParseSelectorList(atRule.Prelude, p.Atoms, p.Source.Contents)
	require.Empty(t, errs)
	require.Empty(t, selectors)
}

func TestParseSelectorListNamedPageType(t *testing.T) {
	atRule, p := parsePageRule(t, "@page wide {}")
	selectors, errs := ParseSelectorList(atRule.Prelude, p.Atoms, p.Source.Contents)
	require.Empty(t, errs)
	require.Len(t, selectors, 1)
	require.True(t, selectors[0].HasPageType)
	require.Equal(t, "wide", p.Atoms.String(selectors[0].PageType))
	require.Empty(t, selectors[0].Pseudos)
}

func TestParseSelectorListNamedWithPseudo(t *testing.T) {
	atRule, p := parsePageRule(t, "@page wide:left {}")
	selectors, errs := ParseSelectorList(atRule.Prelude, p.Atoms, p.Source.Contents)
	require.Empty(t, errs)
	require.Len(t, selectors, 1)
	require.Equal(t, []PseudoClass{PseudoLeft}, selectors[0].Pseudos)

	sp := selectors[0].Specificity()
	require.Equal(t, 1, sp.A)
	require.Equal(t, 0, sp.B)
	require.Equal(t, 1, sp.C)
}

func TestParseSelectorListMultiplePseudos(t *testing.T) {
	atRule, p := parsePageRule(t, "@page :first:blank {}")
	selectors, errs := ParseSelectorList(atRule.Prelude, p.Atoms, p.Source.Contents)
	require.Empty(t, errs)
	require.Len(t, selectors, 1)
	require.False(t, selectors[0].HasPageType)
	require.Equal(t, []PseudoClass{PseudoFirst, PseudoBlank}, selectors[0].Pseudos)

	sp := selectors[0].Specificity()
	require.Equal(t, 0, sp.A)
	require.Equal(t, 2, sp.B)
	require.Equal(t, 0, sp.C)
}

func TestParseSelectorListRejectsUnknownPseudo(t *testing.T) {
	atRule, p := parsePageRule(t, "@page :bogus {}")
	_, errs := ParseSelectorList(atRule.Prelude, p.Atoms, p.Source.Contents)
	require.Len(t, errs, 1)
}

func TestParseSelectorListCommaSeparated(t *testing.T) {
	atRule, p := parsePageRule(t, "@page wide:left, narrow:right {}")
	selectors, errs := ParseSelectorList(atRule.Prelude, p.Atoms, p.Source.Contents)
	require.Empty(t, errs)
	require.Len(t, selectors, 2)
	require.Equal(t, "wide", p.Atoms.String(selectors[0].PageType))
	require.Equal(t, "narrow", p.Atoms.String(selectors[1].PageType))
}

func TestIsMarginBoxName(t *testing.T) {
	require.True(t, IsMarginBoxName("top-right"))
	require.True(t, IsMarginBoxName("TOP-RIGHT"))
	require.False(t, IsMarginBoxName("top-middle"))
}

func TestMarginRuleParsesAsOpaqueAtRule(t *testing.T) {
	atRule, p := parsePageRule(t, "@page wide:left { @top-right { content: 'hi'; } }")
	require.True(t, atRule.HasBlock)
	require.Len(t, atRule.Block, 1)
	margin, ok := atRule.Block[0].(*cssast.AtRule)
	require.True(t, ok)
	require.True(t, IsMarginBoxName(p.Atoms.String(margin.Name)))
}
