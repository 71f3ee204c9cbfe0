package csskeyframes

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssast"
	"github.com/cssdx/csscore/internal/cssparser"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/logger"
)

func parseKeyframeRule(t *testing.T, blockText, ruleText string) ([]cssast.ComponentValue, string) {
	t.Helper()
	log := logger.NewDeferLog()
	text := "@keyframes " + blockText + " { " + ruleText + " {} }"
	source := logger.Source{Contents: text}
	result := csslexer.Tokenize(log, source)
	p := cssparser.New(log, source, result.Tokens, atom.Default())
	sheet := p.ParseStylesheet()
	require.Len(t, sheet.Rules, 1)
	atRule, ok := sheet.Rules[0].(*cssast.AtRule)
	require.True(t, ok)
	require.True(t, atRule.HasBlock)
	require.Len(t, atRule.Block, 1)
	qr, ok := atRule.Block[0].(*cssast.QualifiedRule)
	require.True(t, ok)
	return qr.Prelude, source.Contents
}

func TestValidateNameRejectsReserved(t *testing.T) {
	ok, reserved := ValidateName("NONE")
	require.False(t, ok)
	require.Equal(t, "none", reserved)

	ok, _ = ValidateName("spin")
	require.True(t, ok)
}

func TestParseSelectorListFromTo(t *testing.T) {
	prelude, source := parseKeyframeRule(t, "spin", "from")
	selectors, errs := ParseSelectorList(prelude, source)
	require.Empty(t, errs)
	require.Equal(t, []Selector{{Percent: 0}}, selectors)
}

func TestParseSelectorListPercentage(t *testing.T) {
	prelude, source := parseKeyframeRule(t, "spin", "50%")
	selectors, errs := ParseSelectorList(prelude, source)
	require.Empty(t, errs)
	require.Equal(t, []Selector{{Percent: 50}}, selectors)
}

func TestParseSelectorListCommaSeparated(t *testing.T) {
	prelude, source := parseKeyframeRule(t, "spin", "from, 50%")
	selectors, errs := ParseSelectorList(prelude, source)
	require.Empty(t, errs)
	require.Equal(t, []Selector{{Percent: 0}, {Percent: 50}}, selectors)
}

func TestParseSelectorListRejectsOutOfRangePercentage(t *testing.T) {
	prelude, source := parseKeyframeRule(t, "spin", "150%")
	_, errs := ParseSelectorList(prelude, source)
	require.Len(t, errs, 1)
}

func TestParseSelectorListRejectsUnknownIdent(t *testing.T) {
	prelude, source := parseKeyframeRule(t, "spin", "middle")
	_, errs := ParseSelectorList(prelude, source)
	require.Len(t, errs, 1)
}
