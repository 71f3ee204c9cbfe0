package csssupports

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/cssparser"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/logger"
)

func newParser(t *testing.T, text string) *cssparser.Parser {
	t.Helper()
	log := logger.NewDeferLog()
	source := logger.Source{Contents: text}
	result := csslexer.Tokenize(log, source)
	return cssparser.New(log, source, result.Tokens, atom.Default())
}

func TestParseConditionSingleDeclaration(t *testing.T) {
	p := newParser(t, "(display: flex)")
	cond := ParseCondition(p)
	require.NotNil(t, cond)
	require.Equal(t, cssparser.ConditionLeaf, cond.Op)
	require.Equal(t, FeatureDeclaration, cond.Leaf.Kind)
	require.Equal(t, "display", p.Atoms.String(cond.Leaf.Declaration.Name))
}

func TestParseConditionAndOr(t *testing.T) {
	p := newParser(t, "(display: flex) and (gap: 1px)")
	cond := ParseCondition(p)
	require.NotNil(t, cond)
	require.Equal(t, cssparser.ConditionAnd, cond.Op)
	require.Len(t, cond.Children, 2)
}

func TestParseConditionNot(t *testing.T) {
	p := newParser(t, "not (display: grid)")
	cond := ParseCondition(p)
	require.NotNil(t, cond)
	require.Equal(t, cssparser.ConditionNot, cond.Op)
	require.Equal(t, FeatureDeclaration, cond.Children[0].Leaf.Kind)
}

func TestParseConditionSelectorFunction(t *testing.T) {
	p := newParser(t, "selector(div > span)")
	cond := ParseCondition(p)
	require.NotNil(t, cond)
	require.Equal(t, FeatureSelector, cond.Leaf.Kind)
	require.Len(t, cond.Leaf.Selector.Complex, 1)
}

func TestParseConditionParenGroup(t *testing.T) {
	p := newParser(t, "((display: flex) and (gap: 1px)) or (display: grid)")
	cond := ParseCondition(p)
	require.NotNil(t, cond)
	require.Equal(t, cssparser.ConditionOr, cond.Op)
	require.Len(t, cond.Children, 2)
	require.Equal(t, cssparser.ConditionAnd, cond.Children[0].Op)
}
