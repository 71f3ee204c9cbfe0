package cssparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cssdx/csscore/internal/atom"
	"github.com/cssdx/csscore/internal/csslexer"
	"github.com/cssdx/csscore/internal/logger"
)

func newParser(t *testing.T, text string) *Parser {
	t.Helper()
	log := logger.NewDeferLog()
	source := logger.Source{Contents: text}
	result := csslexer.Tokenize(log, source)
	return New(log, source, result.Tokens, atom.Default())
}

func TestParseDeclarationBasic(t *testing.T) {
	p := newParser(t, "color: red")
	decl := p.ParseDeclaration()
	require.NotNil(t, decl)
	require.Equal(t, "color", p.Atoms.String(decl.Name))
	require.False(t, decl.Important)
	require.False(t, p.Log.HasErrors())
}

func TestParseDeclarationImportant(t *testing.T) {
	p := newParser(t, "color: red !important")
	decl := p.ParseDeclaration()
	require.NotNil(t, decl)
	require.True(t, decl.Important)
}

func TestParseDeclarationWithoutColonFailsWithoutConsuming(t *testing.T) {
	p := newParser(t, "not-a-declaration")
	decl := p.ParseDeclaration()
	require.Nil(t, decl)
	// Nothing was consumed: the ident is still the next token.
	require.Equal(t, csslexer.KindIdent, p.Peek().Tok.Kind)
}

func TestParseDeclarationListRecoversFromBadDeclaration(t *testing.T) {
	p := newParser(t, "not-a-declaration; color: red")
	decls := p.ParseDeclarationList()
	require.Len(t, decls, 1)
	require.Equal(t, "color", p.Atoms.String(decls[0].Name))
}

func TestCheckpointRewindRestoresPosition(t *testing.T) {
	p := newParser(t, "a b c")
	cp := p.Checkpoint()
	first := p.Next()
	require.Equal(t, "a", first.Tok.DecodedText(p.Source.Contents))
	p.Rewind(cp)
	require.Equal(t, "a", p.Peek().Tok.DecodedText(p.Source.Contents))
}

type testIdentNode struct {
	name string
}

func (n *testIdentNode) Parse(p *Parser) bool {
	c := p.Peek()
	if c.Tok.Kind != csslexer.KindIdent {
		return false
	}
	p.Next()
	n.name = c.Tok.DecodedText(p.Source.Contents)
	return true
}

func TestGenericParseSucceeds(t *testing.T) {
	p := newParser(t, "foo")
	node, ok := Parse[testIdentNode, *testIdentNode](p)
	require.True(t, ok)
	require.Equal(t, "foo", node.name)
}

func TestGenericParseRewindsOnFailure(t *testing.T) {
	p := newParser(t, "123")
	_, ok := Parse[testIdentNode, *testIdentNode](p)
	require.False(t, ok)
	// The failed attempt consumed nothing: the number is still next.
	require.Equal(t, csslexer.KindNumber, p.Peek().Tok.Kind)
}

func TestTryParseRewindsOnFailure(t *testing.T) {
	p := newParser(t, "123")
	node := &testIdentNode{}
	ok := TryParse[testIdentNode, *testIdentNode](p, node)
	require.False(t, ok)
	require.Equal(t, "", node.name)
	require.Equal(t, csslexer.KindNumber, p.Peek().Tok.Kind)
}

func TestParseRangedFeatureLegacyColonForm(t *testing.T) {
	p := newParser(t, "width: 400px")
	rf, ok := p.ParseRangedFeature()
	require.True(t, ok)
	require.Equal(t, "width", p.Atoms.String(rf.Name))
	require.True(t, rf.HasLower)
	require.Equal(t, ComparatorEq, rf.LowerOp)
	require.False(t, rf.HasUpper)
}

func TestParseRangedFeatureNameFirstComparator(t *testing.T) {
	p := newParser(t, "width >= 400px")
	rf, ok := p.ParseRangedFeature()
	require.True(t, ok)
	require.Equal(t, "width", p.Atoms.String(rf.Name))
	require.Equal(t, ComparatorGe, rf.LowerOp)
	require.True(t, rf.HasLower)
	require.False(t, rf.HasUpper)
}

func TestParseRangedFeatureDoubleSided(t *testing.T) {
	p := newParser(t, "100px <= width <= 200px")
	rf, ok := p.ParseRangedFeature()
	require.True(t, ok)
	require.Equal(t, "width", p.Atoms.String(rf.Name))
	require.True(t, rf.HasLower)
	require.Equal(t, ComparatorLe, rf.LowerOp)
	require.True(t, rf.HasUpper)
	require.Equal(t, ComparatorLe, rf.UpperOp)
}

// identFeature is a minimal FeatureParser[F] used only to exercise
// ParseConditionList's shared and/or/not/parens structure in isolation
// from any concrete at-rule grammar: a leaf is a bare ident.
type identFeature struct{ name string }
type identFeatureParser struct{}

func (identFeatureParser) ParseFeature(p *Parser) (identFeature, bool) {
	c := p.Peek()
	if c.Tok.Kind != csslexer.KindIdent {
		return identFeature{}, false
	}
	p.Next()
	return identFeature{name: c.Tok.DecodedText(p.Source.Contents)}, true
}

func TestParseConditionListSingleLeaf(t *testing.T) {
	p := newParser(t, "foo")
	cond := ParseConditionList[identFeature](p, identFeatureParser{})
	require.NotNil(t, cond)
	require.Equal(t, ConditionLeaf, cond.Op)
	require.Equal(t, "foo", cond.Leaf.name)
}

func TestParseConditionListAndChain(t *testing.T) {
	p := newParser(t, "foo and bar and baz")
	cond := ParseConditionList[identFeature](p, identFeatureParser{})
	require.NotNil(t, cond)
	require.Equal(t, ConditionAnd, cond.Op)
	require.Len(t, cond.Children, 3)
}

func TestParseConditionListOrChain(t *testing.T) {
	p := newParser(t, "foo or bar")
	cond := ParseConditionList[identFeature](p, identFeatureParser{})
	require.NotNil(t, cond)
	require.Equal(t, ConditionOr, cond.Op)
	require.Len(t, cond.Children, 2)
}

func TestParseConditionListNot(t *testing.T) {
	p := newParser(t, "not foo")
	cond := ParseConditionList[identFeature](p, identFeatureParser{})
	require.NotNil(t, cond)
	require.Equal(t, ConditionNot, cond.Op)
	require.Len(t, cond.Children, 1)
	require.Equal(t, ConditionLeaf, cond.Children[0].Op)
}

func TestParseConditionListParenthesizedGroup(t *testing.T) {
	p := newParser(t, "(foo and bar) or baz")
	cond := ParseConditionList[identFeature](p, identFeatureParser{})
	require.NotNil(t, cond)
	require.Equal(t, ConditionOr, cond.Op)
	require.Len(t, cond.Children, 2)
	require.Equal(t, ConditionAnd, cond.Children[0].Op)
	require.Equal(t, ConditionLeaf, cond.Children[1].Op)
}

func TestPeekKeywordIsCaseInsensitive(t *testing.T) {
	p := newParser(t, "AND")
	require.True(t, p.PeekKeyword("and"))
}
